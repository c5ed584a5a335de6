package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	amountRegex   = `^\d+(\.\d{1,2})?$`
	currencyRegex = `^[A-Za-z]{3}$`
)

const (
	AmountTag   = "amount"
	CurrencyTag = "currency"
)

var (
	amountPattern   = regexp.MustCompile(amountRegex)
	currencyPattern = regexp.MustCompile(currencyRegex)
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AmountTag:   ValidateAmount,
	CurrencyTag: ValidateCurrency,
}

// ValidateAmount accepts a positive decimal with at most two fraction digits.
func ValidateAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().String()
	if !amountPattern.MatchString(amount) {
		return false
	}
	for _, r := range amount {
		if r != '0' && r != '.' {
			return true
		}
	}
	return false
}

func ValidateCurrency(fl validator.FieldLevel) bool {
	return currencyPattern.MatchString(fl.Field().String())
}
