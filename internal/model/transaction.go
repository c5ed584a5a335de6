package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState is the processor's raw state code for a payment link.
type PaymentState string

const (
	PaymentStateGenerated   PaymentState = "1"
	PaymentStateInProgress  PaymentState = "2"
	PaymentStateSucceeded   PaymentState = "3"
	PaymentStateFailed      PaymentState = "4"
	PaymentStateExpired     PaymentState = "5"
	PaymentStateDeactivated PaymentState = "6"
)

var stateNames = map[PaymentState]string{
	PaymentStateGenerated:   "GENERATED",
	PaymentStateInProgress:  "IN_PROGRESS",
	PaymentStateSucceeded:   "SUCCEEDED",
	PaymentStateFailed:      "FAILED",
	PaymentStateExpired:     "EXPIRED",
	PaymentStateDeactivated: "DEACTIVATED",
}

var stateByName = func() map[string]PaymentState {
	m := make(map[string]PaymentState, len(stateNames))
	for code, name := range stateNames {
		m[name] = code
	}
	return m
}()

// ParsePaymentState normalizes a reported state. Codes and symbolic names map
// to the code; anything else is kept as received.
func ParsePaymentState(raw string) PaymentState {
	raw = strings.TrimSpace(raw)
	if _, ok := stateNames[PaymentState(raw)]; ok {
		return PaymentState(raw)
	}
	if code, ok := stateByName[strings.ToUpper(raw)]; ok {
		return code
	}
	return PaymentState(raw)
}

func (s PaymentState) Known() bool {
	_, ok := stateNames[s]
	return ok
}

// Name returns the symbolic name, or the raw value for unknown states.
func (s PaymentState) Name() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return string(s)
}

// PendingStates are the states the poller keeps checking.
var PendingStates = []PaymentState{PaymentStateGenerated, PaymentStateInProgress}

type Transaction struct {
	ID                   int64           `gorm:"primaryKey;autoIncrement;<-:create" json:"-"`
	TransactionID        string          `gorm:"type:varchar(32);uniqueIndex;not null;<-:create" json:"transaction_id"`
	OrderID              *string         `gorm:"type:varchar(64);index" json:"order_id"`
	PaymentState         PaymentState    `gorm:"type:varchar(16);index;not null" json:"payment_state"`
	Amount               decimal.Decimal `gorm:"type:decimal(12,2);not null;<-:create" json:"amount"`
	Currency             string          `gorm:"type:varchar(3);not null;<-:create" json:"currency"`
	CustomerEmail        string          `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerName         string          `gorm:"type:varchar(255)" json:"customer_name"`
	PaymentLinkReference string          `gorm:"type:varchar(128);index" json:"payment_link_reference"`
	PaymentLinkAddress   string          `gorm:"type:varchar(512)" json:"payment_link_address"`
	Version              int64           `gorm:"not null;default:1" json:"version"`
	CreatedAt            time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	LastNotificationAt   *time.Time      `json:"last_notification_at"`
}

func (t Transaction) HasOrder() bool {
	return t.OrderID != nil && *t.OrderID != ""
}

func (t Transaction) Order() string {
	if t.OrderID == nil {
		return ""
	}
	return *t.OrderID
}
