package storefront

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusUnprocessableEntity = 422
	StatusTooManyRequests     = 429
)

const (
	ErrCodeUnconfigured     = "STOREFRONT_UNCONFIGURED"
	ErrCodeInvalidOrderID   = "INVALID_ORDER_ID"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeServerError      = "SERVER_ERROR"
	ErrCodeGraphQL          = "GRAPHQL_ERROR"
	ErrCodeUserErrors       = "USER_ERRORS"
)

var (
	ErrUnconfigured     = errors.New(ErrCodeUnconfigured)
	ErrInvalidOrderID   = errors.New(ErrCodeInvalidOrderID)
	ErrUnauthorized     = errors.New(ErrCodeUnauthorized)
	ErrOrderNotFound    = errors.New(ErrCodeOrderNotFound)
	ErrValidationFailed = errors.New(ErrCodeValidationFailed)
	ErrRateLimited      = errors.New(ErrCodeRateLimited)
	ErrTimeout          = errors.New(ErrCodeTimeout)
	ErrServerError      = errors.New(ErrCodeServerError)
	ErrGraphQL          = errors.New(ErrCodeGraphQL)
	ErrUserErrors       = errors.New(ErrCodeUserErrors)
)

var statusErrorMap = map[int]error{
	StatusUnauthorized:        ErrUnauthorized,
	StatusForbidden:           ErrUnauthorized,
	StatusNotFound:            ErrOrderNotFound,
	StatusUnprocessableEntity: ErrValidationFailed,
	StatusTooManyRequests:     ErrRateLimited,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}

// UserErrorsError carries the validation messages returned by a mutation.
type UserErrorsError struct {
	Errors []UserError
}

func (e UserErrorsError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, userErr := range e.Errors {
		if len(userErr.Field) > 0 {
			messages = append(messages, fmt.Sprintf("%s: %s", strings.Join(userErr.Field, "."), userErr.Message))
			continue
		}
		messages = append(messages, userErr.Message)
	}
	return fmt.Sprintf("%s: %s", ErrCodeUserErrors, strings.Join(messages, "; "))
}

func (e UserErrorsError) Unwrap() error {
	return ErrUserErrors
}
