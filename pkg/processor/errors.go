package processor

import (
	"errors"
	"fmt"
)

const (
	StatusOK           = 200
	StatusUnauthorized = 401
	StatusForbidden    = 403
	StatusNotFound     = 404
)

const (
	ErrCodeUnconfigured = "PROCESSOR_UNCONFIGURED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeLinkNotFound = "PAYMENT_LINK_NOT_FOUND"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeServerError  = "SERVER_ERROR"
	ErrCodeRejected     = "REJECTED"
	ErrCodeEmptyToken   = "EMPTY_TOKEN"
)

var (
	ErrUnconfigured = errors.New(ErrCodeUnconfigured)
	ErrUnauthorized = errors.New(ErrCodeUnauthorized)
	ErrLinkNotFound = errors.New(ErrCodeLinkNotFound)
	ErrTimeout      = errors.New(ErrCodeTimeout)
	ErrServerError  = errors.New(ErrCodeServerError)
	ErrRejected     = errors.New(ErrCodeRejected)
	ErrEmptyToken   = errors.New(ErrCodeEmptyToken)
)

var statusErrorMap = map[int]error{
	StatusUnauthorized: ErrUnauthorized,
	StatusForbidden:    ErrUnauthorized,
	StatusNotFound:     ErrLinkNotFound,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}

func rejected(step, code, message string) error {
	return fmt.Errorf("%w: %s returned code %q: %s", ErrRejected, step, code, message)
}
