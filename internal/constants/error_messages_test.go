package constants_test

import (
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/constants"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := map[string]int{
		constants.ErrCodeInvalidNotification:  400,
		constants.ErrCodeInvalidRequestBody:   400,
		constants.ErrCodeUnauthorized:         401,
		constants.ErrCodeTransactionNotFound:  404,
		constants.ErrCodeStateConflict:        409,
		constants.ErrCodeInvalidTransaction:   422,
		constants.ErrCodeProcessorUnavailable: 503,
		constants.ErrCodeDatabase:             500,
		"SOMETHING_ELSE":                      500,
	}

	for code, status := range cases {
		assert.Equal(t, status, constants.GetHTTPStatus(code), code)
	}
}

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, constants.ErrMsgTransactionNotFound, constants.GetErrorMessage(constants.ErrCodeTransactionNotFound))
	assert.Equal(t, constants.ErrMsgInternalError, constants.GetErrorMessage("UNKNOWN"))
}
