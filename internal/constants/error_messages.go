package constants

const (
	ErrCodeTransactionNotFound  = "TRANSACTION_NOT_FOUND"
	ErrCodeStateConflict        = "STATE_CONFLICT"
	ErrCodeInvalidNotification  = "INVALID_NOTIFICATION"
	ErrCodeInvalidTransaction   = "INVALID_TRANSACTION"
	ErrCodeDuplicateTransaction = "DUPLICATE_TRANSACTION"
	ErrCodeProcessorUnavailable = "PROCESSOR_UNAVAILABLE"
	ErrCodeDatabase             = "DATABASE_ERROR"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
)

const MessageErrorFormat = "field %s is invalid"

const (
	ErrMsgTransactionNotFound  = "transaction not found"
	ErrMsgStateConflict        = "transaction was updated concurrently"
	ErrMsgInvalidNotification  = "notification is missing required fields"
	ErrMsgInvalidTransaction   = "invalid transaction"
	ErrMsgDuplicateTransaction = "duplicate transaction"
	ErrMsgProcessorUnavailable = "payment processor unavailable"
	ErrMsgDatabase             = "database error"
	ErrMsgInternalError        = "Internal server error"
	ErrMsgInvalidRequestBody   = "failed to parse request body"
	ErrMsgUnauthorized         = "missing or invalid admin token"
	ErrMsgValidationFailed     = "request validation failed"
)

var errorMessages = map[string]string{
	ErrCodeTransactionNotFound:  ErrMsgTransactionNotFound,
	ErrCodeStateConflict:        ErrMsgStateConflict,
	ErrCodeInvalidNotification:  ErrMsgInvalidNotification,
	ErrCodeInvalidTransaction:   ErrMsgInvalidTransaction,
	ErrCodeDuplicateTransaction: ErrMsgDuplicateTransaction,
	ErrCodeProcessorUnavailable: ErrMsgProcessorUnavailable,
	ErrCodeDatabase:             ErrMsgDatabase,
	ErrCodeInternalError:        ErrMsgInternalError,
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
	ErrCodeUnauthorized:         ErrMsgUnauthorized,
	ErrCodeValidationFailed:     ErrMsgValidationFailed,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeInvalidNotification:
		return 400
	case ErrCodeUnauthorized:
		return 401
	case ErrCodeTransactionNotFound:
		return 404
	case ErrCodeStateConflict, ErrCodeDuplicateTransaction:
		return 409
	case ErrCodeInvalidTransaction, ErrCodeValidationFailed:
		return 422
	case ErrCodeProcessorUnavailable:
		return 503
	case ErrCodeInternalError, ErrCodeDatabase:
		return 500
	default:
		return 500
	}
}
