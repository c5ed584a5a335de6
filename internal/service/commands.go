package service

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionCommand struct {
	OrderID              string
	Amount               decimal.Decimal
	Currency             string
	CustomerEmail        string
	CustomerName         string
	PaymentLinkReference string
	PaymentLinkAddress   string
}

type UpdateStateCommand struct {
	TransactionID        string
	State                string
	PaymentLinkReference string
	// ExpectedVersion zero means the currently stored version.
	ExpectedVersion int64
}

type ListTransactionsQuery struct {
	State   string
	OrderID string
	Limit   int
	Offset  int
}

type PollCandidatesQuery struct {
	Since *time.Time
	Limit int
}

type ApplyStateCommand struct {
	TransactionID        string
	State                string
	PaymentLinkReference string
	Source               string
}

// WebhookNotification is an inbound processor notification after field aliasing.
type WebhookNotification struct {
	TransactionID        string
	State                string
	PaymentLinkReference string
	Payload              []byte
}

// PollTransactionCommand is the body of a poll queue message.
type PollTransactionCommand struct {
	TransactionID string `json:"transaction_id"`
}

type ListNotificationsQuery struct {
	TransactionID string
	Limit         int
}
