package v1

import (
	"time"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	TransactionID        string             `json:"transaction_id"`
	OrderID              *string            `json:"order_id"`
	PaymentState         model.PaymentState `json:"payment_state"`
	StateName            string             `json:"state_name"`
	Label                classifier.Label   `json:"label"`
	Amount               decimal.Decimal    `json:"amount"`
	Currency             string             `json:"currency"`
	CustomerEmail        string             `json:"customer_email,omitempty"`
	CustomerName         string             `json:"customer_name,omitempty"`
	PaymentLinkReference string             `json:"payment_link_reference,omitempty"`
	PaymentLinkAddress   string             `json:"payment_link_address,omitempty"`
	Version              int64              `json:"version"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	LastNotificationAt   *time.Time         `json:"last_notification_at"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
}

type ListNotificationsResponse struct {
	Notifications []model.Notification `json:"notifications"`
	Count         int                  `json:"count"`
}

func newTransactionResponse(tx *model.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        tx.TransactionID,
		OrderID:              tx.OrderID,
		PaymentState:         tx.PaymentState,
		StateName:            tx.PaymentState.Name(),
		Label:                classifier.Classify(string(tx.PaymentState)).Label,
		Amount:               tx.Amount,
		Currency:             tx.Currency,
		CustomerEmail:        tx.CustomerEmail,
		CustomerName:         tx.CustomerName,
		PaymentLinkReference: tx.PaymentLinkReference,
		PaymentLinkAddress:   tx.PaymentLinkAddress,
		Version:              tx.Version,
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
		LastNotificationAt:   tx.LastNotificationAt,
	}
}
