package v1

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexString accepts a JSON string or number. The processor has sent both
// for transaction ids and states.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

type WebhookRequest struct {
	TransactionID    FlexString `json:"transactionId" form:"transactionId"`
	TransactionIDAlt FlexString `json:"transaction_id" form:"transaction_id"`
	State            FlexString `json:"state" form:"state"`
	PaymentLinkState FlexString `json:"paymentLinkState" form:"paymentLinkState"`
	PaymentLinkID    FlexString `json:"paymentLinkId" form:"paymentLinkId"`
	PaymentLinkIDAlt FlexString `json:"payment_link_id" form:"payment_link_id"`
}

func (r WebhookRequest) transactionID() string {
	return firstNonEmpty(r.TransactionID.String(), r.TransactionIDAlt.String())
}

// state prefers state over paymentLinkState.
func (r WebhookRequest) state() string {
	return firstNonEmpty(r.State.String(), r.PaymentLinkState.String())
}

func (r WebhookRequest) paymentLinkID() string {
	return firstNonEmpty(r.PaymentLinkID.String(), r.PaymentLinkIDAlt.String())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type ListTransactionsRequest struct {
	State   string `query:"state" validate:"omitempty,max=16"`
	OrderID string `query:"order_id" validate:"omitempty,max=64"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset  int    `query:"offset" validate:"omitempty,min=0"`
}

type CreateTransactionRequest struct {
	OrderID              string `json:"order_id" validate:"omitempty,max=64"`
	Amount               string `json:"amount" validate:"required,amount"`
	Currency             string `json:"currency" validate:"required,currency"`
	CustomerEmail        string `json:"customer_email" validate:"omitempty,email"`
	CustomerName         string `json:"customer_name" validate:"omitempty,max=255"`
	PaymentLinkReference string `json:"payment_link_reference" validate:"omitempty,max=128"`
	PaymentLinkAddress   string `json:"payment_link_address" validate:"omitempty,url"`
}

type AttachPaymentLinkRequest struct {
	Reference string `json:"reference" validate:"required,max=128"`
	Address   string `json:"address" validate:"omitempty,url"`
}

const (
	PollModePending = "pending"
	PollModeWindow  = "window"
)

type PollRequest struct {
	Mode        string `json:"mode" validate:"required,oneof=pending window"`
	WindowHours int    `json:"window_hours" validate:"omitempty,min=1,max=720"`
	Limit       int    `json:"limit" validate:"omitempty,min=1,max=1000"`
}

type ListNotificationsRequest struct {
	TransactionID string `query:"transaction_id" validate:"omitempty,max=32"`
	Limit         int    `query:"limit" validate:"omitempty,min=1,max=500"`
}
