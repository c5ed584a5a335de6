package service

import (
	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/model"
)

type ListTransactionsResponse struct {
	Transactions []model.Transaction `json:"transactions"`
	Total        int64               `json:"total"`
}

// ReconcileResult describes what one state report did to the ledger and the order.
type ReconcileResult struct {
	TransactionID    string             `json:"transaction_id"`
	OrderID          string             `json:"order_id,omitempty"`
	OldState         model.PaymentState `json:"old_state"`
	NewState         model.PaymentState `json:"new_state"`
	Label            classifier.Label   `json:"label"`
	AppliedLabel     string             `json:"applied_label,omitempty"`
	Propagated       bool               `json:"propagated"`
	LabelUpdated     bool               `json:"label_updated"`
	NarrativeUpdated bool               `json:"narrative_updated"`
	PaidOutcome      PaidOutcome        `json:"paid_outcome,omitempty"`
	Ignored          bool               `json:"ignored"`
	Errors           []string           `json:"errors,omitempty"`
}

// WebhookResponse is the body returned to the processor.
type WebhookResponse struct {
	Success       bool               `json:"success"`
	Message       string             `json:"message"`
	TransactionID string             `json:"transaction_id"`
	AppliedLabel  classifier.Label   `json:"etiqueta_aplicada"`
	OrderID       *string            `json:"shopify_order_id"`
	Propagated    bool               `json:"procesamiento_automatico"`
	OldState      model.PaymentState `json:"estado_anterior"`
	NewState      model.PaymentState `json:"estado_nuevo"`
	PaidOutcome   PaidOutcome        `json:"marcado_pagado,omitempty"`
	Ignored       bool               `json:"ignorada"`
	Errors        []string           `json:"errores,omitempty"`
}

type PollItem struct {
	TransactionID string             `json:"transaction_id"`
	OldState      model.PaymentState `json:"old_state"`
	NewState      model.PaymentState `json:"new_state,omitempty"`
	Updated       bool               `json:"updated"`
	Error         string             `json:"error,omitempty"`
}

type PollBatchResult struct {
	Checked int        `json:"checked"`
	Updated int        `json:"updated"`
	Skipped int        `json:"skipped"`
	Failed  int        `json:"failed"`
	Items   []PollItem `json:"items"`
}
