// Package classifier maps processor payment states to domain labels.
package classifier

import "github.com/Behyna/paylink-reconciler/internal/model"

type Label string

const (
	LabelPending  Label = "pending"
	LabelPaid     Label = "paid"
	LabelCanceled Label = "canceled"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

type Result struct {
	Label    Label
	Severity Severity
}

var mapping = map[model.PaymentState]Label{
	model.PaymentStateGenerated:  LabelPending,
	model.PaymentStateInProgress: LabelPending,
	model.PaymentStateSucceeded:  LabelPaid,
	model.PaymentStateFailed:     LabelCanceled,
	model.PaymentStateExpired:    LabelCanceled,
}

var severities = map[Label]Severity{
	LabelPending:  SeverityInfo,
	LabelPaid:     SeveritySuccess,
	LabelCanceled: SeverityWarning,
}

// Classify never fails: states outside the mapping are pending.
func Classify(raw string) Result {
	label, ok := mapping[model.ParsePaymentState(raw)]
	if !ok {
		label = LabelPending
	}
	return Result{Label: label, Severity: severities[label]}
}

// IsKnown reports whether raw is one of the processor's documented states.
func IsKnown(raw string) bool {
	return model.ParsePaymentState(raw).Known()
}
