package service

import (
	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/config"
)

// Vocabulary maps domain labels to the storefront tags this service owns.
type Vocabulary struct {
	Pending  string
	Paid     string
	Canceled string
	Legacy   []string
	Fallback string
}

func NewVocabulary(cfg config.Labels) Vocabulary {
	return Vocabulary{
		Pending:  cfg.Pending,
		Paid:     cfg.Paid,
		Canceled: cfg.Canceled,
		Legacy:   cfg.Legacy,
		Fallback: cfg.Fallback,
	}
}

func (v Vocabulary) Tag(label classifier.Label) string {
	switch label {
	case classifier.LabelPaid:
		return v.Paid
	case classifier.LabelCanceled:
		return v.Canceled
	default:
		return v.Pending
	}
}

// Owned lists every tag stripped before a new label is written.
func (v Vocabulary) Owned() []string {
	tags := []string{v.Pending, v.Paid, v.Canceled, v.Fallback}
	return append(tags, v.Legacy...)
}
