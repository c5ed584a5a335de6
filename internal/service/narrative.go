package service

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
	_ "time/tzdata"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/model"
)

const narrativeTimeLayout = "02/01/2006 15:04"

const pendingTemplate = `PAGO PENDIENTE
Esperando la confirmación del pago de {{.Amount}} {{.Currency}}.
• Estado: {{.State}}
• Monto: {{.Amount}} {{.Currency}}
• Transacción: {{.TransactionID}}
• Última actualización: {{.UpdatedAt}}
{{- if .LinkAddress}}
• Link de pago: {{.LinkAddress}}
{{- end}}`

const paidTemplate = `PAGO CONFIRMADO
El cliente realizó el pago de {{.Amount}} {{.Currency}}.
• Estado: {{.State}}
• Monto: {{.Amount}} {{.Currency}}
• Transacción: {{.TransactionID}}
• Última actualización: {{.UpdatedAt}}
{{- if .LinkAddress}}
• Link de pago: {{.LinkAddress}}
{{- end}}`

const canceledTemplate = `PAGO NO COMPLETADO
El pago de {{.Amount}} {{.Currency}} no se completó.
• Estado: {{.State}}
• Monto: {{.Amount}} {{.Currency}}
• Transacción: {{.TransactionID}}
• Última actualización: {{.UpdatedAt}}`

type narrativeData struct {
	Amount        string
	Currency      string
	State         string
	TransactionID string
	UpdatedAt     string
	LinkAddress   string
}

// Narrative renders the payment block kept in an order note and splices it
// into existing note text.
type Narrative struct {
	startMarker string
	endMarker   string
	location    *time.Location
	templates   map[classifier.Label]*template.Template
}

func NewNarrative(cfg config.Narrative) (*Narrative, error) {
	if cfg.StartMarker == "" || cfg.EndMarker == "" {
		return nil, fmt.Errorf("narrative markers must be set")
	}

	location := time.UTC
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid narrative timezone %q: %w", cfg.Timezone, err)
		}
		location = loc
	}

	sources := map[classifier.Label]string{
		classifier.LabelPending:  pendingTemplate,
		classifier.LabelPaid:     paidTemplate,
		classifier.LabelCanceled: canceledTemplate,
	}

	templates := make(map[classifier.Label]*template.Template, len(sources))
	for label, src := range sources {
		tmpl, err := template.New(string(label)).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse %s narrative: %w", label, err)
		}
		templates[label] = tmpl
	}

	return &Narrative{
		startMarker: cfg.StartMarker,
		endMarker:   cfg.EndMarker,
		location:    location,
		templates:   templates,
	}, nil
}

// Render returns the marker-delimited block for tx under label.
func (n *Narrative) Render(tx model.Transaction, label classifier.Label) (string, error) {
	tmpl, ok := n.templates[label]
	if !ok {
		tmpl = n.templates[classifier.LabelPending]
	}

	updatedAt := tx.UpdatedAt
	if tx.LastNotificationAt != nil {
		updatedAt = *tx.LastNotificationAt
	}

	data := narrativeData{
		Amount:        tx.Amount.StringFixed(2),
		Currency:      tx.Currency,
		State:         tx.PaymentState.Name(),
		TransactionID: tx.TransactionID,
		UpdatedAt:     updatedAt.In(n.location).Format(narrativeTimeLayout),
	}
	if label != classifier.LabelCanceled {
		data.LinkAddress = tx.PaymentLinkAddress
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s narrative: %w", label, err)
	}

	return n.startMarker + "\n" + buf.String() + "\n" + n.endMarker, nil
}

// Strip removes every narrative block from note, joining what surrounded
// each block with a blank line.
func (n *Narrative) Strip(note string) string {
	for {
		start := strings.Index(note, n.startMarker)
		if start < 0 {
			return note
		}

		rest := ""
		if end := strings.Index(note[start:], n.endMarker); end >= 0 {
			rest = note[start+end+len(n.endMarker):]
		}

		before := strings.TrimRight(note[:start], "\r\n")
		after := strings.TrimLeft(rest, "\r\n")

		switch {
		case before == "":
			note = after
		case after == "":
			note = before
		default:
			note = before + "\n\n" + after
		}
	}
}

// Merge replaces any narrative in note with block, appended after the
// remaining note text.
func (n *Narrative) Merge(note, block string) string {
	remaining := strings.TrimRight(n.Strip(note), "\r\n")
	if remaining == "" {
		return block
	}
	return remaining + "\n\n" + block
}
