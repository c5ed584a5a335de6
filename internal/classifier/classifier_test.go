package classifier_test

import (
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/classifier"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		label    classifier.Label
		severity classifier.Severity
	}{
		{name: "Generated", raw: "1", label: classifier.LabelPending, severity: classifier.SeverityInfo},
		{name: "In progress", raw: "2", label: classifier.LabelPending, severity: classifier.SeverityInfo},
		{name: "Succeeded", raw: "3", label: classifier.LabelPaid, severity: classifier.SeveritySuccess},
		{name: "Failed", raw: "4", label: classifier.LabelCanceled, severity: classifier.SeverityWarning},
		{name: "Expired", raw: "5", label: classifier.LabelCanceled, severity: classifier.SeverityWarning},
		{name: "Symbolic name", raw: "SUCCEEDED", label: classifier.LabelPaid, severity: classifier.SeveritySuccess},
		{name: "Symbolic name lowercase", raw: "expired", label: classifier.LabelCanceled, severity: classifier.SeverityWarning},
		{name: "Padded code", raw: " 3 ", label: classifier.LabelPaid, severity: classifier.SeveritySuccess},
		{name: "Deactivated falls back to pending", raw: "6", label: classifier.LabelPending, severity: classifier.SeverityInfo},
		{name: "Empty", raw: "", label: classifier.LabelPending, severity: classifier.SeverityInfo},
		{name: "Unknown code", raw: "99", label: classifier.LabelPending, severity: classifier.SeverityInfo},
		{name: "Garbage", raw: "PAGADO?", label: classifier.LabelPending, severity: classifier.SeverityInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := classifier.Classify(tc.raw)

			assert.Equal(t, tc.label, result.Label)
			assert.Equal(t, tc.severity, result.Severity)
		})
	}
}

func TestIsKnown(t *testing.T) {
	assert.True(t, classifier.IsKnown("1"))
	assert.True(t, classifier.IsKnown("6"))
	assert.True(t, classifier.IsKnown("IN_PROGRESS"))
	assert.False(t, classifier.IsKnown("7"))
	assert.False(t, classifier.IsKnown(""))
}
