package report

import (
	"testing"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseBillingStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected domain.BillingStatus
	}{
		{"Y", domain.BillingSuccess},
		{"success", domain.BillingSuccess},
		{"1", domain.BillingSuccess},
		{"", domain.BillingSuccess},
		{"C", domain.BillingCancelled},
		{"cancelled", domain.BillingCancelled},
		{"Canceled", domain.BillingCancelled},
		{"VOID", domain.BillingCancelled},
		{"H", domain.BillingHold},
		{"hold", domain.BillingHold},
		{"On Hold", domain.BillingHold},
	}

	for _, tt := range tests {
		t.Run("flag "+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBillingStatus(tt.raw))
		})
	}
}

func TestCountable_ExcludesHeldAndCancelled(t *testing.T) {
	type bill struct {
		id     int
		status domain.BillingStatus
	}

	bills := []bill{
		{1, domain.BillingSuccess},
		{2, domain.BillingCancelled},
		{3, domain.BillingHold},
		{4, domain.BillingSuccess},
	}

	kept := Countable(bills, func(b bill) domain.BillingStatus { return b.status })
	assert.Equal(t, []bill{{1, domain.BillingSuccess}, {4, domain.BillingSuccess}}, kept)
}

func TestVisitClassifier_WindowRelative(t *testing.T) {
	c := NewVisitClassifier()

	// First occurrence with no server count is new, later ones are repeats.
	assert.True(t, c.Classify("7", 0))
	assert.False(t, c.Classify("7", 0))
	assert.False(t, c.Classify("7", 0))

	// A different key starts fresh.
	assert.True(t, c.Classify("9", 0))
}

func TestVisitClassifier_ServerCountWins(t *testing.T) {
	c := NewVisitClassifier()

	// Lifetime count says this is visit number 5: repeat even though the
	// key is unseen in this window.
	assert.False(t, c.Classify("7", 5))

	// Explicit first visit is new.
	assert.True(t, c.Classify("9", 1))
}

func TestCustomerKey(t *testing.T) {
	assert.Equal(t, "12", CustomerKey("12", "555-0101"))
	assert.Equal(t, "555-0101", CustomerKey("", "555-0101"))
	assert.Equal(t, "555-0101", CustomerKey("0", "555-0101"))
	assert.Equal(t, WalkInKey, CustomerKey("", ""))
}
