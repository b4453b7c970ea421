package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	for _, valid := range []string{"Purchase", "Sale", "Expense", "Transfer", "Adjustment"} {
		typ, err := ParseTransactionType(valid)
		require.NoError(t, err)
		assert.Equal(t, TransactionType(valid), typ)
	}

	for _, invalid := range []string{"", "sale", "PURCHASE", "Refund"} {
		_, err := ParseTransactionType(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name   string
		typ    TransactionType
		amount string
		want   string
	}{
		{"purchase forced negative", TypePurchase, "60", "-60"},
		{"purchase already negative", TypePurchase, "-60", "-60"},
		{"expense forced negative", TypeExpense, "12.99", "-12.99"},
		{"sale forced positive", TypeSale, "-50", "50"},
		{"transfer kept as entered", TypeTransfer, "-30", "-30"},
		{"adjustment kept as entered", TypeAdjustment, "15", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAmount(tt.typ, decimal.RequireFromString(tt.amount))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestNormalizeWeight(t *testing.T) {
	tests := []struct {
		name   string
		typ    TransactionType
		weight string
		want   string
	}{
		{"purchase receives weight", TypePurchase, "-10", "10"},
		{"sale dispenses weight", TypeSale, "5", "-5"},
		{"expense carries none", TypeExpense, "3", "0"},
		{"transfer carries none", TypeTransfer, "3", "0"},
		{"adjustment carries none", TypeAdjustment, "3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeWeight(tt.typ, decimal.RequireFromString(tt.weight))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestTransactionTimes(t *testing.T) {
	effective := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	created := time.Date(2024, 5, 3, 10, 5, 0, 0, time.UTC)

	txn := Transaction{
		Timestamp: effective.UnixMilli(),
		CreatedAt: created.UnixMilli(),
	}

	assert.Equal(t, effective, txn.EffectiveTime())
	assert.Equal(t, created, txn.CreatedTime())
}
