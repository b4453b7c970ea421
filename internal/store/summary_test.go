package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaledger/scaledger/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateSummary(t *testing.T) {
	tests := []struct {
		name         string
		accounts     []model.Account
		transactions []model.Transaction
		wantNetCash  string
		wantWeight   string
		wantRatio    string // empty means nil ratio
	}{
		{
			name:        "empty collections",
			wantNetCash: "0",
			wantWeight:  "0",
		},
		{
			name: "net cash sums balances across accounts",
			accounts: []model.Account{
				{ID: "a1", Name: "Checking", CurrentBalance: dec("100")},
				{ID: "a2", Name: "Cash App", CurrentBalance: dec("-25.50")},
			},
			wantNetCash: "74.5",
			wantWeight:  "0",
		},
		{
			name: "ratio divides sale amounts by absolute sale weight",
			transactions: []model.Transaction{
				{ID: 1, Type: model.TypePurchase, Amount: dec("-60"), WeightChange: dec("10")},
				{ID: 2, Type: model.TypeSale, Amount: dec("50"), WeightChange: dec("-5")},
			},
			wantNetCash: "0",
			wantWeight:  "5",
			wantRatio:   "10",
		},
		{
			name: "no sales leaves the ratio undefined",
			transactions: []model.Transaction{
				{ID: 1, Type: model.TypePurchase, Amount: dec("-60"), WeightChange: dec("10")},
				{ID: 2, Type: model.TypeExpense, Amount: dec("-12.99")},
			},
			wantNetCash: "0",
			wantWeight:  "10",
		},
		{
			name: "zero-weight sales leave the ratio undefined",
			transactions: []model.Transaction{
				{ID: 1, Type: model.TypeSale, Amount: dec("50"), WeightChange: decimal.Zero},
			},
			wantNetCash: "0",
			wantWeight:  "0",
		},
		{
			name: "ratio spans multiple sales",
			transactions: []model.Transaction{
				{ID: 1, Type: model.TypeSale, Amount: dec("30"), WeightChange: dec("-2")},
				{ID: 2, Type: model.TypeSale, Amount: dec("50"), WeightChange: dec("-6")},
				{ID: 3, Type: model.TypeExpense, Amount: dec("-5")},
			},
			wantNetCash: "0",
			wantWeight:  "-8",
			wantRatio:   "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSummary(tt.accounts, tt.transactions)

			assert.True(t, got.OverallNetCash.Equal(dec(tt.wantNetCash)),
				"net cash: got %s, want %s", got.OverallNetCash, tt.wantNetCash)
			assert.True(t, got.WeightOnHand.Equal(dec(tt.wantWeight)),
				"weight on hand: got %s, want %s", got.WeightOnHand, tt.wantWeight)

			if tt.wantRatio == "" {
				assert.Nil(t, got.Ratio)
			} else {
				require.NotNil(t, got.Ratio)
				assert.True(t, got.Ratio.Equal(dec(tt.wantRatio)),
					"ratio: got %s, want %s", got.Ratio, tt.wantRatio)
			}
		})
	}
}

func TestCalculateSummaryIsPure(t *testing.T) {
	accounts := []model.Account{
		{ID: "a1", CurrentBalance: dec("100")},
	}
	transactions := []model.Transaction{
		{ID: 1, Type: model.TypeSale, Amount: dec("40"), WeightChange: dec("-4")},
	}

	first := CalculateSummary(accounts, transactions)
	second := CalculateSummary(accounts, transactions)

	assert.True(t, first.OverallNetCash.Equal(second.OverallNetCash))
	assert.True(t, first.WeightOnHand.Equal(second.WeightOnHand))
	require.NotNil(t, first.Ratio)
	require.NotNil(t, second.Ratio)
	assert.True(t, first.Ratio.Equal(*second.Ratio))
}

func TestCalculateSummaryOrderIndependent(t *testing.T) {
	transactions := []model.Transaction{
		{ID: 1, Type: model.TypeSale, Amount: dec("30"), WeightChange: dec("-2")},
		{ID: 2, Type: model.TypePurchase, Amount: dec("-60"), WeightChange: dec("10")},
		{ID: 3, Type: model.TypeSale, Amount: dec("50"), WeightChange: dec("-6")},
	}
	reversed := []model.Transaction{transactions[2], transactions[1], transactions[0]}

	forward := CalculateSummary(nil, transactions)
	backward := CalculateSummary(nil, reversed)

	assert.True(t, forward.WeightOnHand.Equal(backward.WeightOnHand))
	require.NotNil(t, forward.Ratio)
	require.NotNil(t, backward.Ratio)
	assert.True(t, forward.Ratio.Equal(*backward.Ratio))
}
