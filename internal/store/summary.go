package store

import (
	"github.com/shopspring/decimal"

	"github.com/scaledger/scaledger/internal/model"
)

// CalculateSummary derives the three dashboard aggregates from the full
// current collections. It is pure and always recomputes wholesale so the
// numbers stay mutually consistent with the last-known snapshot; nothing is
// patched incrementally.
func CalculateSummary(accounts []model.Account, transactions []model.Transaction) model.Summary {
	netCash := decimal.Zero
	for _, acct := range accounts {
		netCash = netCash.Add(acct.CurrentBalance)
	}

	weightOnHand := decimal.Zero
	saleAmount := decimal.Zero
	saleWeight := decimal.Zero
	for _, txn := range transactions {
		weightOnHand = weightOnHand.Add(txn.WeightChange)
		if txn.Type == model.TypeSale {
			saleAmount = saleAmount.Add(txn.Amount)
			saleWeight = saleWeight.Add(txn.WeightChange.Abs())
		}
	}

	summary := model.Summary{
		OverallNetCash: netCash,
		WeightOnHand:   weightOnHand,
	}

	// No qualifying sales means no ratio, never a division by zero.
	if !saleWeight.IsZero() {
		ratio := saleAmount.Div(saleWeight)
		summary.Ratio = &ratio
	}

	return summary
}
