package model

import "github.com/shopspring/decimal"

// Summary holds the three derived aggregate values recomputed wholesale from
// the current in-memory collections after every successful mutation or fetch.
// It is never persisted.
type Summary struct {
	// OverallNetCash is the sum of every account's current balance.
	OverallNetCash decimal.Decimal
	// WeightOnHand is the sum of every transaction's weight change.
	WeightOnHand decimal.Decimal
	// Ratio is sales revenue per unit weight dispensed. Nil when no
	// qualifying sales exist.
	Ratio *decimal.Decimal
}
