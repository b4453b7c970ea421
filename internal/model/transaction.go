package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the economic effect of a transaction.
type TransactionType string

const (
	// TypePurchase records inventory bought (money out, weight in).
	TypePurchase TransactionType = "Purchase"
	// TypeSale records inventory sold (money in, weight out).
	TypeSale TransactionType = "Sale"
	// TypeExpense records money spent with no inventory effect.
	TypeExpense TransactionType = "Expense"
	// TypeTransfer records money moved between accounts.
	TypeTransfer TransactionType = "Transfer"
	// TypeAdjustment records a manual correction.
	TypeAdjustment TransactionType = "Adjustment"
)

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	switch t {
	case TypePurchase, TypeSale, TypeExpense, TypeTransfer, TypeAdjustment:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Transaction represents a single recorded financial event against an account.
// Amount sign encodes direction (negative = outflow), as does WeightChange
// (positive = received, negative = dispensed). Sign normalization per type is
// the producing caller's responsibility, not the store's.
type Transaction struct {
	ID           int64
	UserID       string
	AccountID    string
	Type         TransactionType
	Amount       decimal.Decimal
	WeightChange decimal.Decimal
	Notes        string
	Category     string
	// Timestamp is the instant of economic effect in milliseconds since
	// epoch, distinct from CreatedAt (row creation time).
	Timestamp int64
	CreatedAt int64
	// RelatedTransactionID links paired rows such as the two legs of a
	// transfer. Zero means unlinked.
	RelatedTransactionID int64
}

// EffectiveTime returns the instant of economic effect.
func (t *Transaction) EffectiveTime() time.Time {
	return time.UnixMilli(t.Timestamp).UTC()
}

// CreatedTime returns the row creation instant.
func (t *Transaction) CreatedTime() time.Time {
	return time.UnixMilli(t.CreatedAt).UTC()
}

// NormalizeAmount forces the amount sign implied by the transaction type:
// Purchase and Expense are outflows (negative), Sale is an inflow
// (positive). Transfer and Adjustment amounts are kept as entered.
func NormalizeAmount(typ TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch typ {
	case TypePurchase, TypeExpense:
		return amount.Abs().Neg()
	case TypeSale:
		return amount.Abs()
	default:
		return amount
	}
}

// NormalizeWeight forces the weight-change sign implied by the transaction
// type: Purchase receives weight (positive), Sale dispenses it (negative),
// every other type carries no weight effect.
func NormalizeWeight(typ TransactionType, weight decimal.Decimal) decimal.Decimal {
	switch typ {
	case TypePurchase:
		return weight.Abs()
	case TypeSale:
		return weight.Abs().Neg()
	default:
		return decimal.Zero
	}
}
