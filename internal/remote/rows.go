package remote

import (
	"github.com/shopspring/decimal"

	"github.com/scaledger/scaledger/internal/model"
)

// AccountRow is the wire representation of a row in the accounts collection.
// Timestamps are ISO-8601 strings on the wire.
type AccountRow struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      string          `json:"created_at"`
}

// TransactionRow is the wire representation of a row in the transactions
// collection. Optional columns arrive as JSON null and are modeled as
// pointers rather than implicit zero values.
type TransactionRow struct {
	ID                   int64           `json:"id"`
	UserID               string          `json:"user_id"`
	AccountID            string          `json:"account_id"`
	Type                 string          `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	WeightChange         decimal.Decimal `json:"weight_change"`
	Notes                *string         `json:"notes"`
	Category             *string         `json:"category"`
	Timestamp            *string         `json:"timestamp"`
	CreatedAt            string          `json:"created_at"`
	RelatedTransactionID *int64          `json:"related_transaction_id"`
}

// AccountFields carries the columns for an account insert.
type AccountFields struct {
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// AccountPatch carries a partial account update; nil fields are left untouched.
type AccountPatch struct {
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	CurrentBalance *decimal.Decimal `json:"current_balance,omitempty"`
}

// TransactionFields carries the columns for a transaction insert.
type TransactionFields struct {
	UserID               string                `json:"user_id"`
	AccountID            string                `json:"account_id"`
	Type                 model.TransactionType `json:"type"`
	Amount               decimal.Decimal       `json:"amount"`
	WeightChange         decimal.Decimal       `json:"weight_change"`
	Notes                string                `json:"notes,omitempty"`
	Category             string                `json:"category,omitempty"`
	Timestamp            *string               `json:"timestamp,omitempty"`
	RelatedTransactionID *int64                `json:"related_transaction_id,omitempty"`
}

// TransactionPatch carries a partial transaction update; nil fields are left
// untouched.
type TransactionPatch struct {
	AccountID            *string                `json:"account_id,omitempty"`
	Type                 *model.TransactionType `json:"type,omitempty"`
	Amount               *decimal.Decimal       `json:"amount,omitempty"`
	WeightChange         *decimal.Decimal       `json:"weight_change,omitempty"`
	Notes                *string                `json:"notes,omitempty"`
	Category             *string                `json:"category,omitempty"`
	Timestamp            *string                `json:"timestamp,omitempty"`
	RelatedTransactionID *int64                 `json:"related_transaction_id,omitempty"`
}
