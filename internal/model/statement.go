package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementEntry is a bank-statement line produced by an importer (OFX file
// or aggregator API) before it becomes a Transaction. AccountRef is the
// source institution's account identifier, not one of our account IDs.
type StatementEntry struct {
	AccountRef  string
	Posted      time.Time
	Amount      decimal.Decimal // signed; negative = outflow
	Description string
	Category    string
}
