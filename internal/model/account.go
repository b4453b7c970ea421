package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a named balance holder owned by a single user.
// CurrentBalance is an authoritative snapshot entered by the user; it is
// never reconciled against the transaction history.
type Account struct {
	ID             string
	UserID         string
	Name           string
	Type           string // free-form tag, e.g. "Bank", "CashApp"
	CurrentBalance decimal.Decimal
	CreatedAt      int64 // milliseconds since epoch
}

// CreatedTime returns the account's creation instant.
func (a *Account) CreatedTime() time.Time {
	return time.UnixMilli(a.CreatedAt).UTC()
}
