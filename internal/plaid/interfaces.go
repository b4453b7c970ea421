package plaid

import (
	"context"
	"time"

	"github.com/scaledger/scaledger/internal/model"
)

// StatementFetcher defines the contract for fetching statement entries from
// an aggregator API. This interface allows for easy mocking in tests.
type StatementFetcher interface {
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.StatementEntry, error)
	GetAccounts(ctx context.Context) ([]string, error)
}
