package plaid

import (
	"context"
	"time"

	"github.com/scaledger/scaledger/internal/model"
)

// MockClient is a mock implementation of StatementFetcher for testing.
type MockClient struct {
	// Functions that can be set by tests to control behavior
	GetTransactionsFn func(ctx context.Context, startDate, endDate time.Time) ([]model.StatementEntry, error)
	GetAccountsFn     func(ctx context.Context) ([]string, error)

	// Call tracking
	GetTransactionsCalls []GetTransactionsCall
	GetAccountsCalls     int
}

// GetTransactionsCall records the parameters of a GetTransactions call.
type GetTransactionsCall struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewMockClient creates a new mock Plaid client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// GetTransactions implements StatementFetcher.GetTransactions.
func (m *MockClient) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.StatementEntry, error) {
	m.GetTransactionsCalls = append(m.GetTransactionsCalls, GetTransactionsCall{
		StartDate: startDate,
		EndDate:   endDate,
	})

	if m.GetTransactionsFn != nil {
		return m.GetTransactionsFn(ctx, startDate, endDate)
	}

	return []model.StatementEntry{}, nil
}

// GetAccounts implements StatementFetcher.GetAccounts.
func (m *MockClient) GetAccounts(ctx context.Context) ([]string, error) {
	m.GetAccountsCalls++

	if m.GetAccountsFn != nil {
		return m.GetAccountsFn(ctx)
	}

	return []string{}, nil
}

// Ensure MockClient implements StatementFetcher interface.
var _ StatementFetcher = (*MockClient)(nil)
