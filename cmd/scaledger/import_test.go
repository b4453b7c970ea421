package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaledger/scaledger/internal/model"
	"github.com/scaledger/scaledger/internal/plaid"
	"github.com/scaledger/scaledger/internal/remote"
	"github.com/scaledger/scaledger/internal/store"
)

func signedInTestStore(t *testing.T) (*store.Store, *remote.MockClient) {
	t.Helper()

	mock := remote.NewMockClient()
	mock.GetCurrentSessionFn = func(_ context.Context) (*model.Session, error) {
		return &model.Session{
			AccessToken: "tok",
			ExpiresAt:   time.Now().Add(time.Hour).UnixMilli(),
			User:        &model.User{ID: "user-1", Email: "owner@example.com"},
		}, nil
	}

	st := store.New(mock)
	st.InitSession(context.Background())
	require.NotNil(t, st.User())
	mock.Reset()

	return st, mock
}

func TestImportEntriesMapsSignsToTypes(t *testing.T) {
	st, mock := signedInTestStore(t)

	posted := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	entries := []model.StatementEntry{
		{AccountRef: "x", Posted: posted, Amount: decimal.RequireFromString("-25.50"), Description: "STARBUCKS", Category: "Coffee"},
		{AccountRef: "x", Posted: posted, Amount: decimal.RequireFromString("500"), Description: "DIRECT DEPOSIT"},
	}

	imported, err := importEntries(context.Background(), st, "a1", entries)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	require.Len(t, mock.InsertTransactionCalls, 2)

	outflow := mock.InsertTransactionCalls[0]
	assert.Equal(t, model.TypeExpense, outflow.Type)
	assert.True(t, outflow.Amount.Equal(decimal.RequireFromString("-25.50")))
	assert.Equal(t, "a1", outflow.AccountID)
	assert.Equal(t, "STARBUCKS", outflow.Notes)
	assert.Equal(t, "Coffee", outflow.Category)
	require.NotNil(t, outflow.Timestamp)
	assert.Equal(t, remote.FormatWireTime(posted), *outflow.Timestamp)

	inflow := mock.InsertTransactionCalls[1]
	assert.Equal(t, model.TypeAdjustment, inflow.Type)
	assert.True(t, inflow.Amount.Equal(decimal.RequireFromString("500")))
}

func TestImportEntriesStopsOnFailure(t *testing.T) {
	st, mock := signedInTestStore(t)

	calls := 0
	mock.InsertTransactionFn = func(_ context.Context, _ remote.TransactionFields) (*remote.TransactionRow, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("insert failed")
		}
		return &remote.TransactionRow{}, nil
	}

	entries := []model.StatementEntry{
		{Posted: time.Now(), Amount: decimal.RequireFromString("-1"), Description: "one"},
		{Posted: time.Now(), Amount: decimal.RequireFromString("-2"), Description: "two"},
		{Posted: time.Now(), Amount: decimal.RequireFromString("-3"), Description: "three"},
	}

	imported, err := importEntries(context.Background(), st, "a1", entries)
	assert.Error(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 2, calls)
}

func TestFetchPlaidEntriesDateRange(t *testing.T) {
	fetcher := plaid.NewMockClient()
	fetcher.GetTransactionsFn = func(_ context.Context, _, _ time.Time) ([]model.StatementEntry, error) {
		return []model.StatementEntry{{Description: "entry"}}, nil
	}

	entries, err := fetchPlaidEntries(context.Background(), fetcher, "2024-01-01", "2024-02-01")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.Len(t, fetcher.GetTransactionsCalls, 1)
	call := fetcher.GetTransactionsCalls[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), call.StartDate)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), call.EndDate)
}

func TestFetchPlaidEntriesDefaultsToTrailingMonth(t *testing.T) {
	fetcher := plaid.NewMockClient()

	_, err := fetchPlaidEntries(context.Background(), fetcher, "", "")
	require.NoError(t, err)

	require.Len(t, fetcher.GetTransactionsCalls, 1)
	call := fetcher.GetTransactionsCalls[0]
	assert.True(t, call.StartDate.Before(call.EndDate))
	assert.WithinDuration(t, time.Now(), call.EndDate, time.Minute)
}

func TestFetchPlaidEntriesRejectsBadDates(t *testing.T) {
	fetcher := plaid.NewMockClient()

	_, err := fetchPlaidEntries(context.Background(), fetcher, "January 1st", "")
	assert.Error(t, err)
	assert.Empty(t, fetcher.GetTransactionsCalls)
}
