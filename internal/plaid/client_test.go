package plaid

import (
	"context"
	"testing"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		ClientID:    "client",
		Secret:      "secret",
		Environment: "sandbox",
		AccessToken: "token",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid sandbox",
			mutate: func(_ *Config) {},
		},
		{
			name:   "valid production",
			mutate: func(c *Config) { c.Environment = "production" },
		},
		{
			name:    "missing client ID",
			mutate:  func(c *Config) { c.ClientID = "" },
			wantErr: "client ID",
		},
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.Secret = "" },
			wantErr: "secret",
		},
		{
			name:    "missing access token",
			mutate:  func(c *Config) { c.AccessToken = "" },
			wantErr: "access token",
		},
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.Environment = "development" },
			wantErr: "environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestGetTransactionsRejectsBadRange(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:    "client",
		Secret:      "secret",
		Environment: "sandbox",
		AccessToken: "token",
	})
	require.NoError(t, err)

	_, err = client.GetTransactions(context.Background(),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestMapPlaidTransactionFlipsSign(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:    "client",
		Secret:      "secret",
		Environment: "sandbox",
		AccessToken: "token",
	})
	require.NoError(t, err)

	pt := plaid.Transaction{}
	pt.SetAccountId("plaid-acct-1")
	pt.SetDate("2024-01-15")
	pt.SetAmount(25.50) // Plaid reports debits as positive
	pt.SetName("STARBUCKS")
	pt.SetMerchantName("Starbucks")
	pt.SetCategory([]string{"Food and Drink", "Coffee Shop"})

	entry := client.mapPlaidTransaction(pt)

	assert.Equal(t, "plaid-acct-1", entry.AccountRef)
	assert.True(t, entry.Amount.Equal(decimal.RequireFromString("-25.5")),
		"got %s", entry.Amount)
	assert.Equal(t, "Starbucks", entry.Description)
	assert.Equal(t, "Coffee Shop", entry.Category)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), entry.Posted)
}

func TestMapPlaidTransactionFallsBackToName(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:    "client",
		Secret:      "secret",
		Environment: "sandbox",
		AccessToken: "token",
	})
	require.NoError(t, err)

	pt := plaid.Transaction{}
	pt.SetAccountId("plaid-acct-1")
	pt.SetDate("2024-01-15")
	pt.SetAmount(-100)
	pt.SetName("DIRECT DEPOSIT")

	entry := client.mapPlaidTransaction(pt)

	assert.Equal(t, "DIRECT DEPOSIT", entry.Description)
	// A Plaid credit (negative) becomes a positive inflow
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, entry.Category)
}
