package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/scaledger/scaledger/internal/cli"
	"github.com/scaledger/scaledger/internal/common"
	"github.com/scaledger/scaledger/internal/config"
	"github.com/scaledger/scaledger/internal/remote"
	"github.com/scaledger/scaledger/internal/store"
)

// newRemoteClient builds the HTTP client from configuration. Missing service
// settings are fatal here, before any command logic runs.
func newRemoteClient() (*remote.HTTPClient, error) {
	svc := config.Service{
		URL:    viper.GetString("service.url"),
		APIKey: viper.GetString("service.api_key"),
	}
	if err := svc.Validate(); err != nil {
		return nil, common.NewUserError("service configuration is incomplete (set service.url and service.api_key)", err)
	}

	sessionFile, err := config.SessionFile()
	if err != nil {
		return nil, err
	}

	return remote.NewHTTPClient(remote.Config{
		BaseURL:     svc.BaseURL(),
		APIKey:      svc.APIKey,
		SessionFile: sessionFile,
	})
}

// newStore builds the state store and initializes its session from the
// cached credentials, fetching both collections when a user is present.
func newStore(ctx context.Context) (*store.Store, *remote.HTTPClient, error) {
	client, err := newRemoteClient()
	if err != nil {
		return nil, nil, err
	}

	st := store.New(client)
	st.InitSession(ctx)

	return st, client, nil
}

// requireUser fails with a friendly message when nobody is signed in.
func requireUser(st *store.Store) error {
	if st.User() == nil {
		return common.NewUserError("not signed in - run 'scaledger auth login' first", common.ErrNotAuthenticated)
	}
	return nil
}

// parseDecimalFlag parses a currency or weight value from a flag string.
func parseDecimalFlag(value, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return d, nil
}

// parseDateFlag parses a YYYY-MM-DD flag into an instant, or zero when empty.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return t, nil
}

// styleMoney renders a signed amount, colored by direction.
func styleMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.IsNegative() {
		return cli.NegativeStyle.Render(s)
	}
	return cli.PositiveStyle.Render(s)
}
