// Package store implements the application state container: it mirrors the
// remote accounts and transactions collections into local models and keeps
// the derived dashboard summary consistent after every mutation.
package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scaledger/scaledger/internal/model"
	"github.com/scaledger/scaledger/internal/remote"
)

// Store is the sole mutation path for session, account, transaction, and
// summary state. Every read path goes through Snapshot. The remote client is
// injected so tests can substitute a mock.
type Store struct {
	client remote.Client
	logger *slog.Logger
	now    func() time.Time

	mu             sync.RWMutex
	session        *model.Session
	user           *model.User
	sessionLoading bool
	accounts       []model.Account
	transactions   []model.Transaction
	// inflight counts overlapping fetches; a plain boolean would be
	// cleared by whichever fetch finishes first.
	inflight int
	summary  model.Summary
}

// Snapshot is a consistent copy of the store's state at one instant.
type Snapshot struct {
	Session        *model.Session
	User           *model.User
	SessionLoading bool
	Accounts       []model.Account
	Transactions   []model.Transaction
	Loading        bool
	Summary        model.Summary
}

// New creates a store bound to the given remote client and subscribes to its
// auth-state stream for the process lifetime.
func New(client remote.Client) *Store {
	s := &Store{
		client:       client,
		logger:       slog.Default().With("component", "store"),
		now:          time.Now,
		accounts:     []model.Account{},
		transactions: []model.Transaction{},
	}
	s.summary = CalculateSummary(s.accounts, s.transactions)

	client.OnAuthStateChange(s.handleAuthChange)

	return s
}

// Snapshot returns a copy of the current state. Slices are copied so callers
// can hold the snapshot across later mutations.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]model.Account, len(s.accounts))
	copy(accounts, s.accounts)
	transactions := make([]model.Transaction, len(s.transactions))
	copy(transactions, s.transactions)

	return Snapshot{
		Session:        s.session,
		User:           s.user,
		SessionLoading: s.sessionLoading,
		Accounts:       accounts,
		Transactions:   transactions,
		Loading:        s.inflight > 0,
		Summary:        s.summary,
	}
}

// Loading reports whether any fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// User returns the authenticated user, or nil when signed out.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// InitSession asks the remote service for an existing session. With an
// authenticated user present it fetches both collections concurrently; with
// no user it clears them to empty. Failures are logged and leave the session
// nil; this never fails to the caller.
func (s *Store) InitSession(ctx context.Context) {
	s.mu.Lock()
	s.sessionLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.sessionLoading = false
		s.mu.Unlock()
	}()

	sess, err := s.client.GetCurrentSession(ctx)
	if err != nil {
		s.logger.Error("Failed to initialize session", "error", err)
		return
	}

	s.mu.Lock()
	s.session = sess
	if sess != nil {
		s.user = sess.User
	} else {
		s.user = nil
	}
	user := s.user
	s.mu.Unlock()

	if user != nil {
		s.refreshAll(ctx)
		return
	}

	s.mu.Lock()
	s.accounts = []model.Account{}
	s.transactions = []model.Transaction{}
	s.summary = CalculateSummary(s.accounts, s.transactions)
	s.mu.Unlock()
}

// SignOut terminates the session remotely, then clears all local state. On
// failure the state is left unchanged.
func (s *Store) SignOut(ctx context.Context) {
	if err := s.client.SignOut(ctx); err != nil {
		s.logger.Error("Failed to sign out", "error", err)
		return
	}

	s.mu.Lock()
	s.session = nil
	s.user = nil
	s.accounts = []model.Account{}
	s.transactions = []model.Transaction{}
	s.summary = CalculateSummary(s.accounts, s.transactions)
	s.mu.Unlock()
}

// FetchAccounts replaces the accounts collection wholesale from the remote
// store. A no-op without an authenticated user. On failure the collection is
// reset to empty rather than left stale.
func (s *Store) FetchAccounts(ctx context.Context) {
	user := s.User()
	if user == nil {
		return
	}

	s.beginLoad()
	defer s.endLoad()

	rows, err := s.client.SelectAccounts(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to fetch accounts", "error", err)
		s.replaceAccounts([]model.Account{})
		return
	}

	accounts := make([]model.Account, 0, len(rows))
	for _, row := range rows {
		acct, mapErr := remote.MapAccountRow(row)
		if mapErr != nil {
			s.logger.Warn("Skipping malformed account row", "error", mapErr)
			continue
		}
		accounts = append(accounts, acct)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})

	s.replaceAccounts(accounts)
}

// FetchTransactions replaces the transactions collection wholesale from the
// remote store. Same contract as FetchAccounts.
func (s *Store) FetchTransactions(ctx context.Context) {
	user := s.User()
	if user == nil {
		return
	}

	s.beginLoad()
	defer s.endLoad()

	rows, err := s.client.SelectTransactions(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to fetch transactions", "error", err)
		s.replaceTransactions([]model.Transaction{})
		return
	}

	transactions := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		txn, mapErr := remote.MapTransactionRow(row)
		if mapErr != nil {
			s.logger.Warn("Skipping malformed transaction row", "error", mapErr)
			continue
		}
		transactions = append(transactions, txn)
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Timestamp > transactions[j].Timestamp
	})

	s.replaceTransactions(transactions)
}

// TransactionInput carries the caller-supplied fields for a new transaction.
// Sign normalization per type is the caller's job (model.NormalizeAmount and
// model.NormalizeWeight); the store records what it is given.
type TransactionInput struct {
	AccountID            string
	Type                 model.TransactionType
	Amount               decimal.Decimal
	WeightChange         decimal.Decimal
	Notes                string
	Category             string
	Timestamp            int64 // ms since epoch; zero stamps the current instant
	RelatedTransactionID int64
}

// AccountInput carries the caller-supplied fields for a new account.
type AccountInput struct {
	Name           string
	Type           string
	CurrentBalance decimal.Decimal
}

// AddTransaction inserts a single transaction row and, on success, re-fetches
// both collections concurrently: account balances may have moved through any
// path, so a full resync is the simplest correct recovery. Returns false
// without touching local state when the remote call fails or nobody is
// signed in.
func (s *Store) AddTransaction(ctx context.Context, in TransactionInput) bool {
	user := s.User()
	if user == nil {
		s.logger.Warn("Add transaction skipped: no authenticated user")
		return false
	}

	ts := in.Timestamp
	if ts == 0 {
		ts = s.now().UnixMilli()
	}
	wireTS := remote.FormatWireTime(time.UnixMilli(ts))

	fields := remote.TransactionFields{
		UserID:       user.ID,
		AccountID:    in.AccountID,
		Type:         in.Type,
		Amount:       in.Amount,
		WeightChange: in.WeightChange,
		Notes:        in.Notes,
		Category:     in.Category,
		Timestamp:    &wireTS,
	}
	if in.RelatedTransactionID != 0 {
		related := in.RelatedTransactionID
		fields.RelatedTransactionID = &related
	}

	if _, err := s.client.InsertTransaction(ctx, fields); err != nil {
		s.logger.Error("Failed to add transaction", "error", err)
		return false
	}

	s.refreshAll(ctx)
	return true
}

// UpdateTransaction applies a partial patch to a single transaction row and
// re-fetches both collections on success.
func (s *Store) UpdateTransaction(ctx context.Context, id int64, patch remote.TransactionPatch) bool {
	if err := s.client.UpdateTransaction(ctx, id, patch); err != nil {
		s.logger.Error("Failed to update transaction", "id", id, "error", err)
		return false
	}

	s.refreshAll(ctx)
	return true
}

// DeleteTransaction removes a single transaction row and re-fetches both
// collections on success.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) bool {
	if err := s.client.DeleteTransaction(ctx, id); err != nil {
		s.logger.Error("Failed to delete transaction", "id", id, "error", err)
		return false
	}

	s.refreshAll(ctx)
	return true
}

// AddAccount inserts a single account row and re-fetches accounts on
// success. Transactions are untouched by account mutations.
func (s *Store) AddAccount(ctx context.Context, in AccountInput) bool {
	user := s.User()
	if user == nil {
		s.logger.Warn("Add account skipped: no authenticated user")
		return false
	}

	fields := remote.AccountFields{
		UserID:         user.ID,
		Name:           in.Name,
		Type:           in.Type,
		CurrentBalance: in.CurrentBalance,
	}

	if _, err := s.client.InsertAccount(ctx, fields); err != nil {
		s.logger.Error("Failed to add account", "error", err)
		return false
	}

	s.FetchAccounts(ctx)
	return true
}

// UpdateAccount applies a partial patch to a single account row and
// re-fetches accounts on success.
func (s *Store) UpdateAccount(ctx context.Context, id string, patch remote.AccountPatch) bool {
	if err := s.client.UpdateAccount(ctx, id, patch); err != nil {
		s.logger.Error("Failed to update account", "id", id, "error", err)
		return false
	}

	s.FetchAccounts(ctx)
	return true
}

// DeleteAccount removes a single account row and re-fetches accounts on
// success. No cascade: transactions referencing the account remain.
func (s *Store) DeleteAccount(ctx context.Context, id string) bool {
	if err := s.client.DeleteAccount(ctx, id); err != nil {
		s.logger.Error("Failed to delete account", "id", id, "error", err)
		return false
	}

	s.FetchAccounts(ctx)
	return true
}

// refreshAll fetches accounts and transactions concurrently and waits for
// both. Each fetch commits its own replacement, so a one-sided failure
// leaves a partially refreshed snapshot; that partial apply is accepted
// behavior, matching the fetch operations' independent error handling.
func (s *Store) refreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.FetchAccounts(ctx)
	}()
	go func() {
		defer wg.Done()
		s.FetchTransactions(ctx)
	}()
	wg.Wait()
}

// handleAuthChange mirrors the remote auth-state stream into local state.
func (s *Store) handleAuthChange(event remote.AuthEvent, session *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event {
	case remote.AuthSignedIn:
		s.session = session
		if session != nil {
			s.user = session.User
		}
	case remote.AuthSignedOut:
		s.session = nil
		s.user = nil
		s.accounts = []model.Account{}
		s.transactions = []model.Transaction{}
		s.summary = CalculateSummary(s.accounts, s.transactions)
	}
}

func (s *Store) beginLoad() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store) endLoad() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func (s *Store) replaceAccounts(accounts []model.Account) {
	s.mu.Lock()
	s.accounts = accounts
	s.summary = CalculateSummary(s.accounts, s.transactions)
	s.mu.Unlock()
}

func (s *Store) replaceTransactions(transactions []model.Transaction) {
	s.mu.Lock()
	s.transactions = transactions
	s.summary = CalculateSummary(s.accounts, s.transactions)
	s.mu.Unlock()
}
