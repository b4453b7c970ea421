package remote

import (
	"context"
	"sync"

	"github.com/scaledger/scaledger/internal/model"
)

// MockClient is a mock implementation of Client for testing.
type MockClient struct {
	// Functions that can be set by tests to control behavior
	GetCurrentSessionFn  func(ctx context.Context) (*model.Session, error)
	SignInWithPasswordFn func(ctx context.Context, email, password string) (*model.Session, error)
	SignUpFn             func(ctx context.Context, email, password string) (*model.Session, error)
	SignOutFn            func(ctx context.Context) error
	SelectAccountsFn     func(ctx context.Context, userID string) ([]AccountRow, error)
	InsertAccountFn      func(ctx context.Context, fields AccountFields) (*AccountRow, error)
	UpdateAccountFn      func(ctx context.Context, id string, patch AccountPatch) error
	DeleteAccountFn      func(ctx context.Context, id string) error
	SelectTransactionsFn func(ctx context.Context, userID string) ([]TransactionRow, error)
	InsertTransactionFn  func(ctx context.Context, fields TransactionFields) (*TransactionRow, error)
	UpdateTransactionFn  func(ctx context.Context, id int64, patch TransactionPatch) error
	DeleteTransactionFn  func(ctx context.Context, id int64) error

	// Call tracking
	SelectAccountsCalls     int
	SelectTransactionsCalls int
	InsertAccountCalls      []AccountFields
	InsertTransactionCalls  []TransactionFields
	UpdateAccountCalls      []string
	UpdateTransactionCalls  []int64
	DeleteAccountCalls      []string
	DeleteTransactionCalls  []int64
	SignOutCalls            int

	mu        sync.Mutex
	listeners []func(AuthEvent, *model.Session)
}

// NewMockClient creates a new mock remote client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// GetCurrentSession implements Client.GetCurrentSession.
func (m *MockClient) GetCurrentSession(ctx context.Context) (*model.Session, error) {
	if m.GetCurrentSessionFn != nil {
		return m.GetCurrentSessionFn(ctx)
	}
	return nil, nil
}

// SignInWithPassword implements Client.SignInWithPassword.
func (m *MockClient) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	if m.SignInWithPasswordFn != nil {
		return m.SignInWithPasswordFn(ctx, email, password)
	}
	return nil, nil
}

// SignUp implements Client.SignUp.
func (m *MockClient) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	if m.SignUpFn != nil {
		return m.SignUpFn(ctx, email, password)
	}
	return nil, nil
}

// SignOut implements Client.SignOut.
func (m *MockClient) SignOut(ctx context.Context) error {
	m.SignOutCalls++
	if m.SignOutFn != nil {
		return m.SignOutFn(ctx)
	}
	return nil
}

// SelectAccounts implements Client.SelectAccounts.
func (m *MockClient) SelectAccounts(ctx context.Context, userID string) ([]AccountRow, error) {
	m.SelectAccountsCalls++
	if m.SelectAccountsFn != nil {
		return m.SelectAccountsFn(ctx, userID)
	}
	return []AccountRow{}, nil
}

// InsertAccount implements Client.InsertAccount.
func (m *MockClient) InsertAccount(ctx context.Context, fields AccountFields) (*AccountRow, error) {
	m.InsertAccountCalls = append(m.InsertAccountCalls, fields)
	if m.InsertAccountFn != nil {
		return m.InsertAccountFn(ctx, fields)
	}
	return &AccountRow{}, nil
}

// UpdateAccount implements Client.UpdateAccount.
func (m *MockClient) UpdateAccount(ctx context.Context, id string, patch AccountPatch) error {
	m.UpdateAccountCalls = append(m.UpdateAccountCalls, id)
	if m.UpdateAccountFn != nil {
		return m.UpdateAccountFn(ctx, id, patch)
	}
	return nil
}

// DeleteAccount implements Client.DeleteAccount.
func (m *MockClient) DeleteAccount(ctx context.Context, id string) error {
	m.DeleteAccountCalls = append(m.DeleteAccountCalls, id)
	if m.DeleteAccountFn != nil {
		return m.DeleteAccountFn(ctx, id)
	}
	return nil
}

// SelectTransactions implements Client.SelectTransactions.
func (m *MockClient) SelectTransactions(ctx context.Context, userID string) ([]TransactionRow, error) {
	m.SelectTransactionsCalls++
	if m.SelectTransactionsFn != nil {
		return m.SelectTransactionsFn(ctx, userID)
	}
	return []TransactionRow{}, nil
}

// InsertTransaction implements Client.InsertTransaction.
func (m *MockClient) InsertTransaction(ctx context.Context, fields TransactionFields) (*TransactionRow, error) {
	m.InsertTransactionCalls = append(m.InsertTransactionCalls, fields)
	if m.InsertTransactionFn != nil {
		return m.InsertTransactionFn(ctx, fields)
	}
	return &TransactionRow{}, nil
}

// UpdateTransaction implements Client.UpdateTransaction.
func (m *MockClient) UpdateTransaction(ctx context.Context, id int64, patch TransactionPatch) error {
	m.UpdateTransactionCalls = append(m.UpdateTransactionCalls, id)
	if m.UpdateTransactionFn != nil {
		return m.UpdateTransactionFn(ctx, id, patch)
	}
	return nil
}

// DeleteTransaction implements Client.DeleteTransaction.
func (m *MockClient) DeleteTransaction(ctx context.Context, id int64) error {
	m.DeleteTransactionCalls = append(m.DeleteTransactionCalls, id)
	if m.DeleteTransactionFn != nil {
		return m.DeleteTransactionFn(ctx, id)
	}
	return nil
}

// OnAuthStateChange implements Client.OnAuthStateChange.
func (m *MockClient) OnAuthStateChange(fn func(event AuthEvent, session *model.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// EmitAuthChange delivers an auth event to registered listeners, simulating
// the hosted service's auth-state stream.
func (m *MockClient) EmitAuthChange(event AuthEvent, session *model.Session) {
	m.mu.Lock()
	listeners := make([]func(AuthEvent, *model.Session), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(event, session)
	}
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.SelectAccountsCalls = 0
	m.SelectTransactionsCalls = 0
	m.InsertAccountCalls = nil
	m.InsertTransactionCalls = nil
	m.UpdateAccountCalls = nil
	m.UpdateTransactionCalls = nil
	m.DeleteAccountCalls = nil
	m.DeleteTransactionCalls = nil
	m.SignOutCalls = 0
}

// Ensure MockClient implements the Client interface.
var _ Client = (*MockClient)(nil)
