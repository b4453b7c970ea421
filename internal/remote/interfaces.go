// Package remote provides the client for the hosted auth and row-store service.
package remote

import (
	"context"

	"github.com/scaledger/scaledger/internal/model"
)

// AuthEvent identifies a change in authentication state.
type AuthEvent string

const (
	// AuthSignedIn is delivered after a session is established.
	AuthSignedIn AuthEvent = "SIGNED_IN"
	// AuthSignedOut is delivered after the session is terminated.
	AuthSignedOut AuthEvent = "SIGNED_OUT"
)

// Client defines the contract for the hosted backend: session management and
// row-level CRUD against the accounts and transactions collections. This
// interface allows for easy mocking in tests and swapping service providers.
type Client interface {
	// GetCurrentSession returns the existing session, or (nil, nil) when
	// nobody is signed in. A non-nil error means the service could not be
	// consulted.
	GetCurrentSession(ctx context.Context) (*model.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error)
	SignUp(ctx context.Context, email, password string) (*model.Session, error)
	SignOut(ctx context.Context) error

	SelectAccounts(ctx context.Context, userID string) ([]AccountRow, error)
	InsertAccount(ctx context.Context, fields AccountFields) (*AccountRow, error)
	UpdateAccount(ctx context.Context, id string, patch AccountPatch) error
	DeleteAccount(ctx context.Context, id string) error

	SelectTransactions(ctx context.Context, userID string) ([]TransactionRow, error)
	InsertTransaction(ctx context.Context, fields TransactionFields) (*TransactionRow, error)
	UpdateTransaction(ctx context.Context, id int64, patch TransactionPatch) error
	DeleteTransaction(ctx context.Context, id int64) error

	// OnAuthStateChange registers a listener for sign-in/sign-out events.
	// Listeners stay registered for the process lifetime.
	OnAuthStateChange(fn func(event AuthEvent, session *model.Session))
}
