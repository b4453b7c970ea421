package remote

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scaledger/scaledger/internal/model"
)

// savedSession is the on-disk form of a session, cached so the CLI stays
// signed in between invocations.
type savedSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	UserID       string `json:"user_id"`
	UserEmail    string `json:"user_email"`
}

// sessionCache persists the auth session to a file in the config directory.
type sessionCache struct {
	path string
}

// load returns the cached session, or (nil, nil) when none is saved.
func (c *sessionCache) load() (*model.Session, error) {
	data, err := os.ReadFile(c.path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var saved savedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	if saved.AccessToken == "" {
		return nil, nil
	}

	sess := &model.Session{
		AccessToken:  saved.AccessToken,
		RefreshToken: saved.RefreshToken,
		ExpiresAt:    saved.ExpiresAt,
	}
	if saved.UserID != "" {
		sess.User = &model.User{ID: saved.UserID, Email: saved.UserEmail}
	}

	return sess, nil
}

// save writes the session to disk with owner-only permissions.
func (c *sessionCache) save(sess *model.Session) error {
	saved := savedSession{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
	}
	if sess.User != nil {
		saved.UserID = sess.User.ID
		saved.UserEmail = sess.User.Email
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// clear removes the cached session. A missing file is not an error.
func (c *sessionCache) clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
