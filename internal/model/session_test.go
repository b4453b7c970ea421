package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt int64
		want      bool
	}{
		{"future expiry", now.Add(time.Hour).UnixMilli(), false},
		{"past expiry", now.Add(-time.Hour).UnixMilli(), true},
		{"expiry at now", now.UnixMilli(), true},
		{"unknown expiry never expires", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := Session{AccessToken: "tok", ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, sess.Expired(now))
		})
	}
}
