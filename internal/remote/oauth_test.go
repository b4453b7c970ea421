package remote

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidProvider(t *testing.T) {
	assert.True(t, ValidProvider(ProviderGoogle))
	assert.True(t, ValidProvider(ProviderGitHub))
	assert.False(t, ValidProvider(""))
	assert.False(t, ValidProvider("facebook"))
	assert.False(t, ValidProvider("Google"))
}

func TestProviderAuthorizeURL(t *testing.T) {
	client, err := NewHTTPClient(Config{
		BaseURL:     "https://svc.example.com",
		APIKey:      "key",
		SessionFile: filepath.Join(t.TempDir(), "session.json"),
	})
	require.NoError(t, err)

	got, err := client.ProviderAuthorizeURL(ProviderGoogle, "http://localhost:8910/callback")
	require.NoError(t, err)
	assert.Equal(t,
		"https://svc.example.com/auth/v1/authorize?provider=google&redirect_to=http%3A%2F%2Flocalhost%3A8910%2Fcallback",
		got)

	_, err = client.ProviderAuthorizeURL("myspace", "http://localhost:8910/callback")
	assert.Error(t, err)
}
