package remote

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/scaledger/scaledger/internal/model"
)

// Providers accepted for third-party sign-in.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

const oauthCallbackAddr = "localhost:8910"

// ValidProvider reports whether the named OAuth provider is supported.
func ValidProvider(provider string) bool {
	return provider == ProviderGoogle || provider == ProviderGitHub
}

// oauthConfig builds the OAuth2 configuration for the hosted auth service's
// authorization-code flow. The service identifies the app by its public API
// key and routes to the third-party provider via a query parameter.
func (c *HTTPClient) oauthConfig(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: c.apiKey,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.baseURL + "/auth/v1/authorize",
			TokenURL: c.baseURL + "/auth/v1/token",
		},
		RedirectURL: redirectURL,
	}
}

// ProviderAuthorizeURL returns the URL a browser must visit to start
// third-party sign-in with the given provider.
func (c *HTTPClient) ProviderAuthorizeURL(provider, redirectTo string) (string, error) {
	if !ValidProvider(provider) {
		return "", fmt.Errorf("unsupported OAuth provider %q", provider)
	}

	return fmt.Sprintf("%s/auth/v1/authorize?provider=%s&redirect_to=%s",
		c.baseURL, url.QueryEscape(provider), url.QueryEscape(redirectTo)), nil
}

// ProviderLogin performs the third-party sign-in flow interactively: it
// prints an authorize URL, captures the redirect on a localhost listener,
// exchanges the code, and persists the resulting session.
func (c *HTTPClient) ProviderLogin(ctx context.Context, provider string) (*model.Session, error) {
	if !ValidProvider(provider) {
		return nil, fmt.Errorf("unsupported OAuth provider %q", provider)
	}

	state, err := randomState()
	if err != nil {
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()
	oauthCfg := c.oauthConfig("http://" + oauthCallbackAddr + "/callback")

	codeChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			errorChan <- fmt.Errorf("state mismatch in OAuth callback")
			_, _ = fmt.Fprint(w, callbackPage("Authentication Failed", "State mismatch. Please try again."))
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			errorChan <- fmt.Errorf("no authorization code received")
			_, _ = fmt.Fprint(w, callbackPage("Authentication Failed", "No authorization code received. Please try again."))
			return
		}

		codeChan <- code
		_, _ = fmt.Fprint(w, callbackPage("Authentication Successful!", "You can close this window and return to the terminal."))
	})

	server := &http.Server{Addr: oauthCallbackAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			errorChan <- fmt.Errorf("failed to start callback server: %w", serveErr)
		}
	}()

	authURL := oauthCfg.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("provider", provider))

	c.logger.Info("Third-party sign-in required")
	c.logger.Info("Please visit this URL to authenticate", "url", authURL)
	c.logger.Info("Waiting for authentication...")

	var authCode string
	select {
	case authCode = <-codeChan:
	case err := <-errorChan:
		_ = server.Shutdown(ctx)
		return nil, err
	case <-time.After(5 * time.Minute):
		_ = server.Shutdown(ctx)
		return nil, fmt.Errorf("authentication timeout - no response received within 5 minutes")
	case <-ctx.Done():
		_ = server.Shutdown(ctx)
		return nil, ctx.Err()
	}

	if err := server.Shutdown(ctx); err != nil {
		c.logger.Warn("Error shutting down callback server", "error", err)
	}

	token, err := oauthCfg.Exchange(ctx, authCode, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	sess := &model.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		sess.ExpiresAt = token.Expiry.UnixMilli()
	}

	var user wireUser
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", sess.AccessToken, nil, &user, ""); err != nil {
		return nil, err
	}
	sess.User = &model.User{ID: user.ID, Email: user.Email}

	if err := c.cache.save(sess); err != nil {
		c.logger.Warn("Failed to persist session", "error", err)
	}
	c.notify(AuthSignedIn, sess)

	return sess, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func callbackPage(title, message string) string {
	return fmt.Sprintf(`<html><body>
		<h1>%s</h1>
		<p>%s</p>
		<script>window.setTimeout(function(){window.close();}, 3000);</script>
	</body></html>`, title, message)
}
