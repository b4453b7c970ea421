// Package config provides configuration types and path utilities for the application.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/scaledger/scaledger/internal/common"
)

// Service holds the connection settings for the hosted backend service.
// Both values are required at startup; absence is fatal.
type Service struct {
	URL    string
	APIKey string
}

// Validate ensures all required fields are present and the URL is usable.
func (s Service) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("%w: service.url is required", common.ErrMissingConfig)
	}
	if s.APIKey == "" {
		return fmt.Errorf("%w: service.api_key is required", common.ErrMissingConfig)
	}

	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("%w: service.url is not a valid URL: %v", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: service.url must be http or https", common.ErrInvalidConfig)
	}

	return nil
}

// BaseURL returns the service URL without a trailing slash.
func (s Service) BaseURL() string {
	return strings.TrimRight(s.URL, "/")
}
