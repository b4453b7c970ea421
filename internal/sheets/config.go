// Package sheets provides Google Sheets API integration for dashboard export.
package sheets

import (
	"fmt"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID        string
	ClientSecret    string
	TokenFile       string
	SpreadsheetID   string
	SpreadsheetName string
	TimeZone        string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName: "Scaledger Dashboard",
		TimeZone:        "America/New_York",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("missing Google Sheets OAuth2 credentials")
	}
	if c.SpreadsheetName == "" && c.SpreadsheetID == "" {
		return fmt.Errorf("either spreadsheet ID or name is required")
	}
	return nil
}
