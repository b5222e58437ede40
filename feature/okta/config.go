package okta

import (
	"fmt"
	"strings"

	"okta-import/core/reconcile"
)

// Config holds the Okta organisation and credentials.
type Config struct {
	// OrgName is the organisation subdomain (e.g. "acme" for acme.okta.com).
	OrgName string `mapstructure:"org_name" default:""`
	// BaseURL is the Okta domain.
	BaseURL string `mapstructure:"base_url" default:"okta.com"`
	// ClientID is the OAuth service application id.
	ClientID string `mapstructure:"client_id" default:""`
	// PrivateKeyID is the key id (kid) of the service application key.
	PrivateKeyID string `mapstructure:"private_key_id" default:""`
	// PrivateKey is the PEM encoded private key.
	PrivateKey string `mapstructure:"private_key" default:""`
	// APIToken switches to SSWS token authentication when set.
	APIToken string `mapstructure:"api_token" default:""`
	// Scopes are the OAuth scopes requested for the access token.
	Scopes []string `mapstructure:"scopes" default:"okta.users.read,okta.groups.read,okta.apps.read"`
	// GroupFilter is the search expression used to list groups.
	GroupFilter string `mapstructure:"group_filter" default:"type eq \"OKTA_GROUP\""`
	// PageSize is the number of records requested per page.
	PageSize int64 `mapstructure:"page_size" default:"200"`
	// RequestTimeoutSeconds bounds each API request.
	RequestTimeoutSeconds int64 `mapstructure:"request_timeout_seconds" default:"30"`
	// RateLimitMaxRetries is the number of retries on HTTP 429.
	RateLimitMaxRetries int32 `mapstructure:"rate_limit_max_retries" default:"2"`
}

// OrgURL returns the organisation URL.
func (c Config) OrgURL() string {
	base := strings.TrimPrefix(strings.TrimPrefix(c.BaseURL, "https://"), "http://")
	if base == "" {
		base = "okta.com"
	}
	return fmt.Sprintf("https://%s.%s", c.OrgName, strings.Trim(base, "/."))
}

// UsesToken reports whether SSWS token authentication is configured.
func (c Config) UsesToken() bool {
	return c.APIToken != ""
}

// Validate checks that the organisation and one complete credential set are present.
// The error names every missing field.
func (c Config) Validate() error {
	var missing []string
	if c.OrgName == "" {
		missing = append(missing, "okta_org_name")
	}
	if !c.UsesToken() {
		if c.ClientID == "" {
			missing = append(missing, "okta_api_client_id")
		}
		if c.PrivateKeyID == "" {
			missing = append(missing, "okta_api_private_key_id")
		}
		if c.PrivateKey == "" {
			missing = append(missing, "okta_api_private_key")
		}
	}

	if len(missing) > 0 {
		return &reconcile.ConfigurationError{
			Field:  "okta",
			Reason: "missing required Okta configuration: " + strings.Join(missing, ", "),
		}
	}
	return nil
}
