package storefront

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// Constants for the Shopify admin API
const (
	// ShopifyDefaultAPIVersion is the pinned admin API version
	ShopifyDefaultAPIVersion = "2024-01"

	// shopifyHmacHeader carries the webhook signature
	shopifyHmacHeader = "X-Shopify-Hmac-Sha256"
)

// ShopifyConfig holds settings shared across shops. Per-shop credentials
// (domain, access token) live on the commerce.Shop aggregate; this config
// carries only what is global to the connector.
type ShopifyConfig struct {
	// APIVersion is the admin API version segment of request URLs
	APIVersion string
	// WebhookSecret signs inbound webhook payloads
	WebhookSecret string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
	// BaseURLOverride replaces the per-shop https://{domain} base when
	// set. Used in tests to point the client at a local server.
	BaseURLOverride string
}

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingSecret = errors.New("shopify: webhook secret is required")
)

// NewShopifyConfig creates a configuration with defaults
func NewShopifyConfig(webhookSecret string) *ShopifyConfig {
	return &ShopifyConfig{
		APIVersion:     ShopifyDefaultAPIVersion,
		WebhookSecret:  webhookSecret,
		TimeoutSeconds: 20,
	}
}

// Validate validates the Shopify configuration
func (c *ShopifyConfig) Validate() error {
	if c.WebhookSecret == "" {
		return ErrShopifyConfigMissingSecret
	}
	if c.APIVersion == "" {
		c.APIVersion = ShopifyDefaultAPIVersion
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 20
	}
	return nil
}

// VerifyWebhook checks an inbound payload against its signature header.
// The signature is the base64 HMAC-SHA256 of the raw body keyed with the
// shared webhook secret. Comparison is constant time.
func (c *ShopifyConfig) VerifyWebhook(body []byte, signature string) bool {
	if c.WebhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
