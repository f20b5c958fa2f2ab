package erp

import "errors"

// VerialConfig holds connection settings for the Verial webservice.
// The service exposes two session tokens: the regular one for catalog and
// customer calls, and an online-store session used for order documents
// created on behalf of the web shop.
type VerialConfig struct {
	// Host is the Verial server host (host[:port], no scheme)
	Host string
	// Session is the regular webservice session token
	Session int64
	// OnlineSession is the online-store session used for order creation
	OnlineSession int64
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for Verial configuration
var (
	ErrVerialConfigMissingHost    = errors.New("verial: server host is required")
	ErrVerialConfigMissingSession = errors.New("verial: session token is required")
)

// NewVerialConfig creates a configuration with defaults
func NewVerialConfig(host string, session, onlineSession int64) *VerialConfig {
	return &VerialConfig{
		Host:           host,
		Session:        session,
		OnlineSession:  onlineSession,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Verial configuration
func (c *VerialConfig) Validate() error {
	if c.Host == "" {
		return ErrVerialConfigMissingHost
	}
	if c.Session == 0 {
		return ErrVerialConfigMissingSession
	}
	if c.OnlineSession == 0 {
		c.OnlineSession = c.Session
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// IsConfigured reports whether the mandatory credentials are present
func (c *VerialConfig) IsConfigured() bool {
	return c != nil && c.Host != "" && c.Session != 0
}
