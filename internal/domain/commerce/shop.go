package commerce

import (
	"time"

	"github.com/google/uuid"
)

// Shop holds the storefront domain and its API access token. The
// connector operates against a single shop but the token is stored
// per-domain so reinstallation replaces it in place.
type Shop struct {
	ID          uuid.UUID
	Domain      string
	AccessToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsConfigured returns true when the shop can authenticate API calls
func (s *Shop) IsConfigured() bool {
	return s != nil && s.Domain != "" && s.AccessToken != ""
}
