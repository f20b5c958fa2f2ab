package commerce

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer is a storefront customer mirrored locally.
type Customer struct {
	ID        uuid.UUID
	ShopifyID int64
	Email     string
	FirstName string
	LastName  string
	Phone     string
	// Company is non-empty for business customers.
	Company string
	// TaxID is the fiscal identifier (NIF/VAT id) when known.
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks customer invariants before persistence
func (c *Customer) Validate() error {
	if c.ShopifyID == 0 {
		return ErrCustomerInvalidExternalID
	}
	return nil
}

// IsBusiness returns true when the customer represents a company rather
// than an individual.
func (c *Customer) IsBusiness() bool {
	return strings.TrimSpace(c.Company) != ""
}

// SplitSurnames splits the last name at the first space into the two
// surname fields used by Spanish fiscal systems. A single-word last name
// yields an empty second surname.
func (c *Customer) SplitSurnames() (first, second string) {
	parts := strings.SplitN(strings.TrimSpace(c.LastName), " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		second = parts[1]
	}
	return first, second
}
