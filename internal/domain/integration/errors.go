package integration

import (
	"errors"
	"fmt"
)

var (
	// ERP gateway errors
	ErrERPNotConfigured   = errors.New("integration: ERP credentials not configured")
	ErrERPUnavailable     = errors.New("integration: ERP temporarily unavailable")
	ErrERPRequestFailed   = errors.New("integration: ERP request failed")
	ErrERPInvalidResponse = errors.New("integration: invalid ERP response")

	// Storefront gateway errors
	ErrStorefrontNotConfigured   = errors.New("integration: storefront credentials not configured")
	ErrStorefrontRequestFailed   = errors.New("integration: storefront request failed")
	ErrStorefrontInvalidResponse = errors.New("integration: invalid storefront response")

	// Customer resolution errors
	ErrCustomerNotInERP     = errors.New("integration: customer not found in ERP")
	ErrERPCustomerIDMissing = errors.New("integration: ERP did not return a customer ID")

	// Order submission errors
	ErrOrderAlreadySubmitted = errors.New("integration: order already submitted")
	ErrOrderHasNoLines       = errors.New("integration: order has no lines")

	// Order status polling errors
	ErrOrderStatusMissing = errors.New("integration: ERP returned no status for order")

	// Mapping errors
	ErrMappingNotFound      = errors.New("integration: mapping not found")
	ErrMappingAlreadyExists = errors.New("integration: mapping already exists")
)

// RejectionError is an application-level rejection from the ERP: the HTTP
// exchange succeeded but the embedded error block carried a non-zero code.
// The description is the remote system's human-readable message and is
// surfaced to operators verbatim.
type RejectionError struct {
	Code        int
	Description string
}

// Error implements the error interface
func (e *RejectionError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("integration: ERP rejected request (code %d)", e.Code)
	}
	return fmt.Sprintf("integration: ERP rejected request: %s", e.Description)
}

// NewRejectionError creates a RejectionError from the remote error block
func NewRejectionError(code int, description string) *RejectionError {
	return &RejectionError{Code: code, Description: description}
}

// UnmappedProductsError is a domain-validation failure: one or more order
// lines reference products with no ERP article mapping. It names the
// offending products so operators can fix the catalog mapping.
type UnmappedProductsError struct {
	Products []string
}

// Error implements the error interface
func (e *UnmappedProductsError) Error() string {
	return fmt.Sprintf("integration: products without ERP mapping: %v", e.Products)
}
