package commerce

import "errors"

var (
	// Order errors
	ErrOrderInvalidExternalID = errors.New("commerce: order requires a storefront ID")
	ErrOrderInvalidName       = errors.New("commerce: order requires a name")
	ErrOrderInvalidTotal      = errors.New("commerce: order total cannot be negative")
	ErrOrderHasNoLines        = errors.New("commerce: order has no lines")

	// Customer errors
	ErrCustomerInvalidExternalID = errors.New("commerce: customer requires a storefront ID")
	ErrCustomerNotFound          = errors.New("commerce: customer not found")

	// Product errors
	ErrVariantInvalidExternalID = errors.New("commerce: variant requires a storefront ID")

	// Shop errors
	ErrShopNotConfigured = errors.New("commerce: shop not configured")
)
