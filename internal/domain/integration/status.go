package integration

import "github.com/shopsync/backend/internal/domain/commerce"

// ---------------------------------------------------------------------------
// ERP order status codes
// ---------------------------------------------------------------------------

// ERPOrderStatus is the raw status code the ERP reports for a submitted
// order document.
type ERPOrderStatus int

const (
	// ERPOrderStatusNoExists indicates the ERP does not know the order
	ERPOrderStatusNoExists ERPOrderStatus = 0
	// ERPOrderStatusReceived indicates the order was received
	ERPOrderStatusReceived ERPOrderStatus = 1
	// ERPOrderStatusInPreparation indicates picking has started
	ERPOrderStatusInPreparation ERPOrderStatus = 2
	// ERPOrderStatusPrepared indicates the order is packed
	ERPOrderStatusPrepared ERPOrderStatus = 3
	// ERPOrderStatusShipped indicates the order has left the warehouse
	ERPOrderStatusShipped ERPOrderStatus = 4
)

// String returns a readable name for logs
func (s ERPOrderStatus) String() string {
	switch s {
	case ERPOrderStatusNoExists:
		return "no_exists"
	case ERPOrderStatusReceived:
		return "received"
	case ERPOrderStatusInPreparation:
		return "in_preparation"
	case ERPOrderStatusPrepared:
		return "prepared"
	case ERPOrderStatusShipped:
		return "shipped"
	default:
		return "unknown"
	}
}

// IsTerminal returns true when the status will never change again and the
// order can be excluded from future polls.
func (s ERPOrderStatus) IsTerminal() bool {
	return s == ERPOrderStatusShipped
}

// Fulfillment maps the ERP status onto the local fulfillment state.
// Received keeps whatever state the order already has.
func (s ERPOrderStatus) Fulfillment() (commerce.FulfillmentStatus, bool) {
	switch s {
	case ERPOrderStatusShipped:
		return commerce.FulfillmentStatusFulfilled, true
	case ERPOrderStatusInPreparation, ERPOrderStatusPrepared:
		return commerce.FulfillmentStatusPartial, true
	default:
		return commerce.FulfillmentStatusNone, false
	}
}
