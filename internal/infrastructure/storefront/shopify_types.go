package storefront

// Wire types for the Shopify admin REST API

// shopifyLocation is an inventory location
type shopifyLocation struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// shopifyLocationsResponse is the response of GET /locations.json
type shopifyLocationsResponse struct {
	Locations []shopifyLocation `json:"locations"`
}

// shopifyVariant is a product variant detail
type shopifyVariant struct {
	ID              int64  `json:"id"`
	SKU             string `json:"sku"`
	InventoryItemID int64  `json:"inventory_item_id"`
}

// shopifyVariantResponse is the response of GET /variants/{id}.json
type shopifyVariantResponse struct {
	Variant shopifyVariant `json:"variant"`
}

// shopifyInventoryLevelSetRequest sets the available quantity at a
// location (POST /inventory_levels/set.json)
type shopifyInventoryLevelSetRequest struct {
	LocationID      int64 `json:"location_id"`
	InventoryItemID int64 `json:"inventory_item_id"`
	Available       int   `json:"available"`
}

// shopifyOrderCustomer is the customer block of an order payload
type shopifyOrderCustomer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	DefaultAddress *struct {
		Company string `json:"company"`
	} `json:"default_address"`
}

// shopifyDiscountAllocation is a discount applied to a line item
type shopifyDiscountAllocation struct {
	Amount string `json:"amount"`
}

// shopifyLineItem is one line of an order
type shopifyLineItem struct {
	ID                  int64                       `json:"id"`
	Title               string                      `json:"title"`
	VariantTitle        string                      `json:"variant_title"`
	SKU                 string                      `json:"sku"`
	Quantity            int                         `json:"quantity"`
	Price               string                      `json:"price"`
	DiscountAllocations []shopifyDiscountAllocation `json:"discount_allocations"`
}

// shopifyOrder is an order as delivered by the admin API and by the
// orders/create webhook. Both use the same shape.
type shopifyOrder struct {
	ID                int64                 `json:"id"`
	Name              string                `json:"name"`
	Email             string                `json:"email"`
	TotalPrice        string                `json:"total_price"`
	FinancialStatus   string                `json:"financial_status"`
	FulfillmentStatus string                `json:"fulfillment_status"`
	CreatedAt         string                `json:"created_at"`
	Customer          *shopifyOrderCustomer `json:"customer"`
	LineItems         []shopifyLineItem     `json:"line_items"`
}

// shopifyOrdersResponse is the response of GET /orders.json
type shopifyOrdersResponse struct {
	Orders []shopifyOrder `json:"orders"`
}

// shopifyWebhookRequest registers a webhook subscription
// (POST /webhooks.json)
type shopifyWebhookRequest struct {
	Webhook shopifyWebhookSubscription `json:"webhook"`
}

// shopifyWebhookSubscription describes one webhook subscription
type shopifyWebhookSubscription struct {
	ID      int64  `json:"id,omitempty"`
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}

// shopifyWebhooksResponse is the response of GET /webhooks.json
type shopifyWebhooksResponse struct {
	Webhooks []shopifyWebhookSubscription `json:"webhooks"`
}

// shopifyErrorResponse is the error envelope of failed API calls. The
// errors field is free-form (string, map or list) so it stays raw.
type shopifyErrorResponse struct {
	Errors any `json:"errors"`
}
