package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/integration"
)

// OrderWebhook is the payload of a Shopify orders/create webhook. The
// shape matches the admin API order resource.
type OrderWebhook struct {
	ID                int64                 `json:"id"`
	Name              string                `json:"name"`
	Email             string                `json:"email"`
	TotalPrice        string                `json:"total_price"`
	FinancialStatus   string                `json:"financial_status"`
	FulfillmentStatus string                `json:"fulfillment_status"`
	CreatedAt         string                `json:"created_at"`
	Customer          *OrderWebhookCustomer `json:"customer"`
	LineItems         []OrderWebhookLine    `json:"line_items"`
}

// OrderWebhookCustomer is the customer block of an order webhook
type OrderWebhookCustomer struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	DefaultAddress *struct {
		Company string `json:"company"`
	} `json:"default_address"`
}

// OrderWebhookLine is one line item of an order webhook
type OrderWebhookLine struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	VariantTitle        string `json:"variant_title"`
	SKU                 string `json:"sku"`
	Quantity            int    `json:"quantity"`
	Price               string `json:"price"`
	DiscountAllocations []struct {
		Amount string `json:"amount"`
	} `json:"discount_allocations"`
}

// ToStorefrontOrder converts the webhook payload into the platform
// neutral order used by the ingestion service.
func (w *OrderWebhook) ToStorefrontOrder() *integration.StorefrontOrder {
	order := &integration.StorefrontOrder{
		ID:                w.ID,
		Name:              w.Name,
		Email:             w.Email,
		TotalPrice:        w.TotalPrice,
		FinancialStatus:   w.FinancialStatus,
		FulfillmentStatus: w.FulfillmentStatus,
		CreatedAt:         w.CreatedAt,
	}

	if w.Customer != nil {
		customer := &integration.StorefrontCustomer{
			ID:        w.Customer.ID,
			Email:     w.Customer.Email,
			FirstName: w.Customer.FirstName,
			LastName:  w.Customer.LastName,
			Phone:     w.Customer.Phone,
		}
		if w.Customer.DefaultAddress != nil {
			customer.Company = w.Customer.DefaultAddress.Company
		}
		order.Customer = customer
	}

	for _, item := range w.LineItems {
		line := integration.StorefrontOrderLine{
			ID:           item.ID,
			ProductTitle: item.Title,
			VariantTitle: item.VariantTitle,
			SKU:          item.SKU,
			Quantity:     item.Quantity,
			Price:        item.Price,
		}
		// Shopify reports discounts per allocation; the ingestion layer
		// wants the line total.
		if len(item.DiscountAllocations) > 0 {
			total := decimal.Zero
			for _, alloc := range item.DiscountAllocations {
				if amount, err := decimal.NewFromString(alloc.Amount); err == nil {
					total = total.Add(amount)
				}
			}
			line.DiscountAmount = total.String()
		}
		order.Lines = append(order.Lines, line)
	}

	return order
}
