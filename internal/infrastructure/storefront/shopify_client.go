package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

// Constants for the Shopify client
const (
	// maxShopifyResponseSize limits the response body size
	maxShopifyResponseSize = 10 * 1024 * 1024 // 10MB max response

	// shopifyAccessTokenHeader carries the per-shop admin token
	shopifyAccessTokenHeader = "X-Shopify-Access-Token"

	// shopifyOrdersPageSize is the page size for order listings
	shopifyOrdersPageSize = 250

	// orderWebhookTopic is the subscription topic for new orders
	orderWebhookTopic = "orders/create"
)

// ShopifyClient talks to the Shopify admin REST API. It implements
// integration.StorefrontGateway and integration.WebhookVerifier.
// Credentials travel with the shop aggregate; the client itself only
// carries global settings.
type ShopifyClient struct {
	config     *ShopifyConfig
	httpClient *http.Client
}

// NewShopifyClient creates a client
func NewShopifyClient(config *ShopifyConfig) *ShopifyClient {
	timeout := 20
	if config != nil && config.TimeoutSeconds > 0 {
		timeout = config.TimeoutSeconds
	}
	return &ShopifyClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// VerifyWebhook reports whether the signature matches the raw body
func (c *ShopifyClient) VerifyWebhook(body []byte, signature string) bool {
	return c.config.VerifyWebhook(body, signature)
}

// PrimaryLocationID returns the shop's first active inventory location
func (c *ShopifyClient) PrimaryLocationID(ctx context.Context, shop *commerce.Shop) (int64, error) {
	var resp shopifyLocationsResponse
	if err := c.doGet(ctx, shop, "/locations.json", &resp); err != nil {
		return 0, err
	}
	for _, loc := range resp.Locations {
		if loc.Active {
			return loc.ID, nil
		}
	}
	if len(resp.Locations) > 0 {
		return resp.Locations[0].ID, nil
	}
	return 0, fmt.Errorf("%w: shop has no inventory locations", integration.ErrStorefrontInvalidResponse)
}

// InventoryItemID resolves the inventory item behind a variant
func (c *ShopifyClient) InventoryItemID(ctx context.Context, shop *commerce.Shop, variantShopifyID int64) (int64, error) {
	var resp shopifyVariantResponse
	path := "/variants/" + strconv.FormatInt(variantShopifyID, 10) + ".json"
	if err := c.doGet(ctx, shop, path, &resp); err != nil {
		return 0, err
	}
	if resp.Variant.InventoryItemID == 0 {
		return 0, fmt.Errorf("%w: variant %d has no inventory item", integration.ErrStorefrontInvalidResponse, variantShopifyID)
	}
	return resp.Variant.InventoryItemID, nil
}

// SetInventoryLevel sets the available quantity at a location
func (c *ShopifyClient) SetInventoryLevel(ctx context.Context, shop *commerce.Shop, locationID, inventoryItemID int64, quantity int) error {
	req := shopifyInventoryLevelSetRequest{
		LocationID:      locationID,
		InventoryItemID: inventoryItemID,
		Available:       quantity,
	}
	var resp json.RawMessage
	return c.doPost(ctx, shop, "/inventory_levels/set.json", &req, &resp)
}

// ListOrders returns one page of orders, oldest first. The returned
// cursor continues the listing; an empty cursor means the end.
func (c *ShopifyClient) ListOrders(ctx context.Context, shop *commerce.Shop, pageInfo string) (*integration.OrderPage, error) {
	path := "/orders.json?limit=" + strconv.Itoa(shopifyOrdersPageSize)
	if pageInfo != "" {
		// Cursor requests must not repeat filter parameters
		path += "&page_info=" + url.QueryEscape(pageInfo)
	} else {
		path += "&status=any&order=created_at+asc"
	}

	var resp shopifyOrdersResponse
	header, err := c.doGetWithHeader(ctx, shop, path, &resp)
	if err != nil {
		return nil, err
	}

	page := &integration.OrderPage{
		Orders:       make([]integration.StorefrontOrder, 0, len(resp.Orders)),
		NextPageInfo: nextPageInfo(header.Get("Link")),
	}
	for _, o := range resp.Orders {
		page.Orders = append(page.Orders, convertShopifyOrder(&o))
	}
	return page, nil
}

// RegisterOrderWebhook subscribes the callback address to order-creation
// events. Registration is idempotent; an existing subscription for the
// same address is left alone.
func (c *ShopifyClient) RegisterOrderWebhook(ctx context.Context, shop *commerce.Shop, address string) error {
	var existing shopifyWebhooksResponse
	if err := c.doGet(ctx, shop, "/webhooks.json?topic="+url.QueryEscape(orderWebhookTopic), &existing); err != nil {
		return err
	}
	for _, hook := range existing.Webhooks {
		if hook.Address == address {
			return nil
		}
	}

	req := shopifyWebhookRequest{
		Webhook: shopifyWebhookSubscription{
			Topic:   orderWebhookTopic,
			Address: address,
			Format:  "json",
		},
	}
	var resp json.RawMessage
	return c.doPost(ctx, shop, "/webhooks.json", &req, &resp)
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

// convertShopifyOrder maps a wire order onto the platform-agnostic form
func convertShopifyOrder(o *shopifyOrder) integration.StorefrontOrder {
	order := integration.StorefrontOrder{
		ID:                o.ID,
		Name:              o.Name,
		Email:             o.Email,
		TotalPrice:        o.TotalPrice,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		CreatedAt:         o.CreatedAt,
		Lines:             make([]integration.StorefrontOrderLine, 0, len(o.LineItems)),
	}
	if o.Customer != nil {
		order.Customer = &integration.StorefrontCustomer{
			ID:        o.Customer.ID,
			Email:     o.Customer.Email,
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
			Phone:     o.Customer.Phone,
		}
		if o.Customer.DefaultAddress != nil {
			order.Customer.Company = o.Customer.DefaultAddress.Company
		}
	}
	for _, item := range o.LineItems {
		line := integration.StorefrontOrderLine{
			ID:             item.ID,
			ProductTitle:   item.Title,
			VariantTitle:   item.VariantTitle,
			SKU:            item.SKU,
			Quantity:       item.Quantity,
			Price:          item.Price,
			DiscountAmount: "0",
		}
		if len(item.DiscountAllocations) > 0 {
			line.DiscountAmount = item.DiscountAllocations[0].Amount
		}
		order.Lines = append(order.Lines, line)
	}
	return order
}

// nextPageInfo extracts the page_info cursor of the rel="next" link from
// a Link response header. Returns empty when there is no next page.
func nextPageInfo(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start < 0 || end < start {
			continue
		}
		parsed, err := url.Parse(part[start+1 : end])
		if err != nil {
			continue
		}
		return parsed.Query().Get("page_info")
	}
	return ""
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// baseURL builds the admin API base for a shop
func (c *ShopifyClient) baseURL(shop *commerce.Shop) string {
	base := "https://" + shop.Domain
	if c.config != nil && c.config.BaseURLOverride != "" {
		base = c.config.BaseURLOverride
	}
	version := ShopifyDefaultAPIVersion
	if c.config != nil && c.config.APIVersion != "" {
		version = c.config.APIVersion
	}
	return base + "/admin/api/" + version
}

// doGet executes a GET call and decodes the body
func (c *ShopifyClient) doGet(ctx context.Context, shop *commerce.Shop, path string, respDest any) error {
	_, err := c.doGetWithHeader(ctx, shop, path, respDest)
	return err
}

// doGetWithHeader executes a GET call and also returns the response
// header, needed for cursor pagination.
func (c *ShopifyClient) doGetWithHeader(ctx context.Context, shop *commerce.Shop, path string, respDest any) (http.Header, error) {
	if !shop.IsConfigured() {
		return nil, integration.ErrStorefrontNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL(shop)+path, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	return c.execute(req, shop, respDest)
}

// doPost executes a POST call with a JSON body
func (c *ShopifyClient) doPost(ctx context.Context, shop *commerce.Shop, path string, reqBody, respDest any) error {
	if !shop.IsConfigured() {
		return integration.ErrStorefrontNotConfigured
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("shopify: failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL(shop)+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.execute(req, shop, respDest)
	return err
}

// execute sends the request and classifies the outcome
func (c *ShopifyClient) execute(req *http.Request, shop *commerce.Shop, respDest any) (http.Header, error) {
	req.Header.Set(shopifyAccessTokenHeader, shop.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShopifyResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp shopifyErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Errors != nil {
			return nil, fmt.Errorf("%w: HTTP %d: %v", integration.ErrStorefrontRequestFailed, resp.StatusCode, errResp.Errors)
		}
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrStorefrontRequestFailed, resp.StatusCode)
	}

	if err := json.Unmarshal(body, respDest); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontInvalidResponse, err)
	}
	return resp.Header, nil
}

// Ensure ShopifyClient implements the gateway ports
var (
	_ integration.StorefrontGateway = (*ShopifyClient)(nil)
	_ integration.WebhookVerifier   = (*ShopifyClient)(nil)
)
