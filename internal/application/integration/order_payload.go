package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

const (
	// orderDocumentType is the non-fiscal order document type. An invoice
	// type here would trigger fiscal numbering in the ERP.
	orderDocumentType = 5

	// maxReferenceLength is the ERP cap on the document reference
	maxReferenceLength = 20

	// cashPaymentMethodID is the ERP payment method recorded for prepaid
	// storefront orders.
	cashPaymentMethodID = 1
)

// standardVATRate is the Spanish general VAT rate applied to all lines.
// Storefront prices are tax-inclusive; the tax base is derived from them.
var standardVATRate = decimal.NewFromFloat(21.0)

// OrderPayloadBuilder translates a local order into the ERP document
// schema, resolving every line to its mapped ERP article first.
type OrderPayloadBuilder struct {
	products        commerce.ProductRepository
	productMappings integration.ProductMappingRepository
}

// NewOrderPayloadBuilder creates a new OrderPayloadBuilder
func NewOrderPayloadBuilder(
	products commerce.ProductRepository,
	productMappings integration.ProductMappingRepository,
) *OrderPayloadBuilder {
	return &OrderPayloadBuilder{
		products:        products,
		productMappings: productMappings,
	}
}

// BuildOrderPayload builds the ERP order document. Any line without a
// product mapping fails the whole build; the ERP is never called with a
// partial order.
func (b *OrderPayloadBuilder) BuildOrderPayload(ctx context.Context, order *commerce.Order, erpCustomerID int64) (*integration.OrderDocument, error) {
	if len(order.Lines) == 0 {
		return nil, integration.ErrOrderHasNoLines
	}

	lines := make([]integration.DocumentLine, 0, len(order.Lines))
	var unmapped []string
	taxBase := decimal.Zero

	for i := range order.Lines {
		line := &order.Lines[i]

		mapping, err := b.resolveLineMapping(ctx, line)
		if err != nil {
			if errors.Is(err, integration.ErrMappingNotFound) {
				unmapped = append(unmapped, line.ProductTitle)
				continue
			}
			return nil, err
		}

		docLine, lineBase := buildDocumentLine(line, mapping.ERPArticleID)
		lines = append(lines, docLine)
		taxBase = taxBase.Add(lineBase)
	}

	if len(unmapped) > 0 {
		return nil, &integration.UnmappedProductsError{Products: unmapped}
	}

	doc := &integration.OrderDocument{
		DocumentType:      orderDocumentType,
		Reference:         truncate(fmt.Sprintf("S%d", order.ShopifyID), maxReferenceLength),
		Date:              order.CreatedAt,
		CustomerID:        erpCustomerID,
		PricesTaxIncluded: true,
		TaxBase:           taxBase.Round(2),
		Total:             order.TotalPrice,
		Comment:           order.Name,
		Lines:             lines,
	}

	if order.FinancialStatus.IsPaid() {
		doc.Payments = []integration.DocumentPayment{
			{
				MethodID: cashPaymentMethodID,
				Date:     time.Now(),
				Amount:   order.TotalPrice,
			},
		}
	}

	return doc, nil
}

// resolveLineMapping finds the ERP article behind a line, by SKU first
// and by product/variant titles as fallback.
func (b *OrderPayloadBuilder) resolveLineMapping(ctx context.Context, line *commerce.OrderLine) (*integration.ProductMapping, error) {
	variant, err := b.products.FindVariantBySKU(ctx, line.SKU)
	if err != nil {
		variant, err = b.products.FindVariantByTitles(ctx, line.ProductTitle, line.VariantTitle)
		if err != nil {
			return nil, integration.ErrMappingNotFound
		}
	}
	return b.productMappings.FindByVariant(ctx, variant.ID)
}

// buildDocumentLine derives the wire line and its contribution to the
// document tax base.
//
// The storefront reports the post-discount unit price and the absolute
// line discount; the ERP wants the pre-discount unit price plus a
// percentage. gross = price*qty + discount restores the pre-discount
// line total, and the base strips VAT back out of it.
func buildDocumentLine(line *commerce.OrderLine, erpArticleID int64) (integration.DocumentLine, decimal.Decimal) {
	qty := decimal.NewFromInt(int64(line.Quantity))
	hundred := decimal.NewFromInt(100)

	gross := line.Price.Mul(qty).Add(line.DiscountAmount)

	originalPrice := line.Price
	discountPct := decimal.Zero
	if line.Quantity > 0 && gross.IsPositive() {
		originalPrice = gross.Div(qty)
		discountPct = line.DiscountAmount.Div(gross).Mul(hundred)
	}

	vatDivisor := decimal.NewFromInt(1).Add(standardVATRate.Div(hundred))
	base := qty.
		Mul(originalPrice.Div(vatDivisor)).
		Mul(decimal.NewFromInt(1).Sub(discountPct.Div(hundred)))

	return integration.DocumentLine{
		ArticleID:   erpArticleID,
		Units:       line.Quantity,
		Price:       originalPrice,
		DiscountPct: discountPct,
		VATRate:     standardVATRate,
	}, base
}
