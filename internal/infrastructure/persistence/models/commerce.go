package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/commerce"
)

// ShopModel is the persistence model for the Shop aggregate
type ShopModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Domain      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	AccessToken string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop
func (m *ShopModel) ToDomain() *commerce.Shop {
	return &commerce.Shop{
		ID:          m.ID,
		Domain:      m.Domain,
		AccessToken: m.AccessToken,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Shop
func (m *ShopModel) FromDomain(s *commerce.Shop) {
	m.ID = s.ID
	m.Domain = s.Domain
	m.AccessToken = s.AccessToken
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}

// ShopModelFromDomain creates a new persistence model from a domain Shop
func ShopModelFromDomain(s *commerce.Shop) *ShopModel {
	m := &ShopModel{}
	m.FromDomain(s)
	return m
}

// CustomerModel is the persistence model for the Customer entity
type CustomerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopifyID int64     `gorm:"not null;uniqueIndex:idx_customers_shopify_id"`
	Email     string    `gorm:"type:varchar(100);index:idx_customers_email"`
	FirstName string    `gorm:"type:varchar(50)"`
	LastName  string    `gorm:"type:varchar(50)"`
	Phone     string    `gorm:"type:varchar(20)"`
	Company   string    `gorm:"type:varchar(100)"`
	TaxID     string    `gorm:"type:varchar(20);index:idx_customers_tax_id"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *commerce.Customer {
	return &commerce.Customer{
		ID:        m.ID,
		ShopifyID: m.ShopifyID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     m.Phone,
		Company:   m.Company,
		TaxID:     m.TaxID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *commerce.Customer) {
	m.ID = c.ID
	m.ShopifyID = c.ShopifyID
	m.Email = c.Email
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Phone = c.Phone
	m.Company = c.Company
	m.TaxID = c.TaxID
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *commerce.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primary_key"`
	ShopifyID   int64                 `gorm:"not null;uniqueIndex:idx_products_shopify_id"`
	Title       string                `gorm:"type:varchar(255);not null"`
	Vendor      string                `gorm:"type:varchar(255)"`
	ProductType string                `gorm:"type:varchar(255)"`
	Status      string                `gorm:"type:varchar(20)"`
	Variants    []ProductVariantModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"not null"`
	UpdatedAt   time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product with variants
func (m *ProductModel) ToDomain() *commerce.Product {
	product := &commerce.Product{
		ID:          m.ID,
		ShopifyID:   m.ShopifyID,
		Title:       m.Title,
		Vendor:      m.Vendor,
		ProductType: m.ProductType,
		Status:      m.Status,
		Variants:    make([]commerce.ProductVariant, len(m.Variants)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i, v := range m.Variants {
		product.Variants[i] = *v.ToDomain()
	}
	return product
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *commerce.Product) {
	m.ID = p.ID
	m.ShopifyID = p.ShopifyID
	m.Title = p.Title
	m.Vendor = p.Vendor
	m.ProductType = p.ProductType
	m.Status = p.Status
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	m.Variants = make([]ProductVariantModel, len(p.Variants))
	for i := range p.Variants {
		m.Variants[i].FromDomain(&p.Variants[i])
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *commerce.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductVariantModel is the persistence model for the ProductVariant entity
type ProductVariantModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_variants_product"`
	ShopifyID         int64           `gorm:"not null;uniqueIndex:idx_variants_shopify_id"`
	Title             string          `gorm:"type:varchar(255)"`
	SKU               string          `gorm:"type:varchar(100);index:idx_variants_sku"`
	Barcode           string          `gorm:"type:varchar(50);index:idx_variants_barcode"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	InventoryQuantity int             `gorm:"not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// ToDomain converts the persistence model to a domain ProductVariant
func (m *ProductVariantModel) ToDomain() *commerce.ProductVariant {
	return &commerce.ProductVariant{
		ID:                m.ID,
		ProductID:         m.ProductID,
		ShopifyID:         m.ShopifyID,
		Title:             m.Title,
		SKU:               m.SKU,
		Barcode:           m.Barcode,
		Price:             m.Price,
		InventoryQuantity: m.InventoryQuantity,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain ProductVariant
func (m *ProductVariantModel) FromDomain(v *commerce.ProductVariant) {
	m.ID = v.ID
	m.ProductID = v.ProductID
	m.ShopifyID = v.ShopifyID
	m.Title = v.Title
	m.SKU = v.SKU
	m.Barcode = v.Barcode
	m.Price = v.Price
	m.InventoryQuantity = v.InventoryQuantity
	m.CreatedAt = v.CreatedAt
	m.UpdatedAt = v.UpdatedAt
}

// OrderModel is the persistence model for the Order aggregate
type OrderModel struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key"`
	ShopifyID         int64            `gorm:"not null;uniqueIndex:idx_orders_shopify_id"`
	Name              string           `gorm:"type:varchar(50);not null"`
	Email             string           `gorm:"type:varchar(100)"`
	TotalPrice        decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	FinancialStatus   string           `gorm:"type:varchar(20);not null;index:idx_orders_financial_status"`
	FulfillmentStatus string           `gorm:"type:varchar(20)"`
	Submitted         bool             `gorm:"not null;default:false;index:idx_orders_submitted"`
	SubmittedAt       *time.Time       ``
	LastError         string           `gorm:"type:text"`
	ERPStatus         int              `gorm:"not null;default:0"`
	Lines             []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time        `gorm:"not null"`
	UpdatedAt         time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order with lines
func (m *OrderModel) ToDomain() *commerce.Order {
	order := &commerce.Order{
		ID:                m.ID,
		ShopifyID:         m.ShopifyID,
		Name:              m.Name,
		Email:             m.Email,
		TotalPrice:        m.TotalPrice,
		FinancialStatus:   commerce.FinancialStatus(m.FinancialStatus),
		FulfillmentStatus: commerce.FulfillmentStatus(m.FulfillmentStatus),
		Submitted:         m.Submitted,
		SubmittedAt:       m.SubmittedAt,
		LastError:         m.LastError,
		ERPStatus:         m.ERPStatus,
		Lines:             make([]commerce.OrderLine, len(m.Lines)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for i, l := range m.Lines {
		order.Lines[i] = *l.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *commerce.Order) {
	m.ID = o.ID
	m.ShopifyID = o.ShopifyID
	m.Name = o.Name
	m.Email = o.Email
	m.TotalPrice = o.TotalPrice
	m.FinancialStatus = string(o.FinancialStatus)
	m.FulfillmentStatus = string(o.FulfillmentStatus)
	m.Submitted = o.Submitted
	m.SubmittedAt = o.SubmittedAt
	m.LastError = o.LastError
	m.ERPStatus = o.ERPStatus
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i].FromDomain(&o.Lines[i])
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *commerce.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for the OrderLine entity
type OrderLineModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_lines_order"`
	ShopifyID      int64           `gorm:"not null"`
	ProductTitle   string          `gorm:"type:varchar(255)"`
	VariantTitle   string          `gorm:"type:varchar(255)"`
	SKU            string          `gorm:"type:varchar(100)"`
	Quantity       int             `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine
func (m *OrderLineModel) ToDomain() *commerce.OrderLine {
	return &commerce.OrderLine{
		ID:             m.ID,
		OrderID:        m.OrderID,
		ShopifyID:      m.ShopifyID,
		ProductTitle:   m.ProductTitle,
		VariantTitle:   m.VariantTitle,
		SKU:            m.SKU,
		Quantity:       m.Quantity,
		Price:          m.Price,
		DiscountAmount: m.DiscountAmount,
		CreatedAt:      m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderLine
func (m *OrderLineModel) FromDomain(l *commerce.OrderLine) {
	m.ID = l.ID
	m.OrderID = l.OrderID
	m.ShopifyID = l.ShopifyID
	m.ProductTitle = l.ProductTitle
	m.VariantTitle = l.VariantTitle
	m.SKU = l.SKU
	m.Quantity = l.Quantity
	m.Price = l.Price
	m.DiscountAmount = l.DiscountAmount
	m.CreatedAt = l.CreatedAt
}
