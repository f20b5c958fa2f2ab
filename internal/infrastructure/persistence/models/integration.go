package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/integration"
)

// ProductMappingModel is the persistence model for the ProductMapping entity
type ProductMappingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	VariantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_mappings_variant"`
	ERPArticleID int64     `gorm:"not null;index:idx_product_mappings_article"`
	ERPBarcode   string    `gorm:"type:varchar(50)"`
	LastSyncAt   time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductMappingModel) TableName() string {
	return "product_mappings"
}

// ToDomain converts the persistence model to a domain ProductMapping
func (m *ProductMappingModel) ToDomain() *integration.ProductMapping {
	return &integration.ProductMapping{
		ID:           m.ID,
		VariantID:    m.VariantID,
		ERPArticleID: m.ERPArticleID,
		ERPBarcode:   m.ERPBarcode,
		LastSyncAt:   m.LastSyncAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain ProductMapping
func (m *ProductMappingModel) FromDomain(pm *integration.ProductMapping) {
	m.ID = pm.ID
	m.VariantID = pm.VariantID
	m.ERPArticleID = pm.ERPArticleID
	m.ERPBarcode = pm.ERPBarcode
	m.LastSyncAt = pm.LastSyncAt
	m.CreatedAt = pm.CreatedAt
	m.UpdatedAt = pm.UpdatedAt
}

// ProductMappingModelFromDomain creates a new persistence model from a domain ProductMapping
func ProductMappingModelFromDomain(pm *integration.ProductMapping) *ProductMappingModel {
	m := &ProductMappingModel{}
	m.FromDomain(pm)
	return m
}

// CustomerMappingModel is the persistence model for the CustomerMapping entity
type CustomerMappingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_mappings_customer"`
	ERPCustomerID int64     `gorm:"not null"`
	ERPTaxID      string    `gorm:"type:varchar(20)"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerMappingModel) TableName() string {
	return "customer_mappings"
}

// ToDomain converts the persistence model to a domain CustomerMapping
func (m *CustomerMappingModel) ToDomain() *integration.CustomerMapping {
	return &integration.CustomerMapping{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		ERPCustomerID: m.ERPCustomerID,
		ERPTaxID:      m.ERPTaxID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain CustomerMapping
func (m *CustomerMappingModel) FromDomain(cm *integration.CustomerMapping) {
	m.ID = cm.ID
	m.CustomerID = cm.CustomerID
	m.ERPCustomerID = cm.ERPCustomerID
	m.ERPTaxID = cm.ERPTaxID
	m.CreatedAt = cm.CreatedAt
	m.UpdatedAt = cm.UpdatedAt
}

// CustomerMappingModelFromDomain creates a new persistence model from a domain CustomerMapping
func CustomerMappingModelFromDomain(cm *integration.CustomerMapping) *CustomerMappingModel {
	m := &CustomerMappingModel{}
	m.FromDomain(cm)
	return m
}

// OrderMappingModel is the persistence model for the OrderMapping entity
type OrderMappingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_mappings_order"`
	ERPOrderID   int64     `gorm:"not null;index:idx_order_mappings_erp_order"`
	ERPReference string    `gorm:"type:varchar(20);not null"`
	ERPNumber    string    `gorm:"type:varchar(50)"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderMappingModel) TableName() string {
	return "order_mappings"
}

// ToDomain converts the persistence model to a domain OrderMapping
func (m *OrderMappingModel) ToDomain() *integration.OrderMapping {
	return &integration.OrderMapping{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ERPOrderID:   m.ERPOrderID,
		ERPReference: m.ERPReference,
		ERPNumber:    m.ERPNumber,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderMapping
func (m *OrderMappingModel) FromDomain(om *integration.OrderMapping) {
	m.ID = om.ID
	m.OrderID = om.OrderID
	m.ERPOrderID = om.ERPOrderID
	m.ERPReference = om.ERPReference
	m.ERPNumber = om.ERPNumber
	m.CreatedAt = om.CreatedAt
}

// OrderMappingModelFromDomain creates a new persistence model from a domain OrderMapping
func OrderMappingModelFromDomain(om *integration.OrderMapping) *OrderMappingModel {
	m := &OrderMappingModel{}
	m.FromDomain(om)
	return m
}

// SyncLogModel is the persistence model for the SyncLog entity
type SyncLogModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Action    string    `gorm:"type:varchar(30);not null;index:idx_sync_logs_action"`
	ShopifyID int64     `gorm:"not null;index:idx_sync_logs_shopify_id"`
	Response  string    `gorm:"type:text"`
	Success   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_sync_logs_created_at"`
}

// TableName returns the table name for GORM
func (SyncLogModel) TableName() string {
	return "sync_logs"
}

// ToDomain converts the persistence model to a domain SyncLog
func (m *SyncLogModel) ToDomain() *integration.SyncLog {
	return &integration.SyncLog{
		ID:        m.ID,
		Action:    integration.SyncAction(m.Action),
		ShopifyID: m.ShopifyID,
		Response:  m.Response,
		Success:   m.Success,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain SyncLog
func (m *SyncLogModel) FromDomain(sl *integration.SyncLog) {
	m.ID = sl.ID
	m.Action = string(sl.Action)
	m.ShopifyID = sl.ShopifyID
	m.Response = sl.Response
	m.Success = sl.Success
	m.CreatedAt = sl.CreatedAt
}

// SyncLogModelFromDomain creates a new persistence model from a domain SyncLog
func SyncLogModelFromDomain(sl *integration.SyncLog) *SyncLogModel {
	m := &SyncLogModel{}
	m.FromDomain(sl)
	return m
}
