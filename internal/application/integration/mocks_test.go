package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

// MockERPGateway is a mock implementation of ERPGateway
type MockERPGateway struct {
	mock.Mock
}

func (m *MockERPGateway) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockERPGateway) TestConnection(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockERPGateway) CreateCustomer(ctx context.Context, profile *integration.CustomerProfile) (int64, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockERPGateway) FindCustomerByTaxID(ctx context.Context, taxID string) (int64, error) {
	args := m.Called(ctx, taxID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockERPGateway) CreateOrder(ctx context.Context, doc *integration.OrderDocument) (*integration.DocumentReceipt, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.DocumentReceipt), args.Error(1)
}

func (m *MockERPGateway) GetOrderStatuses(ctx context.Context, orderIDs []int64) (map[int64]integration.ERPOrderStatus, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]integration.ERPOrderStatus), args.Error(1)
}

func (m *MockERPGateway) ListArticles(ctx context.Context) ([]integration.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Article), args.Error(1)
}

func (m *MockERPGateway) ListStock(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockERPGateway) ListOrderDocuments(ctx context.Context, from, to time.Time) ([]integration.DocumentSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.DocumentSummary), args.Error(1)
}

// MockStorefrontGateway is a mock implementation of StorefrontGateway
type MockStorefrontGateway struct {
	mock.Mock
}

func (m *MockStorefrontGateway) PrimaryLocationID(ctx context.Context, shop *commerce.Shop) (int64, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorefrontGateway) InventoryItemID(ctx context.Context, shop *commerce.Shop, variantShopifyID int64) (int64, error) {
	args := m.Called(ctx, shop, variantShopifyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorefrontGateway) SetInventoryLevel(ctx context.Context, shop *commerce.Shop, locationID, inventoryItemID int64, quantity int) error {
	args := m.Called(ctx, shop, locationID, inventoryItemID, quantity)
	return args.Error(0)
}

func (m *MockStorefrontGateway) ListOrders(ctx context.Context, shop *commerce.Shop, pageInfo string) (*integration.OrderPage, error) {
	args := m.Called(ctx, shop, pageInfo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderPage), args.Error(1)
}

func (m *MockStorefrontGateway) RegisterOrderWebhook(ctx context.Context, shop *commerce.Shop, address string) error {
	args := m.Called(ctx, shop, address)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByShopifyID(ctx context.Context, shopifyID int64) (*commerce.Order, error) {
	args := m.Called(ctx, shopifyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Order), args.Error(1)
}

func (m *MockOrderRepository) FindUnsubmitted(ctx context.Context) ([]commerce.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commerce.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *commerce.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *commerce.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByShopifyID(ctx context.Context, shopifyID int64) (*commerce.Customer, error) {
	args := m.Called(ctx, shopifyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*commerce.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *commerce.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindVariantByID(ctx context.Context, id uuid.UUID) (*commerce.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindVariantBySKU(ctx context.Context, sku string) (*commerce.ProductVariant, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindVariantByTitles(ctx context.Context, productTitle, variantTitle string) (*commerce.ProductVariant, error) {
	args := m.Called(ctx, productTitle, variantTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindVariantsWithBarcode(ctx context.Context) ([]commerce.ProductVariant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commerce.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) CountVariants(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product *commerce.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateVariantInventory(ctx context.Context, variantID uuid.UUID, quantity int) error {
	args := m.Called(ctx, variantID, quantity)
	return args.Error(0)
}

// MockShopRepository is a mock implementation of ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Get(ctx context.Context) (*commerce.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Shop), args.Error(1)
}

func (m *MockShopRepository) Save(ctx context.Context, shop *commerce.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

// MockProductMappingRepository is a mock implementation of ProductMappingRepository
type MockProductMappingRepository struct {
	mock.Mock
}

func (m *MockProductMappingRepository) FindByVariant(ctx context.Context, variantID uuid.UUID) (*integration.ProductMapping, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ProductMapping), args.Error(1)
}

func (m *MockProductMappingRepository) FindAll(ctx context.Context) ([]integration.ProductMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.ProductMapping), args.Error(1)
}

func (m *MockProductMappingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductMappingRepository) Upsert(ctx context.Context, mapping *integration.ProductMapping) (bool, error) {
	args := m.Called(ctx, mapping)
	return args.Bool(0), args.Error(1)
}

// MockCustomerMappingRepository is a mock implementation of CustomerMappingRepository
type MockCustomerMappingRepository struct {
	mock.Mock
}

func (m *MockCustomerMappingRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*integration.CustomerMapping, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.CustomerMapping), args.Error(1)
}

func (m *MockCustomerMappingRepository) Save(ctx context.Context, mapping *integration.CustomerMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

// MockOrderMappingRepository is a mock implementation of OrderMappingRepository
type MockOrderMappingRepository struct {
	mock.Mock
}

func (m *MockOrderMappingRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*integration.OrderMapping, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderMapping), args.Error(1)
}

func (m *MockOrderMappingRepository) FindPollable(ctx context.Context) ([]integration.OrderMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.OrderMapping), args.Error(1)
}

func (m *MockOrderMappingRepository) Save(ctx context.Context, mapping *integration.OrderMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

// MockSyncLogRepository is a mock implementation of SyncLogRepository
type MockSyncLogRepository struct {
	mock.Mock
}

func (m *MockSyncLogRepository) Save(ctx context.Context, entry *integration.SyncLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSyncLogRepository) FindRecent(ctx context.Context, limit int) ([]integration.SyncLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.SyncLog), args.Error(1)
}

// MockSubmissionRecorder is a mock implementation of SubmissionRecorder
type MockSubmissionRecorder struct {
	mock.Mock
}

func (m *MockSubmissionRecorder) RecordSubmission(ctx context.Context, order *commerce.Order, mapping *integration.OrderMapping) error {
	args := m.Called(ctx, order, mapping)
	return args.Error(0)
}
