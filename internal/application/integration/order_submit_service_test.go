package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

type submitFixture struct {
	orders        *MockOrderRepository
	orderMappings *MockOrderMappingRepository
	recorder      *MockSubmissionRecorder
	syncLogs      *MockSyncLogRepository
	customers     *MockCustomerRepository
	custMappings  *MockCustomerMappingRepository
	products      *MockProductRepository
	prodMappings  *MockProductMappingRepository
	erp           *MockERPGateway
	service       *OrderSubmitService
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		orders:        new(MockOrderRepository),
		orderMappings: new(MockOrderMappingRepository),
		recorder:      new(MockSubmissionRecorder),
		syncLogs:      new(MockSyncLogRepository),
		customers:     new(MockCustomerRepository),
		custMappings:  new(MockCustomerMappingRepository),
		products:      new(MockProductRepository),
		prodMappings:  new(MockProductMappingRepository),
		erp:           new(MockERPGateway),
	}
	resolution := NewCustomerResolutionService(f.customers, f.custMappings, f.erp, zap.NewNop())
	builder := NewOrderPayloadBuilder(f.products, f.prodMappings)
	f.service = NewOrderSubmitService(
		f.orders, f.orderMappings, f.recorder, f.syncLogs,
		resolution, builder, f.erp, zap.NewNop(),
	)
	return f
}

// stubHappyPath wires customer resolution and line mapping for the
// standard test order.
func (f *submitFixture) stubHappyPath(order *commerce.Order) {
	customer := testCustomer()
	f.customers.On("FindByEmail", mock.Anything, order.Email).Return(customer, nil)
	f.custMappings.On("FindByCustomer", mock.Anything, customer.ID).Return(&integration.CustomerMapping{
		CustomerID:    customer.ID,
		ERPCustomerID: 3001,
	}, nil)
	stubVariantResolution(f.products, f.prodMappings, "TSHIRT-M", 501)
}

func TestOrderSubmit_Success(t *testing.T) {
	f := newSubmitFixture()
	order := testPayloadOrder()

	f.orderMappings.On("FindByOrder", mock.Anything, order.ID).Return(nil, integration.ErrMappingNotFound)
	f.stubHappyPath(order)
	f.erp.On("CreateOrder", mock.Anything, mock.Anything).Return(&integration.DocumentReceipt{
		ID:        70001,
		Reference: "S6543210987",
		Number:    "PED-2026-001",
	}, nil)
	f.recorder.On("RecordSubmission", mock.Anything, order, mock.MatchedBy(func(m *integration.OrderMapping) bool {
		return m != nil && m.ERPOrderID == 70001 && m.OrderID == order.ID
	})).Return(nil)
	f.syncLogs.On("Save", mock.Anything, mock.MatchedBy(func(e *integration.SyncLog) bool {
		return e.Action == integration.SyncActionOrderSent && e.Success
	})).Return(nil)

	result, err := f.service.Submit(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.False(t, result.Duplicate)
	assert.True(t, order.Submitted)
	assert.Empty(t, order.LastError)

	f.recorder.AssertExpectations(t)
	f.syncLogs.AssertExpectations(t)
}

func TestOrderSubmit_AlreadySubmittedFlag(t *testing.T) {
	f := newSubmitFixture()
	order := testPayloadOrder()
	order.Submitted = true

	result, err := f.service.Submit(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, result.Submitted)

	f.erp.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	f.customers.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestOrderSubmit_ExistingMappingHealsFlag(t *testing.T) {
	f := newSubmitFixture()
	order := testPayloadOrder()

	f.orderMappings.On("FindByOrder", mock.Anything, order.ID).Return(&integration.OrderMapping{
		OrderID:    order.ID,
		ERPOrderID: 70001,
	}, nil)
	f.orders.On("Update", mock.Anything, order).Return(nil)

	result, err := f.service.Submit(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.True(t, order.Submitted)

	// No second ERP call once the mapping exists
	f.erp.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderSubmit_DuplicateReference(t *testing.T) {
	f := newSubmitFixture()
	order := testPayloadOrder()

	f.orderMappings.On("FindByOrder", mock.Anything, order.ID).Return(nil, integration.ErrMappingNotFound)
	f.stubHappyPath(order)
	f.erp.On("CreateOrder", mock.Anything, mock.Anything).Return(nil,
		integration.NewRejectionError(9, "Ya existe un documento con la misma referencia"))
	f.recorder.On("RecordSubmission", mock.Anything, order, (*integration.OrderMapping)(nil)).Return(nil)
	f.syncLogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Submit(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.True(t, result.Duplicate)
	assert.True(t, order.Submitted)
	assert.Equal(t, "duplicado", order.LastError)

	// Only one ERP create happened
	f.erp.AssertNumberOfCalls(t, "CreateOrder", 1)
	f.recorder.AssertExpectations(t)
}

func TestOrderSubmit_RejectionPersistsFailure(t *testing.T) {
	f := newSubmitFixture()
	order := testPayloadOrder()

	f.orderMappings.On("FindByOrder", mock.Anything, order.ID).Return(nil, integration.ErrMappingNotFound)
	f.stubHappyPath(order)
	f.erp.On("CreateOrder", mock.Anything, mock.Anything).Return(nil,
		integration.NewRejectionError(12, "Cliente no válido"))
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.syncLogs.On("Save", mock.Anything, mock.MatchedBy(func(e *integration.SyncLog) bool {
		return e.Action == integration.SyncActionError && !e.Success
	})).Return(nil)

	result, err := f.service.Submit(context.Background(), order)
	require.NoError(t, err)
	assert.False(t, result.Submitted)
	assert.False(t, order.Submitted)
	assert.Contains(t, order.LastError, "Cliente no válido")

	f.syncLogs.AssertExpectations(t)
}

func TestOrderSubmit_UnmappedProductNeverCallsERP(t *testing.T) {
	f := newSubmitFixture()
	order := testPayloadOrder()

	f.orderMappings.On("FindByOrder", mock.Anything, order.ID).Return(nil, integration.ErrMappingNotFound)
	customer := testCustomer()
	f.customers.On("FindByEmail", mock.Anything, order.Email).Return(customer, nil)
	f.custMappings.On("FindByCustomer", mock.Anything, customer.ID).Return(&integration.CustomerMapping{
		CustomerID:    customer.ID,
		ERPCustomerID: 3001,
	}, nil)
	f.products.On("FindVariantBySKU", mock.Anything, "TSHIRT-M").Return(nil, integration.ErrMappingNotFound)
	f.products.On("FindVariantByTitles", mock.Anything, "Camiseta básica", "M").Return(nil, integration.ErrMappingNotFound)
	f.orders.On("Update", mock.Anything, order).Return(nil)
	f.syncLogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Submit(context.Background(), order)
	require.NoError(t, err)
	assert.False(t, result.Submitted)
	assert.Contains(t, order.LastError, "Camiseta básica")

	f.erp.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderSubmit_SubmitPendingIsolatesFailures(t *testing.T) {
	f := newSubmitFixture()

	good := testPayloadOrder()
	bad := testPayloadOrder()
	bad.ShopifyID = 6543210988
	bad.Name = "#1002"
	bad.Email = "nobody@example.com"

	f.orders.On("FindUnsubmitted", mock.Anything).Return([]commerce.Order{*bad, *good}, nil)

	// The bad order's customer cannot be resolved
	f.customers.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, integration.ErrCustomerNotInERP)
	f.orders.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.syncLogs.On("Save", mock.Anything, mock.Anything).Return(nil)

	// The good order goes through
	f.orderMappings.On("FindByOrder", mock.Anything, mock.Anything).Return(nil, integration.ErrMappingNotFound)
	f.stubHappyPath(good)
	f.erp.On("CreateOrder", mock.Anything, mock.Anything).Return(&integration.DocumentReceipt{
		ID: 70002, Reference: "S6543210987",
	}, nil)
	f.recorder.On("RecordSubmission", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	stats, err := f.service.SubmitPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Submitted)
	assert.Equal(t, 1, stats.Failed)
}
