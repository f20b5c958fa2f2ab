package integration

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

// duplicateReferenceFragment is the ERP's message when a document with
// the same reference already exists. It signals a prior submission whose
// receipt was lost, not a new failure.
const duplicateReferenceFragment = "ya existe un documento con la misma referencia"

// OrderSubmitService orchestrates the submission of an order to the ERP:
// customer resolution, payload build, document creation, and the atomic
// recording of the result.
type OrderSubmitService struct {
	orders        commerce.OrderRepository
	orderMappings integration.OrderMappingRepository
	recorder      integration.SubmissionRecorder
	syncLogs      integration.SyncLogRepository
	customers     *CustomerResolutionService
	builder       *OrderPayloadBuilder
	erp           integration.ERPGateway
	logger        *zap.Logger
}

// NewOrderSubmitService creates a new OrderSubmitService
func NewOrderSubmitService(
	orders commerce.OrderRepository,
	orderMappings integration.OrderMappingRepository,
	recorder integration.SubmissionRecorder,
	syncLogs integration.SyncLogRepository,
	customers *CustomerResolutionService,
	builder *OrderPayloadBuilder,
	erp integration.ERPGateway,
	logger *zap.Logger,
) *OrderSubmitService {
	return &OrderSubmitService{
		orders:        orders,
		orderMappings: orderMappings,
		recorder:      recorder,
		syncLogs:      syncLogs,
		customers:     customers,
		builder:       builder,
		erp:           erp,
		logger:        logger,
	}
}

// Submit sends one order to the ERP. Already-submitted orders are a
// no-op success; failures are persisted on the order and never retried
// automatically.
func (s *OrderSubmitService) Submit(ctx context.Context, order *commerce.Order) (*SubmitResult, error) {
	if order.Submitted {
		return &SubmitResult{Submitted: true, Message: "already submitted"}, nil
	}

	// A mapping without the submitted flag means a previous run was
	// interrupted after the ERP accepted the document. Heal the flag
	// instead of submitting twice.
	if _, err := s.orderMappings.FindByOrder(ctx, order.ID); err == nil {
		order.MarkSubmitted(time.Now())
		if err := s.orders.Update(ctx, order); err != nil {
			return nil, err
		}
		return &SubmitResult{Submitted: true, Message: "already submitted"}, nil
	} else if !errors.Is(err, integration.ErrMappingNotFound) {
		return nil, err
	}

	erpCustomerID, err := s.customers.EnsureCustomer(ctx, order)
	if err != nil {
		return s.recordFailure(ctx, order, err)
	}

	doc, err := s.builder.BuildOrderPayload(ctx, order, erpCustomerID)
	if err != nil {
		return s.recordFailure(ctx, order, err)
	}

	receipt, err := s.erp.CreateOrder(ctx, doc)
	if err != nil {
		if isDuplicateReference(err) {
			return s.recordDuplicate(ctx, order, err)
		}
		return s.recordFailure(ctx, order, err)
	}

	order.MarkSubmitted(time.Now())
	mapping := integration.NewOrderMapping(order.ID, receipt)
	if err := s.recorder.RecordSubmission(ctx, order, mapping); err != nil {
		return nil, err
	}

	s.writeLog(ctx, integration.SyncActionOrderSent, order.ShopifyID, receipt.Reference, true)
	s.logger.Info("Order submitted to ERP",
		zap.String("order", order.Name),
		zap.Int64("erp_order_id", receipt.ID),
		zap.String("erp_number", receipt.Number),
	)

	return &SubmitResult{Submitted: true}, nil
}

// SubmitByID loads an order and submits it
func (s *OrderSubmitService) SubmitByID(ctx context.Context, orderID uuid.UUID) (*SubmitResult, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.Submit(ctx, order)
}

// SubmitPending submits every unsubmitted order, isolating per-order
// failures so one bad order does not block the rest.
func (s *OrderSubmitService) SubmitPending(ctx context.Context) (*SubmitPendingStats, error) {
	pending, err := s.orders.FindUnsubmitted(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SubmitPendingStats{Total: len(pending)}
	for i := range pending {
		order := &pending[i]
		result, err := s.Submit(ctx, order)
		if err != nil || !result.Submitted {
			stats.Failed++
			s.logger.Warn("Pending order submission failed",
				zap.String("order", order.Name),
				zap.Error(err),
			)
			continue
		}
		stats.Submitted++
	}
	return stats, nil
}

// recordDuplicate handles the reference collision: the document already
// exists in the ERP, so the order is marked submitted without a mapping.
func (s *OrderSubmitService) recordDuplicate(ctx context.Context, order *commerce.Order, cause error) (*SubmitResult, error) {
	order.MarkSubmitted(time.Now())
	order.LastError = "duplicado"
	if err := s.recorder.RecordSubmission(ctx, order, nil); err != nil {
		return nil, err
	}

	s.writeLog(ctx, integration.SyncActionOrderSent, order.ShopifyID, cause.Error(), true)
	s.logger.Warn("ERP already holds a document with this reference, marking submitted",
		zap.String("order", order.Name),
	)

	return &SubmitResult{Submitted: true, Duplicate: true, Message: "duplicado"}, nil
}

// recordFailure persists the failure on the order for operators
func (s *OrderSubmitService) recordFailure(ctx context.Context, order *commerce.Order, cause error) (*SubmitResult, error) {
	order.MarkSubmitFailed(cause.Error())
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.writeLog(ctx, integration.SyncActionError, order.ShopifyID, cause.Error(), false)
	s.logger.Error("Order submission failed",
		zap.String("order", order.Name),
		zap.Error(cause),
	)

	return &SubmitResult{Submitted: false, Message: cause.Error()}, nil
}

// writeLog appends a sync log row; log failures are not fatal
func (s *OrderSubmitService) writeLog(ctx context.Context, action integration.SyncAction, shopifyID int64, response string, success bool) {
	entry := integration.NewSyncLog(action, shopifyID, response, success)
	if err := s.syncLogs.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write sync log", zap.Error(err))
	}
}

// isDuplicateReference detects the ERP's duplicate-reference rejection
func isDuplicateReference(err error) bool {
	var rejection *integration.RejectionError
	if !errors.As(err, &rejection) {
		return false
	}
	return strings.Contains(strings.ToLower(rejection.Description), duplicateReferenceFragment)
}
