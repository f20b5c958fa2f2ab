package integration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

// OrderStatusService polls the ERP for order status changes and applies
// them to the local orders. Orders in the terminal shipped state are
// excluded from polling.
type OrderStatusService struct {
	orders        commerce.OrderRepository
	orderMappings integration.OrderMappingRepository
	erp           integration.ERPGateway
	logger        *zap.Logger
}

// NewOrderStatusService creates a new OrderStatusService
func NewOrderStatusService(
	orders commerce.OrderRepository,
	orderMappings integration.OrderMappingRepository,
	erp integration.ERPGateway,
	logger *zap.Logger,
) *OrderStatusService {
	return &OrderStatusService{
		orders:        orders,
		orderMappings: orderMappings,
		erp:           erp,
		logger:        logger,
	}
}

// SyncStatuses polls all non-terminal orders in batches. A failed batch
// is counted and skipped; the remaining batches still run.
func (s *OrderStatusService) SyncStatuses(ctx context.Context) (*StatusSyncStats, error) {
	pollable, err := s.orderMappings.FindPollable(ctx)
	if err != nil {
		return nil, err
	}

	stats := &StatusSyncStats{Checked: len(pollable)}
	if len(pollable) == 0 {
		return stats, nil
	}

	for start := 0; start < len(pollable); start += integration.StatusBatchLimit {
		end := start + integration.StatusBatchLimit
		if end > len(pollable) {
			end = len(pollable)
		}
		batch := pollable[start:end]

		erpIDs := make([]int64, len(batch))
		for i, mapping := range batch {
			erpIDs[i] = mapping.ERPOrderID
		}

		statuses, err := s.erp.GetOrderStatuses(ctx, erpIDs)
		if err != nil {
			stats.Errors++
			s.logger.Error("Order status batch failed",
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
			continue
		}

		for _, mapping := range batch {
			status, ok := statuses[mapping.ERPOrderID]
			if !ok {
				continue
			}
			updated, err := s.applyStatus(ctx, &mapping, status)
			if err != nil {
				stats.Errors++
				s.logger.Error("Failed to apply order status",
					zap.Int64("erp_order_id", mapping.ERPOrderID),
					zap.Error(err),
				)
				continue
			}
			if updated {
				stats.Updated++
			}
		}
	}

	return stats, nil
}

// SyncOne polls the status of a single order. The order is left untouched
// when the ERP response omits it; zero is a real status (received), not an
// absence marker.
func (s *OrderStatusService) SyncOne(ctx context.Context, order *commerce.Order) (integration.ERPOrderStatus, error) {
	mapping, err := s.orderMappings.FindByOrder(ctx, order.ID)
	if err != nil {
		return 0, err
	}

	statuses, err := s.erp.GetOrderStatuses(ctx, []int64{mapping.ERPOrderID})
	if err != nil {
		return 0, err
	}

	status, ok := statuses[mapping.ERPOrderID]
	if !ok {
		return 0, fmt.Errorf("%w: ERP order %d", integration.ErrOrderStatusMissing, mapping.ERPOrderID)
	}
	if order.ApplyERPStatus(int(status)) {
		if err := s.orders.Update(ctx, order); err != nil {
			return 0, err
		}
	}
	return status, nil
}

// applyStatus writes the status onto the mapped order, skipping the
// write when nothing changed.
func (s *OrderStatusService) applyStatus(ctx context.Context, mapping *integration.OrderMapping, status integration.ERPOrderStatus) (bool, error) {
	order, err := s.orders.FindByID(ctx, mapping.OrderID)
	if err != nil {
		return false, err
	}

	if !order.ApplyERPStatus(int(status)) {
		return false, nil
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return false, err
	}

	s.logger.Info("Order status updated from ERP",
		zap.String("order", order.Name),
		zap.Int("erp_status", int(status)),
		zap.String("fulfillment", string(order.FulfillmentStatus)),
	)
	return true, nil
}
