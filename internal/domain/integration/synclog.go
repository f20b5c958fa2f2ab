package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SyncAction identifies what a sync log entry records
type SyncAction string

const (
	// SyncActionOrderSent records an order submission attempt
	SyncActionOrderSent SyncAction = "order_sent"
	// SyncActionCustomerSent records a customer creation attempt
	SyncActionCustomerSent SyncAction = "customer_sent"
	// SyncActionStatusUpdate records an order status change
	SyncActionStatusUpdate SyncAction = "status_update"
	// SyncActionError records a failure of any kind
	SyncActionError SyncAction = "error"
)

// SyncLog is an audit record of an exchange with the ERP, kept for
// operator troubleshooting.
type SyncLog struct {
	ID        uuid.UUID
	Action    SyncAction
	ShopifyID int64
	Response  string
	Success   bool
	CreatedAt time.Time
}

// NewSyncLog creates a log entry
func NewSyncLog(action SyncAction, shopifyID int64, response string, success bool) *SyncLog {
	return &SyncLog{
		ID:        uuid.New(),
		Action:    action,
		ShopifyID: shopifyID,
		Response:  response,
		Success:   success,
		CreatedAt: time.Now(),
	}
}

// SyncLogRepository defines persistence for sync log entries
type SyncLogRepository interface {
	// Save appends a log entry
	Save(ctx context.Context, entry *SyncLog) error

	// FindRecent returns the most recent entries, newest first
	FindRecent(ctx context.Context, limit int) ([]SyncLog, error)
}
