package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ReconcileUpdate is the authoritative state written back onto a Payment.
type ReconcileUpdate struct {
	Status      string
	Message     string
	CFPaymentID string
	Method      string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByOrderID(ctx context.Context, db *gorm.DB, orderID string) (*Payment, error)
	FindByDonationID(ctx context.Context, db *gorm.DB, donationID snowflake.ID) (*Payment, error)
	UpdateSession(ctx context.Context, db *gorm.DB, id snowflake.ID, sessionID string) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status, message string) error

	// UpdateReconciliation applies upd unless the stored status outranks it
	// (guarded in SQL so concurrent webhook/poll writes stay monotonic).
	// Reports whether a row was written.
	UpdateReconciliation(ctx context.Context, db *gorm.DB, id snowflake.ID, upd ReconcileUpdate) (bool, error)

	// InsertEvent records a gateway notification; duplicate deliveries are
	// dropped. Reports whether the event was newly recorded.
	InsertEvent(ctx context.Context, db *gorm.DB, event *EventRecord) (bool, error)

	// ListStalePendingOrders returns order IDs still pending whose last
	// write predates olderThan, oldest first.
	ListStalePendingOrders(ctx context.Context, db *gorm.DB, olderThan time.Time, limit int) ([]string, error)
}
