package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Payment statuses use the gateway's own vocabulary. PENDING, SUCCESS,
// FAILED and CANCELLED are modeled explicitly; any other gateway status is
// carried through as-is and treated as non-terminal.
const (
	StatusPending   = "PENDING"
	StatusSuccess   = "SUCCESS"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

type Payment struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	DonationID       snowflake.ID `gorm:"not null;index" json:"donationId"`
	OrderID          string       `gorm:"not null;uniqueIndex" json:"orderId"`
	OrderAmount      float64      `gorm:"not null" json:"orderAmount"`
	OrderCurrency    string       `gorm:"not null;default:INR" json:"orderCurrency"`
	OrderNote        string       `json:"orderNote,omitempty"`
	CustomerName     string       `json:"customerName,omitempty"`
	CustomerEmail    string       `json:"customerEmail,omitempty"`
	CustomerPhone    string       `json:"customerPhone,omitempty"`
	PaymentSessionID string       `gorm:"column:payment_session_id" json:"paymentSessionId,omitempty"`
	CFPaymentID      string       `gorm:"column:cf_payment_id" json:"cfPaymentId,omitempty"`
	PaymentStatus    string       `gorm:"not null;default:PENDING" json:"paymentStatus"`
	PaymentMessage   string       `json:"paymentMessage,omitempty"`
	PaymentMethod    string       `json:"paymentMethod,omitempty"`
	CreatedAt        time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"not null" json:"updatedAt"`
}

func (Payment) TableName() string { return "payments" }

// EventRecord is one received gateway notification, kept for dedup and
// audit. The (order_id, event_type, event_time) triple identifies a
// delivery; redeliveries collide on it.
type EventRecord struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	OrderID    string         `gorm:"not null;index" json:"order_id"`
	EventType  string         `gorm:"not null" json:"event_type"`
	EventTime  string         `gorm:"not null" json:"event_time"`
	Payload    datatypes.JSON `gorm:"not null" json:"payload"`
	ReceivedAt time.Time      `gorm:"not null" json:"received_at"`
}

func (EventRecord) TableName() string { return "payment_events" }

// StatusRank orders statuses so that reconciliation writes commute:
// PENDING < other non-terminal < FAILED/CANCELLED < SUCCESS. A write is
// applied only when its rank is at least the stored one, so a stale
// PENDING notification can never regress a SUCCESS.
func StatusRank(status string) int {
	switch status {
	case "", StatusPending:
		return 0
	case StatusFailed, StatusCancelled:
		return 2
	case StatusSuccess:
		return 3
	default:
		return 1
	}
}

// IsTerminal reports whether a status ends the payment lifecycle.
func IsTerminal(status string) bool {
	switch status {
	case StatusSuccess, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// StatusesOutranking lists statuses whose rank exceeds the given status.
// Used as a write guard so the rank check also holds under concurrent
// webhook and poll reconciliation.
func StatusesOutranking(status string) []string {
	rank := StatusRank(status)
	out := make([]string, 0, 3)
	for _, other := range []string{StatusFailed, StatusCancelled, StatusSuccess} {
		if StatusRank(other) > rank {
			out = append(out, other)
		}
	}
	return out
}
