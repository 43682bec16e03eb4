package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Donation struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	CampaignID    snowflake.ID `gorm:"not null;index" json:"campaignId"`
	FirstName     string       `gorm:"not null" json:"firstName"`
	LastName      string       `gorm:"not null" json:"lastName"`
	Email         string       `gorm:"not null" json:"email"`
	Mobile        string       `json:"mobile,omitempty"`
	Amount        float64      `gorm:"not null" json:"amount"`
	CoverFees     bool         `gorm:"not null;default:false" json:"coverFees"`
	IsMonthly     bool         `gorm:"not null;default:false" json:"isMonthly"`
	Status        string       `gorm:"not null;default:pending" json:"status"`
	TransactionID string       `gorm:"column:transaction_id" json:"transactionId,omitempty"`
	PaymentMethod string       `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updatedAt"`
}

func (Donation) TableName() string { return "donations" }
