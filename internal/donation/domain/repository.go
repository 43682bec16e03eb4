package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, donation *Donation) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Donation, error)
	ListByCampaign(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) ([]*Donation, error)
	UpdatePaymentResult(ctx context.Context, db *gorm.DB, id snowflake.ID, status, transactionID, method string) error
}
