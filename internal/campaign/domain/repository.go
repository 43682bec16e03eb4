package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Campaign, error)
	List(ctx context.Context, db *gorm.DB) ([]*Campaign, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)

	// IncrementTotals applies an atomic raised_amount/donor_count increment,
	// avoiding the read-modify-write race under concurrent donations.
	IncrementTotals(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64) error
}
