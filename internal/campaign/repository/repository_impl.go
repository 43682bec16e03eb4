package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/givehope/internal/campaign/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, campaign *domain.Campaign) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO campaigns (id, title, description, full_description, category,
			goal_amount, raised_amount, donor_count, days_left, image_url, featured,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		campaign.ID,
		campaign.Title,
		campaign.Description,
		campaign.FullDescription,
		campaign.Category,
		campaign.GoalAmount,
		campaign.RaisedAmount,
		campaign.DonorCount,
		campaign.DaysLeft,
		campaign.ImageURL,
		campaign.Featured,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Campaign, error) {
	var campaign domain.Campaign
	err := db.WithContext(ctx).Raw(
		`SELECT id, title, description, full_description, category, goal_amount,
			raised_amount, donor_count, days_left, image_url, featured, created_at, updated_at
		 FROM campaigns WHERE id = ?`,
		id,
	).Scan(&campaign).Error
	if err != nil {
		return nil, err
	}
	if campaign.ID == 0 {
		return nil, nil
	}
	return &campaign, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Campaign, error) {
	var campaigns []*domain.Campaign
	err := db.WithContext(ctx).
		Model(&domain.Campaign{}).
		Order("created_at desc, id desc").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Campaign{}).
		Count(&count).Error
	return count, err
}

func (r *repo) IncrementTotals(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE campaigns
		 SET raised_amount = raised_amount + ?,
			donor_count = donor_count + 1,
			updated_at = ?
		 WHERE id = ?`,
		amount,
		time.Now().UTC(),
		id,
	).Error
}
