package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/givehope/internal/donation/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, donation *domain.Donation) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO donations (id, campaign_id, first_name, last_name, email, mobile,
			amount, cover_fees, is_monthly, status, transaction_id, payment_method,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		donation.ID,
		donation.CampaignID,
		donation.FirstName,
		donation.LastName,
		donation.Email,
		donation.Mobile,
		donation.Amount,
		donation.CoverFees,
		donation.IsMonthly,
		donation.Status,
		donation.TransactionID,
		donation.PaymentMethod,
		donation.CreatedAt,
		donation.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Donation, error) {
	var donation domain.Donation
	err := db.WithContext(ctx).Raw(
		`SELECT id, campaign_id, first_name, last_name, email, mobile, amount,
			cover_fees, is_monthly, status, transaction_id, payment_method,
			created_at, updated_at
		 FROM donations WHERE id = ?`,
		id,
	).Scan(&donation).Error
	if err != nil {
		return nil, err
	}
	if donation.ID == 0 {
		return nil, nil
	}
	return &donation, nil
}

func (r *repo) ListByCampaign(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) ([]*domain.Donation, error) {
	var donations []*domain.Donation
	err := db.WithContext(ctx).
		Model(&domain.Donation{}).
		Where("campaign_id = ?", campaignID).
		Order("created_at desc, id desc").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *repo) UpdatePaymentResult(ctx context.Context, db *gorm.DB, id snowflake.ID, status, transactionID, method string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE donations
		 SET status = ?, transaction_id = ?, payment_method = ?, updated_at = ?
		 WHERE id = ?`,
		status,
		transactionID,
		method,
		time.Now().UTC(),
		id,
	).Error
}
