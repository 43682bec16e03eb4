package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	campaignrepo "github.com/smallbiznis/givehope/internal/campaign/repository"
	"github.com/smallbiznis/givehope/internal/donation/domain"
	donationrepo "github.com/smallbiznis/givehope/internal/donation/repository"
	donationservice "github.com/smallbiznis/givehope/internal/donation/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestCreateDonationAppliesFeeCoverage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(20)
	require.NoError(t, err)

	campaignID := seedCampaign(t, db, node)
	svc := newDonationService(t, db, node)

	donation, err := svc.Create(ctx, domain.CreateDonationRequest{
		CampaignID: campaignID.String(),
		FirstName:  "Asha",
		LastName:   "Patel",
		Email:      "asha@example.com",
		Amount:     100,
		CoverFees:  true,
	})
	require.NoError(t, err)
	require.Equal(t, 103.0, donation.Amount)
	require.Equal(t, domain.StatusPending, donation.Status)
	require.True(t, donation.CoverFees)

	var raised float64
	require.NoError(t, db.Raw("SELECT raised_amount FROM campaigns WHERE id = ?", campaignID).Scan(&raised).Error)
	require.Equal(t, 103.0, raised)

	var donors int64
	require.NoError(t, db.Raw("SELECT donor_count FROM campaigns WHERE id = ?", campaignID).Scan(&donors).Error)
	require.Equal(t, int64(1), donors)
}

func TestCreateDonationWithoutFeeCoverage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(21)
	require.NoError(t, err)

	campaignID := seedCampaign(t, db, node)
	svc := newDonationService(t, db, node)

	donation, err := svc.Create(ctx, domain.CreateDonationRequest{
		CampaignID: campaignID.String(),
		FirstName:  "Ravi",
		LastName:   "Kumar",
		Email:      "ravi@example.com",
		Amount:     250.50,
	})
	require.NoError(t, err)
	require.Equal(t, 250.50, donation.Amount)
}

func TestCreateDonationUnknownCampaign(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(22)
	require.NoError(t, err)

	svc := newDonationService(t, db, node)

	_, err = svc.Create(ctx, domain.CreateDonationRequest{
		CampaignID: node.Generate().String(),
		FirstName:  "Asha",
		LastName:   "Patel",
		Email:      "asha@example.com",
		Amount:     100,
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(1) FROM donations").Scan(&count).Error)
	require.Zero(t, count)
}

func TestCreateDonationValidation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(23)
	require.NoError(t, err)

	campaignID := seedCampaign(t, db, node)
	svc := newDonationService(t, db, node)

	base := domain.CreateDonationRequest{
		CampaignID: campaignID.String(),
		FirstName:  "Asha",
		LastName:   "Patel",
		Email:      "asha@example.com",
		Amount:     100,
	}

	noFirst := base
	noFirst.FirstName = "  "
	_, err = svc.Create(ctx, noFirst)
	require.ErrorIs(t, err, domain.ErrInvalidFirstName)

	noLast := base
	noLast.LastName = ""
	_, err = svc.Create(ctx, noLast)
	require.ErrorIs(t, err, domain.ErrInvalidLastName)

	badEmail := base
	badEmail.Email = "not-an-email"
	_, err = svc.Create(ctx, badEmail)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	smallAmount := base
	smallAmount.Amount = 0.5
	_, err = svc.Create(ctx, smallAmount)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestGetDonationByID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(24)
	require.NoError(t, err)

	campaignID := seedCampaign(t, db, node)
	svc := newDonationService(t, db, node)

	created, err := svc.Create(ctx, domain.CreateDonationRequest{
		CampaignID: campaignID.String(),
		FirstName:  "Asha",
		LastName:   "Patel",
		Email:      "asha@example.com",
		Amount:     100,
	})
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, domain.GetDonationRequest{ID: created.ID.String()})
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, created.Email, found.Email)

	_, err = svc.GetByID(ctx, domain.GetDonationRequest{ID: "abc"})
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(ctx, domain.GetDonationRequest{ID: node.Generate().String()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDonationsByCampaign(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(25)
	require.NoError(t, err)

	campaignID := seedCampaign(t, db, node)
	svc := newDonationService(t, db, node)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.CreateDonationRequest{
			CampaignID: campaignID.String(),
			FirstName:  "Donor",
			LastName:   fmt.Sprintf("Number%d", i),
			Email:      fmt.Sprintf("donor%d@example.com", i),
			Amount:     float64(10 * (i + 1)),
		})
		require.NoError(t, err)
	}

	donations, err := svc.ListByCampaign(ctx, domain.ListByCampaignRequest{CampaignID: campaignID.String()})
	require.NoError(t, err)
	require.Len(t, donations, 3)
}

func newDonationService(t *testing.T, db *gorm.DB, node *snowflake.Node) domain.Service {
	t.Helper()
	return donationservice.New(donationservice.Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         donationrepo.Provide(),
		CampaignRepo: campaignrepo.Provide(),
	})
}

func seedCampaign(t *testing.T, db *gorm.DB, node *snowflake.Node) snowflake.ID {
	t.Helper()

	id := node.Generate()
	now := time.Now().UTC()
	err := db.Exec(
		`INSERT INTO campaigns (id, title, description, full_description, category,
			goal_amount, raised_amount, donor_count, days_left, image_url, featured,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, 0, ?, ?, ?, ?, ?)`,
		id, "Clean Water Initiative", "Providing clean drinking water.", "", "Environment",
		50000.0, 20, "", false, now, now,
	).Error
	require.NoError(t, err)
	return id
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE campaigns (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			full_description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			goal_amount REAL NOT NULL DEFAULT 0,
			raised_amount REAL NOT NULL DEFAULT 0,
			donor_count BIGINT NOT NULL DEFAULT 0,
			days_left INTEGER NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE donations (
			id BIGINT PRIMARY KEY,
			campaign_id BIGINT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			mobile TEXT NOT NULL DEFAULT '',
			amount REAL NOT NULL,
			cover_fees BOOLEAN NOT NULL DEFAULT FALSE,
			is_monthly BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'pending',
			transaction_id TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}
