package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/givehope/internal/campaign/domain"
	campaignrepo "github.com/smallbiznis/givehope/internal/campaign/repository"
	campaignservice "github.com/smallbiznis/givehope/internal/campaign/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestListCampaigns(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(50)
	require.NoError(t, err)

	first := seedCampaign(t, db, node, "Clean Water Initiative")
	time.Sleep(2 * time.Millisecond)
	second := seedCampaign(t, db, node, "Education for All")

	svc := newCampaignService(t, db)

	campaigns, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)

	// Newest first.
	require.Equal(t, second, campaigns[0].ID)
	require.Equal(t, first, campaigns[1].ID)
}

func TestGetCampaignByID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(51)
	require.NoError(t, err)

	id := seedCampaign(t, db, node, "Healthcare Access")
	svc := newCampaignService(t, db)

	campaign, err := svc.GetByID(ctx, domain.GetCampaignRequest{ID: id.String()})
	require.NoError(t, err)
	require.Equal(t, "Healthcare Access", campaign.Title)

	_, err = svc.GetByID(ctx, domain.GetCampaignRequest{ID: "not-a-number"})
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(ctx, domain.GetCampaignRequest{ID: node.Generate().String()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func newCampaignService(t *testing.T, db *gorm.DB) domain.Service {
	t.Helper()
	return campaignservice.New(campaignservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: campaignrepo.Provide(),
	})
}

func seedCampaign(t *testing.T, db *gorm.DB, node *snowflake.Node, title string) snowflake.ID {
	t.Helper()

	id := node.Generate()
	now := time.Now().UTC()
	err := db.Exec(
		`INSERT INTO campaigns (id, title, description, full_description, category,
			goal_amount, raised_amount, donor_count, days_left, image_url, featured,
			created_at, updated_at)
		 VALUES (?, ?, ?, '', 'Environment', 50000, 0, 0, 20, '', ?, ?, ?)`,
		id, title, "Sample campaign.", false, now, now,
	).Error
	require.NoError(t, err)
	return id
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_camp_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	err = db.Exec(
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
	).Error
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}

	return db
}
