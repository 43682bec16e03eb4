package service

import (
	"context"
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/smallbiznis/givehope/internal/campaign/domain"
	"github.com/smallbiznis/givehope/internal/donation/domain"
	obsmetrics "github.com/smallbiznis/givehope/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	CampaignRepo campaigndomain.Repository
	Metrics      *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	campaignRepo campaigndomain.Repository
	metrics      *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("donation.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		campaignRepo: p.CampaignRepo,
		metrics:      p.Metrics,
	}
}

// Create validates the donor form, applies the fee adjustment, creates the
// donation in pending status and eagerly bumps the campaign totals. The
// increment runs as a single atomic UPDATE so concurrent donations to the
// same campaign cannot lose updates.
func (s *Service) Create(ctx context.Context, req domain.CreateDonationRequest) (domain.Donation, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return domain.Donation{}, domain.ErrInvalidFirstName
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return domain.Donation{}, domain.ErrInvalidLastName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return domain.Donation{}, domain.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Donation{}, domain.ErrInvalidEmail
	}
	if req.Amount < 1 {
		return domain.Donation{}, domain.ErrInvalidAmount
	}

	campaignID, err := snowflake.ParseString(strings.TrimSpace(req.CampaignID))
	if err != nil || campaignID == 0 {
		return domain.Donation{}, campaigndomain.ErrNotFound
	}
	campaign, err := s.campaignRepo.FindByID(ctx, s.db, campaignID)
	if err != nil {
		return domain.Donation{}, err
	}
	if campaign == nil {
		return domain.Donation{}, campaigndomain.ErrNotFound
	}

	amount := req.Amount
	if req.CoverFees {
		amount = round2(amount * (1 + domain.FeeRate))
	}

	now := time.Now().UTC()
	donation := domain.Donation{
		ID:         s.genID.Generate(),
		CampaignID: campaignID,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Mobile:     strings.TrimSpace(req.Mobile),
		Amount:     amount,
		CoverFees:  req.CoverFees,
		IsMonthly:  req.IsMonthly,
		Status:     domain.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &donation); err != nil {
			return err
		}
		// Campaign totals reflect donation intent, not confirmed payment.
		return s.campaignRepo.IncrementTotals(ctx, tx, campaignID, amount)
	})
	if err != nil {
		s.log.Error("create donation failed",
			zap.String("campaign_id", campaignID.String()),
			zap.Error(err),
		)
		return domain.Donation{}, err
	}

	s.metrics.RecordDonationCreated(ctx)

	return donation, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetDonationRequest) (domain.Donation, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Donation{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Donation{}, err
	}
	if item == nil {
		return domain.Donation{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) ListByCampaign(ctx context.Context, req domain.ListByCampaignRequest) ([]domain.Donation, error) {
	campaignID, err := snowflake.ParseString(strings.TrimSpace(req.CampaignID))
	if err != nil || campaignID == 0 {
		return nil, campaigndomain.ErrInvalidID
	}

	items, err := s.repo.ListByCampaign(ctx, s.db, campaignID)
	if err != nil {
		return nil, err
	}

	donations := make([]domain.Donation, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		donations = append(donations, *item)
	}
	return donations, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
