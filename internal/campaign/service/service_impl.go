package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/givehope/internal/campaign/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("campaign.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	campaigns := make([]domain.Campaign, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		campaigns = append(campaigns, *item)
	}
	return campaigns, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCampaignRequest) (domain.Campaign, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Campaign{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Campaign{}, err
	}
	if item == nil {
		return domain.Campaign{}, domain.ErrNotFound
	}

	return *item, nil
}
