package domain

import (
	"context"
	"errors"
)

type GetCampaignRequest struct {
	ID string
}

type ListCampaignResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

type Service interface {
	List(context.Context) ([]Campaign, error)
	GetByID(context.Context, GetCampaignRequest) (Campaign, error)
}

var (
	ErrInvalidID = errors.New("invalid_campaign_id")
	ErrNotFound  = errors.New("campaign_not_found")
)
