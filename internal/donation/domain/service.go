package domain

import (
	"context"
	"errors"
)

// FeeRate is the processing-fee fraction added to the donation amount when
// the donor opts to cover transaction fees.
const FeeRate = 0.03

type CreateDonationRequest struct {
	CampaignID string  `json:"campaignId"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Mobile     string  `json:"mobile"`
	Amount     float64 `json:"amount"`
	CoverFees  bool    `json:"coverFees"`
	IsMonthly  bool    `json:"isMonthly"`
}

type GetDonationRequest struct {
	ID string
}

type ListByCampaignRequest struct {
	CampaignID string
}

type Service interface {
	Create(context.Context, CreateDonationRequest) (Donation, error)
	GetByID(context.Context, GetDonationRequest) (Donation, error)
	ListByCampaign(context.Context, ListByCampaignRequest) ([]Donation, error)
}

var (
	ErrInvalidFirstName = errors.New("invalid_first_name")
	ErrInvalidLastName  = errors.New("invalid_last_name")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidID        = errors.New("invalid_donation_id")
	ErrNotFound         = errors.New("donation_not_found")
)
