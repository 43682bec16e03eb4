package domain

import (
	"context"
	"errors"
)

type InitiateOrderRequest struct {
	DonationID string `json:"donationId"`
}

type InitiateOrderResult struct {
	Success          bool   `json:"success"`
	OrderID          string `json:"orderId,omitempty"`
	PaymentSessionID string `json:"paymentSessionId,omitempty"`
	Message          string `json:"message,omitempty"`
}

type VerifyRequest struct {
	OrderID string `json:"orderId"`
}

// PaymentDetails is the client-facing snapshot returned by Verify.
type PaymentDetails struct {
	OrderID        string  `json:"orderId"`
	OrderAmount    float64 `json:"orderAmount"`
	CFPaymentID    string  `json:"cfPaymentId,omitempty"`
	PaymentStatus  string  `json:"paymentStatus"`
	PaymentMessage string  `json:"paymentMessage,omitempty"`
	PaymentMethod  string  `json:"paymentMethod,omitempty"`
}

type VerifyResult struct {
	Success        bool           `json:"success"`
	PaymentStatus  string         `json:"paymentStatus"`
	Degraded       bool           `json:"degraded,omitempty"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
}

// ReconcileRequest carries an authoritative gateway status toward the
// Payment and Donation records. Source distinguishes poll from webhook for
// metrics only; the write-back is identical.
type ReconcileRequest struct {
	OrderID     string
	Status      string
	Message     string
	CFPaymentID string
	Method      string
	Source      string
}

type Service interface {
	InitiateOrder(context.Context, InitiateOrderRequest) (InitiateOrderResult, error)
	Verify(context.Context, VerifyRequest) (VerifyResult, error)
	Reconcile(context.Context, ReconcileRequest) error
}

// WebhookService ingests asynchronous gateway notifications.
type WebhookService interface {
	Ingest(ctx context.Context, payload []byte) error
}

var (
	ErrInvalidOrderID = errors.New("invalid_order_id")
	ErrNotFound       = errors.New("payment_not_found")
	ErrInvalidPayload = errors.New("invalid_webhook_payload")
)
