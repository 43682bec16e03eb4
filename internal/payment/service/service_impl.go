package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/givehope/internal/config"
	donationdomain "github.com/smallbiznis/givehope/internal/donation/domain"
	"github.com/smallbiznis/givehope/internal/gateway/cashfree"
	obsmetrics "github.com/smallbiznis/givehope/internal/observability/metrics"
	"github.com/smallbiznis/givehope/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orderCurrency = "INR"

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Cfg          config.Config
	Repo         domain.Repository
	DonationRepo donationdomain.Repository
	Gateway      cashfree.API
	Metrics      *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	gatewayCfg   config.GatewayConfig
	repo         domain.Repository
	donationRepo donationdomain.Repository
	gateway      cashfree.API
	metrics      *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("payment.service"),
		genID:        p.GenID,
		gatewayCfg:   p.Cfg.Gateway,
		repo:         p.Repo,
		donationRepo: p.DonationRepo,
		gateway:      p.Gateway,
		metrics:      p.Metrics,
	}
}

// InitiateOrder creates a PENDING payment attempt for the donation and opens
// an order with the gateway. A gateway failure marks the attempt FAILED and
// comes back as a failure result, not an error; the caller retries by
// initiating a fresh order.
func (s *Service) InitiateOrder(ctx context.Context, req domain.InitiateOrderRequest) (domain.InitiateOrderResult, error) {
	donationID, err := snowflake.ParseString(strings.TrimSpace(req.DonationID))
	if err != nil || donationID == 0 {
		return domain.InitiateOrderResult{}, donationdomain.ErrNotFound
	}
	donation, err := s.donationRepo.FindByID(ctx, s.db, donationID)
	if err != nil {
		return domain.InitiateOrderResult{}, err
	}
	if donation == nil {
		return domain.InitiateOrderResult{}, donationdomain.ErrNotFound
	}

	if !s.gatewayCfg.Configured() {
		s.log.Error("payment gateway credentials missing")
		return domain.InitiateOrderResult{}, cashfree.ErrNotConfigured
	}

	now := time.Now().UTC()
	orderID := fmt.Sprintf("order_%d_%s", now.Unix(), s.genID.Generate())

	phone := strings.TrimSpace(donation.Mobile)
	if phone == "" {
		phone = "9999999999"
	}

	payment := domain.Payment{
		ID:            s.genID.Generate(),
		DonationID:    donation.ID,
		OrderID:       orderID,
		OrderAmount:   donation.Amount,
		OrderCurrency: orderCurrency,
		OrderNote:     "Donation " + donation.ID.String(),
		CustomerName:  strings.TrimSpace(donation.FirstName + " " + donation.LastName),
		CustomerEmail: donation.Email,
		CustomerPhone: phone,
		PaymentStatus: domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return domain.InitiateOrderResult{}, err
	}

	order, err := s.gateway.CreateOrder(ctx, cashfree.CreateOrderRequest{
		OrderID:       orderID,
		OrderAmount:   donation.Amount,
		OrderCurrency: orderCurrency,
		OrderNote:     payment.OrderNote,
		Customer: cashfree.CustomerDetails{
			CustomerID:    donation.ID.String(),
			CustomerName:  payment.CustomerName,
			CustomerEmail: payment.CustomerEmail,
			CustomerPhone: payment.CustomerPhone,
		},
		OrderMeta: cashfree.OrderMeta{
			ReturnURL: s.gatewayCfg.ReturnURL,
			NotifyURL: s.gatewayCfg.NotifyURL,
		},
	})
	if err != nil {
		if errors.Is(err, cashfree.ErrNotConfigured) {
			return domain.InitiateOrderResult{}, err
		}
		s.log.Warn("gateway order creation failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		if updateErr := s.repo.UpdateStatus(ctx, s.db, payment.ID, domain.StatusFailed, err.Error()); updateErr != nil {
			s.log.Error("mark payment failed", zap.String("order_id", orderID), zap.Error(updateErr))
		}
		s.metrics.RecordPaymentOrder(ctx, "failed")
		return domain.InitiateOrderResult{
			Success: false,
			OrderID: orderID,
			Message: err.Error(),
		}, nil
	}

	if err := s.repo.UpdateSession(ctx, s.db, payment.ID, order.PaymentSessionID); err != nil {
		return domain.InitiateOrderResult{}, err
	}

	s.metrics.RecordPaymentOrder(ctx, "created")

	return domain.InitiateOrderResult{
		Success:          true,
		OrderID:          orderID,
		PaymentSessionID: order.PaymentSessionID,
	}, nil
}

// Verify queries the gateway for the authoritative status of an order and
// writes it back. When the gateway itself is unreachable it degrades to the
// last status already stored on the payment rather than erroring: the donor
// has already paid (or not) and stale information beats a hard failure.
func (s *Service) Verify(ctx context.Context, req domain.VerifyRequest) (domain.VerifyResult, error) {
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return domain.VerifyResult{}, domain.ErrInvalidOrderID
	}

	payment, err := s.repo.FindByOrderID(ctx, s.db, orderID)
	if err != nil {
		return domain.VerifyResult{}, err
	}
	if payment == nil {
		return domain.VerifyResult{}, domain.ErrNotFound
	}

	update, err := s.fetchGatewayStatus(ctx, orderID)
	if err != nil {
		s.log.Warn("gateway verify failed, serving cached status",
			zap.String("order_id", orderID),
			zap.String("cached_status", payment.PaymentStatus),
			zap.Error(err),
		)
		s.metrics.RecordVerifyDegraded(ctx)
		return verifyResult(payment, true), nil
	}

	if err := s.Reconcile(ctx, domain.ReconcileRequest{
		OrderID:     orderID,
		Status:      update.Status,
		Message:     update.Message,
		CFPaymentID: update.CFPaymentID,
		Method:      update.Method,
		Source:      "verify",
	}); err != nil {
		return domain.VerifyResult{}, err
	}

	refreshed, err := s.repo.FindByOrderID(ctx, s.db, orderID)
	if err != nil {
		return domain.VerifyResult{}, err
	}
	if refreshed == nil {
		return domain.VerifyResult{}, domain.ErrNotFound
	}
	return verifyResult(refreshed, false), nil
}

// Reconcile writes an authoritative gateway status onto the payment and,
// for terminal statuses, onto the owning donation. Writes are monotonic by
// status rank, making webhook and poll delivery commutative and replays
// side-effect free.
func (s *Service) Reconcile(ctx context.Context, req domain.ReconcileRequest) error {
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return domain.ErrInvalidOrderID
	}

	payment, err := s.repo.FindByOrderID(ctx, s.db, orderID)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}

	if domain.StatusRank(req.Status) < domain.StatusRank(payment.PaymentStatus) {
		s.log.Debug("stale reconciliation skipped",
			zap.String("order_id", orderID),
			zap.String("stored", payment.PaymentStatus),
			zap.String("incoming", req.Status),
		)
		return nil
	}

	applied, err := s.repo.UpdateReconciliation(ctx, s.db, payment.ID, domain.ReconcileUpdate{
		Status:      req.Status,
		Message:     req.Message,
		CFPaymentID: req.CFPaymentID,
		Method:      req.Method,
	})
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	switch req.Status {
	case domain.StatusSuccess:
		transactionID := req.CFPaymentID
		if transactionID == "" {
			transactionID = orderID
		}
		if err := s.donationRepo.UpdatePaymentResult(ctx, s.db, payment.DonationID,
			donationdomain.StatusCompleted, transactionID, req.Method); err != nil {
			return err
		}
	case domain.StatusFailed, domain.StatusCancelled:
		if err := s.donationRepo.UpdatePaymentResult(ctx, s.db, payment.DonationID,
			donationdomain.StatusFailed, req.CFPaymentID, req.Method); err != nil {
			return err
		}
	}

	s.metrics.RecordPaymentEvent(ctx, req.Source, req.Status)
	return nil
}

// fetchGatewayStatus queries the payment list for an order and falls back
// to order-level status when no payment attempt exists yet.
func (s *Service) fetchGatewayStatus(ctx context.Context, orderID string) (domain.ReconcileUpdate, error) {
	payments, err := s.gateway.ListOrderPayments(ctx, orderID)
	if err != nil {
		return domain.ReconcileUpdate{}, err
	}

	if len(payments) == 0 {
		order, err := s.gateway.GetOrder(ctx, orderID)
		if err != nil {
			return domain.ReconcileUpdate{}, err
		}
		status := orderStatusAsPaymentStatus(order.OrderStatus)
		return domain.ReconcileUpdate{
			Status:  status,
			Message: "order status " + order.OrderStatus,
		}, nil
	}

	// Most recent attempt first.
	latest := payments[0]
	return domain.ReconcileUpdate{
		Status:      latest.PaymentStatus,
		Message:     latest.PaymentMessage,
		CFPaymentID: latest.CFPaymentID.String(),
		Method:      cashfree.ParseMethod(latest.PaymentMethod).Display(),
	}, nil
}

func orderStatusAsPaymentStatus(orderStatus string) string {
	switch orderStatus {
	case cashfree.OrderStatusPaid:
		return domain.StatusSuccess
	case cashfree.OrderStatusActive:
		return domain.StatusPending
	case cashfree.OrderStatusExpired:
		return domain.StatusFailed
	case cashfree.OrderStatusTerminated:
		return domain.StatusCancelled
	default:
		return orderStatus
	}
}

func verifyResult(payment *domain.Payment, degraded bool) domain.VerifyResult {
	return domain.VerifyResult{
		Success:       payment.PaymentStatus == domain.StatusSuccess,
		PaymentStatus: payment.PaymentStatus,
		Degraded:      degraded,
		PaymentDetails: domain.PaymentDetails{
			OrderID:        payment.OrderID,
			OrderAmount:    payment.OrderAmount,
			CFPaymentID:    payment.CFPaymentID,
			PaymentStatus:  payment.PaymentStatus,
			PaymentMessage: payment.PaymentMessage,
			PaymentMethod:  payment.PaymentMethod,
		},
	}
}
