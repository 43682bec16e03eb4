package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/givehope/internal/gateway/cashfree"
	obsmetrics "github.com/smallbiznis/givehope/internal/observability/metrics"
	"github.com/smallbiznis/givehope/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// envelope is the notification shape Cashfree posts to the notify URL.
type envelope struct {
	Data struct {
		Order struct {
			OrderID string `json:"order_id"`
		} `json:"order"`
		Payment struct {
			CFPaymentID    json.Number     `json:"cf_payment_id"`
			PaymentStatus  string          `json:"payment_status"`
			PaymentMessage string          `json:"payment_message"`
			PaymentMethod  json.RawMessage `json:"payment_method"`
		} `json:"payment"`
	} `json:"data"`
	Type      string `json:"type"`
	EventTime string `json:"event_time"`
}

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Service domain.Service
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	service domain.Service
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.WebhookService {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("payment.webhook"),
		genID:   p.GenID,
		repo:    p.Repo,
		service: p.Service,
		metrics: p.Metrics,
	}
}

// Ingest records an incoming gateway notification and folds its status into
// the matching payment. Redelivered events short-circuit on the event log.
func (s *Service) Ingest(ctx context.Context, payload []byte) error {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return domain.ErrInvalidPayload
	}

	orderID := strings.TrimSpace(env.Data.Order.OrderID)
	status := strings.TrimSpace(env.Data.Payment.PaymentStatus)
	if orderID == "" || status == "" {
		return domain.ErrInvalidPayload
	}

	eventTime := env.EventTime
	if eventTime == "" {
		eventTime = time.Now().UTC().Format(time.RFC3339)
	}

	inserted, err := s.repo.InsertEvent(ctx, s.db, &domain.EventRecord{
		ID:         s.genID.Generate(),
		OrderID:    orderID,
		EventType:  env.Type,
		EventTime:  eventTime,
		Payload:    datatypes.JSON(payload),
		ReceivedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if !inserted {
		s.log.Debug("duplicate webhook delivery ignored",
			zap.String("order_id", orderID),
			zap.String("event_type", env.Type),
			zap.String("event_time", eventTime),
		)
		return nil
	}

	err = s.service.Reconcile(ctx, domain.ReconcileRequest{
		OrderID:     orderID,
		Status:      status,
		Message:     env.Data.Payment.PaymentMessage,
		CFPaymentID: env.Data.Payment.CFPaymentID.String(),
		Method:      cashfree.ParseMethod(env.Data.Payment.PaymentMethod).Display(),
		Source:      "webhook",
	})
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("webhook for unknown order",
			zap.String("order_id", orderID),
			zap.String("status", status),
		)
	}
	return err
}
