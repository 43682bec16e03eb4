package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smallbiznis/givehope/internal/clock"
	obsmetrics "github.com/smallbiznis/givehope/internal/observability/metrics"
	paymentdomain "github.com/smallbiznis/givehope/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	PaymentSvc paymentdomain.Service
	Repo       paymentdomain.Repository
	Clock      clock.Clock
	Config     Config              `optional:"true"`
	Metrics    *obsmetrics.Metrics `optional:"true"`
}

// Scheduler periodically re-verifies payments stuck in a pending state, so
// orders whose webhook never arrived still converge on the gateway's
// authoritative status.
type Scheduler struct {
	db         *gorm.DB
	log        *zap.Logger
	cfg        Config
	clock      clock.Clock
	paymentSvc paymentdomain.Service
	repo       paymentdomain.Repository
	metrics    *obsmetrics.Metrics
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.PaymentSvc == nil || p.Repo == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:         p.DB,
		log:        p.Log.Named("scheduler"),
		cfg:        p.Config.withDefaults(),
		clock:      p.Clock,
		paymentSvc: p.PaymentSvc,
		repo:       p.Repo,
		metrics:    p.Metrics,
	}, nil
}

// RunOnce sweeps one batch of stale pending payments through Verify.
// Verify degrades to the stored status when the gateway is unreachable, so
// a gateway outage does not abort the sweep; the rows stay pending and are
// picked up again on a later pass.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.cfg.StaleThreshold)
	orderIDs, err := s.repo.ListStalePendingOrders(ctx, s.db, cutoff, s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("list stale pending payments: %w", err)
	}
	if len(orderIDs) == 0 {
		return nil
	}

	s.log.Debug("sweeping stale pending payments", zap.Int("count", len(orderIDs)))
	s.metrics.RecordReconcileSweep(ctx, len(orderIDs))

	var errs error
	for _, orderID := range orderIDs {
		if ctx.Err() != nil {
			return errors.Join(errs, ctx.Err())
		}
		if _, err := s.paymentSvc.Verify(ctx, paymentdomain.VerifyRequest{OrderID: orderID}); err != nil {
			errs = errors.Join(errs, fmt.Errorf("verify %s: %w", orderID, err))
		}
	}
	return errs
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("reconciliation sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
