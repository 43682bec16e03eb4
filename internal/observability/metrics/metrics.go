package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	donationsCreated metric.Int64Counter
	paymentOrders    metric.Int64Counter
	paymentEvents    metric.Int64Counter
	verifyDegraded   metric.Int64Counter
	reconcileSwept   metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "givehope"
	}
	meter := provider.Meter(name)

	donationsCreated, err := meter.Int64Counter("givehope_donations_created_total")
	if err != nil {
		return nil, err
	}
	paymentOrders, err := meter.Int64Counter("givehope_payment_orders_total")
	if err != nil {
		return nil, err
	}
	paymentEvents, err := meter.Int64Counter("givehope_payment_events_total")
	if err != nil {
		return nil, err
	}
	verifyDegraded, err := meter.Int64Counter("givehope_verify_degraded_total")
	if err != nil {
		return nil, err
	}
	reconcileSwept, err := meter.Int64Counter("givehope_reconcile_swept_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		donationsCreated: donationsCreated,
		paymentOrders:    paymentOrders,
		paymentEvents:    paymentEvents,
		verifyDegraded:   verifyDegraded,
		reconcileSwept:   reconcileSwept,
	}, nil
}

// RecordDonationCreated increments donation creation counts.
func (m *Metrics) RecordDonationCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.donationsCreated.Add(ctx, 1)
}

// RecordPaymentOrder increments gateway order creation counts.
func (m *Metrics) RecordPaymentOrder(ctx context.Context, result string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("result", strings.TrimSpace(result)))
	m.paymentOrders.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordPaymentEvent increments reconciliation write-back counts.
func (m *Metrics) RecordPaymentEvent(ctx context.Context, source, status string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("source", strings.TrimSpace(source)),
		attribute.String("status", strings.TrimSpace(status)),
	)
	m.paymentEvents.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordReconcileSweep counts pending payments picked up by the poller.
func (m *Metrics) RecordReconcileSweep(ctx context.Context, count int) {
	if m == nil {
		return
	}
	m.reconcileSwept.Add(ctx, int64(count))
}

// RecordVerifyDegraded counts verifications served from cached status.
func (m *Metrics) RecordVerifyDegraded(ctx context.Context) {
	if m == nil {
		return
	}
	m.verifyDegraded.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"endpoint":    {},
	"status_code": {},
	"result":      {},
	"source":      {},
	"status":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
