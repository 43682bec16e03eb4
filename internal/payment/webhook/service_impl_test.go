package webhook_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	paymentdomain "github.com/smallbiznis/givehope/internal/payment/domain"
	paymentrepo "github.com/smallbiznis/givehope/internal/payment/repository"
	paymentwebhook "github.com/smallbiznis/givehope/internal/payment/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingReconciler struct {
	requests []paymentdomain.ReconcileRequest
	err      error
}

func (r *recordingReconciler) InitiateOrder(context.Context, paymentdomain.InitiateOrderRequest) (paymentdomain.InitiateOrderResult, error) {
	return paymentdomain.InitiateOrderResult{}, errors.New("not implemented")
}

func (r *recordingReconciler) Verify(context.Context, paymentdomain.VerifyRequest) (paymentdomain.VerifyResult, error) {
	return paymentdomain.VerifyResult{}, errors.New("not implemented")
}

func (r *recordingReconciler) Reconcile(_ context.Context, req paymentdomain.ReconcileRequest) error {
	r.requests = append(r.requests, req)
	return r.err
}

const webhookPayload = `{
	"data": {
		"order": {"order_id": "order_1700000000_123"},
		"payment": {
			"cf_payment_id": 5114910,
			"payment_status": "SUCCESS",
			"payment_message": "Transaction successful",
			"payment_method": {"upi": {"channel": "collect", "upi_id": "asha@upi"}}
		}
	},
	"type": "PAYMENT_SUCCESS_WEBHOOK",
	"event_time": "2023-08-11T18:02:46+05:30"
}`

func TestIngestReconcilesPayment(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(40)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	reconciler := &recordingReconciler{}
	svc := newWebhookService(db, node, reconciler)

	if err := svc.Ingest(ctx, []byte(webhookPayload)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if len(reconciler.requests) != 1 {
		t.Fatalf("expected one reconcile call, got %d", len(reconciler.requests))
	}
	req := reconciler.requests[0]
	if req.OrderID != "order_1700000000_123" {
		t.Fatalf("unexpected order id %q", req.OrderID)
	}
	if req.Status != paymentdomain.StatusSuccess {
		t.Fatalf("unexpected status %q", req.Status)
	}
	if req.CFPaymentID != "5114910" {
		t.Fatalf("unexpected cf payment id %q", req.CFPaymentID)
	}
	if req.Source != "webhook" {
		t.Fatalf("unexpected source %q", req.Source)
	}

	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM payment_events").Scan(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one event record, got %d", count)
	}
}

func TestIngestIgnoresDuplicateDelivery(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(41)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	reconciler := &recordingReconciler{}
	svc := newWebhookService(db, node, reconciler)

	for i := 0; i < 3; i++ {
		if err := svc.Ingest(ctx, []byte(webhookPayload)); err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
	}

	if len(reconciler.requests) != 1 {
		t.Fatalf("expected one reconcile call for redelivered event, got %d", len(reconciler.requests))
	}

	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM payment_events").Scan(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one event record, got %d", count)
	}
}

func TestIngestUnknownOrderReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(42)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	reconciler := &recordingReconciler{err: paymentdomain.ErrNotFound}
	svc := newWebhookService(db, node, reconciler)

	err = svc.Ingest(ctx, []byte(webhookPayload))
	if !errors.Is(err, paymentdomain.ErrNotFound) {
		t.Fatalf("expected not found for unknown order, got %v", err)
	}
}

func TestIngestRejectsMalformedPayload(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(43)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := newWebhookService(db, node, &recordingReconciler{})

	cases := [][]byte{
		[]byte("not json"),
		[]byte(`{"data":{"order":{},"payment":{"payment_status":"SUCCESS"}}}`),
		[]byte(`{"data":{"order":{"order_id":"order_1"},"payment":{}}}`),
	}
	for _, payload := range cases {
		if err := svc.Ingest(ctx, payload); !errors.Is(err, paymentdomain.ErrInvalidPayload) {
			t.Fatalf("expected invalid payload for %s, got %v", payload, err)
		}
	}
}

func newWebhookService(db *gorm.DB, node *snowflake.Node, svc paymentdomain.Service) paymentdomain.WebhookService {
	return paymentwebhook.New(paymentwebhook.Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    paymentrepo.Provide(),
		Service: svc,
	})
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_hook_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE payment_events (
			id BIGINT PRIMARY KEY,
			order_id TEXT NOT NULL,
			event_type TEXT NOT NULL DEFAULT '',
			event_time TEXT NOT NULL DEFAULT '',
			payload TEXT,
			received_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX idx_payment_events_delivery ON payment_events(order_id, event_type, event_time)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}
