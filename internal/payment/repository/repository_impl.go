package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/givehope/internal/payment/domain"
	"github.com/smallbiznis/givehope/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, payment *domain.Payment) error {
	return conn.WithContext(ctx).Exec(
		`INSERT INTO payments (id, donation_id, order_id, order_amount, order_currency,
			order_note, customer_name, customer_email, customer_phone,
			payment_session_id, cf_payment_id, payment_status, payment_message,
			payment_method, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.DonationID,
		payment.OrderID,
		payment.OrderAmount,
		payment.OrderCurrency,
		payment.OrderNote,
		payment.CustomerName,
		payment.CustomerEmail,
		payment.CustomerPhone,
		payment.PaymentSessionID,
		payment.CFPaymentID,
		payment.PaymentStatus,
		payment.PaymentMessage,
		payment.PaymentMethod,
		payment.CreatedAt,
		payment.UpdatedAt,
	).Error
}

func (r *repo) FindByOrderID(ctx context.Context, conn *gorm.DB, orderID string) (*domain.Payment, error) {
	var payment domain.Payment
	err := conn.WithContext(ctx).Raw(
		`SELECT id, donation_id, order_id, order_amount, order_currency, order_note,
			customer_name, customer_email, customer_phone, payment_session_id,
			cf_payment_id, payment_status, payment_message, payment_method,
			created_at, updated_at
		 FROM payments WHERE order_id = ?`,
		orderID,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) FindByDonationID(ctx context.Context, conn *gorm.DB, donationID snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	err := conn.WithContext(ctx).Raw(
		`SELECT id, donation_id, order_id, order_amount, order_currency, order_note,
			customer_name, customer_email, customer_phone, payment_session_id,
			cf_payment_id, payment_status, payment_message, payment_method,
			created_at, updated_at
		 FROM payments WHERE donation_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		donationID,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) UpdateSession(ctx context.Context, conn *gorm.DB, id snowflake.ID, sessionID string) error {
	return conn.WithContext(ctx).Exec(
		`UPDATE payments SET payment_session_id = ?, updated_at = ? WHERE id = ?`,
		sessionID,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, conn *gorm.DB, id snowflake.ID, status, message string) error {
	return conn.WithContext(ctx).Exec(
		`UPDATE payments SET payment_status = ?, payment_message = ?, updated_at = ? WHERE id = ?`,
		status,
		message,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) UpdateReconciliation(ctx context.Context, conn *gorm.DB, id snowflake.ID, upd domain.ReconcileUpdate) (bool, error) {
	stmt := conn.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", id)
	if blocked := domain.StatusesOutranking(upd.Status); len(blocked) > 0 {
		stmt = stmt.Where("payment_status NOT IN ?", blocked)
	}
	res := stmt.Updates(map[string]any{
		"payment_status":  upd.Status,
		"payment_message": upd.Message,
		"cf_payment_id":   upd.CFPaymentID,
		"payment_method":  upd.Method,
		"updated_at":      time.Now().UTC(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) ListStalePendingOrders(ctx context.Context, conn *gorm.DB, olderThan time.Time, limit int) ([]string, error) {
	var orderIDs []string
	err := conn.WithContext(ctx).Raw(
		`SELECT order_id FROM payments
		 WHERE payment_status = ? AND updated_at < ?
		 ORDER BY updated_at ASC LIMIT ?`,
		domain.StatusPending,
		olderThan,
		limit,
	).Scan(&orderIDs).Error
	if err != nil {
		return nil, err
	}
	return orderIDs, nil
}

func (r *repo) InsertEvent(ctx context.Context, conn *gorm.DB, event *domain.EventRecord) (bool, error) {
	res := conn.WithContext(ctx).Exec(
		`INSERT INTO payment_events (id, order_id, event_type, event_time, payload, received_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.OrderID,
		event.EventType,
		event.EventTime,
		event.Payload,
		event.ReceivedAt,
	)
	if res.Error != nil {
		if db.IsDuplicateKeyErr(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
