package billing

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Repository provides DB operations for payments and webhook logs.
type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	FindPaymentByChargeID(ctx context.Context, chargeID string) (*Payment, error)
	MarkPaymentPaid(ctx context.Context, chargeID string, paidAt time.Time) error
	ListPaymentsByUser(ctx context.Context, userID string) ([]Payment, error)
	ListPayments(ctx context.Context) ([]Payment, error)
	AppendWebhookLog(ctx context.Context, l *WebhookLog) error
	ListWebhookLogs(ctx context.Context, limit int) ([]WebhookLog, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreatePayment(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) FindPaymentByChargeID(ctx context.Context, chargeID string) (*Payment, error) {
	var p Payment
	if err := r.db.WithContext(ctx).Where("charge_id = ?", chargeID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) MarkPaymentPaid(ctx context.Context, chargeID string, paidAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Payment{}).
		Where("charge_id = ?", chargeID).
		Updates(map[string]interface{}{
			"status":  PaymentPaid,
			"paid_at": paidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *gormRepository) ListPaymentsByUser(ctx context.Context, userID string) ([]Payment, error) {
	var out []Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *gormRepository) ListPayments(ctx context.Context) ([]Payment, error) {
	var out []Payment
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *gormRepository) AppendWebhookLog(ctx context.Context, l *WebhookLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *gormRepository) ListWebhookLogs(ctx context.Context, limit int) ([]WebhookLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []WebhookLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}
