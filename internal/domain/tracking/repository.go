package tracking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("entry not found")

type Repository interface {
	CreateMeal(ctx context.Context, m *MealLog) error
	ListMeals(ctx context.Context, userID string, from, to time.Time) ([]MealLog, error)
	// DeleteMeal removes a meal owned by userID. Someone else's meal is ErrNotFound.
	DeleteMeal(ctx context.Context, userID string, id uint) error

	CreateHydration(ctx context.Context, h *HydrationLog) error
	ListHydration(ctx context.Context, userID string, from, to time.Time) ([]HydrationLog, error)

	CreateWeight(ctx context.Context, w *WeightLog) error
	ListWeights(ctx context.Context, userID string, limit int) ([]WeightLog, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateMeal(ctx context.Context, m *MealLog) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) ListMeals(ctx context.Context, userID string, from, to time.Time) ([]MealLog, error) {
	var out []MealLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND eaten_at >= ? AND eaten_at < ?", userID, from, to).
		Order("eaten_at ASC").
		Find(&out).Error
	return out, err
}

func (r *gormRepository) DeleteMeal(ctx context.Context, userID string, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&MealLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) CreateHydration(ctx context.Context, h *HydrationLog) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *gormRepository) ListHydration(ctx context.Context, userID string, from, to time.Time) ([]HydrationLog, error) {
	var out []HydrationLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Order("logged_at ASC").
		Find(&out).Error
	return out, err
}

func (r *gormRepository) CreateWeight(ctx context.Context, w *WeightLog) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *gormRepository) ListWeights(ctx context.Context, userID string, limit int) ([]WeightLog, error) {
	if limit <= 0 || limit > 365 {
		limit = 90
	}
	var out []WeightLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
