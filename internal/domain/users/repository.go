package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

// Repository provides the user operations the HTTP layer needs.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByGoogleSub(ctx context.Context, sub string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateSubscriptionStatus(ctx context.Context, id, tier string) error
	UpdateName(ctx context.Context, id, name string) error
	UpdatePassword(ctx context.Context, id, hash string) error
	LinkGoogleSub(ctx context.Context, id, sub string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a user repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// Ids that are not UUIDs cannot match a row; Postgres would reject the cast.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormRepository) FindByGoogleSub(ctx context.Context, sub string) (*User, error) {
	return r.first(ctx, "google_sub = ?", sub)
}

func (r *gormRepository) first(ctx context.Context, query string, arg interface{}) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *gormRepository) List(ctx context.Context) ([]User, error) {
	var out []User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

// UpdateSubscriptionStatus overwrites the tier column only.
func (r *gormRepository) UpdateSubscriptionStatus(ctx context.Context, id, tier string) error {
	return r.updateColumn(ctx, id, "subscription_status", tier)
}

func (r *gormRepository) UpdateName(ctx context.Context, id, name string) error {
	return r.updateColumn(ctx, id, "name", name)
}

func (r *gormRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.updateColumn(ctx, id, "password", hash)
}

func (r *gormRepository) LinkGoogleSub(ctx context.Context, id, sub string) error {
	return r.updateColumn(ctx, id, "google_sub", sub)
}

// Writes touch one column. A full-row save would carry a stale
// subscription_status over a concurrent tier update.
func (r *gormRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	if !validID(id) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
