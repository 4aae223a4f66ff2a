package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrCodeTaken    = errors.New("invite code already in use")
)

type Repository interface {
	CreateRoom(ctx context.Context, r *Room) error
	FindRoom(ctx context.Context, id string) (*Room, error)
	FindRoomByCode(ctx context.Context, code string) (*Room, error)
	ListRoomsForUser(ctx context.Context, userID string) ([]Room, error)

	// AddMember is idempotent; joined is false when the user was already in.
	AddMember(ctx context.Context, roomID, userID string) (joined bool, err error)
	IsMember(ctx context.Context, roomID, userID string) (bool, error)

	CreateMealPlan(ctx context.Context, p *MealPlan) error
	ListMealPlansForPatient(ctx context.Context, patientID string) ([]MealPlan, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository expects a *gorm.DB opened with TranslateError so that unique
// violations surface as gorm.ErrDuplicatedKey.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateRoom(ctx context.Context, room *Room) error {
	err := r.db.WithContext(ctx).Omit("Members").Create(room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCodeTaken
	}
	return err
}

func (r *gormRepository) FindRoom(ctx context.Context, id string) (*Room, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRoomNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *gormRepository) FindRoomByCode(ctx context.Context, code string) (*Room, error) {
	return r.first(ctx, "invite_code = ?", NormalizeCode(code))
}

func (r *gormRepository) first(ctx context.Context, query string, arg interface{}) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Preload("Members").Where(query, arg).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *gormRepository) ListRoomsForUser(ctx context.Context, userID string) ([]Room, error) {
	var out []Room
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("owner_id = ?", userID).
		Or("id IN (?)", r.db.Model(&RoomMember{}).Select("room_id").Where("user_id = ?", userID)).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *gormRepository) AddMember(ctx context.Context, roomID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&RoomMember{RoomID: roomID, UserID: userID})
	if res.Error != nil {
		return false, fmt.Errorf("add room member: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *gormRepository) CreateMealPlan(ctx context.Context, p *MealPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) ListMealPlansForPatient(ctx context.Context, patientID string) ([]MealPlan, error) {
	var out []MealPlan
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
