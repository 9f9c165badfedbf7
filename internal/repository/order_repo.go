package repository

import (
	"context"
	"errors"
	"time"

	"fadu-store/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	UserID *uuid.UUID
	Status *models.OrderStatus
	Limit  int
	Offset int
}

// PickupStamp — атрибуты, проставляемые при завершении retiro.
type PickupStamp struct {
	PickupDate  time.Time
	PickedUpBy  *string
	PickedUpDni *string
	ValidatedBy string
	ValidatedAt time.Time
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	GetByPickupCode(ctx context.Context, code string) (*models.Order, error)
	SetPickupCode(ctx context.Context, id uuid.UUID, code string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	// CompletePickup — условный UPDATE: заказ переводится в completed только
	// если он всё ещё ready_for_pickup. Возвращает false, если условие не
	// выполнено (защита от двойного retiro).
	CompletePickup(ctx context.Context, id uuid.UUID, stamp PickupStamp) (bool, error)
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)

	WithTx(ctx context.Context, fn func(tx *Repository) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&ord, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByPickupCode(ctx context.Context, code string) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ord, "pickup_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) SetPickupCode(ctx context.Context, id uuid.UUID, code string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND pickup_code IS NULL", id).
		Update("pickup_code", code).Error
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepo) CompletePickup(ctx context.Context, id uuid.UUID, stamp PickupStamp) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.OrderStatusReadyForPickup).
		Updates(map[string]any{
			"status":        models.OrderStatusCompleted,
			"pickup_date":   stamp.PickupDate,
			"picked_up_by":  stamp.PickedUpBy,
			"picked_up_dni": stamp.PickedUpDni,
			"validated_by":  stamp.ValidatedBy,
			"validated_at":  stamp.ValidatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []*models.Order
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Preload("Items").Find(&list).Error
	return list, total, err
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
