package repository

import (
	"context"
	"errors"

	"fadu-store/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponRepo interface {
	Create(ctx context.Context, c *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	Update(ctx context.Context, c *models.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementUsage увеличивает used_count на единицу только если лимит ещё
	// не исчерпан. Возвращает false, если лимит достигнут (или купон исчез).
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)
}

type couponRepo struct{ db *gorm.DB }

func NewCouponRepo(db *gorm.DB) CouponRepo { return &couponRepo{db: db} }

func (r *couponRepo) Create(ctx context.Context, c *models.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *couponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := r.db.WithContext(ctx).First(&c, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *couponRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var c models.Coupon
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *couponRepo) List(ctx context.Context) ([]models.Coupon, error) {
	var list []models.Coupon
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *couponRepo) Update(ctx context.Context, c *models.Coupon) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *couponRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Coupon{}, "id = ?", id).Error
}

func (r *couponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
