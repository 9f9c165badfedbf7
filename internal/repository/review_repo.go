package repository

import (
	"context"
	"errors"

	"fadu-store/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewListFilter struct {
	Status *models.ReviewStatus
	Limit  int
	Offset int
}

type ReviewRepo interface {
	Create(ctx context.Context, rv *models.ProductReview) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductReview, error)
	ExistsForProductUser(ctx context.Context, productID, userID uuid.UUID) (bool, error)
	ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error)
	List(ctx context.Context, f ReviewListFilter) ([]models.ProductReview, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReviewStatus) error
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) ReviewRepo { return &reviewRepo{db: db} }

func (r *reviewRepo) Create(ctx context.Context, rv *models.ProductReview) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductReview, error) {
	var rv models.ProductReview
	err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rv, err
}

func (r *reviewRepo) ExistsForProductUser(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.ProductReview{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *reviewRepo) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error) {
	var list []models.ProductReview
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, models.ReviewApproved).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *reviewRepo) List(ctx context.Context, f ReviewListFilter) ([]models.ProductReview, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ProductReview{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.ProductReview
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *reviewRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReviewStatus) error {
	return r.db.WithContext(ctx).Model(&models.ProductReview{}).
		Where("id = ?", id).
		Update("status", status).Error
}
