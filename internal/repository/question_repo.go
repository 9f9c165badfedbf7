package repository

import (
	"context"
	"errors"
	"time"

	"fadu-store/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepo interface {
	Create(ctx context.Context, q *models.ProductQuestion) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductQuestion, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductQuestion, error)
	// ListAll — для админки: сначала без ответа, потом по дате.
	ListAll(ctx context.Context) ([]models.ProductQuestion, error)
	SetAnswer(ctx context.Context, id uuid.UUID, answer string, answeredBy uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type questionRepo struct{ db *gorm.DB }

func NewQuestionRepo(db *gorm.DB) QuestionRepo { return &questionRepo{db: db} }

func (r *questionRepo) Create(ctx context.Context, q *models.ProductQuestion) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *questionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductQuestion, error) {
	var q models.ProductQuestion
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &q, err
}

func (r *questionRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductQuestion, error) {
	var list []models.ProductQuestion
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *questionRepo) ListAll(ctx context.Context) ([]models.ProductQuestion, error) {
	var list []models.ProductQuestion
	err := r.db.WithContext(ctx).
		Order("answer ASC NULLS FIRST").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *questionRepo) SetAnswer(ctx context.Context, id uuid.UUID, answer string, answeredBy uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ProductQuestion{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"answer":      answer,
			"answered_by": answeredBy,
			"answered_at": at,
		}).Error
}

func (r *questionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductQuestion{}, "id = ?", id).Error
}
