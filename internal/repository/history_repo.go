package repository

import (
	"context"

	"fadu-store/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatusHistoryRepo — только Append и чтение: журнал append-only.
type OrderStatusHistoryRepo interface {
	Append(ctx context.Context, entry *models.OrderStatusHistory) error
	BulkAppend(ctx context.Context, entries []models.OrderStatusHistory) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error)
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepo(db *gorm.DB) OrderStatusHistoryRepo { return &historyRepo{db: db} }

func (r *historyRepo) Append(ctx context.Context, entry *models.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepo) BulkAppend(ctx context.Context, entries []models.OrderStatusHistory) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *historyRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error) {
	var rows []models.OrderStatusHistory
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}
