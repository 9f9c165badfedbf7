package service

import (
	"context"

	"fadu-store/internal/models"

	"github.com/google/uuid"
)

type CreateOrderItem struct {
	ProductID      uuid.UUID
	Quantity       uint32
	UnitPriceCents int64
}

type CreateOrderInput struct {
	Items         []CreateOrderItem
	PaymentMethod models.PaymentMethod
	ContactName   string
	ContactEmail  string
	Phone         string
	CouponCode    string
}

type CreateOrderResult struct {
	Order      *models.Order
	PickupCode string
}

type ListFilter struct {
	UserID *uuid.UUID
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type CompletePickupInput struct {
	OrderID     uuid.UUID
	PickedUpBy  *string
	PickedUpDni *string
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	// Transition — смена статуса админом, с проверкой графа переходов.
	Transition(ctx context.Context, id uuid.UUID, status models.OrderStatus, note *string) (*models.Order, error)
	// ValidatePickup — фаза 1: найти заказ по коду и проверить готовность.
	ValidatePickup(ctx context.Context, pickupCode string) (*models.Order, error)
	// CompletePickup — фаза 2: условный перевод в completed (ровно один раз).
	CompletePickup(ctx context.Context, in CompletePickupInput) (*models.Order, error)
}

// CouponEvaluator — read-only проверка купона; инкремент использования
// выполняется отдельно, внутри транзакции создания заказа.
type CouponEvaluator interface {
	Evaluate(ctx context.Context, code string, cartTotalCents int64) (int64, *models.Coupon, error)
}
