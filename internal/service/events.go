package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       uint32    `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	LineTotalCents int64     `json:"line_total_cents"`
}

type OrderConfirmedEvent struct {
	OrderID      uuid.UUID        `json:"order_id"`
	PickupCode   string           `json:"pickup_code"`
	ContactName  string           `json:"contact_name"`
	ContactEmail string           `json:"contact_email"`
	Items        []OrderItemEvent `json:"items"`
	TotalCents   int64            `json:"total_cents"`
	CreatedAt    time.Time        `json:"created_at"`
}

type PickupReadyEvent struct {
	OrderID      uuid.UUID `json:"order_id"`
	PickupCode   string    `json:"pickup_code"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	ReadyAt      time.Time `json:"ready_at"`
}

type EventBus interface {
	PublishOrderConfirmed(ctx context.Context, e OrderConfirmedEvent) error
	PublishPickupReady(ctx context.Context, e PickupReadyEvent) error
}
