package models

import (
	"time"

	"github.com/google/uuid"
)

// Способ оплаты — строковый тип (как OrderStatus)
type PaymentMethod string

const (
	PaymentMercadoPago PaymentMethod = "mercadopago"
	PaymentTransfer    PaymentMethod = "transfer"
	// PaymentTest доступен только админам: создаёт заказ сразу
	// ready_for_pickup для проверки retiro-флоу без реальной оплаты.
	PaymentTest PaymentMethod = "test"
)

func ValidPaymentMethod(m PaymentMethod, isAdmin bool) bool {
	switch m {
	case PaymentMercadoPago, PaymentTransfer:
		return true
	case PaymentTest:
		return isAdmin
	}
	return false
}

type Order struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	Status        OrderStatus   `gorm:"type:text;not null;default:'pending_payment';index"`
	PaymentMethod PaymentMethod `gorm:"type:text;not null"`
	TotalCents    int64         `gorm:"not null;default:0"`
	DiscountCents int64         `gorm:"not null;default:0"`
	CouponCode    *string       `gorm:"type:text"`

	ContactName  string `gorm:"type:text;not null"`
	ContactEmail string `gorm:"type:text;not null"`
	Phone        string `gorm:"type:text"`

	// Номер для кода retiro назначает БД (bigserial), а не подсчёт заказов.
	PickupSeq  int64   `gorm:"autoIncrement;uniqueIndex;->"`
	PickupCode *string `gorm:"type:text;uniqueIndex"`

	PickupDate  *time.Time
	PickedUpBy  *string `gorm:"type:text"`
	PickedUpDni *string `gorm:"type:text"`
	ValidatedBy *string `gorm:"type:text"`
	ValidatedAt *time.Time

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items   []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem — снимок позиции на момент покупки: цена фиксируется при создании
// и не пересчитывается при изменении каталога.
type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null"`
	Quantity       uint32    `gorm:"type:int;not null"`
	UnitPriceCents int64     `gorm:"not null"`
	LineTotalCents int64     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderStatusHistory — append-only журнал переходов, по одной записи на
// переход (включая создание). Никогда не изменяется и не удаляется.
type OrderStatusHistory struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status    OrderStatus `gorm:"type:text;not null"`
	Note      *string     `gorm:"type:text"`
	CreatedAt time.Time   `gorm:"not null;default:now();index"`
}

func (OrderStatusHistory) TableName() string { return "order_status_history" }
