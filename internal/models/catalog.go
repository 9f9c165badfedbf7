package models

import (
	"time"

	"github.com/google/uuid"
)

type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponFixed   CouponType = "fixed"
)

// Coupon. Код хранится нормализованным в верхний регистр.
type Coupon struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Code             string     `gorm:"type:text;not null;uniqueIndex"`
	Type             CouponType `gorm:"type:text;not null"`
	Value            int64      `gorm:"not null"` // percent — проценты, fixed — центы
	MinPurchaseCents *int64
	ValidFrom        time.Time `gorm:"not null"`
	ValidUntil       time.Time `gorm:"not null"`
	UsageLimit       *int
	UsedCount        int  `gorm:"not null;default:0"`
	Active           bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Coupon) TableName() string { return "coupons" }

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

type ProductReview struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:ux_reviews_product_user"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:ux_reviews_product_user"`
	Rating    int          `gorm:"type:int;not null"`
	Comment   *string      `gorm:"type:text"`
	Status    ReviewStatus `gorm:"type:text;not null;default:'pending';index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (ProductReview) TableName() string { return "product_reviews" }

type ProductQuestion struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"type:uuid;not null"`
	Question   string    `gorm:"type:text;not null"`
	Answer     *string   `gorm:"type:text"`
	AnsweredAt *time.Time
	AnsweredBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (ProductQuestion) TableName() string { return "product_questions" }
