package dto

import (
	"time"

	"fadu-store/internal/models"
	"fadu-store/internal/service"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  uint32    `json:"quantity" binding:"required,gt=0"`
	// Цена в центах — снимок из корзины на момент оформления
	PriceCents int64 `json:"priceCents" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required"`
	PaymentMethod string             `json:"paymentMethod" binding:"required"`
	ContactName   string             `json:"contactName" binding:"required"`
	ContactEmail  string             `json:"contactEmail" binding:"required,email"`
	Phone         string             `json:"phone"`
	CouponCode    string             `json:"couponCode"`
}

type CreateOrderResponse struct {
	OrderID       uuid.UUID `json:"orderId"`
	PickupCode    string    `json:"pickupCode"`
	PaymentMethod string    `json:"paymentMethod"`
	// Заглушка чекаута Mercado Pago (интеграция SDK — вне ядра)
	InitPoint string `json:"initPoint,omitempty"`
}

type ChangeStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Note   *string `json:"note"`
}

type ValidatePickupRequest struct {
	PickupCode string `json:"pickupCode" binding:"required"`
}

type CompletePickupRequest struct {
	OrderID     uuid.UUID `json:"orderId" binding:"required"`
	PickedUpBy  *string   `json:"pickedUpBy"`
	PickedUpDni *string   `json:"pickedUpDni"`
}

type CompletePickupResponse struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

type ValidateCouponRequest struct {
	Code           string `json:"code" binding:"required"`
	CartTotalCents int64  `json:"cartTotalCents" binding:"required,gt=0"`
}

type ValidateCouponResponse struct {
	DiscountCents int64          `json:"discountCents"`
	Coupon        CouponResponse `json:"coupon"`
}

type CouponRequest struct {
	Code             string    `json:"code" binding:"required"`
	Type             string    `json:"type" binding:"required,oneof=percent fixed"`
	Value            int64     `json:"value" binding:"required,gt=0"`
	MinPurchaseCents *int64    `json:"minPurchaseCents"`
	ValidFrom        time.Time `json:"validFrom" binding:"required"`
	ValidUntil       time.Time `json:"validUntil" binding:"required"`
	UsageLimit       *int      `json:"usageLimit"`
	Active           bool      `json:"active"`
}

type CouponResponse struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Type             string    `json:"type"`
	Value            int64     `json:"value"`
	MinPurchaseCents *int64    `json:"minPurchaseCents,omitempty"`
	ValidFrom        time.Time `json:"validFrom"`
	ValidUntil       time.Time `json:"validUntil"`
	UsageLimit       *int      `json:"usageLimit,omitempty"`
	UsedCount        int       `json:"usedCount"`
	Active           bool      `json:"active"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type ModerateReviewRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type AskQuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

type AnswerQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	Quantity       uint32    `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	LineTotalCents int64     `json:"lineTotalCents"`
}

type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderResponse struct {
	ID            uuid.UUID              `json:"id"`
	Status        string                 `json:"status"`
	PaymentMethod string                 `json:"paymentMethod"`
	TotalCents    int64                  `json:"totalCents"`
	DiscountCents int64                  `json:"discountCents"`
	CouponCode    *string                `json:"couponCode,omitempty"`
	PickupCode    *string                `json:"pickupCode,omitempty"`
	ContactName   string                 `json:"contactName"`
	ContactEmail  string                 `json:"contactEmail"`
	Phone         string                 `json:"phone,omitempty"`
	PickupDate    *time.Time             `json:"pickupDate,omitempty"`
	PickedUpBy    *string                `json:"pickedUpBy,omitempty"`
	PickedUpDni   *string                `json:"pickedUpDni,omitempty"`
	ValidatedBy   *string                `json:"validatedBy,omitempty"`
	ValidatedAt   *time.Time             `json:"validatedAt,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	Items         []OrderItemResponse    `json:"items,omitempty"`
	History       []HistoryEntryResponse `json:"history,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewsWithSummaryResponse struct {
	Reviews []ReviewResponse      `json:"reviews"`
	Summary service.ReviewSummary `json:"summary"`
}

type QuestionResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProductID  uuid.UUID  `json:"productId"`
	Question   string     `json:"question"`
	Answer     *string    `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func ToOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		TotalCents:    o.TotalCents,
		DiscountCents: o.DiscountCents,
		CouponCode:    o.CouponCode,
		PickupCode:    o.PickupCode,
		ContactName:   o.ContactName,
		ContactEmail:  o.ContactEmail,
		Phone:         o.Phone,
		PickupDate:    o.PickupDate,
		PickedUpBy:    o.PickedUpBy,
		PickedUpDni:   o.PickedUpDni,
		ValidatedBy:   o.ValidatedBy,
		ValidatedAt:   o.ValidatedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			LineTotalCents: it.LineTotalCents,
		})
	}
	for _, h := range o.History {
		resp.History = append(resp.History, HistoryEntryResponse{
			Status:    string(h.Status),
			Note:      h.Note,
			CreatedAt: h.CreatedAt,
		})
	}
	return resp
}

func ToCouponResponse(c *models.Coupon) CouponResponse {
	return CouponResponse{
		ID:               c.ID,
		Code:             c.Code,
		Type:             string(c.Type),
		Value:            c.Value,
		MinPurchaseCents: c.MinPurchaseCents,
		ValidFrom:        c.ValidFrom,
		ValidUntil:       c.ValidUntil,
		UsageLimit:       c.UsageLimit,
		UsedCount:        c.UsedCount,
		Active:           c.Active,
	}
}

func ToReviewResponse(r *models.ProductReview) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func ToQuestionResponse(q *models.ProductQuestion) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		ProductID:  q.ProductID,
		Question:   q.Question,
		Answer:     q.Answer,
		AnsweredAt: q.AnsweredAt,
		CreatedAt:  q.CreatedAt,
	}
}
