package service

import (
	"errors"
	"fmt"

	"fadu-store/internal/models"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrOrderNotFound        = errors.New("order not found")
	ErrEmptyItems           = errors.New("empty items")
	ErrInvalidItems         = errors.New("invalid items")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	ErrInvalidStatus     = errors.New("invalid status")
	ErrIllegalTransition = errors.New("illegal status transition")

	ErrPickupCodeRequired = errors.New("pickup code required")
	// ErrPickupNotReady возвращается и при повторном retiro: завершённый
	// заказ уже не в ready_for_pickup.
	ErrPickupNotReady = errors.New("order is not ready for pickup")

	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")
	ErrCouponBelowMinimum = errors.New("cart total below coupon minimum")

	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong  = errors.New("comment too long")
	ErrDuplicateReview = errors.New("review already exists for this product")
	ErrReviewNotFound  = errors.New("review not found")

	ErrQuestionNotFound = errors.New("question not found")
	ErrQuestionTooShort = errors.New("question too short")
	ErrAnswerTooShort   = errors.New("answer too short")
	ErrAlreadyAnswered  = errors.New("question already answered")
)

// PickupStateError сохраняет текущий статус заказа: транспорт показывает его
// оператору ("estado: completed" и есть защита от повторного retiro).
type PickupStateError struct {
	Status models.OrderStatus
}

func (e *PickupStateError) Error() string {
	return fmt.Sprintf("order is not ready for pickup (status %s)", e.Status)
}

func (e *PickupStateError) Is(target error) bool { return target == ErrPickupNotReady }

// CouponMinimumError несёт порог, чтобы сообщение содержало сумму в песо.
type CouponMinimumError struct {
	MinCents int64
}

func (e *CouponMinimumError) Error() string {
	return fmt.Sprintf("cart total below coupon minimum of %d cents", e.MinCents)
}

func (e *CouponMinimumError) Is(target error) bool { return target == ErrCouponBelowMinimum }
