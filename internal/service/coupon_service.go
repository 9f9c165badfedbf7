package service

import (
	"context"
	"strings"
	"time"

	"fadu-store/internal/models"
	"fadu-store/internal/repository"

	"github.com/google/uuid"
)

type CouponInput struct {
	Code             string
	Type             models.CouponType
	Value            int64
	MinPurchaseCents *int64
	ValidFrom        time.Time
	ValidUntil       time.Time
	UsageLimit       *int
	Active           bool
}

type CouponService interface {
	CouponEvaluator
	// Redeem — явный, отдельно вызываемый шаг учёта использования.
	Redeem(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, in CouponInput) (*models.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, in CouponInput) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type couponService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCouponService(repo *repository.Repository) CouponService {
	return &couponService{repo: repo, now: time.Now}
}

// Evaluate проверяет купон в фиксированном порядке; каждая причина отказа —
// свой тип ошибки. Счётчик использования здесь не трогаем.
func (s *couponService) Evaluate(ctx context.Context, code string, cartTotalCents int64) (int64, *models.Coupon, error) {
	coupon, err := s.repo.Coupons.GetByCode(ctx, NormalizeCouponCode(code))
	if err != nil {
		return 0, nil, err
	}
	if coupon == nil || !coupon.Active {
		return 0, nil, ErrCouponNotFound
	}

	now := s.now()
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
		return 0, nil, ErrCouponExpired
	}

	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return 0, nil, ErrCouponExhausted
	}

	if coupon.MinPurchaseCents != nil && cartTotalCents < *coupon.MinPurchaseCents {
		return 0, nil, &CouponMinimumError{MinCents: *coupon.MinPurchaseCents}
	}

	var discount int64
	if coupon.Type == models.CouponPercent {
		discount = cartTotalCents * coupon.Value / 100
	} else {
		discount = coupon.Value
	}
	// купон никогда не делает итог отрицательным
	if discount > cartTotalCents {
		discount = cartTotalCents
	}

	return discount, coupon, nil
}

func (s *couponService) Redeem(ctx context.Context, id uuid.UUID) error {
	return redeemCoupon(ctx, s.repo, id)
}

// redeemCoupon — условный инкремент used_count. Принимает repo явно, чтобы
// вызов из транзакции создания заказа шёл через тот же код, что и Redeem.
func redeemCoupon(ctx context.Context, repo *repository.Repository, id uuid.UUID) error {
	ok, err := repo.Coupons.IncrementUsage(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCouponExhausted
	}
	return nil
}

func (s *couponService) Create(ctx context.Context, in CouponInput) (*models.Coupon, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	c := &models.Coupon{
		Code:             NormalizeCouponCode(in.Code),
		Type:             in.Type,
		Value:            in.Value,
		MinPurchaseCents: in.MinPurchaseCents,
		ValidFrom:        in.ValidFrom,
		ValidUntil:       in.ValidUntil,
		UsageLimit:       in.UsageLimit,
		Active:           in.Active,
	}
	if err := s.repo.Coupons.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *couponService) Update(ctx context.Context, id uuid.UUID, in CouponInput) (*models.Coupon, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	c, err := s.repo.Coupons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}

	c.Code = NormalizeCouponCode(in.Code)
	c.Type = in.Type
	c.Value = in.Value
	c.MinPurchaseCents = in.MinPurchaseCents
	c.ValidFrom = in.ValidFrom
	c.ValidUntil = in.ValidUntil
	c.UsageLimit = in.UsageLimit
	c.Active = in.Active

	if err := s.repo.Coupons.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *couponService) List(ctx context.Context) ([]models.Coupon, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.Coupons.List(ctx)
}

func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.repo.Coupons.Delete(ctx, id)
}

func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
