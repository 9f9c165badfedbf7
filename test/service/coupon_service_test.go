package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fadu-store/internal/models"
	"fadu-store/internal/service"

	"github.com/google/uuid"
)

func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }

// activeCoupon — валидный купон с окном вокруг текущего момента.
func activeCoupon(code string, typ models.CouponType, value int64) *models.Coupon {
	return &models.Coupon{
		ID:         uuid.New(),
		Code:       code,
		Type:       typ,
		Value:      value,
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(time.Hour),
		Active:     true,
	}
}

func couponFixture(coupons ...*models.Coupon) *MockCouponRepo {
	byCode := map[string]*models.Coupon{}
	for _, c := range coupons {
		byCode[c.Code] = c
	}
	return &MockCouponRepo{
		GetByCodeFunc: func(ctx context.Context, code string) (*models.Coupon, error) {
			return byCode[code], nil
		},
	}
}

func TestEvaluate_NotFound(t *testing.T) {
	repo, m := newRepo()
	*m.coupons = *couponFixture()
	svc := service.NewCouponService(repo)

	if _, _, err := svc.Evaluate(context.Background(), "NOPE", 100000); !errors.Is(err, service.ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}

	// неактивный купон неотличим от несуществующего
	c := activeCoupon("OFF", models.CouponFixed, 1000)
	c.Active = false
	*m.coupons = *couponFixture(c)
	if _, _, err := svc.Evaluate(context.Background(), "OFF", 100000); !errors.Is(err, service.ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound for inactive, got %v", err)
	}
}

func TestEvaluate_Window(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewCouponService(repo)

	// ещё не начался
	early := activeCoupon("SOON", models.CouponFixed, 1000)
	early.ValidFrom = time.Now().Add(time.Hour)
	early.ValidUntil = time.Now().Add(2 * time.Hour)
	*m.coupons = *couponFixture(early)
	if _, _, err := svc.Evaluate(context.Background(), "SOON", 100000); !errors.Is(err, service.ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired (not started), got %v", err)
	}

	// уже закончился; истечение проверяется раньше лимитов и минимума
	late := activeCoupon("PAST", models.CouponPercent, 50)
	late.ValidFrom = time.Now().Add(-2 * time.Hour)
	late.ValidUntil = time.Now().Add(-time.Hour)
	late.UsageLimit = intPtr(1)
	late.UsedCount = 1
	late.MinPurchaseCents = int64Ptr(1000000)
	*m.coupons = *couponFixture(late)
	if _, _, err := svc.Evaluate(context.Background(), "PAST", 100); !errors.Is(err, service.ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired (ended), got %v", err)
	}
}

func TestEvaluate_Exhausted(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewCouponService(repo)

	c := activeCoupon("LIMIT", models.CouponFixed, 1000)
	c.UsageLimit = intPtr(3)
	c.UsedCount = 3
	*m.coupons = *couponFixture(c)

	if _, _, err := svc.Evaluate(context.Background(), "LIMIT", 100000); !errors.Is(err, service.ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted, got %v", err)
	}

	// без лимита счётчик не мешает
	c2 := activeCoupon("FREE", models.CouponFixed, 1000)
	c2.UsedCount = 100500
	*m.coupons = *couponFixture(c2)
	if _, _, err := svc.Evaluate(context.Background(), "FREE", 100000); err != nil {
		t.Fatalf("unlimited coupon rejected: %v", err)
	}
}

func TestEvaluate_BelowMinimum(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewCouponService(repo)

	c := activeCoupon("MIN", models.CouponPercent, 10)
	c.MinPurchaseCents = int64Ptr(500000)
	*m.coupons = *couponFixture(c)

	_, _, err := svc.Evaluate(context.Background(), "MIN", 499999)
	var minErr *service.CouponMinimumError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected CouponMinimumError, got %v", err)
	}
	if minErr.MinCents != 500000 {
		t.Fatalf("min cents expected 500000 got %d", minErr.MinCents)
	}
	if !errors.Is(err, service.ErrCouponBelowMinimum) {
		t.Fatalf("CouponMinimumError must match ErrCouponBelowMinimum")
	}

	// ровно минимум проходит
	if _, _, err := svc.Evaluate(context.Background(), "MIN", 500000); err != nil {
		t.Fatalf("exact minimum rejected: %v", err)
	}
}

func TestEvaluate_Discount(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewCouponService(repo)

	cases := []struct {
		name  string
		typ   models.CouponType
		value int64
		cart  int64
		want  int64
	}{
		{"percent 10", models.CouponPercent, 10, 380000, 38000},
		{"percent rounds down", models.CouponPercent, 15, 99, 14},
		{"fixed", models.CouponFixed, 50000, 380000, 50000},
		{"fixed clamped to cart", models.CouponFixed, 500000, 380000, 380000},
		{"percent over 100 clamped", models.CouponPercent, 200, 100000, 100000},
	}
	for _, tc := range cases {
		c := activeCoupon("C", tc.typ, tc.value)
		*m.coupons = *couponFixture(c)
		got, coupon, err := svc.Evaluate(context.Background(), "C", tc.cart)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: discount expected %d got %d", tc.name, tc.want, got)
		}
		if coupon == nil || coupon.ID != c.ID {
			t.Fatalf("%s: coupon not returned", tc.name)
		}
	}
}

func TestEvaluate_NormalizesCode(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewCouponService(repo)

	c := activeCoupon("FADU10", models.CouponPercent, 10)
	*m.coupons = *couponFixture(c)

	if _, _, err := svc.Evaluate(context.Background(), "  fadu10 ", 100000); err != nil {
		t.Fatalf("lowercase code rejected: %v", err)
	}
}

func TestRedeem(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewCouponService(repo)

	id := uuid.New()
	ok := true
	m.coupons.IncrementUsageFunc = func(ctx context.Context, gotID uuid.UUID) (bool, error) {
		if gotID != id {
			t.Fatalf("wrong coupon id")
		}
		return ok, nil
	}

	if err := svc.Redeem(context.Background(), id); err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	ok = false
	if err := svc.Redeem(context.Background(), id); !errors.Is(err, service.ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted, got %v", err)
	}
}

func TestCouponAdmin_RequiresAdmin(t *testing.T) {
	repo, _ := newRepo()
	svc := service.NewCouponService(repo)

	cust := customerCtx(uuid.New())
	in := service.CouponInput{Code: "x", Type: models.CouponFixed, Value: 100}

	if _, err := svc.Create(cust, in); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("Create: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(cust, uuid.New(), in); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("Update: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.List(cust); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("List: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(cust, uuid.New()); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("Delete: expected ErrForbidden, got %v", err)
	}
}

func TestCouponCreate_NormalizesCode(t *testing.T) {
	repo, m := newRepo()
	svc := service.NewCouponService(repo)

	var created *models.Coupon
	m.coupons.CreateFunc = func(ctx context.Context, c *models.Coupon) error {
		created = c
		return nil
	}

	_, err := svc.Create(adminCtx(uuid.New(), "a@b.c"), service.CouponInput{
		Code: " fadu10 ", Type: models.CouponPercent, Value: 10, Active: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Code != "FADU10" {
		t.Fatalf("code expected FADU10 got %q", created.Code)
	}
}
