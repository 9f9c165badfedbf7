package service_test

import (
	"context"
	"time"

	"fadu-store/internal/models"
	"fadu-store/internal/repository"
	"fadu-store/internal/service"

	"github.com/google/uuid"
)

// Моки для всех зависимостей сервисов

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc          func(ctx context.Context, o *models.Order) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUserFunc  func(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	GetByPickupCodeFunc func(ctx context.Context, code string) (*models.Order, error)
	SetPickupCodeFunc   func(ctx context.Context, id uuid.UUID, code string) error
	UpdateStatusFunc    func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	CompletePickupFunc  func(ctx context.Context, id uuid.UUID, stamp repository.PickupStamp) (bool, error)
	ListFunc            func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	WithTxFunc          func(ctx context.Context, fn func(tx *repository.Repository) error) error
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByPickupCode(ctx context.Context, code string) (*models.Order, error) {
	if m.GetByPickupCodeFunc != nil {
		return m.GetByPickupCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockOrderRepo) SetPickupCode(ctx context.Context, id uuid.UUID, code string) error {
	if m.SetPickupCodeFunc != nil {
		return m.SetPickupCodeFunc(ctx, id, code)
	}
	return nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderRepo) CompletePickup(ctx context.Context, id uuid.UUID, stamp repository.PickupStamp) (bool, error) {
	if m.CompletePickupFunc != nil {
		return m.CompletePickupFunc(ctx, id, stamp)
	}
	return false, nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(nil)
}

// MockOrderItemRepo
type MockOrderItemRepo struct {
	BulkCreateFunc   func(ctx context.Context, items []models.OrderItem) error
	GetByOrderIDFunc func(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

// MockHistoryRepo
type MockHistoryRepo struct {
	AppendFunc      func(ctx context.Context, entry *models.OrderStatusHistory) error
	BulkAppendFunc  func(ctx context.Context, entries []models.OrderStatusHistory) error
	ListByOrderFunc func(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error)
}

func (m *MockHistoryRepo) Append(ctx context.Context, entry *models.OrderStatusHistory) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}

func (m *MockHistoryRepo) BulkAppend(ctx context.Context, entries []models.OrderStatusHistory) error {
	if m.BulkAppendFunc != nil {
		return m.BulkAppendFunc(ctx, entries)
	}
	return nil
}

func (m *MockHistoryRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error) {
	if m.ListByOrderFunc != nil {
		return m.ListByOrderFunc(ctx, orderID)
	}
	return nil, nil
}

// MockCouponRepo
type MockCouponRepo struct {
	CreateFunc         func(ctx context.Context, c *models.Coupon) error
	GetByCodeFunc      func(ctx context.Context, code string) (*models.Coupon, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	ListFunc           func(ctx context.Context) ([]models.Coupon, error)
	UpdateFunc         func(ctx context.Context, c *models.Coupon) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	IncrementUsageFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockCouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockCouponRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCouponRepo) List(ctx context.Context) ([]models.Coupon, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockCouponRepo) Update(ctx context.Context, c *models.Coupon) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *MockCouponRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCouponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.IncrementUsageFunc != nil {
		return m.IncrementUsageFunc(ctx, id)
	}
	return true, nil
}

// MockReviewRepo
type MockReviewRepo struct {
	CreateFunc                func(ctx context.Context, rv *models.ProductReview) error
	GetByIDFunc               func(ctx context.Context, id uuid.UUID) (*models.ProductReview, error)
	ExistsForProductUserFunc  func(ctx context.Context, productID, userID uuid.UUID) (bool, error)
	ListApprovedByProductFunc func(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error)
	ListFunc                  func(ctx context.Context, f repository.ReviewListFilter) ([]models.ProductReview, int64, error)
	UpdateStatusFunc          func(ctx context.Context, id uuid.UUID, status models.ReviewStatus) error
}

func (m *MockReviewRepo) Create(ctx context.Context, rv *models.ProductReview) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rv)
	}
	return nil
}

func (m *MockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductReview, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReviewRepo) ExistsForProductUser(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	if m.ExistsForProductUserFunc != nil {
		return m.ExistsForProductUserFunc(ctx, productID, userID)
	}
	return false, nil
}

func (m *MockReviewRepo) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error) {
	if m.ListApprovedByProductFunc != nil {
		return m.ListApprovedByProductFunc(ctx, productID)
	}
	return nil, nil
}

func (m *MockReviewRepo) List(ctx context.Context, f repository.ReviewListFilter) ([]models.ProductReview, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockReviewRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReviewStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockQuestionRepo
type MockQuestionRepo struct {
	CreateFunc        func(ctx context.Context, q *models.ProductQuestion) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.ProductQuestion, error)
	ListByProductFunc func(ctx context.Context, productID uuid.UUID) ([]models.ProductQuestion, error)
	ListAllFunc       func(ctx context.Context) ([]models.ProductQuestion, error)
	SetAnswerFunc     func(ctx context.Context, id uuid.UUID, answer string, answeredBy uuid.UUID, at time.Time) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *MockQuestionRepo) Create(ctx context.Context, q *models.ProductQuestion) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, q)
	}
	return nil
}

func (m *MockQuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductQuestion, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockQuestionRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductQuestion, error) {
	if m.ListByProductFunc != nil {
		return m.ListByProductFunc(ctx, productID)
	}
	return nil, nil
}

func (m *MockQuestionRepo) ListAll(ctx context.Context) ([]models.ProductQuestion, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockQuestionRepo) SetAnswer(ctx context.Context, id uuid.UUID, answer string, answeredBy uuid.UUID, at time.Time) error {
	if m.SetAnswerFunc != nil {
		return m.SetAnswerFunc(ctx, id, answer, answeredBy, at)
	}
	return nil
}

func (m *MockQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockEventBus
type MockEventBus struct {
	PublishOrderConfirmedFunc func(ctx context.Context, e service.OrderConfirmedEvent) error
	PublishPickupReadyFunc    func(ctx context.Context, e service.PickupReadyEvent) error
}

func (m *MockEventBus) PublishOrderConfirmed(ctx context.Context, e service.OrderConfirmedEvent) error {
	if m.PublishOrderConfirmedFunc != nil {
		return m.PublishOrderConfirmedFunc(ctx, e)
	}
	return nil
}

func (m *MockEventBus) PublishPickupReady(ctx context.Context, e service.PickupReadyEvent) error {
	if m.PublishPickupReadyFunc != nil {
		return m.PublishPickupReadyFunc(ctx, e)
	}
	return nil
}

// MockCouponEvaluator
type MockCouponEvaluator struct {
	EvaluateFunc func(ctx context.Context, code string, cartTotalCents int64) (int64, *models.Coupon, error)
}

func (m *MockCouponEvaluator) Evaluate(ctx context.Context, code string, cartTotalCents int64) (int64, *models.Coupon, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, code, cartTotalCents)
	}
	return 0, nil, nil
}

type mocks struct {
	orders    *MockOrderRepo
	items     *MockOrderItemRepo
	history   *MockHistoryRepo
	coupons   *MockCouponRepo
	reviews   *MockReviewRepo
	questions *MockQuestionRepo
}

// newRepo собирает Repository из моков; WithTx просто вызывает fn на том же
// наборе, транзакционность здесь не проверяем.
func newRepo() (*repository.Repository, *mocks) {
	m := &mocks{
		orders:    &MockOrderRepo{},
		items:     &MockOrderItemRepo{},
		history:   &MockHistoryRepo{},
		coupons:   &MockCouponRepo{},
		reviews:   &MockReviewRepo{},
		questions: &MockQuestionRepo{},
	}
	repo := &repository.Repository{
		Orders:    m.orders,
		Items:     m.items,
		History:   m.history,
		Coupons:   m.coupons,
		Reviews:   m.reviews,
		Questions: m.questions,
	}
	m.orders.WithTxFunc = func(ctx context.Context, fn func(tx *repository.Repository) error) error {
		return fn(repo)
	}
	return repo, m
}

func customerCtx(uid uuid.UUID) context.Context {
	ctx := service.WithUserID(context.Background(), uid)
	return service.WithRole(ctx, service.RoleCustomer)
}

func adminCtx(uid uuid.UUID, email string) context.Context {
	ctx := service.WithUserID(context.Background(), uid)
	ctx = service.WithRole(ctx, service.RoleAdmin)
	return service.WithEmail(ctx, email)
}

func strPtr(s string) *string { return &s }
