package service

import (
	"context"
	"fmt"
	"time"

	"fadu-store/internal/models"
	"fadu-store/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	repo    *repository.Repository
	coupons CouponEvaluator
	events  EventBus
	now     func() time.Time
}

func NewOrderService(repo *repository.Repository, coupons CouponEvaluator, events EventBus) OrderService {
	return &orderService{
		repo:    repo,
		coupons: coupons,
		events:  events,
		now:     time.Now,
	}
}

func requireAuth(ctx context.Context) (uuid.UUID, Role, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, "", ErrUnauthorized
	}
	role, _ := RoleFromContext(ctx) // если нет — считаем customer по умолчанию
	if role == "" {
		role = RoleCustomer
	}
	return uid, role, nil
}

func requireAdmin(ctx context.Context) (uuid.UUID, error) {
	uid, role, err := requireAuth(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if role != RoleAdmin {
		return uuid.Nil, ErrForbidden
	}
	return uid, nil
}

// computeTotal валидирует позиции и суммирует их. Любая некорректная позиция
// отклоняет весь запрос.
func computeTotal(items []CreateOrderItem) (int64, error) {
	var total int64
	for _, it := range items {
		if it.ProductID == uuid.Nil || it.Quantity == 0 || it.UnitPriceCents <= 0 {
			return 0, ErrInvalidItems
		}
		total += int64(it.Quantity) * it.UnitPriceCents
	}
	return total, nil
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if !models.ValidPaymentMethod(in.PaymentMethod, role == RoleAdmin) {
		return nil, ErrInvalidPaymentMethod
	}

	total, err := computeTotal(in.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()

	var (
		discount int64
		coupon   *models.Coupon
	)
	if in.CouponCode != "" {
		discount, coupon, err = s.coupons.Evaluate(ctx, in.CouponCode, total)
		if err != nil {
			return nil, err
		}
	}

	isTest := in.PaymentMethod == models.PaymentTest

	initialStatus := models.OrderStatusPendingPayment
	if isTest {
		initialStatus = models.OrderStatusReadyForPickup
	}

	createNote := fmt.Sprintf("Pedido creado. Método: %s", in.PaymentMethod)
	if coupon != nil {
		createNote += fmt.Sprintf(". Cupón %s (-$%s)", coupon.Code, FormatARS(discount))
	}

	var order *models.Order
	err = s.repo.Orders.WithTx(ctx, func(tx *repository.Repository) error {
		ord := &models.Order{
			UserID:        userID,
			Status:        initialStatus,
			PaymentMethod: in.PaymentMethod,
			TotalCents:    total - discount,
			DiscountCents: discount,
			ContactName:   in.ContactName,
			ContactEmail:  in.ContactEmail,
			Phone:         in.Phone,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if coupon != nil {
			ord.CouponCode = &coupon.Code
		}

		if err := tx.Orders.Create(ctx, ord); err != nil {
			return err
		}

		// pickup_seq присваивает БД; перечитываем строку, чтобы собрать код
		created, err := tx.Orders.GetByID(ctx, ord.ID)
		if err != nil {
			return err
		}
		if created == nil {
			return ErrOrderNotFound
		}
		code := GeneratePickupCode(now, created.PickupSeq)
		if err := tx.Orders.SetPickupCode(ctx, ord.ID, code); err != nil {
			return err
		}

		itemsDB := make([]models.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			itemsDB = append(itemsDB, models.OrderItem{
				OrderID:        ord.ID,
				ProductID:      it.ProductID,
				Quantity:       it.Quantity,
				UnitPriceCents: it.UnitPriceCents,
				LineTotalCents: int64(it.Quantity) * it.UnitPriceCents,
				CreatedAt:      now,
			})
		}
		if err := tx.Items.BulkCreate(ctx, itemsDB); err != nil {
			return err
		}

		if err := tx.History.BulkAppend(ctx, s.creationHistory(ord.ID, isTest, createNote, now)); err != nil {
			return err
		}

		// учёт использования — в той же транзакции: лимит могли выбрать
		// между Evaluate и подтверждением
		if coupon != nil {
			if err := redeemCoupon(ctx, tx, coupon.ID); err != nil {
				return err
			}
		}

		order, err = tx.Orders.GetByID(ctx, ord.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil && order.PickupCode != nil {
		evItems := make([]OrderItemEvent, 0, len(order.Items))
		for _, it := range order.Items {
			evItems = append(evItems, OrderItemEvent{
				ProductID:      it.ProductID,
				Quantity:       it.Quantity,
				UnitPriceCents: it.UnitPriceCents,
				LineTotalCents: it.LineTotalCents,
			})
		}
		_ = s.events.PublishOrderConfirmed(ctx, OrderConfirmedEvent{
			OrderID:      order.ID,
			PickupCode:   *order.PickupCode,
			ContactName:  order.ContactName,
			ContactEmail: order.ContactEmail,
			Items:        evItems,
			TotalCents:   order.TotalCents,
			CreatedAt:    order.CreatedAt,
		})
		if isTest {
			_ = s.events.PublishPickupReady(ctx, PickupReadyEvent{
				OrderID:      order.ID,
				PickupCode:   *order.PickupCode,
				ContactName:  order.ContactName,
				ContactEmail: order.ContactEmail,
				ReadyAt:      now,
			})
		}
	}

	res := &CreateOrderResult{Order: order}
	if order.PickupCode != nil {
		res.PickupCode = *order.PickupCode
	}
	return res, nil
}

// creationHistory — записи журнала при создании. Для тестовой оплаты заказ
// сразу проходит всю цепочку, журнал это отражает четырьмя записями.
func (s *orderService) creationHistory(orderID uuid.UUID, isTest bool, createNote string, now time.Time) []models.OrderStatusHistory {
	note := func(s string) *string { return &s }

	if !isTest {
		return []models.OrderStatusHistory{
			{OrderID: orderID, Status: models.OrderStatusPendingPayment, Note: note(createNote), CreatedAt: now},
		}
	}
	return []models.OrderStatusHistory{
		{OrderID: orderID, Status: models.OrderStatusPendingPayment, Note: note("Pedido creado (pago de prueba)"), CreatedAt: now},
		{OrderID: orderID, Status: models.OrderStatusPaid, Note: note("Pago simulado (admin)"), CreatedAt: now.Add(time.Millisecond)},
		{OrderID: orderID, Status: models.OrderStatusPreparing, Note: note("Preparación simulada"), CreatedAt: now.Add(2 * time.Millisecond)},
		{OrderID: orderID, Status: models.OrderStatusReadyForPickup, Note: note("Listo para retiro (simulación)"), CreatedAt: now.Add(3 * time.Millisecond)},
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if role == RoleAdmin {
		ord, err = s.repo.Orders.GetByID(ctx, id)
	} else {
		ord, err = s.repo.Orders.GetByIDForUser(ctx, id, userID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}

	if role != RoleAdmin {
		f.UserID = &userID
	}

	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		UserID: f.UserID,
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) Transition(ctx context.Context, id uuid.UUID, status models.OrderStatus, noteText *string) (*models.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if !models.KnownStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if !models.CanTransition(ord.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, ord.Status, status)
	}

	// completed достижим только через CompletePickup: там ставятся отметки
	// retiro и работает CAS-гарантия
	if status == models.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: use complete-pickup", ErrIllegalTransition)
	}

	err = s.repo.Orders.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Orders.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		return tx.History.Append(ctx, &models.OrderStatusHistory{
			OrderID:   id,
			Status:    status,
			Note:      noteText,
			CreatedAt: s.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.events != nil && status == models.OrderStatusReadyForPickup && updated.PickupCode != nil {
		_ = s.events.PublishPickupReady(ctx, PickupReadyEvent{
			OrderID:      updated.ID,
			PickupCode:   *updated.PickupCode,
			ContactName:  updated.ContactName,
			ContactEmail: updated.ContactEmail,
			ReadyAt:      s.now(),
		})
	}

	return updated, nil
}

func (s *orderService) ValidatePickup(ctx context.Context, pickupCode string) (*models.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	code := NormalizePickupCode(pickupCode)
	if code == "" {
		return nil, ErrPickupCodeRequired
	}

	ord, err := s.repo.Orders.GetByPickupCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status != models.OrderStatusReadyForPickup {
		// в том числе главный кейс: completed-заказ второй раз не проходит
		return nil, &PickupStateError{Status: ord.Status}
	}
	return ord, nil
}

func (s *orderService) CompletePickup(ctx context.Context, in CompletePickupInput) (*models.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	staffEmail, _ := EmailFromContext(ctx)

	now := s.now()
	err := s.repo.Orders.WithTx(ctx, func(tx *repository.Repository) error {
		ok, err := tx.Orders.CompletePickup(ctx, in.OrderID, repository.PickupStamp{
			PickupDate:  now,
			PickedUpBy:  in.PickedUpBy,
			PickedUpDni: in.PickedUpDni,
			ValidatedBy: staffEmail,
			ValidatedAt: now,
		})
		if err != nil {
			return err
		}
		if !ok {
			ord, err := tx.Orders.GetByID(ctx, in.OrderID)
			if err != nil {
				return err
			}
			if ord == nil {
				return ErrOrderNotFound
			}
			return &PickupStateError{Status: ord.Status}
		}

		note := pickupNote(in.PickedUpBy, in.PickedUpDni)
		return tx.History.Append(ctx, &models.OrderStatusHistory{
			OrderID:   in.OrderID,
			Status:    models.OrderStatusCompleted,
			Note:      &note,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Orders.GetByID(ctx, in.OrderID)
}

func pickupNote(pickedUpBy, pickedUpDni *string) string {
	by := "N/A"
	if pickedUpBy != nil && *pickedUpBy != "" {
		by = *pickedUpBy
	}
	note := "Retirado por: " + by
	if pickedUpDni != nil && *pickedUpDni != "" {
		note += " (DNI: " + *pickedUpDni + ")"
	}
	return note
}
