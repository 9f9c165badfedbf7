package models

// Статус заказа — строковый тип; значения попадают в БД и письма как есть.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var AllOrderStatuses = []OrderStatus{
	OrderStatusPendingPayment,
	OrderStatusPaid,
	OrderStatusPreparing,
	OrderStatusReadyForPickup,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func KnownStatus(s OrderStatus) bool {
	for _, st := range AllOrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// transitions — явный граф допустимых переходов: только вперёд по цепочке
// pending_payment → paid → preparing → ready_for_pickup → completed,
// плюс cancelled из любого нетерминального статуса. Из completed и
// cancelled выхода нет: забранный заказ нельзя "расфулфилить".
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReadyForPickup, OrderStatusCancelled},
	OrderStatusReadyForPickup: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:      {},
	OrderStatusCancelled:      {},
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}
