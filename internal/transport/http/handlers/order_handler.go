package handlers

import (
	"net/http"

	"fadu-store/internal/models"
	"fadu-store/internal/service"
	"fadu-store/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Заглушка чекаута Mercado Pago: интеграция SDK — внешний сервис.
const mercadoPagoStubInitPoint = "https://www.mercadopago.com.ar/checkout/v1/redirect?pref_id=DEMO"

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// Create godoc
// @Summary Crear pedido
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Pedido"
// @Success 200 {object} dto.CreateOrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create order request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Items inválidos", nil))
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.CreateOrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.PriceCents,
		})
	}

	res, err := h.orders.CreateOrder(serviceContext(c), service.CreateOrderInput{
		Items:         items,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		Phone:         req.Phone,
		CouponCode:    req.CouponCode,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := dto.CreateOrderResponse{
		OrderID:       res.Order.ID,
		PickupCode:    res.PickupCode,
		PaymentMethod: string(res.Order.PaymentMethod),
	}
	if res.Order.PaymentMethod == models.PaymentMercadoPago {
		resp.InitPoint = mercadoPagoStubInitPoint
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Pedidos del usuario
// @Tags orders
// @Produce json
// @Success 200 {object} dto.OrderListResponse
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var f service.ListFilter
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		f.Status = &st
	}

	orders, total, err := h.orders.ListOrders(serviceContext(c), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := dto.OrderListResponse{Total: total, Orders: make([]dto.OrderResponse, 0, len(orders))}
	for i := range orders {
		resp.Orders = append(resp.Orders, dto.ToOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Detalle de pedido con items e historial
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	ord, err := h.orders.GetOrder(serviceContext(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(ord))
}
