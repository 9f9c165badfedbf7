package handlers

import (
	"errors"
	"net/http"

	"fadu-store/internal/models"
	"fadu-store/internal/repository"
	"fadu-store/internal/service"
	"fadu-store/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	orders    service.OrderService
	coupons   service.CouponService
	reviews   service.ReviewService
	questions service.QuestionService
	log       *zap.Logger
}

func NewAdminHandler(orders service.OrderService, coupons service.CouponService, reviews service.ReviewService, questions service.QuestionService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{orders: orders, coupons: coupons, reviews: reviews, questions: questions, log: log}
}

// ListOrders godoc
// @Summary Todos los pedidos (admin), filtro por estado
// @Tags admin
// @Produce json
// @Success 200 {object} dto.OrderListResponse
// @Router /api/admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
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

// ChangeStatus godoc
// @Summary Cambiar estado del pedido
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body dto.ChangeStatusRequest true "Nuevo estado"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/admin/orders/{id}/status [patch]
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Estado requerido", nil))
		return
	}

	ord, err := h.orders.Transition(serviceContext(c), id, models.OrderStatus(req.Status), req.Note)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(ord))
}

// ValidatePickup godoc
// @Summary Validar código de retiro (fase 1)
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.ValidatePickupRequest true "Código"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/admin/validate-pickup [post]
func (h *AdminHandler) ValidatePickup(c *gin.Context) {
	var req dto.ValidatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Código de retiro requerido", nil))
		return
	}

	ord, err := h.orders.ValidatePickup(serviceContext(c), req.PickupCode)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(ord))
}

// CompletePickup godoc
// @Summary Completar retiro (fase 2, exactamente una vez)
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.CompletePickupRequest true "Retiro"
// @Success 200 {object} dto.CompletePickupResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/admin/complete-pickup [post]
func (h *AdminHandler) CompletePickup(c *gin.Context) {
	var req dto.CompletePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("ID de pedido requerido", nil))
		return
	}

	ord, err := h.orders.CompletePickup(serviceContext(c), service.CompletePickupInput{
		OrderID:     req.OrderID,
		PickedUpBy:  req.PickedUpBy,
		PickedUpDni: req.PickedUpDni,
	})
	if err != nil {
		// повторное завершение — конфликт, а не обычная ошибка валидации
		var stateErr *service.PickupStateError
		if errors.As(err, &stateErr) {
			c.JSON(http.StatusConflict, dto.NewConflictError(
				"El pedido ya no está listo para retirar (estado: "+string(stateErr.Status)+")"))
			return
		}
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.CompletePickupResponse{Success: true, Order: dto.ToOrderResponse(ord)})
}

// --- Cupones ---

func (h *AdminHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.coupons.List(serviceContext(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	resp := make([]dto.CouponResponse, 0, len(coupons))
	for i := range coupons {
		resp = append(resp, dto.ToCouponResponse(&coupons[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var req dto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Datos de cupón inválidos", nil))
		return
	}

	coupon, err := h.coupons.Create(serviceContext(c), couponInput(req))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

func (h *AdminHandler) UpdateCoupon(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Datos de cupón inválidos", nil))
		return
	}

	coupon, err := h.coupons.Update(serviceContext(c), id, couponInput(req))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

func (h *AdminHandler) DeleteCoupon(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.coupons.Delete(serviceContext(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func couponInput(req dto.CouponRequest) service.CouponInput {
	return service.CouponInput{
		Code:             req.Code,
		Type:             models.CouponType(req.Type),
		Value:            req.Value,
		MinPurchaseCents: req.MinPurchaseCents,
		ValidFrom:        req.ValidFrom,
		ValidUntil:       req.ValidUntil,
		UsageLimit:       req.UsageLimit,
		Active:           req.Active,
	}
}

// --- Moderación de reseñas ---

func (h *AdminHandler) ListReviews(c *gin.Context) {
	var f repository.ReviewListFilter
	if s := c.Query("status"); s != "" {
		st := models.ReviewStatus(s)
		f.Status = &st
	}

	reviews, total, err := h.reviews.ListForModeration(serviceContext(c), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.ToReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, gin.H{"reviews": resp, "total": total})
}

func (h *AdminHandler) ModerateReview(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Estado inválido", nil))
		return
	}

	rv, err := h.reviews.Moderate(serviceContext(c), id, models.ReviewStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReviewResponse(rv))
}

// --- Preguntas ---

func (h *AdminHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questions.ListAll(serviceContext(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, dto.ToQuestionResponse(&questions[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) AnswerQuestion(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("La respuesta debe tener al menos 5 caracteres", nil))
		return
	}

	q, err := h.questions.Answer(serviceContext(c), id, req.Answer)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuestionResponse(q))
}

func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.questions.Delete(serviceContext(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
