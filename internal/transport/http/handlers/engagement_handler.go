package handlers

import (
	"net/http"

	"fadu-store/internal/service"
	"fadu-store/internal/transport/http/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EngagementHandler — публичная часть витрины: купоны, отзывы и вопросы.
type EngagementHandler struct {
	coupons   service.CouponService
	reviews   service.ReviewService
	questions service.QuestionService
	log       *zap.Logger
}

func NewEngagementHandler(coupons service.CouponService, reviews service.ReviewService, questions service.QuestionService, log *zap.Logger) *EngagementHandler {
	return &EngagementHandler{coupons: coupons, reviews: reviews, questions: questions, log: log}
}

// ValidateCoupon godoc
// @Summary Validar cupón contra el total del carrito
// @Tags coupons
// @Accept json
// @Produce json
// @Param body body dto.ValidateCouponRequest true "Cupón"
// @Success 200 {object} dto.ValidateCouponResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/coupons/validate [post]
func (h *EngagementHandler) ValidateCoupon(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Código requerido", nil))
		return
	}

	discount, coupon, err := h.coupons.Evaluate(c.Request.Context(), req.Code, req.CartTotalCents)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateCouponResponse{
		DiscountCents: discount,
		Coupon:        dto.ToCouponResponse(coupon),
	})
}

// ListReviews godoc
// @Summary Opiniones aprobadas de un producto con resumen
// @Tags reviews
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ReviewsWithSummaryResponse
// @Router /api/products/{id}/reviews [get]
func (h *EngagementHandler) ListReviews(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	reviews, summary, err := h.reviews.ApprovedWithSummary(c.Request.Context(), productID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := dto.ReviewsWithSummaryResponse{
		Reviews: make([]dto.ReviewResponse, 0, len(reviews)),
		Summary: summary,
	}
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, dto.ToReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitReview godoc
// @Summary Dejar una opinión (queda pendiente de moderación)
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param body body dto.SubmitReviewRequest true "Opinión"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/products/{id}/reviews [post]
func (h *EngagementHandler) SubmitReview(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("La calificación debe ser de 1 a 5", nil))
		return
	}

	rv, err := h.reviews.Submit(serviceContext(c), productID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReviewResponse(rv))
}

// ListQuestions godoc
// @Summary Preguntas de un producto
// @Tags questions
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} dto.QuestionResponse
// @Router /api/products/{id}/questions [get]
func (h *EngagementHandler) ListQuestions(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	questions, err := h.questions.ListByProduct(c.Request.Context(), productID)
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

// AskQuestion godoc
// @Summary Hacer una pregunta sobre un producto
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param body body dto.AskQuestionRequest true "Pregunta"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/products/{id}/questions [post]
func (h *EngagementHandler) AskQuestion(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("La pregunta debe tener al menos 10 caracteres", nil))
		return
	}

	q, err := h.questions.Ask(serviceContext(c), productID, req.Question)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuestionResponse(q))
}
