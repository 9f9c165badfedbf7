package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fadu-store/internal/service"
	"fadu-store/internal/transport/http/dto"
	"fadu-store/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// serviceContext переносит пользователя из gin-контекста в context.Context
// сервисного слоя.
func serviceContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if v, ok := c.Get(middleware.CtxUserID); ok {
		if uid, ok := v.(uuid.UUID); ok {
			ctx = service.WithUserID(ctx, uid)
		}
	}
	if v, ok := c.Get(middleware.CtxUserRole); ok {
		if role, ok := v.(string); ok && role != "" {
			ctx = service.WithRole(ctx, service.Role(role))
		}
	}
	if v, ok := c.Get(middleware.CtxUserEmail); ok {
		if email, ok := v.(string); ok && email != "" {
			ctx = service.WithEmail(ctx, email)
		}
	}
	return ctx
}

// respondError отображает ошибки сервисного слоя на HTTP-статусы и
// испанские сообщения, которые видит клиент витрины.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var pickupErr *service.PickupStateError
	var minErr *service.CouponMinimumError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("No autorizado"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("No autorizado"))

	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("Pedido no encontrado"))
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("Opinión no encontrada"))
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("Pregunta no encontrada"))

	case errors.Is(err, service.ErrEmptyItems):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Carrito vacío", nil))
	case errors.Is(err, service.ErrInvalidItems):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Items inválidos", nil))
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Método de pago inválido", nil))

	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Estado inválido", nil))
	case errors.Is(err, service.ErrIllegalTransition):
		resp := dto.NewValidationError("Transición de estado no permitida", nil)
		resp.Details = err.Error()
		c.JSON(http.StatusBadRequest, resp)

	case errors.As(err, &pickupErr):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(
			fmt.Sprintf("El pedido no está listo para retirar (estado: %s)", pickupErr.Status), nil))
	case errors.Is(err, service.ErrPickupCodeRequired):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Código de retiro requerido", nil))

	case errors.Is(err, service.ErrCouponNotFound):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Cupón inválido", nil))
	case errors.Is(err, service.ErrCouponExpired):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Cupón expirado", nil))
	case errors.Is(err, service.ErrCouponExhausted):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("Cupón agotado", nil))
	case errors.As(err, &minErr):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(
			fmt.Sprintf("Compra mínima de $%s requerida", service.FormatARS(minErr.MinCents)), nil))

	case errors.Is(err, service.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("La calificación debe ser de 1 a 5", nil))
	case errors.Is(err, service.ErrCommentTooLong):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("El comentario no puede superar los 500 caracteres", nil))
	case errors.Is(err, service.ErrDuplicateReview):
		c.JSON(http.StatusConflict, dto.NewConflictError("Ya dejaste una opinión para este producto"))

	case errors.Is(err, service.ErrQuestionTooShort):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("La pregunta debe tener al menos 10 caracteres", nil))
	case errors.Is(err, service.ErrAnswerTooShort):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("La respuesta debe tener al menos 5 caracteres", nil))
	case errors.Is(err, service.ErrAlreadyAnswered):
		c.JSON(http.StatusConflict, dto.NewConflictError("La pregunta ya fue respondida"))

	default:
		log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("ID inválido", nil))
		return uuid.Nil, false
	}
	return id, true
}
