package dto

// BaseError — универсальный формат ошибки API.
// Code — машинный код (snake_case), Message — человекочитаемый текст
// (для валидационных ошибок и состояний заказа — на испанском, как видит
// его клиент).
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

type ValidationErrorResponse BaseError
type ConflictErrorResponse BaseError
type UnauthorizedErrorResponse BaseError
type ForbiddenErrorResponse BaseError
type NotFoundErrorResponse BaseError
type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
