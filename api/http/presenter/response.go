package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/logger"
)

// ApiError is the JSON body of every error response.
type ApiError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func NewApiError(code int, detail string) *ApiError {
	return &ApiError{Code: code, Message: http.StatusText(code), Detail: detail}
}

var (
	ErrBadRequest         = func(detail string) *ApiError { return NewApiError(http.StatusBadRequest, detail) }
	ErrUnauthorized       = func(detail string) *ApiError { return NewApiError(http.StatusUnauthorized, detail) }
	ErrNotFound           = func(detail string) *ApiError { return NewApiError(http.StatusNotFound, detail) }
	ErrConflict           = func(detail string) *ApiError { return NewApiError(http.StatusConflict, detail) }
	ErrTooLarge           = func(detail string) *ApiError { return NewApiError(http.StatusRequestEntityTooLarge, detail) }
	ErrUnprocessable      = func(detail string) *ApiError { return NewApiError(http.StatusUnprocessableEntity, detail) }
	ErrInternalServer     = func(detail string) *ApiError { return NewApiError(http.StatusInternalServerError, detail) }
	ErrBadGateway         = func(detail string) *ApiError { return NewApiError(http.StatusBadGateway, detail) }
	ErrServiceUnavailable = func(detail string) *ApiError { return NewApiError(http.StatusServiceUnavailable, detail) }
)

func (e *ApiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Error writes an ApiError body stamped with the request id.
func Error(c *fiber.Ctx, status int, detail string) error {
	return APIError(c, NewApiError(status, detail))
}

func APIError(c *fiber.Ctx, e *ApiError) error {
	out := *e
	out.RequestID = logger.GetRequestID(c.UserContext())
	return JSON(c, out.Code, out)
}

// ErrorHandler turns errors returned from handlers and middleware into ApiError
// bodies. Anything not already an HTTP error is logged and reported as 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return APIError(c, apiErr)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		detail := fe.Message
		if detail == http.StatusText(fe.Code) {
			detail = ""
		}
		return Error(c, fe.Code, detail)
	}
	slog.ErrorContext(c.UserContext(), "unhandled error",
		"method", c.Method(),
		"path", c.Path(),
		"error", err)
	return Error(c, fiber.StatusInternalServerError, "")
}
