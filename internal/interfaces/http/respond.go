package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/workspace"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
)

// httpStatusError errores que traen el status del backend (restclient.APIError).
type httpStatusError interface {
	HTTPStatus() int
}

func drain(w *workspace.Workspace) ([]dto.Toast, string) {
	toasts, route := w.Inbox.Drain()
	if len(toasts) == 0 {
		return nil, route
	}
	out := make([]dto.Toast, len(toasts))
	for i, t := range toasts {
		out[i] = dto.Toast{Level: t.Level, Message: t.Message}
	}
	return out, route
}

// respond envía data dentro del sobre con los avisos pendientes del workspace.
func respond(c *fiber.Ctx, status int, data any) error {
	resp := dto.Response{Data: data}
	if w := GetWorkspace(c); w != nil {
		resp.Toasts, resp.Navigate = drain(w)
	}
	return c.Status(status).JSON(resp)
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// fail traduce el error a status + código y adjunta los avisos pendientes.
func fail(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	resp := dto.ErrorResponse{Code: code, Message: err.Error()}
	if w := GetWorkspace(c); w != nil {
		var se httpStatusError
		if errors.As(err, &se) {
			resp.Message = w.Message(err)
		}
		resp.Toasts, resp.Navigate = drain(w)
	}
	return c.Status(status).JSON(resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrRowNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrFieldNotEditable):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrSlabBoundaryUnset):
		return fiber.StatusUnprocessableEntity, "SLAB_BOUNDARY_UNSET"
	case errors.Is(err, domain.ErrNoValidRows):
		return fiber.StatusUnprocessableEntity, "NO_VALID_ROWS"
	case errors.Is(err, domain.ErrReadOnly):
		return fiber.StatusConflict, "READ_ONLY"
	case errors.Is(err, domain.ErrNoMorePages), errors.Is(err, domain.ErrFirstPage), errors.Is(err, domain.ErrPaginationOff):
		return fiber.StatusConflict, "PAGINATION"
	case errors.Is(err, domain.ErrLoading):
		return fiber.StatusConflict, "LOADING"
	case errors.Is(err, domain.ErrConcurrentSession):
		return fiber.StatusConflict, "CONCURRENT_SESSION"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionClosed):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "BACKEND_TIMEOUT"
	}

	var se httpStatusError
	if errors.As(err, &se) {
		switch s := se.HTTPStatus(); {
		case s == fiber.StatusUnauthorized:
			return s, "UNAUTHORIZED"
		case s == fiber.StatusForbidden:
			return s, "FORBIDDEN"
		case s == fiber.StatusNotFound:
			return s, "NOT_FOUND"
		case s >= 400 && s < 500:
			return s, "BACKEND_REJECTED"
		default:
			return fiber.StatusBadGateway, "BACKEND_ERROR"
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}
