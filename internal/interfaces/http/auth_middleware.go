package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/session"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/workspace"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/jwt"
)

// Locals keys para el workspace y los claims del token en Fiber.
const (
	LocalWorkspace = "workspace"
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
)

// AuthMiddleware valida el Bearer Token del workspace, lo busca (o restaura)
// en el registro y lo deja en c.Locals junto con UserID y CompanyID.
func AuthMiddleware(jwtSecret string, reg *workspace.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		w, err := reg.Get(c.UserContext(), claims.WorkspaceID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionClosed) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code: "SESSION_CLOSED", Message: "la sesión terminó", Navigate: session.LoginRoute,
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STATE_UNAVAILABLE", Message: "no se pudo leer el estado de la sesión"})
		}
		c.Locals(LocalWorkspace, w)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCompanyID, claims.CompanyID)
		return c.Next()
	}
}

// RequireSession corta las peticiones de un workspace sin sesión utilizable.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 409 Conflict → sesión abierta en otro dispositivo; solo se permite logout.
//   - 401 Unauthorized → la sesión se cerró (401 del backend); el workspace se descarta.
func RequireSession(reg *workspace.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w := GetWorkspace(c)
		if w == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "workspace no encontrado en el contexto"})
		}
		switch w.Session.Snapshot().State {
		case session.StateConcurrentSession:
			toasts, route := drain(w)
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "CONCURRENT_SESSION",
				Message: domain.ErrConcurrentSession.Error(),
				Toasts:  toasts, Navigate: route,
			})
		case session.StateAnonymous:
			toasts, route := drain(w)
			reg.Remove(w.ID)
			if route == "" {
				route = session.LoginRoute
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "SESSION_CLOSED",
				Message: domain.ErrSessionClosed.Error(),
				Toasts:  toasts, Navigate: route,
			})
		}
		return c.Next()
	}
}

// GetWorkspace devuelve el workspace del contexto (después del middleware de auth).
func GetWorkspace(c *fiber.Ctx) *workspace.Workspace {
	w, _ := c.Locals(LocalWorkspace).(*workspace.Workspace)
	return w
}

// GetUserID devuelve el UserID del token.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID devuelve la empresa activa: la de la sesión y, si no hay, la del token.
func GetCompanyID(c *fiber.Ctx) string {
	if w := GetWorkspace(c); w != nil {
		if id := w.CompanyID(); id != "" {
			return id
		}
	}
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}
