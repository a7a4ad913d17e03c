package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/workspace"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/config"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/jwt"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

// AuthHandler maneja login, logout y el estado de la sesión.
type AuthHandler struct {
	reg *workspace.Registry
	jwt config.JWTConfig
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(reg *workspace.Registry, jwtCfg config.JWTConfig, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{reg: reg, jwt: jwtCfg, log: log.Component("http.auth")}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Autentica contra el backend y abre un workspace nuevo
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Response{data=dto.LoginResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}

	w := h.reg.Open()
	user, err := w.Session.Login(c.UserContext(), entity.Credentials{Email: in.Email, Password: in.Password})
	if err != nil {
		msg := w.Session.Snapshot().ErrorMessage
		h.reg.Remove(w.ID)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOGIN_FAILED", Message: msg})
	}

	tok, err := jwt.Generate(h.jwt.Secret, w.ID, user.ID, user.CompanyID, h.jwt.Issuer, h.jwt.Expiration)
	if err != nil {
		h.log.Error().Err(err).Msg("firmar token de workspace")
		w.Session.Logout(c.UserContext())
		h.reg.Remove(w.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo emitir el token"})
	}
	w.Hydrate(c.UserContext())

	c.Locals(LocalWorkspace, w)
	return respond(c, fiber.StatusOK, dto.LoginResponse{
		Token:       tok,
		WorkspaceID: w.ID,
		ExpiresAt:   time.Now().Add(time.Duration(h.jwt.Expiration) * time.Minute),
		User:        user,
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Avisa al backend y limpia todo el estado del workspace aunque el backend falle
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	w := GetWorkspace(c)
	w.Session.Logout(c.UserContext())
	h.reg.Remove(w.ID)
	return respond(c, fiber.StatusOK, nil)
}

// LogoutEverywhere godoc
// @Summary      Cerrar sesión en todos los dispositivos
// @Description  Única acción disponible cuando la cuenta se abrió en otro dispositivo
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response
// @Router       /api/session/logout-everywhere [post]
func (h *AuthHandler) LogoutEverywhere(c *fiber.Ctx) error {
	w := GetWorkspace(c)
	h.log.Info().Str("workspace_id", w.ID).Bool("concurrent", w.Session.Snapshot().NewDeviceLogin).Msg("logout en todos los dispositivos")
	return h.Logout(c)
}

// Session godoc
// @Summary      Estado de la sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=session.View}
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, GetWorkspace(c).Session.Snapshot())
}

// Companies godoc
// @Summary      Empresas del usuario
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=[]entity.Company}
// @Router       /api/session/companies [get]
func (h *AuthHandler) Companies(c *fiber.Ctx) error {
	w := GetWorkspace(c)
	companies, err := w.API.Companies(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	if companies == nil {
		companies = []entity.Company{}
	}
	return respond(c, fiber.StatusOK, companies)
}

// SetCompany godoc
// @Summary      Cambiar empresa activa
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CompanyRequest  true  "companyId"
// @Success      200   {object}  dto.Response{data=session.View}
// @Router       /api/session/company [put]
func (h *AuthHandler) SetCompany(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil || in.CompanyID == "" {
		return badRequest(c, "VALIDATION", "companyId es requerido")
	}
	w := GetWorkspace(c)
	if err := w.Session.SetDefaultCompany(c.UserContext(), in.CompanyID); err != nil {
		return fail(c, err)
	}
	w.Customers.Clear()
	w.Orders.Clear()
	return respond(c, fiber.StatusOK, w.Session.Snapshot())
}

// Inbox godoc
// @Summary      Avisos pendientes
// @Description  Entrega los avisos generados fuera de una petición (búsquedas con debounce)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response
// @Router       /api/inbox [get]
func (h *AuthHandler) Inbox(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, nil)
}
