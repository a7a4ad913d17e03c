package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
)

// DashboardHandler maneja el endpoint del Dashboard.
type DashboardHandler struct{}

// NewDashboardHandler construye el handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Get devuelve los cuatro widgets del dashboard.
// GET /api/dashboard
//
// Nunca falla como un todo: cada widget que no cargó llega vacío y su nombre
// aparece en failed. El parámetro companyId reemplaza a la empresa activa.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	companyID := c.Query("companyId", GetCompanyID(c))
	if companyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "no hay empresa activa",
		})
	}
	return respond(c, fiber.StatusOK, GetWorkspace(c).Dashboard.GetDashboard(c.UserContext(), companyID))
}
