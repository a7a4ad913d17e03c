package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// OrderHandler listado de pedidos y cambio de estado.
type OrderHandler struct {
	limit int
}

// NewOrderHandler construye el handler.
func NewOrderHandler(limit int) *OrderHandler {
	if limit <= 0 {
		limit = 20
	}
	return &OrderHandler{limit: limit}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "página (1..n)"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        status  query  string  false  "filtro por estado"
// @Param        search  query  string  false  "búsqueda"
// @Success      200  {object}  dto.Response{data=store.View[entity.Order]}
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "page y limit deben ser numéricos")
	}
	page.DefaultPage(h.limit)

	filters := entity.Filters{"companyId": GetCompanyID(c)}
	for _, k := range []string{"status", "search"} {
		if v := c.Query(k); v != "" {
			filters[k] = v
		}
	}
	w := GetWorkspace(c)
	if err := w.Orders.Fetch(c.UserContext(), filters, page.Page, page.Limit); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, w.Orders.Snapshot())
}

// LoadMore godoc
// @Summary      Agregar la página siguiente de pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=store.View[entity.Order]}
// @Router       /api/orders/more [post]
func (h *OrderHandler) LoadMore(c *fiber.Ctx) error {
	w := GetWorkspace(c)
	if err := w.Orders.LoadMore(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, w.Orders.Snapshot())
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un pedido
// @Description  Actualización optimista: si el backend falla, el estado anterior se restaura
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "id del pedido"
// @Param        body  body  dto.OrderStatusRequest  true  "status"
// @Success      200   {object}  dto.Response{data=entity.Order}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.OrderStatusRequest
	if err := c.BodyParser(&in); err != nil || in.Status == "" {
		return badRequest(c, "VALIDATION", "status es requerido")
	}
	updated, err := GetWorkspace(c).Orders.UpdateOrderStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, updated)
}
