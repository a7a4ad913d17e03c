package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// CustomerHandler CRUD de clientes sobre el Resource Store del workspace.
type CustomerHandler struct {
	limit int
}

// NewCustomerHandler construye el handler. limit es el tamaño de página por defecto.
func NewCustomerHandler(limit int) *CustomerHandler {
	if limit <= 0 {
		limit = 20
	}
	return &CustomerHandler{limit: limit}
}

// List godoc
// @Summary      Listar clientes
// @Description  Reemplaza la lista del store con la página pedida. Una respuesta obsoleta se descarta
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "página (1..n)"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        search  query  string  false  "búsqueda"
// @Success      200  {object}  dto.Response{data=store.View[entity.Customer]}
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "page y limit deben ser numéricos")
	}
	page.DefaultPage(h.limit)

	filters := entity.Filters{"companyId": GetCompanyID(c)}
	if s := c.Query("search"); s != "" {
		filters["search"] = s
	}
	w := GetWorkspace(c)
	if err := w.Customers.Fetch(c.UserContext(), filters, page.Page, page.Limit); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, w.Customers.Snapshot())
}

// View godoc
// @Summary      Estado actual del store de clientes (sin llamar al backend)
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=store.View[entity.Customer]}
// @Router       /api/customers/view [get]
func (h *CustomerHandler) View(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, GetWorkspace(c).Customers.Snapshot())
}

// LoadMore godoc
// @Summary      Agregar la página siguiente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=store.View[entity.Customer]}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/more [post]
func (h *CustomerHandler) LoadMore(c *fiber.Ctx) error {
	w := GetWorkspace(c)
	if err := w.Customers.LoadMore(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, w.Customers.Snapshot())
}

// Search godoc
// @Summary      Búsqueda con debounce
// @Description  Programa la búsqueda; el resultado se lee luego con /api/customers/view
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CustomerSearchRequest  true  "term"
// @Success      202   {object}  dto.Response{data=store.View[entity.Customer]}
// @Router       /api/customers/search [post]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	var in dto.CustomerSearchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	w := GetWorkspace(c)
	w.SearchCustomers(in.Term, nil)
	return respond(c, fiber.StatusAccepted, w.Customers.Snapshot())
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  object  true  "campos del cliente"
// @Success      201   {object}  dto.Response{data=entity.Customer}
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	payload, err := bodyMap(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if _, ok := payload["companyId"]; !ok {
		payload["companyId"] = GetCompanyID(c)
	}
	created, err := GetWorkspace(c).Customers.Add(c.UserContext(), payload)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, created)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id del cliente"
// @Param        body  body  object  true  "campos a cambiar"
// @Success      200   {object}  dto.Response{data=entity.Customer}
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	payload, err := bodyMap(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	updated, err := GetWorkspace(c).Customers.Update(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, updated)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id del cliente"
// @Success      200  {object}  dto.Response
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := GetWorkspace(c).Customers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, nil)
}

func bodyMap(c *fiber.Ctx) (map[string]any, error) {
	payload := map[string]any{}
	if err := c.BodyParser(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
