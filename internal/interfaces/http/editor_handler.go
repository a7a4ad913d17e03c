package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/pricelist"
	pl "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/pricelist"
)

// EditorHandler endpoints del editor de listas de precios. Cada editor vive
// en el workspace y se direcciona por id.
type EditorHandler struct {
	lists *PriceListHandler
}

// NewEditorHandler construye el handler; reutiliza los exportadores de lists.
func NewEditorHandler(lists *PriceListHandler) *EditorHandler {
	return &EditorHandler{lists: lists}
}

// editorResponse estado del editor más el resultado puntual de la acción.
type editorResponse struct {
	Editor pricelist.View  `json:"editor"`
	Row    *pl.Row         `json:"row,omitempty"`
	Enter  *pl.EnterResult `json:"enter,omitempty"`
}

func (h *EditorHandler) editor(c *fiber.Ctx) (*pricelist.Editor, error) {
	return GetWorkspace(c).Editor(c.Params("id"))
}

// Open godoc
// @Summary      Abrir editor
// @Description  create carga la primera página del grupo de stock; edit/view cargan la lista guardada
// @Tags         price-list-editors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.OpenEditorRequest  true  "modo y cabecera"
// @Success      201   {object}  dto.Response{data=editorResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/price-list-editors [post]
func (h *EditorHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenEditorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	mode, ok := pricelist.ParseMode(in.Mode)
	if !ok {
		return badRequest(c, "VALIDATION", "mode debe ser create, edit o view")
	}
	ed, err := GetWorkspace(c).OpenEditor(c.UserContext(), pricelist.Params{
		Mode:        mode,
		PriceListID: in.PriceListID,
		Header: pl.Header{
			CompanyID:      in.CompanyID,
			ClientID:       in.ClientID,
			PriceLevel:     in.PriceLevel,
			ApplicableFrom: in.ApplicableFrom,
			StockGroupID:   in.StockGroupID,
			StockGroupName: in.StockGroupName,
		},
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, editorResponse{Editor: ed.Snapshot()})
}

// Get godoc
// @Summary      Estado del editor
// @Tags         price-list-editors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id del editor"
// @Success      200  {object}  dto.Response{data=editorResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-list-editors/{id} [get]
func (h *EditorHandler) Get(c *fiber.Ctx) error {
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, editorResponse{Editor: ed.Snapshot()})
}

// EditCell godoc
// @Summary      Editar celda
// @Description  Sanea el texto; en lessThanQty propaga fromQty al tramo siguiente del mismo artículo
// @Tags         price-list-editors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "id del editor"
// @Param        body  body  dto.EditCellRequest  true  "rowId, field, value"
// @Success      200   {object}  dto.Response{data=editorResponse}
// @Router       /api/price-list-editors/{id}/cells [patch]
func (h *EditorHandler) EditCell(c *fiber.Ctx) error {
	var in dto.EditCellRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	f, ok := pl.ParseField(in.Field)
	if !ok {
		return badRequest(c, "VALIDATION", "campo desconocido: "+in.Field)
	}
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	row, err := ed.SetField(in.RowID, f, in.Value)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, editorResponse{Editor: ed.Snapshot(), Row: &row})
}

// Blur godoc
// @Summary      Celda pierde el foco
// @Tags         price-list-editors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string           true  "id del editor"
// @Param        body  body  dto.BlurRequest  true  "rowId, field"
// @Success      200   {object}  dto.Response{data=editorResponse}
// @Router       /api/price-list-editors/{id}/blur [post]
func (h *EditorHandler) Blur(c *fiber.Ctx) error {
	var in dto.BlurRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	f, ok := pl.ParseField(in.Field)
	if !ok {
		return badRequest(c, "VALIDATION", "campo desconocido: "+in.Field)
	}
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	row, err := ed.Blur(in.RowID, f)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, editorResponse{Editor: ed.Snapshot(), Row: &row})
}

// Enter godoc
// @Summary      Enter sobre una celda
// @Description  Mueve el foco a la siguiente celda editable; en discount agrega un tramo
// @Tags         price-list-editors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string            true  "id del editor"
// @Param        body  body  dto.EnterRequest  true  "row, field"
// @Success      200   {object}  dto.Response{data=editorResponse}
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/price-list-editors/{id}/enter [post]
func (h *EditorHandler) Enter(c *fiber.Ctx) error {
	var in dto.EnterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	f, ok := pl.ParseField(in.Field)
	if !ok {
		return badRequest(c, "VALIDATION", "campo desconocido: "+in.Field)
	}
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	res, err := ed.Enter(pl.Cell{Row: in.Row, Field: f})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, editorResponse{Editor: ed.Snapshot(), Enter: &res})
}

// Append godoc
// @Summary      Agregar tramo
// @Description  Requiere un lessThanQty definido y mayor a fromQty en la fila origen
// @Tags         price-list-editors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "id del editor"
// @Param        body  body  dto.AppendRequest  true  "rowId"
// @Success      200   {object}  dto.Response{data=editorResponse}
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/price-list-editors/{id}/slabs [post]
func (h *EditorHandler) Append(c *fiber.Ctx) error {
	var in dto.AppendRequest
	if err := c.BodyParser(&in); err != nil || in.RowID == "" {
		return badRequest(c, "VALIDATION", "rowId es requerido")
	}
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	row, err := ed.AppendSlab(in.RowID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, editorResponse{Editor: ed.Snapshot(), Row: &row})
}

// Remove godoc
// @Summary      Quitar fila
// @Tags         price-list-editors
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  string  true  "id del editor"
// @Param        index  path  int     true  "posición de la fila"
// @Success      200    {object}  dto.Response{data=editorResponse}
// @Router       /api/price-list-editors/{id}/rows/{index} [delete]
func (h *EditorHandler) Remove(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "VALIDATION", "index inválido")
	}
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	row, err := ed.RemoveAt(index)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, editorResponse{Editor: ed.Snapshot(), Row: &row})
}

// NextPage godoc
// @Summary      Página siguiente (solo create)
// @Tags         price-list-editors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id del editor"
// @Success      200  {object}  dto.Response{data=editorResponse}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/price-list-editors/{id}/next [post]
func (h *EditorHandler) NextPage(c *fiber.Ctx) error {
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	if err := ed.NextPage(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, editorResponse{Editor: ed.Snapshot()})
}

// PrevPage godoc
// @Summary      Página anterior (solo create)
// @Tags         price-list-editors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id del editor"
// @Success      200  {object}  dto.Response{data=editorResponse}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/price-list-editors/{id}/prev [post]
func (h *EditorHandler) PrevPage(c *fiber.Ctx) error {
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	if err := ed.PrevPage(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, editorResponse{Editor: ed.Snapshot()})
}

// Save godoc
// @Summary      Guardar página actual
// @Description  Envía solo las filas válidas; sin filas válidas responde 422 sin llamar al backend
// @Tags         price-list-editors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id del editor"
// @Success      200  {object}  dto.Response{data=pricelist.SaveResult}
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/price-list-editors/{id}/save [post]
func (h *EditorHandler) Save(c *fiber.Ctx) error {
	ed, err := h.editor(c)
	if err != nil {
		return fail(c, err)
	}
	res, err := ed.Save(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, res)
}

// Export godoc
// @Summary      Exportar el contenido actual del editor
// @Tags         price-list-editors
// @Produce      application/pdf
// @Produce      application/xml
// @Security     BearerAuth
// @Param        id   path  string  true  "id del editor"
// @Success      200
// @Router       /api/price-list-editors/{id}/pdf [get]
// @Router       /api/price-list-editors/{id}/xml [get]
func (h *EditorHandler) Export(format string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ed, err := h.editor(c)
		if err != nil {
			return fail(c, err)
		}
		return h.lists.send(c, format, ed.Document())
	}
}

// Close godoc
// @Summary      Cerrar editor
// @Tags         price-list-editors
// @Security     BearerAuth
// @Param        id   path  string  true  "id del editor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-list-editors/{id} [delete]
func (h *EditorHandler) Close(c *fiber.Ctx) error {
	w := GetWorkspace(c)
	if !w.CloseEditor(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "editor no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
