package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// Formatos de exportación de listas de precios.
const (
	FormatPDF = "pdf"
	FormatXML = "xml"
)

// PriceListHandler consultas de listas de precios guardadas y grupos de stock.
type PriceListHandler struct {
	exporters map[string]ports.PriceListExporter
}

// NewPriceListHandler construye el handler. exporters se indexa por formato (pdf, xml).
func NewPriceListHandler(exporters map[string]ports.PriceListExporter) *PriceListHandler {
	return &PriceListHandler{exporters: exporters}
}

// StockGroups godoc
// @Summary      Grupos de stock de la empresa
// @Tags         price-lists
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "filtro por nombre"
// @Success      200  {object}  dto.Response{data=[]entity.StockGroup}
// @Router       /api/stock-groups [get]
func (h *PriceListHandler) StockGroups(c *fiber.Ctx) error {
	w := GetWorkspace(c)
	groups, err := w.API.StockGroups(c.UserContext(), GetCompanyID(c), c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	if groups == nil {
		groups = []entity.StockGroup{}
	}
	return respond(c, fiber.StatusOK, groups)
}

// List godoc
// @Summary      Listas de precios de la empresa
// @Tags         price-lists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=[]entity.PriceList}
// @Router       /api/price-lists [get]
func (h *PriceListHandler) List(c *fiber.Ctx) error {
	w := GetWorkspace(c)
	lists, err := w.API.PriceLists(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return fail(c, err)
	}
	if lists == nil {
		lists = []entity.PriceList{}
	}
	return respond(c, fiber.StatusOK, lists)
}

// GetByID godoc
// @Summary      Lista de precios por id
// @Tags         price-lists
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "id de la lista"
// @Success      200  {object}  dto.Response{data=entity.PriceList}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id} [get]
func (h *PriceListHandler) GetByID(c *fiber.Ctx) error {
	list, err := GetWorkspace(c).API.PriceList(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, list)
}

// Export godoc
// @Summary      Exportar lista de precios guardada
// @Tags         price-lists
// @Produce      application/pdf
// @Produce      application/xml
// @Security     BearerAuth
// @Param        id       path   string  true   "id de la lista"
// @Param        charset  query  string  false  "solo XML: utf-8 (default) o windows-1252"
// @Success      200
// @Success      304
// @Router       /api/price-lists/{id}/pdf [get]
// @Router       /api/price-lists/{id}/xml [get]
func (h *PriceListHandler) Export(format string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := GetWorkspace(c).API.PriceList(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return h.send(c, format, list)
	}
}

// send exporta y escribe el documento. Responde 304 si el ETag coincide.
func (h *PriceListHandler) send(c *fiber.Ctx, format string, list *entity.PriceList) error {
	exp, ok := h.exporters[format]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_FORMAT", Message: "formato no soportado: " + format})
	}
	doc, err := exp.Export(c.UserContext(), list, ports.ExportOptions{
		CompanyName: c.Query("company"),
		Charset:     c.Query("charset"),
	})
	if err != nil {
		return badRequest(c, "EXPORT_FAILED", err.Error())
	}
	if doc.ETag != "" {
		c.Set(fiber.HeaderETag, doc.ETag)
		if c.Get(fiber.HeaderIfNoneMatch) == doc.ETag {
			return c.SendStatus(fiber.StatusNotModified)
		}
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Send(doc.Body)
}
