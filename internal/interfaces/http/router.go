package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/dto"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/workspace"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/config"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry  *workspace.Registry
	JWT       config.JWTConfig
	Exporters map[string]ports.PriceListExporter
	ListLimit int
	Log       *logger.Logger
}

// NewApp construye la aplicación Fiber con la configuración común a main y tests.
// Immutable porque los stores conservan filtros tomados de la query.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Registry, deps.JWT, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Con token de workspace; válidas aun con la bandera de sesión concurrente
	withWorkspace := AuthMiddleware(deps.JWT.Secret, deps.Registry)
	api.Post("/auth/logout", withWorkspace, authHandler.Logout)
	api.Get("/session", withWorkspace, authHandler.Session)
	api.Post("/session/logout-everywhere", withWorkspace, authHandler.LogoutEverywhere)

	// Rutas protegidas (sesión activa)
	protected := api.Group("/", withWorkspace, RequireSession(deps.Registry))
	protected.Get("/session/companies", authHandler.Companies)
	protected.Put("/session/company", authHandler.SetCompany)
	protected.Get("/inbox", authHandler.Inbox)

	// Listas de precios y grupos de stock
	lists := NewPriceListHandler(deps.Exporters)
	protected.Get("/stock-groups", lists.StockGroups)
	priceLists := protected.Group("/price-lists")
	priceLists.Get("/", lists.List)
	priceLists.Get("/:id", lists.GetByID)
	priceLists.Get("/:id/pdf", lists.Export(FormatPDF))
	priceLists.Get("/:id/xml", lists.Export(FormatXML))

	// Editores de listas de precios
	editorHandler := NewEditorHandler(lists)
	editors := protected.Group("/price-list-editors")
	editors.Post("/", editorHandler.Open)
	editors.Get("/:id", editorHandler.Get)
	editors.Delete("/:id", editorHandler.Close)
	editors.Patch("/:id/cells", editorHandler.EditCell)
	editors.Post("/:id/blur", editorHandler.Blur)
	editors.Post("/:id/enter", editorHandler.Enter)
	editors.Post("/:id/slabs", editorHandler.Append)
	editors.Delete("/:id/rows/:index", editorHandler.Remove)
	editors.Post("/:id/next", editorHandler.NextPage)
	editors.Post("/:id/prev", editorHandler.PrevPage)
	editors.Post("/:id/save", editorHandler.Save)
	editors.Get("/:id/pdf", editorHandler.Export(FormatPDF))
	editors.Get("/:id/xml", editorHandler.Export(FormatXML))

	// Customers
	customerHandler := NewCustomerHandler(deps.ListLimit)
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Get("/view", customerHandler.View)
	customers.Post("/more", customerHandler.LoadMore)
	customers.Post("/search", customerHandler.Search)
	customers.Post("/", customerHandler.Create)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Orders
	orderHandler := NewOrderHandler(deps.ListLimit)
	orders := protected.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Post("/more", orderHandler.LoadMore)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)

	// Dashboard
	protected.Get("/dashboard", NewDashboardHandler().Get)
}
