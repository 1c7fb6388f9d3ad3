package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foundry-erp/internal/application/erp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store   *erp.Store
	Session SessionService
	Costs   CostGateway
	Reports ReportGenerator
	Company string
}

// Router registra las rutas de la API. Todas pasan por el scope del store.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", StoreScope(deps.Store))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "loading": storeOf(c).Loading()})
	})

	// Sesión
	sessionHandler := NewSessionHandler(deps.Session)
	api.Post("/session", sessionHandler.SignIn)
	api.Get("/session", sessionHandler.Current)
	api.Delete("/session", sessionHandler.SignOut)

	h := NewERPHandler(deps.Session)
	api.Get("/state", h.State)
	api.Post("/state/refresh", h.Refresh)
	api.Get("/dashboard", h.Dashboard)

	reportHandler := NewReportHandler(deps.Reports, deps.Session, deps.Company)
	api.Get("/dashboard/report.pdf", reportHandler.Download)

	materials := api.Group("/materials")
	materials.Get("/", h.ListMaterials)
	materials.Post("/", h.CreateMaterial)
	materials.Patch("/:id", h.UpdateMaterial)
	materials.Delete("/:id", h.DeleteMaterial)

	orders := api.Group("/production-orders")
	orders.Get("/", h.ListProductionOrders)
	orders.Post("/", h.CreateProductionOrder)
	orders.Patch("/:id", h.UpdateProductionOrder)

	inspections := api.Group("/quality-inspections")
	inspections.Get("/", h.ListQualityInspections)
	inspections.Post("/", h.CreateQualityInspection)

	suppliers := api.Group("/suppliers")
	suppliers.Get("/", h.ListSuppliers)
	suppliers.Post("/", h.CreateSupplier)

	costHandler := NewCostHandler(deps.Costs)
	costs := api.Group("/cost-entries")
	costs.Get("/", costHandler.List)
	costs.Post("/", costHandler.Create)
}
