package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/inventario-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventario-dashboard/internal/application/dashboard"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SalesSummaryUC *appanalytics.SalesSummaryUseCase
	ViewStateUC    *dashboard.ViewStateUseCase
	Metrics        *metrics.Metrics
	AppName        string
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	dash := api.Group("/dashboard", AuthMiddleware(deps.JWTSecret))

	summaryHandler := NewSalesSummaryHandler(deps.SalesSummaryUC)
	dash.Get("/sales-summary", summaryHandler.Get)
	dash.Get("/sales-summary/pdf", summaryHandler.ExportPDF)

	viewHandler := NewViewStateHandler(deps.ViewStateUC)
	dash.Get("/view-state", viewHandler.Get)
	dash.Post("/view-state/sidebar/toggle", viewHandler.ToggleSidebar)
	dash.Put("/view-state/granularity", viewHandler.SetGranularity)
}
