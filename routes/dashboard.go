package routes

import (
	handlers "openvdm.io/openvdm/handlers/dashboard"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes defines the data dashboard pages, one per tab.
func registerDashboardRoutes(app *fiber.App, svcs *services.Services) {
	dashboardHandler := handlers.NewDashboardHandler(svcs.Dashboard)

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Get("/", dashboardHandler.ShowDefaultTab)
	dashboardGroup.Get("/:page", dashboardHandler.ShowTab)
}
