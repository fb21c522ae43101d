package routes

import (
	handlers "openvdm.io/openvdm/handlers/api"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
)

func registerAPIRoutes(app *fiber.App, svcs *services.Services) {
	apiHandler := handlers.NewAPIHandler(svcs)

	apiGroup := app.Group("/api")
	apiGroup.Get("/messages/unread", apiHandler.UnreadMessages)
	apiGroup.Post("/messages", apiHandler.CreateMessage)
	apiGroup.Get("/extradirectories", apiHandler.ExtraDirectories)
	apiGroup.Get("/extradirectories/:id", apiHandler.ExtraDirectory)
	apiGroup.Get("/dashboard", apiHandler.DashboardTabs)
}
