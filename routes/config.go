package routes

import (
	handlers "openvdm.io/openvdm/handlers/config"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
)

// registerConfigRoutes defines the /config pages.
func registerConfigRoutes(app *fiber.App, svcs *services.Services) {
	extraDirectoryHandler := handlers.NewExtraDirectoryHandler(svcs.ExtraDirectories)
	messageHandler := handlers.NewMessageHandler(svcs.Messages)

	configGroup := app.Group("/config")

	// --- Extra directories ---
	configGroup.Get("/extradirectories", extraDirectoryHandler.ListExtraDirectories)
	configGroup.Post("/extradirectories/create", extraDirectoryHandler.CreateExtraDirectory)
	configGroup.Get("/extradirectories/update/:id", extraDirectoryHandler.ShowUpdateExtraDirectory)
	configGroup.Post("/extradirectories/update/:id", extraDirectoryHandler.UpdateExtraDirectory)
	configGroup.Post("/extradirectories/enable/:id", extraDirectoryHandler.EnableExtraDirectory)
	configGroup.Post("/extradirectories/disable/:id", extraDirectoryHandler.DisableExtraDirectory)
	configGroup.Post("/extradirectories/delete/:id", extraDirectoryHandler.DeleteExtraDirectory)   // form
	configGroup.Delete("/extradirectories/delete/:id", extraDirectoryHandler.DeleteExtraDirectory) // JS

	// --- Messages ---
	configGroup.Get("/messages", messageHandler.ListMessages)
	configGroup.Post("/messages/viewed/:id", messageHandler.MarkMessageViewed)
	configGroup.Post("/messages/viewed", messageHandler.MarkAllMessagesViewed)
	configGroup.Post("/messages/delete/:id", messageHandler.DeleteMessage)
	configGroup.Delete("/messages/delete/:id", messageHandler.DeleteMessage)
	configGroup.Post("/messages/delete", messageHandler.DeleteAllMessages)
}
