package routes

import (
	"openvdm.io/openvdm/configs"
	"openvdm.io/openvdm/pkg/flashmessages"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes registers the middleware and every route group.
func SetupRoutes(app *fiber.App, svcs *services.Services) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSession())

	registerConfigRoutes(app, svcs)
	registerAPIRoutes(app, svcs)
	registerDashboardRoutes(app, svcs)

	app.Get("/", rootRedirector)

	app.Use(notFoundHandler)
}

func initializeSession() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals(flashmessages.SessionStoreLocal, sessionStore)
		return c.Next()
	}
}

func rootRedirector(c *fiber.Ctx) error {
	return c.Redirect("/dashboard", fiber.StatusFound)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Page Not Found"}, "layouts/error_layout")
	}
}
