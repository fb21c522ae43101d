package routes

import (
	"errors"
	"strings"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/pkg/renderer"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewApp builds the Fiber application with the embedded views and every route.
func NewApp(svcs *services.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "OpenVDM",
		Views:        renderer.NewEngine(),
		ErrorHandler: errorHandler,
	})
	SetupRoutes(app, svcs)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("request failed", zap.String("path", c.Path()), zap.Int("status", code), zap.Error(err))
	}
	if strings.HasPrefix(c.Path(), "/api") || c.Accepts("application/json", "text/html") == "application/json" {
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(code).Render("errors/500", fiber.Map{"Title": "Server Error", "Message": err.Error()}, "layouts/error_layout")
}
