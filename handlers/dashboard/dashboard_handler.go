package handlers

import (
	"errors"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/pkg/dashboard"
	"openvdm.io/openvdm/pkg/renderer"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler renders the data dashboard tabs.
type DashboardHandler struct {
	service services.IDashboardService
}

func NewDashboardHandler(service services.IDashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// ShowDefaultTab renders the first tab of the document.
func (h *DashboardHandler) ShowDefaultTab(c *fiber.Ctx) error {
	tab, err := h.service.GetDefaultTab()
	if err != nil {
		if errors.Is(err, services.ErrDashboardNoTabs) {
			return h.renderNotFound(c, "No dashboard tabs are configured.")
		}
		return h.renderError(c, "The dashboard configuration could not be loaded.")
	}
	return h.renderTab(c, tab)
}

// ShowTab renders the tab whose page slug matches :page.
func (h *DashboardHandler) ShowTab(c *fiber.Ctx) error {
	page := c.Params("page")
	tab, err := h.service.GetTab(page)
	if err != nil {
		if errors.Is(err, services.ErrDashboardTabNotFound) {
			configslog.SLog.Debugf("unknown dashboard page requested: %s", page)
			return h.renderNotFound(c, "Dashboard page not found.")
		}
		return h.renderError(c, "The dashboard configuration could not be loaded.")
	}
	return h.renderTab(c, tab)
}

// renderTab uses the template named by the tab's view. A view without a
// matching template fails in the engine.
func (h *DashboardHandler) renderTab(c *fiber.Ctx, tab *dashboard.Tab) error {
	tabs, err := h.service.GetTabs()
	if err != nil {
		return h.renderError(c, "The dashboard configuration could not be loaded.")
	}
	err = renderer.Render(c, "dashboard/"+tab.View, "layouts/main", fiber.Map{
		"Title":    tab.Title,
		"Tab":      tab,
		"Tabs":     tabs,
		"CSSArray": tab.CSSArray,
		"JSArray":  tab.JSArray,
	})
	if err != nil {
		configslog.Log.Error("dashboard tab render failed", zap.String("page", tab.Page), zap.String("view", tab.View), zap.Error(err))
		return h.renderError(c, "The dashboard view could not be rendered.")
	}
	return nil
}

func (h *DashboardHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Not Found",
		"Message": message,
	}, "layouts/error_layout")
}

func (h *DashboardHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Server Error",
		"Message": message,
	}, "layouts/error_layout")
}
