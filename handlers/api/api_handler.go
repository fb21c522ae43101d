package handlers

import (
	"errors"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const navbarMessageCount = 5

// APIHandler serves the JSON endpoints used by the navbar and by the
// transfer tooling.
type APIHandler struct {
	messages         services.IMessageService
	extraDirectories services.IExtraDirectoryService
	dashboard        services.IDashboardService
}

func NewAPIHandler(svcs *services.Services) *APIHandler {
	return &APIHandler{
		messages:         svcs.Messages,
		extraDirectories: svcs.ExtraDirectories,
		dashboard:        svcs.Dashboard,
	}
}

// UnreadMessages returns the unread count and the newest unread messages.
func (h *APIHandler) UnreadMessages(c *fiber.Ctx) error {
	ctx := c.UserContext()
	count, err := h.messages.CountUnreadMessages(ctx)
	if err != nil {
		configslog.Log.Error("UnreadMessages: count error", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	newest, err := h.messages.ListNewestMessages(ctx, c.QueryInt("limit", navbarMessageCount))
	if err != nil {
		configslog.Log.Error("UnreadMessages: list error", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"count": count, "messages": newest})
}

// CreateMessage stores a message posted as JSON.
func (h *APIHandler) CreateMessage(c *fiber.Ctx) error {
	var fields models.MessageFields
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid message payload"})
	}

	msg, err := h.messages.InsertMessage(c.UserContext(), fields)
	if err != nil {
		if errors.Is(err, services.ErrMessageTitleRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("CreateMessage error", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// ExtraDirectories dumps the extra directory configuration ordered by id.
// With ?active=true only the directories currently in use are returned.
func (h *APIHandler) ExtraDirectories(c *fiber.Ctx) error {
	var (
		dirs []models.ExtraDirectory
		err  error
	)
	if c.QueryBool("active") {
		dirs, err = h.extraDirectories.GetActiveExtraDirectories(c.UserContext(), c.Query("sort"))
	} else {
		dirs, err = h.extraDirectories.GetExtraDirectoriesConfig(c.UserContext())
	}
	if err != nil {
		configslog.Log.Error("ExtraDirectories API error", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(dirs)
}

func (h *APIHandler) ExtraDirectory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	dir, err := h.extraDirectories.GetExtraDirectory(c.UserContext(), uint(id))
	if err != nil {
		configslog.Log.Error("ExtraDirectory API error", zap.Int("id", id), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	if dir == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrExtraDirectoryNotFound.Error()})
	}
	return c.JSON(dir)
}

func (h *APIHandler) DashboardTabs(c *fiber.Ctx) error {
	tabs, err := h.dashboard.GetTabs()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(tabs)
}
