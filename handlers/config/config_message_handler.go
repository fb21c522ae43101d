package handlers

import (
	"fmt"
	"net/http"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/pkg/flashmessages"
	"openvdm.io/openvdm/pkg/queryparams"
	"openvdm.io/openvdm/pkg/renderer"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const messagesPath = "/config/messages"

// MessageHandler serves the system message log.
type MessageHandler struct {
	service services.IMessageService
}

func NewMessageHandler(service services.IMessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListMessages: query parse error", zap.Error(err))
		params = queryparams.DefaultListParams()
	}
	params.Validate()

	result, err := h.service.GetMessagesPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Messages",
		"Result": result,
		"Params": params,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Messages could not be listed."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Message{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("ListMessages error", zap.Error(err))
	}
	return renderer.Render(c, "config/messages/list", "layouts/main", renderData, http.StatusOK)
}

func (h *MessageHandler) MarkMessageViewed(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid ID.")
		return c.Redirect(messagesPath, fiber.StatusSeeOther)
	}
	if err := h.service.MarkMessageViewed(c.UserContext(), uint(id)); err != nil {
		configslog.Log.Error("MarkMessageViewed error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Message could not be updated.")
	}
	return c.Redirect(messagesPath, fiber.StatusSeeOther)
}

func (h *MessageHandler) MarkAllMessagesViewed(c *fiber.Ctx) error {
	changed, err := h.service.MarkAllMessagesViewed(c.UserContext())
	if err != nil {
		configslog.Log.Error("MarkAllMessagesViewed error", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Messages could not be updated.")
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, fmt.Sprintf("%d messages marked viewed.", changed))
	}
	return c.Redirect(messagesPath, fiber.StatusSeeOther)
}

// DeleteMessage answers form posts with a redirect and DELETE requests with JSON.
func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	isAPI := c.Method() == fiber.MethodDelete
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		if isAPI {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid ID.")
		return c.Redirect(messagesPath, fiber.StatusSeeOther)
	}
	messageID := uint(id)

	deleted, err := h.service.DeleteMessages(c.UserContext(), models.MessageFilter{ID: &messageID})
	if err != nil {
		configslog.Log.Error("DeleteMessage error", zap.Uint("id", messageID), zap.Error(err))
	}

	if isAPI {
		switch {
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		case deleted == 0:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrMessageNotFound.Error()})
		}
		return c.JSON(fiber.Map{"deleted": messageID})
	}

	switch {
	case err != nil:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Message could not be deleted.")
	case deleted == 0:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrMessageNotFound.Error())
	default:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Message deleted.")
	}
	return c.Redirect(messagesPath, fiber.StatusSeeOther)
}

func (h *MessageHandler) DeleteAllMessages(c *fiber.Ctx) error {
	if err := h.service.DeleteAllMessages(c.UserContext()); err != nil {
		configslog.Log.Error("DeleteAllMessages error", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Messages could not be deleted.")
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "All messages deleted.")
	}
	return c.Redirect(messagesPath, fiber.StatusSeeOther)
}
