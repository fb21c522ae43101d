package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"
	"openvdm.io/openvdm/pkg/flashmessages"
	"openvdm.io/openvdm/pkg/renderer"
	"openvdm.io/openvdm/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const extraDirectoriesPath = "/config/extradirectories"

// ExtraDirectoryHandler serves the extra directory configuration pages.
type ExtraDirectoryHandler struct {
	service services.IExtraDirectoryService
}

func NewExtraDirectoryHandler(service services.IExtraDirectoryService) *ExtraDirectoryHandler {
	return &ExtraDirectoryHandler{service: service}
}

// extraDirectoryForm is the create/update form. Checkboxes arrive only when ticked.
type extraDirectoryForm struct {
	Name             string `form:"name" json:"name"`
	LongName         string `form:"longName" json:"longName"`
	DestDir          string `form:"destDir" json:"destDir"`
	CruiseOrLowering int    `form:"cruiseOrLowering" json:"cruiseOrLowering"`
	Enable           string `form:"enable" json:"enable"`
}

func (f extraDirectoryForm) fields() models.ExtraDirectoryFields {
	scope := models.CruiseOrLowering(f.CruiseOrLowering)
	enable := f.Enable == "true" || f.Enable == "on"
	return models.ExtraDirectoryFields{
		Name:             &f.Name,
		LongName:         &f.LongName,
		DestDir:          &f.DestDir,
		CruiseOrLowering: &scope,
		Enable:           &enable,
	}
}

func (h *ExtraDirectoryHandler) ListExtraDirectories(c *fiber.Ctx) error {
	sort := c.Query("sort")
	dirs, err := h.service.GetExtraDirectories(c.UserContext(), sort)

	formData := flashmessages.GetFlashFormData(c)
	if formData == nil {
		formData = map[string]interface{}{}
	}
	renderData := fiber.Map{
		"Title":            "Extra Directories",
		"ExtraDirectories": dirs,
		"Sort":             sort,
		"FormData":         formData,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Extra directories could not be listed."
		renderData["ExtraDirectories"] = []models.ExtraDirectory{}
		configslog.Log.Error("ListExtraDirectories error", zap.Error(err))
	}
	return renderer.Render(c, "config/extradirectories/list", "layouts/main", renderData, http.StatusOK)
}

func (h *ExtraDirectoryHandler) CreateExtraDirectory(c *fiber.Ctx) error {
	var form extraDirectoryForm
	if err := c.BodyParser(&form); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid form data.")
		return c.Redirect(extraDirectoriesPath, fiber.StatusSeeOther)
	}

	dir, err := h.service.InsertExtraDirectory(c.UserContext(), form.fields())
	if err != nil {
		if !errors.Is(err, services.ErrExtraDirectoryInvalidInput) && !errors.Is(err, services.ErrExtraDirectoryNameExists) {
			configslog.Log.Error("CreateExtraDirectory error", zap.String("name", form.Name), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Extra directory could not be created: "+err.Error())
		_ = flashmessages.SetFlashFormData(c, form)
		return c.Redirect(extraDirectoriesPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, fmt.Sprintf("Extra directory %s created.", dir.Name))
	return c.Redirect(extraDirectoriesPath, fiber.StatusFound)
}

func (h *ExtraDirectoryHandler) ShowUpdateExtraDirectory(c *fiber.Ctx) error {
	id, ok := h.paramID(c)
	if !ok {
		return c.Redirect(extraDirectoriesPath)
	}

	dir, err := h.service.GetExtraDirectory(c.UserContext(), id)
	if err != nil || dir == nil {
		if err != nil {
			configslog.Log.Error("ShowUpdateExtraDirectory error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrExtraDirectoryNotFound.Error())
		return c.Redirect(extraDirectoriesPath)
	}

	return renderer.Render(c, "config/extradirectories/update", "layouts/main", fiber.Map{
		"Title":          "Edit Extra Directory",
		"ExtraDirectory": dir,
	})
}

// UpdateExtraDirectory saves the edit form. Required directories keep
// their name.
func (h *ExtraDirectoryHandler) UpdateExtraDirectory(c *fiber.Ctx) error {
	id, ok := h.paramID(c)
	if !ok {
		return c.Redirect(extraDirectoriesPath)
	}
	redirectPathOnError := fmt.Sprintf("%s/update/%d", extraDirectoriesPath, id)

	var form extraDirectoryForm
	if err := c.BodyParser(&form); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid form data.")
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	existing, err := h.service.GetExtraDirectory(c.UserContext(), id)
	if err != nil || existing == nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrExtraDirectoryNotFound.Error())
		return c.Redirect(extraDirectoriesPath, fiber.StatusSeeOther)
	}

	fields := form.fields()
	fields.Enable = nil
	if existing.Required {
		fields.Name = nil
	}
	err = h.service.UpdateExtraDirectory(c.UserContext(), fields, models.ExtraDirectoryFilter{ID: &id})
	if err != nil {
		if !errors.Is(err, services.ErrExtraDirectoryInvalidInput) && !errors.Is(err, services.ErrExtraDirectoryNameExists) {
			configslog.Log.Error("UpdateExtraDirectory error", zap.Uint("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Update failed: "+err.Error())
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Extra directory updated.")
	return c.Redirect(extraDirectoriesPath, fiber.StatusFound)
}

func (h *ExtraDirectoryHandler) EnableExtraDirectory(c *fiber.Ctx) error {
	return h.toggle(c, true)
}

func (h *ExtraDirectoryHandler) DisableExtraDirectory(c *fiber.Ctx) error {
	return h.toggle(c, false)
}

func (h *ExtraDirectoryHandler) toggle(c *fiber.Ctx, enable bool) error {
	id, ok := h.paramID(c)
	if !ok {
		return c.Redirect(extraDirectoriesPath)
	}

	var err error
	if enable {
		err = h.service.EnableExtraDirectory(c.UserContext(), id)
	} else {
		err = h.service.DisableExtraDirectory(c.UserContext(), id)
	}
	if err != nil {
		configslog.Log.Error("toggle extra directory error", zap.Uint("id", id), zap.Bool("enable", enable), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Extra directory could not be updated.")
	}
	return c.Redirect(extraDirectoriesPath, fiber.StatusSeeOther)
}

// DeleteExtraDirectory answers form posts with a redirect and DELETE
// requests with JSON.
func (h *ExtraDirectoryHandler) DeleteExtraDirectory(c *fiber.Ctx) error {
	id, ok := h.paramID(c)
	if !ok {
		if c.Method() == fiber.MethodDelete {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
		}
		return c.Redirect(extraDirectoriesPath)
	}

	err := h.service.DeleteExtraDirectory(c.UserContext(), id)
	status := fiber.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, services.ErrExtraDirectoryNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrExtraDirectoryRequired):
		status = fiber.StatusConflict
	default:
		status = fiber.StatusInternalServerError
		configslog.Log.Error("DeleteExtraDirectory error", zap.Uint("id", id), zap.Error(err))
	}

	if c.Method() == fiber.MethodDelete {
		if err != nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"deleted": id})
	}
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Delete failed: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Extra directory deleted.")
	}
	return c.Redirect(extraDirectoriesPath, fiber.StatusSeeOther)
}

func (h *ExtraDirectoryHandler) paramID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Invalid ID.")
		return 0, false
	}
	return uint(id), true
}
