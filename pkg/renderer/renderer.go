// Package renderer builds the template engine and renders pages with the
// pending flash messages attached.
package renderer

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/pkg/flashmessages"
	"openvdm.io/openvdm/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// NewEngine loads the embedded templates.
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	engine.AddFunc("join", strings.Join)
	engine.AddFunc("toJSON", func(v interface{}) template.JS {
		raw, err := json.Marshal(v)
		if err != nil {
			configslog.Log.Warn("toJSON failed", zap.Error(err))
			return template.JS("null")
		}
		return template.JS(raw)
	})
	return engine
}

// SetFlashMessages copies flash into the view data without overriding keys
// the handler already set.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashMessages) {
	if flash.Success != "" {
		if _, ok := data[FlashSuccessKeyView]; !ok {
			data[FlashSuccessKeyView] = flash.Success
		}
	}
	if flash.Error != "" {
		if _, ok := data[FlashErrorKeyView]; !ok {
			data[FlashErrorKeyView] = flash.Error
		}
	}
}

// Render renders name inside layout, adding the pending flash messages.
func Render(c *fiber.Ctx, name, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	flash, err := flashmessages.GetFlashMessages(c)
	if err == nil {
		SetFlashMessages(data, flash)
	}

	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if err := c.Status(code).Render(name, data, layout); err != nil {
		configslog.Log.Error("render failed", zap.String("template", name), zap.Error(err))
		return err
	}
	return nil
}
