// Package flashmessages keeps one-shot messages and form data in the
// session between a POST and the page it redirects to.
package flashmessages

import (
	"encoding/json"
	"errors"

	"openvdm.io/openvdm/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	flashFormDataKey = "flash_form_data"

	// SessionStoreLocal is the fiber.Ctx local holding the *session.Store.
	SessionStoreLocal = "session_store"
)

var ErrNoSessionStore = errors.New("session store not found in context")

// FlashMessages holds the messages read back after a redirect.
type FlashMessages struct {
	Success string
	Error   string
}

func sessionFor(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(SessionStoreLocal).(*session.Store)
	if !ok || store == nil {
		return nil, ErrNoSessionStore
	}
	return store.Get(c)
}

func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := sessionFor(c)
	if err != nil {
		configslog.Log.Warn("flash message dropped", zap.String("key", key), zap.Error(err))
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages returns and clears the pending messages.
func GetFlashMessages(c *fiber.Ctx) (FlashMessages, error) {
	var flash FlashMessages
	sess, err := sessionFor(c)
	if err != nil {
		return flash, err
	}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		flash.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		flash.Error = v
		sess.Delete(FlashErrorKey)
	}
	if flash.Success == "" && flash.Error == "" {
		return flash, nil
	}
	return flash, sess.Save()
}

// SetFlashFormData keeps submitted form values so the form can be refilled.
func SetFlashFormData(c *fiber.Ctx, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sess, err := sessionFor(c)
	if err != nil {
		return err
	}
	sess.Set(flashFormDataKey, string(raw))
	return sess.Save()
}

// GetFlashFormData returns and clears the saved form values, nil when none.
func GetFlashFormData(c *fiber.Ctx) map[string]interface{} {
	sess, err := sessionFor(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(flashFormDataKey).(string)
	if !ok {
		return nil
	}
	sess.Delete(flashFormDataKey)
	if err := sess.Save(); err != nil {
		configslog.Log.Warn("flash form data could not be cleared", zap.Error(err))
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}
