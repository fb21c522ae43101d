package migrations

import (
	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateMessagesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating messages table...")

	if err := db.AutoMigrate(&models.Message{}); err != nil {
		configslog.Log.Error("Failed to migrate messages table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("messages table migrated")
	return nil
}
