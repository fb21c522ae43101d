package migrations

import (
	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateExtraDirectoriesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating extra_directories table...")

	if err := db.AutoMigrate(&models.ExtraDirectory{}); err != nil {
		configslog.Log.Error("Failed to migrate extra_directories table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("extra_directories table migrated")
	return nil
}
