package migrations

import (
	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateCoreVarsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating core_vars table...")

	if err := db.AutoMigrate(&models.CoreVar{}); err != nil {
		configslog.Log.Error("Failed to migrate core_vars table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("core_vars table migrated")
	return nil
}
