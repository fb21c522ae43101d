package migrations

import (
	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateCruiseDataTransfersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating cruise_data_transfers table...")

	if err := db.AutoMigrate(&models.CruiseDataTransfer{}); err != nil {
		configslog.Log.Error("Failed to migrate cruise_data_transfers table", zap.Error(err))
		return err
	}

	configslog.SLog.Info("cruise_data_transfers table migrated")
	return nil
}
