package seeders

import (
	"errors"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedCoreVars creates missing warehouse settings with their defaults.
// Existing values are never overwritten.
func SeedCoreVars(db *gorm.DB) error {
	defaults := []models.CoreVar{
		{Name: models.CoreVarShowLoweringComponents, Value: models.CoreVarValueNo},
	}

	for _, coreVar := range defaults {
		var existing models.CoreVar
		err := db.Where("name = ?", coreVar.Name).Take(&existing).Error
		if err == nil {
			configslog.SLog.Debugf("Core var '%s' already set, skipping.", coreVar.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Core var lookup failed", zap.String("name", coreVar.Name), zap.Error(err))
			return err
		}
		if err := db.Create(&coreVar).Error; err != nil {
			configslog.Log.Error("Core var could not be created", zap.String("name", coreVar.Name), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Core var '%s' created with value '%s'.", coreVar.Name, coreVar.Value)
	}
	return nil
}
