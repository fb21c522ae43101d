package seeders

import (
	"errors"
	"fmt"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/models"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequiredExtraDirectories are the directories OpenVDM itself writes to.
var RequiredExtraDirectories = []models.ExtraDirectory{
	{Name: "Transfer_Logs", LongName: "Transfer Logs", DestDir: "OpenVDM/TransferLogs", Required: true, Enable: true, CruiseOrLowering: models.CruiseOrLoweringCruise},
	{Name: "Dashboard_Data", LongName: "Dashboard Data", DestDir: "OpenVDM/DashboardData", Required: true, Enable: true, CruiseOrLowering: models.CruiseOrLoweringCruise},
	{Name: "Tracklines", LongName: "Tracklines", DestDir: "OpenVDM/Tracklines", Required: true, Enable: true, CruiseOrLowering: models.CruiseOrLoweringCruise},
	{Name: "OpenVDM", LongName: "OpenVDM Metadata", DestDir: "OpenVDM", Required: true, Enable: true, CruiseOrLowering: models.CruiseOrLoweringCruise},
}

func SeedExtraDirectories(db *gorm.DB) error {
	var errs error
	var createdCount int

	configslog.SLog.Info("Seeding required extra directories...")

	for _, dir := range RequiredExtraDirectories {
		var existing models.ExtraDirectory
		result := db.Where("name = ?", dir.Name).Take(&existing)
		if result.Error == nil {
			configslog.SLog.Debugf("Extra directory '%s' already exists, skipping.", dir.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Extra directory lookup failed", zap.String("name", dir.Name), zap.Error(result.Error))
			errs = multierr.Append(errs, fmt.Errorf("lookup %s: %w", dir.Name, result.Error))
			continue
		}

		if err := db.Create(&dir).Error; err != nil {
			configslog.Log.Error("Extra directory could not be created", zap.String("name", dir.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("create %s: %w", dir.Name, err))
			continue
		}
		configslog.SLog.Infof("Extra directory '%s' created (ID: %d).", dir.Name, dir.ID)
		createdCount++
	}

	if errs != nil {
		return errs
	}
	if createdCount > 0 {
		configslog.SLog.Infof("%d required extra directories seeded.", createdCount)
	} else {
		configslog.SLog.Info("All required extra directories already present.")
	}
	return nil
}
