package database

import (
	"errors"

	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/database/migrations"
	"openvdm.io/openvdm/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs migrations and/or seeders inside a single transaction.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed requested, nothing to do.")
		return nil
	}

	configslog.SLog.Info("Database initialization starting...")

	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			if err := RunMigrationsInOrder(tx); err != nil {
				return err
			}
		} else {
			configslog.SLog.Info("Migrate flag not set, skipping migrations.")
		}

		if seed {
			if err := CheckAndRunSeeders(tx); err != nil {
				return err
			}
		} else {
			configslog.SLog.Info("Seed flag not set, skipping seeders.")
		}
		return nil
	})
	if err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		configslog.Log.Error("Database initialization rolled back", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Database initialization completed")
	return nil
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Running migrations...")
	if err := migrations.RunAll(db); err != nil {
		configslog.Log.Error("Migration failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info("All migrations completed.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Core var seeder running...")
	if err := seeders.SeedCoreVars(db); err != nil {
		configslog.Log.Error("Core vars could not be seeded", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Extra directory seeder running...")
	if err := seeders.SeedExtraDirectories(db); err != nil {
		configslog.Log.Error("Extra directories could not be seeded", zap.Error(err))
		return err
	}

	configslog.SLog.Info("All seeders completed.")
	return nil
}
