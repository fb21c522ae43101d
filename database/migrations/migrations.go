package migrations

import "gorm.io/gorm"

// RunAll migrates every table in dependency order.
func RunAll(db *gorm.DB) error {
	steps := []func(*gorm.DB) error{
		MigrateCoreVarsTable,
		MigrateExtraDirectoriesTable,
		MigrateCruiseDataTransfersTable,
		MigrateMessagesTable,
	}
	for _, step := range steps {
		if err := step(db); err != nil {
			return err
		}
	}
	return nil
}
