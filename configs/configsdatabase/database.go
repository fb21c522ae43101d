package configsdatabase

import (
	"time"

	"openvdm.io/openvdm/configs"
	"openvdm.io/openvdm/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var dbInstance *gorm.DB

// Open connects to Postgres. The table prefix is injected into GORM's
// naming strategy so every model resolves to "<prefix><table>".
func Open(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DSN()), GormConfig(cfg.TablePrefix))
}

// GormConfig is shared by the Postgres connection and the test databases.
func GormConfig(tablePrefix string) *gorm.Config {
	return &gorm.Config{
		Logger: configslog.NewGormLogger(),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: tablePrefix,
		},
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// InitDB opens the process-wide connection, failing fast when it cannot.
func InitDB(cfg configs.DatabaseConfig) {
	db, err := Open(cfg)
	if err != nil {
		configslog.Log.Fatal("database connection failed",
			zap.String("host", cfg.Host), zap.String("db", cfg.Name), zap.Error(err))
	}
	dbInstance = db
	configslog.Log.Info("database connected",
		zap.String("host", cfg.Host), zap.String("db", cfg.Name), zap.String("table_prefix", cfg.TablePrefix))
}

func GetDB() *gorm.DB {
	if dbInstance == nil {
		configslog.Log.Fatal("database not initialized, call InitDB first")
	}
	return dbInstance
}

func CloseDB() error {
	if dbInstance == nil {
		return nil
	}
	sqlDB, err := dbInstance.DB()
	if err != nil {
		return err
	}
	dbInstance = nil
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("database close failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info("database connection closed")
	return nil
}
