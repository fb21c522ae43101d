package configs

import (
	"fmt"
	"os"
	"strconv"

	"openvdm.io/openvdm/configs/configslog"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const DefaultDashboardConfigPath = "configs/dashboard.yaml"

// DatabaseConfig holds the Postgres connection settings and the table
// prefix applied to every OpenVDM table.
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	TablePrefix string
}

// DSN builds a libpq style connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type Config struct {
	Env                 string
	Port                string
	Database            DatabaseConfig
	DashboardConfigPath string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env file not found, using process environment")
	}

	return Config{
		Env:  GetEnvWithDefault("APP_ENV", "development"),
		Port: GetEnvWithDefault("APP_PORT", "3000"),
		Database: DatabaseConfig{
			Host:        GetEnvWithDefault("DB_HOST", "localhost"),
			Port:        GetEnvIntWithDefault("DB_PORT", 5432),
			User:        GetEnvWithDefault("DB_USER", "openvdm"),
			Password:    os.Getenv("DB_PASSWORD"),
			Name:        GetEnvWithDefault("DB_NAME", "openvdm"),
			SSLMode:     GetEnvWithDefault("DB_SSLMODE", "disable"),
			TablePrefix: GetEnvWithDefault("DB_TABLE_PREFIX", "OVDM_"),
		},
		DashboardConfigPath: GetEnvWithDefault("DASHBOARD_CONFIG", DefaultDashboardConfigPath),
	}
}

func GetEnvWithDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func GetEnvIntWithDefault(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		configslog.Log.Warn("invalid integer in environment, using default",
			zap.String("key", key), zap.String("value", raw), zap.Int("default", defaultValue))
		return defaultValue
	}
	return value
}
