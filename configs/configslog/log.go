package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const TimeFormat = "2006-01-02 15:04:05.000"

// Log is the process-wide structured logger and SLog its sugared form.
// Both are no-ops until InitLogger runs.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// AtomicLevel lets the level change at runtime.
var AtomicLevel = zap.NewAtomicLevel()

// InitLogger builds the global logger from APP_ENV and LOG_LEVEL.
func InitLogger() {
	var config zap.Config
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	_ = AtomicLevel.UnmarshalText([]byte(os.Getenv("LOG_LEVEL")))
	config.Level = AtomicLevel
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimeFormat)
	config.DisableStacktrace = true
	config.Sampling = nil

	logger, err := config.Build()
	if err != nil {
		panic("logger could not be built: " + err.Error())
	}
	Log = logger
	SLog = logger.Sugar()
}

func SetLevel(level string) {
	if err := AtomicLevel.UnmarshalText([]byte(level)); err != nil {
		Log.Warn("invalid log level", zap.String("level", level), zap.Error(err))
		return
	}
	Log.Info("log level updated", zap.String("level", level))
}

func SyncLogger() {
	_ = Log.Sync()
}
