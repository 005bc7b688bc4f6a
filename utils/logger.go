package utils

import (
	"log"
	"sync"

	config "github.com/anjiri1684/tutor_marketplace/configs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger     *zap.Logger
	loggerOnce sync.Once
)

// InitializeLogger builds the global logger; production output is JSON at info level.
func InitializeLogger() {
	loggerOnce.Do(func() {
		var cfg zap.Config
		if config.IsProduction() {
			cfg = zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		var err error
		Logger, err = cfg.Build()
		if err != nil {
			log.Fatalf("🔥 Failed to initialize logger: %v", err)
		}
		zap.ReplaceGlobals(Logger)
	})
}

func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
