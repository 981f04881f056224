package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lg/peso-certo-api/internal/store"
)

// config is read once at startup from .env and the process environment.
type config struct {
	Host         string
	Port         string
	Storage      store.Options
	Location     *time.Location
	PasscodeHash string
	Token        string
	CORSOrigin   string
	LogLevel     string
}

// loadConfig reads .env when present, then the environment. A missing .env
// is not an error; the process environment is enough.
func loadConfig(log *zap.Logger) config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using process environment")
	}

	cfg := config{
		Host: envOr("LISTEN_HOST", "localhost"),
		Port: envOr("PORT", "3000"),
		Storage: store.Options{
			Driver:         envOr("STORAGE_DRIVER", "sqlite"),
			Path:           envOr("STORAGE_PATH", "peso-certo.db"),
			DatabaseURL:    os.Getenv("DB_URL"),
			RedisAddr:      envOr("REDIS_ADDR", "localhost:6379"),
			RedisPassword:  os.Getenv("REDIS_PASSWORD"),
			RedisNamespace: envOr("REDIS_NAMESPACE", "pesocerto"),
		},
		Location:     time.Local,
		PasscodeHash: os.Getenv("APP_PASSCODE_HASH"),
		Token:        os.Getenv("APP_TOKEN"),
		CORSOrigin:   envOr("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		LogLevel:     envOr("LOG_LEVEL", "info"),
	}

	if tz := os.Getenv("APP_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Warn("Unknown APP_TZ, using local time", zap.String("tz", tz), zap.Error(err))
		} else {
			cfg.Location = loc
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger builds a production logger, or a development one at debug level.
func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zc.Build()
}
