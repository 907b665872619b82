package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	HTTPPort    string `envconfig:"HTTP_PORT"    default:":8080"`
	GrpcPort    string `envconfig:"GRPC_PORT"    default:":50051"`
	LogLevel    string `envconfig:"LOG_LEVEL"    default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT"   default:"json"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS"    default:"10"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS"    default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`

	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE"     default:"false"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoadConfig reads an optional .env file, then the environment. Variables
// already set in the environment win over the file.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}

	logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, LogLevel=%s", cfg.HTTPPort, cfg.GrpcPort, cfg.LogLevel)
	return &cfg, nil
}
