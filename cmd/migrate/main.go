package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/talentmap/talentmap-api/config"
	"github.com/talentmap/talentmap-api/pkg/db"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "talentmap-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Database.WorkOffline {
		logger.Info("Working offline: nothing to migrate")
		return
	}

	logger.Info("Starting database migrations",
		zap.String("database", maskDatabaseURL(cfg.Database.URL)),
		zap.String("source", db.SourceURL(cfg.Database.MigrationsPath)))

	result, err := db.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath)
	if err != nil {
		logger.Error("Failed to run migrations",
			zap.String("database", maskDatabaseURL(cfg.Database.URL)),
			zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if !result.Applied {
		logger.Info("Database schema already up to date", zap.Uint("version", result.ToVersion))
		return
	}

	logger.Info("Database migrations completed successfully",
		zap.Uint("from_version", result.FromVersion),
		zap.Uint("to_version", result.ToVersion))
}

// maskDatabaseURL hides the password of a connection string
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return "***"
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
