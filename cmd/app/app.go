package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seatserve/canteen-api/internal/api"
	"github.com/seatserve/canteen-api/internal/config"
	"github.com/seatserve/canteen-api/internal/db"
	"github.com/seatserve/canteen-api/internal/logger"
)

const (
	ConfigPath = "./cmd/app/config.yml"

	redisConnectTimeout = 5 * time.Second
)

func Start() error {
	conf, err := Bootstrap(ConfigPath)
	if err != nil {
		return err
	}

	// Only the log level is hot-reloaded, everything else needs a restart.
	err = config.Watch(ConfigPath, func(c *config.AppConfig) {
		if err := logger.SetLevel(c.API.LogLevel); err != nil {
			zap.L().Warn("failed to change log level", zap.Error(err))
			return
		}
		zap.L().Info("log level changed", zap.String("level", c.API.LogLevel))
	})
	if err != nil {
		return fmt.Errorf("failed to watch config -> %w", err)
	}

	postgresDB, err := OpenPostgres(conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	redisClient, err := db.OpenRedis(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}
	defer redisClient.Close()

	s := api.NewServer(conf, postgresDB, redisClient)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// Bootstrap loads the configuration and installs the global logger.
func Bootstrap(path string) (*config.AppConfig, error) {
	conf, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to set log level -> %w", err)
	}

	return conf, nil
}

// OpenPostgres prefers DATABASE_URL over the postgres section of the config.
func OpenPostgres(conf *config.AppConfig) (*gorm.DB, error) {
	var (
		postgresDB *gorm.DB
		err        error
	)

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return postgresDB, nil
}
