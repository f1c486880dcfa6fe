package app

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ndanylov/taskdeck/internal/config"
	"github.com/ndanylov/taskdeck/internal/models"
)

var globalDB *gorm.DB

func MustConnectPostgres() {
	cfg := config.Global().Postgres
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password,
		cfg.Database, cfg.SSLMode, int(cfg.ConnectTimeout.Seconds()))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Translated errors let the services match gorm.ErrDuplicatedKey
		// instead of inspecting driver-specific error codes.
		TranslateError: true,
	})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to get underlying sql db")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = sqlDB.PingContext(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")

	globalDB = db
}

func DisconnectPostgres() {
	sqlDB, err := globalDB.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
	globalLogger.Info().Msg("disconnected from postgres")
}

func MustMigrate() {
	err := globalDB.AutoMigrate(&models.User{}, &models.Task{})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to migrate schema")
		panic(err)
	}
	globalLogger.Info().Msg("migrated schema")
}
