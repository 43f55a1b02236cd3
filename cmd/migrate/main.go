package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/pkg/config"
	"github.com/noah-isme/sma-timetable-api/pkg/database"
	"github.com/noah-isme/sma-timetable-api/pkg/logger"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up, down or version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db.DB, logr)
	if err != nil {
		logr.Fatal("failed to prepare migrations", zap.Error(err))
	}

	switch *direction {
	case "up":
		err = migrator.Up(ctx)
	case "down":
		err = migrator.Down(ctx)
	case "version":
		var version int64
		if version, err = migrator.Version(ctx); err == nil {
			logr.Info("current schema version", zap.Int64("version", version))
		}
	default:
		logr.Fatal("unknown direction", zap.String("direction", *direction))
	}
	if err != nil {
		logr.Fatal("migration failed", zap.String("direction", *direction), zap.Error(err))
	}
}
