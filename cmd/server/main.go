package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/da-kil/reviewflow/internal/application/dispatcher"
	"github.com/da-kil/reviewflow/internal/application/service"
	"github.com/da-kil/reviewflow/internal/config"
	"github.com/da-kil/reviewflow/internal/export"
	"github.com/da-kil/reviewflow/internal/httpapi"
	"github.com/da-kil/reviewflow/internal/infrastructure/persistence"
	"github.com/da-kil/reviewflow/pkg/database"
	"github.com/da-kil/reviewflow/pkg/logger"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting review workflow service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal("Failed to create database directory", zap.Error(err))
		}
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, log)
	if err := migrator.Run(); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	store := persistence.NewSQLiteEventStore(db, log)

	disp := dispatcher.New(log)
	defer disp.Close()

	svc := service.NewAssignmentService(store, disp, log)
	exporter := export.NewAuditExporter(cfg.Export.CompanyName, log)

	server := httpapi.NewServer(httpapi.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, svc, exporter, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}

	log.Info("Server exited successfully")
}
