package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/garyjia/doc-request/internal/config"
	"github.com/garyjia/doc-request/internal/delivery"
	"github.com/garyjia/doc-request/internal/form"
	httpapi "github.com/garyjia/doc-request/internal/interfaces/http"
	"github.com/garyjia/doc-request/internal/repository"
	"github.com/garyjia/doc-request/internal/schema"
	"github.com/garyjia/doc-request/internal/submission"
	"github.com/garyjia/doc-request/pkg/database"
	"github.com/garyjia/doc-request/pkg/utils"
)

func main() {
	// Load .env if present (SMTP credentials, spreadsheet id)
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting document request form service",
		zap.String("schema_source", cfg.Schema.Source),
		zap.Int("port", cfg.Server.Port))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	submissionRepo := repository.NewSubmissionRepository(db.DB, logger)
	if err := submissionRepo.EnsureSchema(); err != nil {
		logger.Fatal("Failed to ensure database schema", zap.Error(err))
	}

	// Schema source
	loader := schema.NewLoader(schema.LoaderConfig{
		SpreadsheetID: cfg.Schema.SpreadsheetID,
		Timeout:       cfg.Schema.FetchTimeout,
	}, logger)
	resolver := schema.NewResolver(
		schema.Source(cfg.Schema.Source),
		loader,
		cfg.Schema.WorkbookPath,
		cfg.Schema.WorkbookSheet,
		logger,
	)

	// Form behavior
	formOpts := form.Options{
		Capabilities: form.Capabilities{
			Applicability: cfg.Form.EnableApplicability,
			Remarks:       cfg.Form.EnableRemarks,
		},
		StrictPeriod: cfg.Form.StrictPeriod,
	}
	reconciler := form.NewReconciler(
		form.SystemClock(),
		form.PeriodMode(cfg.Form.PeriodMode),
		cfg.Form.StrictPeriod,
	)

	// Delivery pipeline
	packager := delivery.NewPackager(logger)
	sender := delivery.NewSender(delivery.SMTPConfig{
		Host:       cfg.Email.SMTPHost,
		Port:       cfg.Email.SMTPPort,
		Username:   cfg.Email.Username,
		Password:   cfg.Email.Password,
		From:       cfg.Email.From,
		To:         cfg.Email.To,
		SenderName: cfg.Email.SenderName,
	}, logger)
	deliverer := delivery.NewService(packager, sender, logger)

	submitService := submission.NewService(
		deliverer,
		submission.Options{IncludeRemarks: cfg.Form.IncludeRemarks},
		logger,
	)

	handlers := httpapi.NewHandlers(resolver, reconciler, formOpts, submitService, submissionRepo, logger)
	server := httpapi.NewServer(httpapi.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
