package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"legalynx/internal/config"
	"legalynx/internal/engine"
	_ "legalynx/internal/engine/claude"
	_ "legalynx/internal/engine/gemini"
	_ "legalynx/internal/engine/openai"
	"legalynx/internal/extractor"
	"legalynx/internal/handler"
	"legalynx/internal/logger"
	"legalynx/internal/port"
	"legalynx/internal/repository/memory"
	"legalynx/internal/repository/postgres"
	"legalynx/internal/router"
	"legalynx/internal/service"
	s3storage "legalynx/internal/storage/s3"
)

// @title Legalynx Contract Analysis API
// @version 1.0
// @description Structured legal-risk analysis of contract text and uploaded PDF or DOCX documents.
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(&cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize reasoning engine
	eng, err := engine.NewFromConfig(&cfg.Engine)
	if err != nil {
		return fmt.Errorf("failed to initialize reasoning engine: %w", err)
	}
	providers := make([]string, 0, 3)
	for _, p := range cfg.Engine.ProviderConfigs() {
		providers = append(providers, p.Provider)
	}
	slog.Info("reasoning engine ready", "providers", providers)

	// Initialize history repository
	var db *sqlx.DB
	var repo port.AnalysisRepository
	if cfg.DB.Enabled {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		repo = postgres.NewAnalysisRepo(db)
		slog.Info("analysis history stored in postgres", "host", cfg.DB.Host, "database", cfg.DB.Name)
	} else {
		repo, err = memory.NewAnalysisRepo(cfg.Analysis.HistorySize)
		if err != nil {
			return err
		}
		slog.Info("analysis history kept in memory", "capacity", cfg.Analysis.HistorySize)
	}

	// Initialize storage
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		slog.Info("archiving uploads to S3", "bucket", cfg.S3.Bucket)
	}

	// Initialize services
	analysisSvc, err := service.NewAnalysisService(eng, extractor.New(), repo, storage, service.AnalysisOptions{
		CallTimeout:     cfg.Engine.CallTimeout(),
		MaxOutputTokens: cfg.Engine.MaxOutputTokens,
		CacheSize:       cfg.Analysis.CacheSize,
		ArchiveBucket:   cfg.S3.Bucket,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize analysis service: %w", err)
	}
	bulkSvc := service.NewBulkService(analysisSvc, &cfg.Bulk)

	// Setup router
	r := router.Setup(router.Handlers{
		Analysis: handler.NewAnalysisHandler(analysisSvc, cfg.Upload.MaxBytes()),
		Bulk:     handler.NewBulkHandler(bulkSvc),
		Template: handler.NewTemplateHandler(),
		Search:   handler.NewSearchHandler(),
		Health:   handler.NewHealthHandler(db),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
