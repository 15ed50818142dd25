// worktrackd is the long-running daemon: it serves the HTTP API, watches
// the scan drop folders, and pushes dropped sheets through the capture
// workflow.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/xxch4nnn/WorkTrack-sub001/internal/async"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/common"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/dtrflow"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/export"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/ingest"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/ocr"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/payroll"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/repository"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/server"
	"github.com/xxch4nnn/WorkTrack-sub001/internal/templates"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.HealthCheck(ctx, pool, 3*time.Second, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}

	companies := repository.NewCompanyRepository(pool, logger)
	employees := repository.NewEmployeeRepository(pool, logger)
	entries := repository.NewDTRRepository(pool, logger)
	records := repository.NewPayrollRepository(pool, logger)
	activity := repository.NewActivityRepository(pool, logger)

	registry, err := templates.NewRegistry(cfg.Ingest.TemplateDir, 5*time.Minute, logger)
	if err != nil {
		logger.Error("load template registry", "error", err)
		os.Exit(1)
	}

	capturer := ocr.NewExtractor(ocr.Config{
		Tesseract:           cfg.OCR.Tesseract,
		TesseractLang:       cfg.OCR.TesseractLang,
		TessdataDir:         cfg.OCR.TessdataDir,
		EnableTSVConfidence: cfg.OCR.TSVConfidence,
	}, logger)

	workflow := dtrflow.NewWorkflow(capturer, registry, employees, entries, activity, logger)
	payrollSvc := payroll.NewService(companies, employees, entries, records, logger)
	exportSvc := export.NewService(records, entries, logger)

	queue := async.NewQueue(cfg.Ingest.QueueSize, cfg.Ingest.ScansPerSec,
		func(ctx context.Context, companyID uuid.UUID, path string) error {
			_, err := workflow.ProcessFile(ctx, companyID, path)
			return err
		}, logger)
	queue.Start(ctx)

	if len(cfg.Ingest.WatchDirs) > 0 {
		startDropFolders(ctx, cfg, queue, logger)
	} else {
		logger.Info("no watch dirs configured, drop-folder ingestion disabled")
	}

	srv := server.NewServer(companies, employees, entries, activity, workflow, payrollSvc, exportSvc,
		func(ctx context.Context) error {
			return repository.HealthCheck(ctx, pool, 2*time.Second, logger)
		}, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}

// startDropFolders begins watching each configured root and feeds allowed
// files into the capture queue. Files must live in a per-company
// subdirectory named by the company id.
func startDropFolders(ctx context.Context, cfg *common.Config, queue *async.Queue, logger *slog.Logger) {
	evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Ingest.WatchDirs,
		InitialScan: cfg.Ingest.InitialScan,
		Debounce:    cfg.Ingest.Debounce,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("start drop-folder watcher", "error", err)
		os.Exit(1)
	}

	go func() {
		for range errCh {
			// Already logged by the watcher; drained to keep it unblocked.
		}
	}()
	go func() {
		for path := range evCh {
			companyID, err := companyForPath(cfg.Ingest.WatchDirs, path)
			if err != nil {
				logger.Warn("ignoring dropped file", "path", path, "error", err)
				continue
			}
			if err := queue.Enqueue(ctx, async.Job{CompanyID: companyID, Path: path}); err != nil {
				logger.Error("enqueue capture job", "path", path, "error", err)
			}
		}
	}()
}

func companyForPath(roots []string, path string) (uuid.UUID, error) {
	var lastErr error
	for _, root := range roots {
		id, err := ingest.CompanyFromPath(root, path)
		if err == nil {
			return id, nil
		}
		lastErr = err
	}
	return uuid.Nil, lastErr
}
