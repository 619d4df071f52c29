package batchrun

import (
	"context"
	"fmt"
	"io"
	"os"

	service "github.com/okian/arena/internal/app"
	"github.com/okian/arena/internal/domain/types"
	"github.com/okian/arena/pkg/logger"
)

const reportFilePermission = 0o600

// Run plays the batch described by cfg and writes the report to w.
func Run(ctx context.Context, cfg *Config, w io.Writer) (types.BatchReport, error) {
	if err := cfg.Validate(); err != nil {
		return types.BatchReport{}, err
	}

	log := logger.Get()
	log.Info(ctx, "starting batch run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("games", cfg.Games),
		logger.Int("workers", cfg.Workers),
		logger.String("format", cfg.Format),
	)

	var (
		report types.BatchReport
		err    error
	)
	if cfg.BaseURL != "" {
		report, err = runRemote(ctx, cfg)
	} else {
		report, err = runLocal(ctx, cfg)
	}
	if err != nil {
		return types.BatchReport{}, err
	}

	if err := WriteReport(w, report, cfg.Format); err != nil {
		return report, err
	}
	if cfg.OutputFile != "" {
		if err := saveReportToFile(cfg.OutputFile, report, cfg.Format); err != nil {
			log.Warn(ctx, "failed to save report", logger.String("file", cfg.OutputFile), logger.Error(err))
		}
	}

	leaders := make([]string, 0, len(report.TopKillers))
	for _, k := range report.TopKillers {
		leaders = append(leaders, k.Name)
	}
	log.Info(ctx, "batch run finished",
		logger.Int("completed", report.Completed),
		logger.Int("failed", report.Failed),
		logger.Int64("duration_ms", report.DurationMillis),
		logger.Strings("top_killers", leaders),
	)
	return report, nil
}

// runLocal plays the batch on an in-process service.
func runLocal(ctx context.Context, cfg *Config) (types.BatchReport, error) {
	opts := []service.Option{
		service.WithLogger(logger.Get()),
		service.WithCatalogPath(cfg.CatalogPath),
		service.WithMaxTicks(cfg.MaxTicks),
		service.WithMaxBatchGames(cfg.Games),
	}
	if cfg.Workers > 0 {
		opts = append(opts, service.WithWorkerCount(cfg.Workers))
	}
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return types.BatchReport{}, fmt.Errorf("start service: %w", err)
	}
	defer func() {
		if err := svc.Stop(context.WithoutCancel(ctx)); err != nil {
			logger.Get().Error(ctx, "failed to stop service", logger.Error(err))
		}
	}()

	return svc.RunBatch(ctx, types.BatchRequest{Games: cfg.Games, Seed: cfg.Seed})
}

func saveReportToFile(path string, report types.BatchReport, format string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, reportFilePermission)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := WriteReport(f, report, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
