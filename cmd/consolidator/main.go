package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pitchside/consolidator/internal/adapter"
	"github.com/pitchside/consolidator/internal/config"
	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/logger"
	"github.com/pitchside/consolidator/internal/normalizer"
	"github.com/pitchside/consolidator/internal/pipeline"
	"github.com/pitchside/consolidator/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadConsolidatorConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// A signal cancels the run context so in-flight writes stop cleanly
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "consolidator",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Pitchside consolidator")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	fs := adapter.NewFileSystem()
	clock := adapter.NewClock()

	sources := make([]domain.SourceID, 0, len(cfg.Ingest.Sources))
	for _, id := range cfg.Ingest.Sources {
		sources = append(sources, domain.SourceID(id))
	}

	// Wire the pipeline with one adapter per supported source
	p := pipeline.New(fs, clock, dataStore, normalizer.New(normalizer.All()...), pipeline.Config{
		CuratedDir:            cfg.Ingest.CuratedDir,
		SourcesDir:            cfg.Ingest.SourcesDir,
		Sources:               sources,
		WorkerPoolSize:        cfg.Worker.PoolSize,
		WorkerQueueSize:       cfg.Worker.QueueSize,
		WriterMaxRetries:      cfg.Writer.MaxRetries,
		WriterInitialInterval: cfg.Writer.InitialInterval,
		WriterMaxInterval:     cfg.Writer.MaxInterval,
	})

	summary, err := p.Run(ctx)
	if err != nil {
		if summary != nil {
			logger.ErrorCtx(ctx, err, zap.String("run_id", summary.RunID))
		} else {
			logger.ErrorCtx(ctx, err)
		}
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Consolidation complete",
		zap.String("run_id", summary.RunID),
		zap.Int("records_read", summary.Counts.RecordsRead),
		zap.Int("records_skipped", summary.Counts.RecordsSkipped),
		zap.Int("matches_written", summary.Counts.MatchesWritten),
		zap.Int("club_seasons_written", summary.Counts.ClubSeasonsWritten),
		zap.Int("discrepancies_found", summary.Counts.DiscrepanciesFound),
		zap.Duration("duration", summary.Duration),
	)
}
