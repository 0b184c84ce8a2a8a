// Command zoneserver keeps the marine zone list fresh and serves it over HTTP
// at /api/marine-zones, alongside /healthz, /readyz and /metrics.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/marine-zones-etl/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/marine-zones-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/marine-zones-etl/internal/adapter/kafka"
	"github.com/couchcryptid/marine-zones-etl/internal/adapter/nws"
	"github.com/couchcryptid/marine-zones-etl/internal/config"
	"github.com/couchcryptid/marine-zones-etl/internal/observability"
	"github.com/couchcryptid/marine-zones-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := nws.NewClient(cfg.ZonesURL, cfg.FetchTimeout, metrics, logger)
	loaders := []pipeline.Loader{csvfile.NewWriter(cfg.OutputPath, logger)}

	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, kafkaWriter)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka sink disabled")
	}

	p := pipeline.New(fetcher, loaders, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh loop.
	go func() {
		if err := p.Run(ctx, cfg.RefreshInterval); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
