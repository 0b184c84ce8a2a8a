// Command marinezones downloads the NWS zone definition file, keeps the marine
// zones, and writes them to a CSV file (marine_zones.csv by default).
//
// Configuration is read from the environment; see internal/config. A failed
// download prints a diagnostic and exits normally without touching the output
// file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/marine-zones-etl/internal/adapter/csvfile"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger, observability.NewMetrics(), os.Stdout)
	stop()
	if err != nil {
		logger.Error("marine zone extraction failed", "error", err)
		os.Exit(1)
	}
}

// run fetches, parses and writes once. A fetch that fails or returns nothing
// is reported on out and is not an error.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, out io.Writer) error {
	fetcher := nws.NewClient(cfg.ZonesURL, cfg.FetchTimeout, metrics, logger)
	loaders := []pipeline.Loader{csvfile.NewWriter(cfg.OutputPath, logger)}

	if cfg.KafkaEnabled {
		kw := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := kw.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, kw)
	}

	p := pipeline.New(fetcher, loaders, logger, metrics)

	snap, err := p.RunOnce(ctx)
	if errors.Is(err, pipeline.ErrNoData) {
		fmt.Fprintf(out, "Error downloading file: %v\n", err)
		fmt.Fprintln(out, "Failed to download data. Please check the URL or try the sample data.")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("marine zones written", "path", cfg.OutputPath, "zones", len(snap.Zones))
	fmt.Fprintf(out, "Marine zones written to %s\n", cfg.OutputPath)
	return nil
}
