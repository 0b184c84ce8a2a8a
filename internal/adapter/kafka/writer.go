package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/marine-zones-etl/internal/config"
	"github.com/couchcryptid/marine-zones-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces marine zone messages to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured zone topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "kafka" }

// LoadBatch publishes every zone in the snapshot in a single WriteMessages call.
// Zone codes are message keys so updates for a zone land on one partition.
func (w *Writer) LoadBatch(ctx context.Context, snap domain.Snapshot) error {
	if len(snap.Zones) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snap.Zones))
	for i := range snap.Zones {
		msg, err := serializeToMessage(snap.Zones[i], snap.FetchedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish zones: %w", err)
	}
	w.logger.Debug("zones published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a MarineZone into a Kafka message.
func serializeToMessage(zone domain.MarineZone, fetchedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(zone)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marine zone: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(zone.ZoneCode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "zone_prefix", Value: []byte(domain.ZonePrefix(zone.ZoneCode))},
			{Key: "fetched_at", Value: []byte(fetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
