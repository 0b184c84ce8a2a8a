package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/couchcryptid/marine-zones-etl/internal/domain"
)

// Writer stores marine zones in a CSV file, replacing previous contents.
// It implements pipeline.Loader.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a CSV sink for path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "csv" }

// Path returns the output file path.
func (w *Writer) Path() string { return w.path }

// LoadBatch writes the snapshot's zones to the output file.
func (w *Writer) LoadBatch(_ context.Context, snap domain.Snapshot) error {
	if err := WriteFile(w.path, snap.Zones); err != nil {
		return err
	}
	w.logger.Debug("csv written", "path", w.path, "zones", len(snap.Zones))
	return nil
}

// WriteFile creates or truncates path and writes the header followed by one
// row per zone. The file is closed on every return path.
func WriteFile(path string, zones []domain.MarineZone) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv: %w", cerr)
		}
	}()

	return Write(f, zones)
}

// Write encodes the header and zones to w using standard CSV quoting and
// CRLF row terminators.
func Write(w io.Writer, zones []domain.MarineZone) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(domain.CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range zones {
		if err := cw.Write(zones[i].Row()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ErrHeaderMismatch is returned when a file's first row is not domain.CSVHeader.
var ErrHeaderMismatch = errors.New("unexpected csv header")

// ReadFile reads zones previously written by WriteFile.
func ReadFile(path string) ([]domain.MarineZone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a zone CSV, checking the header.
func Read(r io.Reader) ([]domain.MarineZone, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(domain.CSVHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrHeaderMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if !slices.Equal(header, domain.CSVHeader) {
		return nil, fmt.Errorf("%w: %v", ErrHeaderMismatch, header)
	}

	var zones []domain.MarineZone
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		zones = append(zones, domain.MarineZone{
			ZoneCode:     row[0],
			LocationName: row[1],
			SynopsisZone: row[2],
		})
	}
	return zones, nil
}
