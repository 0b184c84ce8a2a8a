package csvfile

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/marine-zones-etl/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZones = []domain.MarineZone{
	{ZoneCode: "ANZ335", LocationName: "Boston Harbor and Massachusetts Bay", SynopsisZone: "ANZ300"},
	{ZoneCode: "AMZ354", LocationName: "Chesapeake Bay, Maryland", SynopsisZone: "AMZ300"},
	{ZoneCode: "PMZ153", LocationName: `San Francisco "Bay"`, SynopsisZone: ""},
	{ZoneCode: "HZ900", LocationName: "Line\nBreak", SynopsisZone: "HZ900"},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWrite_HeaderAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testZones))

	want := strings.Join([]string{
		"zone_code,location_name,synopsis_zone",
		"ANZ335,Boston Harbor and Massachusetts Bay,ANZ300",
		`AMZ354,"Chesapeake Bay, Maryland",AMZ300`,
		`PMZ153,"San Francisco ""Bay""",`,
		"HZ900,\"Line\r\nBreak\",HZ900",
		"",
	}, "\r\n")
	assert.Equal(t, want, buf.String())
}

func TestWrite_NoZonesStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, "zone_code,location_name,synopsis_zone\r\n", buf.String())
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marine_zones.csv")

	require.NoError(t, WriteFile(path, testZones))
	got, err := ReadFile(path)
	require.NoError(t, err)

	if diff := cmp.Diff(testZones, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marine_zones.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale data\n", 100)), 0o644))

	require.NoError(t, WriteFile(path, testZones[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Equal(t, "zone_code,location_name,synopsis_zone\r\nANZ335,Boston Harbor and Massachusetts Bay,ANZ300\r\n", string(data))
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "marine_zones.csv")
	err := WriteFile(path, testZones)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create csv")
}

func TestWriter_LoadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.csv")
	w := NewWriter(path, discardLogger())

	assert.Equal(t, "csv", w.Name())
	assert.Equal(t, path, w.Path())
	require.NoError(t, w.LoadBatch(context.Background(), domain.Snapshot{Zones: testZones}))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, len(testZones))
}

func TestRead_HeaderMismatch(t *testing.T) {
	_, err := Read(strings.NewReader("code,name,synopsis\nANZ335,Boston,ANZ300\n"))
	require.ErrorIs(t, err, ErrHeaderMismatch)

	_, err = Read(strings.NewReader(""))
	require.ErrorIs(t, err, ErrHeaderMismatch)
}

func TestRead_WrongFieldCount(t *testing.T) {
	_, err := Read(strings.NewReader("zone_code,location_name,synopsis_zone\nANZ335,Boston\n"))
	require.Error(t, err)
}
