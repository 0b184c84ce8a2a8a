package domain

import (
	"strings"
	"time"
)

// MarinePrefixes lists the zone code prefixes that identify marine zones.
var MarinePrefixes = []string{"ANZ", "AMZ", "GMZ", "PMZ", "OZ", "HZ"}

// Positional schema of a zone file line.
const (
	FieldZoneCode     = 0
	FieldLocationName = 1
	FieldSynopsisZone = 3

	// MinFields is the fewest '|'-separated fields a data line may have.
	MinFields = 4

	FieldSeparator = "|"
	CommentPrefix  = "#"
)

// CSVHeader is the column order of the marine zone CSV output.
var CSVHeader = []string{"zone_code", "location_name", "synopsis_zone"}

// MarineZone is a single marine forecast zone extracted from the zone file.
type MarineZone struct {
	ZoneCode     string `json:"zone_code"`
	LocationName string `json:"location_name"`
	SynopsisZone string `json:"synopsis_zone"`
}

// Row returns the zone as a CSV row in CSVHeader order.
func (z MarineZone) Row() []string {
	return []string{z.ZoneCode, z.LocationName, z.SynopsisZone}
}

// ZonePrefix returns the marine prefix the code starts with, or "" if the code
// is not a marine zone.
func ZonePrefix(code string) string {
	for _, p := range MarinePrefixes {
		if strings.HasPrefix(code, p) {
			return p
		}
	}
	return ""
}

// IsMarineZone reports whether code starts with one of MarinePrefixes.
func IsMarineZone(code string) bool {
	return ZonePrefix(code) != ""
}

// Snapshot is the result of one successful extraction run.
type Snapshot struct {
	Zones     []MarineZone `json:"zones"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// NewSnapshot stamps zones with the current time.
func NewSnapshot(zones []MarineZone) Snapshot {
	return Snapshot{Zones: zones, FetchedAt: clock.Now().UTC()}
}

// FilterByPrefix returns the zones whose code starts with prefix, preserving order.
func (s Snapshot) FilterByPrefix(prefix string) []MarineZone {
	out := make([]MarineZone, 0, len(s.Zones))
	for _, z := range s.Zones {
		if strings.HasPrefix(z.ZoneCode, prefix) {
			out = append(out, z)
		}
	}
	return out
}
