package domain

import "strings"

// SkipReason explains why a line produced no zone.
type SkipReason string

const (
	SkipBlank     SkipReason = "blank"
	SkipComment   SkipReason = "comment"
	SkipShort     SkipReason = "short"
	SkipNonMarine SkipReason = "non_marine"
)

// SkipReasons lists every SkipReason, in the order lines are checked.
var SkipReasons = []SkipReason{SkipBlank, SkipComment, SkipShort, SkipNonMarine}

// ParseStats counts what happened to each input line.
type ParseStats struct {
	Lines   int
	Emitted int
	Skipped map[SkipReason]int
}

// ParseZones extracts marine zones from zone file lines, in input order.
func ParseZones(lines []string) []MarineZone {
	zones, _ := ParseZonesWithStats(lines)
	return zones
}

// ParseZonesWithStats is ParseZones plus per-reason skip counts.
func ParseZonesWithStats(lines []string) ([]MarineZone, ParseStats) {
	stats := ParseStats{Lines: len(lines), Skipped: make(map[SkipReason]int, len(SkipReasons))}
	zones := make([]MarineZone, 0)

	for _, line := range lines {
		zone, reason, ok := parseLine(line)
		if !ok {
			stats.Skipped[reason]++
			continue
		}
		zones = append(zones, zone)
	}

	stats.Emitted = len(zones)
	return zones, stats
}

// parseLine converts one line into a zone. The line itself is not trimmed
// before the blank and comment checks.
func parseLine(line string) (MarineZone, SkipReason, bool) {
	if line == "" {
		return MarineZone{}, SkipBlank, false
	}
	if strings.HasPrefix(line, CommentPrefix) {
		return MarineZone{}, SkipComment, false
	}

	fields := strings.Split(line, FieldSeparator)
	if len(fields) < MinFields {
		return MarineZone{}, SkipShort, false
	}

	code := strings.TrimSpace(fields[FieldZoneCode])
	if !IsMarineZone(code) {
		return MarineZone{}, SkipNonMarine, false
	}

	return MarineZone{
		ZoneCode:     code,
		LocationName: NormalizeWhitespace(fields[FieldLocationName]),
		SynopsisZone: fieldOrEmpty(fields, FieldSynopsisZone),
	}, "", true
}

// fieldOrEmpty returns the trimmed field at i, or "" when the line is too short.
func fieldOrEmpty(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// NormalizeWhitespace trims s and collapses internal whitespace runs to a single space.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
