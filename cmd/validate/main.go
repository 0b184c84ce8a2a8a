// Command validate checks a marine zone CSV produced by marinezones: header
// shape, prefix invariant, whitespace normalization, and duplicate zone codes.
// With -source it also re-parses a local copy of the NWS zone file and checks
// that the CSV matches it row for row.
//
// Usage:
//
//	go run ./cmd/validate -csv marine_zones.csv -source testdata/z_290725.dbx
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/couchcryptid/marine-zones-etl/internal/adapter/nws"
	"github.com/couchcryptid/marine-zones-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "marine_zones.csv", "path to the marine zone CSV")
	sourcePath := flag.String("source", "", "optional local copy of the NWS zone file to compare against")
	flag.Parse()

	if code := run(*csvPath, *sourcePath); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, sourcePath string) int {
	fmt.Println("=== Marine Zone CSV Validation ===")
	fmt.Println()

	rows, err := loadCSV(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeader(rows),
		validateRows(rows),
	}

	if sourcePath != "" {
		lines, err := loadSource(sourcePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load source: %v\n", err)
			return 1
		}
		phases = append(phases, validateSourceParity(rows, domain.ParseZones(lines)))
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d CSV rows\n", max(len(rows)-1, 0))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no rows in %s", path)
	}
	return all, nil
}

func loadSource(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return nws.SplitLines(string(data)), nil
}

// ── Phase 1: Header ──

func validateHeader(rows [][]string) *phase {
	p := &phase{name: "Phase 1: Header"}
	if !slices.Equal(rows[0], domain.CSVHeader) {
		p.errorf("header is %q, want %q", rows[0], domain.CSVHeader)
	}
	return p
}

// ── Phase 2: Row invariants ──

func validateRows(rows [][]string) *phase {
	p := &phase{name: "Phase 2: Row Invariants"}

	seen := map[string]int{}
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) != len(domain.CSVHeader) {
			p.errorf("line %d: %d fields, want %d", line, len(row), len(domain.CSVHeader))
			continue
		}
		code, name, synopsis := row[0], row[1], row[2]

		if !domain.IsMarineZone(code) {
			p.errorf("line %d: zone_code %q has no marine prefix", line, code)
		}
		if name != domain.NormalizeWhitespace(name) {
			p.errorf("line %d: location_name %q is not whitespace-normalized", line, name)
		}
		if synopsis != strings.TrimSpace(synopsis) {
			p.errorf("line %d: synopsis_zone %q has surrounding whitespace", line, synopsis)
		}
		if first, ok := seen[code]; ok {
			p.errorf("line %d: zone_code %q duplicates line %d", line, code, first)
		} else {
			seen[code] = line
		}
	}
	return p
}

// ── Phase 3: Source parity ──

func validateSourceParity(rows [][]string, want []domain.MarineZone) *phase {
	p := &phase{name: "Phase 3: Source Parity (zone file vs CSV)"}

	got := rows[1:]
	if len(got) != len(want) {
		p.errorf("row count: source yields %d zones, CSV has %d", len(want), len(got))
	}
	for i := range min(len(got), len(want)) {
		if !slices.Equal(got[i], want[i].Row()) {
			p.errorf("line %d: CSV %q, source %q", i+2, got[i], want[i].Row())
		}
	}
	return p
}
