// Command import loads observances from a JSON or YAML file into the SQLite
// database.
//
// Usage:
//
//	go run ./cmd/import -file data/observances.yaml -db data/almanac.db -year 2025
//
// This tool:
// 1. Parses the file (format chosen by extension)
// 2. Creates/opens the SQLite database and runs migrations
// 3. Imports every observance in a single transaction
// 4. Optionally prints the Gregorian dates each one falls on in -year
//
// Any invalid or duplicate record aborts the whole import.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/almanac-api/internal/calendar"
	"github.com/zapponejosh/almanac-api/internal/database"
	"github.com/zapponejosh/almanac-api/internal/labels"
	"github.com/zapponejosh/almanac-api/internal/logger"
)

// importFile is the on-disk layout.
type importFile struct {
	Source      string         `json:"source" yaml:"source"`
	Observances []importRecord `json:"observances" yaml:"observances"`
}

type importRecord struct {
	Name        string `json:"name" yaml:"name"`
	LunarMonth  int    `json:"lunar_month" yaml:"lunar_month"`
	LunarDay    int    `json:"lunar_day" yaml:"lunar_day"`
	IsLeapMonth bool   `json:"is_leap_month" yaml:"is_leap_month"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func main() {
	filePath := flag.String("file", "data/observances.json", "Path to a JSON or YAML observances file")
	dbPath := flag.String("db", "data/almanac.db", "Path to SQLite database")
	year := flag.Int("year", 0, "Print the dates each observance falls on in this Gregorian year")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text")

	if err := run(*filePath, *dbPath, *year, log); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("import complete")
}

func run(filePath, dbPath string, year int, log *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse the file
	// =========================================================================
	log.Info("reading observances", slog.String("path", filePath))

	file, err := readFile(filePath)
	if err != nil {
		return err
	}

	obs := make([]database.Observance, 0, len(file.Observances))
	for _, r := range file.Observances {
		o := database.Observance{
			Name:        r.Name,
			LunarMonth:  r.LunarMonth,
			LunarDay:    r.LunarDay,
			IsLeapMonth: r.IsLeapMonth,
		}
		if r.Notes != "" {
			notes := r.Notes
			o.Notes = &notes
		}
		obs = append(obs, o)
	}

	log.Info("parsed observances",
		slog.Int("count", len(obs)),
		slog.String("source", file.Source),
	)

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	log.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import in one transaction
	// =========================================================================
	imported, err := db.ImportObservances(ctx, obs)
	if err != nil {
		return fmt.Errorf("import observances: %w", err)
	}

	total, err := db.CountObservances(ctx)
	if err != nil {
		return fmt.Errorf("count observances: %w", err)
	}

	elapsed := time.Since(startTime)
	log.Info("import verified",
		slog.Int("imported", imported),
		slog.Int("total", total),
		slog.Duration("elapsed", elapsed),
	)

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Observances imported: %d\n", imported)
	fmt.Printf("Observances stored:   %d\n", total)
	fmt.Printf("Time elapsed:         %v\n", elapsed.Round(time.Millisecond))

	// =========================================================================
	// Step 4: Optional dates for a year
	// =========================================================================
	if year == 0 {
		return nil
	}

	engine, err := calendar.NewEngine(calendar.DefaultEra)
	if err != nil {
		return fmt.Errorf("build calendar: %w", err)
	}

	fmt.Println()
	fmt.Printf("=== Dates in %d ===\n", year)
	for _, o := range obs {
		dates, err := engine.Anniversaries(o.LunarMonth, o.LunarDay, o.IsLeapMonth, year)
		if err != nil {
			return fmt.Errorf("dates for %q: %w", o.Name, err)
		}
		strs := make([]string, 0, len(dates))
		for _, d := range dates {
			strs = append(strs, d.String())
		}
		if len(strs) == 0 {
			strs = append(strs, "-")
		}
		fmt.Printf("%-24s %s%s  %s\n", o.Name,
			labels.LunarMonth(o.LunarMonth, o.IsLeapMonth), labels.LunarDay(o.LunarDay),
			strings.Join(strs, ", "))
	}

	return nil
}

// readFile decodes YAML for .yaml/.yml and JSON otherwise. A bare list of
// observances is accepted in either format.
func readFile(path string) (importFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return importFile{}, fmt.Errorf("read file: %w", err)
	}

	var f importFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			var list []importRecord
			if yaml.Unmarshal(data, &list) != nil {
				return importFile{}, fmt.Errorf("parse YAML: %w", err)
			}
			f.Observances = list
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			var list []importRecord
			if json.Unmarshal(data, &list) != nil {
				return importFile{}, fmt.Errorf("parse JSON: %w", err)
			}
			f.Observances = list
		}
	}
	return f, nil
}
