package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportWritesRankedCSV(t *testing.T) {
	env := setupCLIEnv(t)
	seedCatalog(t, env,
		seedEntry{title: "Alien", year: 1979, rating: 8.5, review: "classic"},
		seedEntry{title: "Blade Runner", year: 1982, rating: 9.5},
	)

	target := filepath.Join(t.TempDir(), "movies.csv")
	out, _, err := runCLI(t, env, "", "export", "--output", target)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported 2 movies")

	file, err := os.Open(target)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	wantHeader := []string{"Title", "Year", "Rating", "Ranking", "Review", "Description", "Poster URL"}
	for i, column := range wantHeader {
		if records[0][i] != column {
			t.Fatalf("header column %d: expected %q, got %q", i, column, records[0][i])
		}
	}
	if records[1][0] != "Blade Runner" || records[1][3] != "1" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][0] != "Alien" || records[2][3] != "2" {
		t.Fatalf("unexpected second row: %v", records[2])
	}
}

func TestExportToStdout(t *testing.T) {
	env := setupCLIEnv(t)
	seedCatalog(t, env, seedEntry{title: "Alien", year: 1979, rating: 8.5})

	out, _, err := runCLI(t, env, "", "export", "--output", "-")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out)
	}
	requireContains(t, lines[0], "Poster URL")
	requireContains(t, lines[1], "Alien")
}

func TestExportDefaultsToConfiguredDirectory(t *testing.T) {
	env := setupCLIEnv(t)
	seedCatalog(t, env, seedEntry{title: "Alien", year: 1979, rating: 8.5})

	out, _, err := runCLI(t, env, "", "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	target := filepath.Join(env.cfg.Paths.ExportDir, "movies.csv")
	requireContains(t, out, target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected export at %s: %v", target, err)
	}
}
