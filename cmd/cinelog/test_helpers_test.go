package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cinelog/internal/catalog"
	"cinelog/internal/config"
	"cinelog/internal/testsupport"
)

type cliEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLIEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TMDB_API_KEY", "")

	cfg := testsupport.NewConfig(t, opts...)

	configPath := filepath.Join(homeDir, ".config", "cinelog", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := toml.Marshal(*cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type seedEntry struct {
	title  string
	year   int
	rating float64
	review string
	imgURL string
}

// seedCatalog writes records directly and releases the catalog lock so a
// subsequent CLI run can take it.
func seedCatalog(t *testing.T, env *cliEnv, seeds ...seedEntry) {
	t.Helper()
	store, err := catalog.Open(env.cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, seed := range seeds {
		movie, err := store.Add(ctx, catalog.NewMovie{Title: seed.title, Year: seed.year, ImgURL: seed.imgURL})
		if err != nil {
			t.Fatalf("seed %q: %v", seed.title, err)
		}
		if seed.rating != 0 || seed.review != "" {
			if err := store.UpdateReview(ctx, movie.ID, seed.rating, seed.review); err != nil {
				t.Fatalf("seed review %q: %v", seed.title, err)
			}
		}
	}
}

func catalogCount(t *testing.T, env *cliEnv) int {
	t.Helper()
	store, err := catalog.Open(env.cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func searchResultJSON(id int64, title, releaseDate string) string {
	return fmt.Sprintf(`{"page":1,"results":[{"id":%d,"title":%q,"release_date":%q,"overview":"..."}],"total_pages":1,"total_results":1}`,
		id, title, releaseDate)
}
