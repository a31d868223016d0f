package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinelog/internal/config"
	"cinelog/internal/testsupport"
)

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLIEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, env, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// init refuses to clobber without --overwrite
	_, _, err = runCLI(t, env, "", "config", "init", "--path", target)
	if err == nil {
		t.Fatal("expected an error for an existing file")
	}

	_, _, err = runCLI(t, env, "", "config", "init", "--path", target, "--overwrite")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowMasksAPIKey(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithTMDBKey("super-secret-key"))

	out, _, err := runCLI(t, env, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "movies.db")
	if strings.Contains(out, "super-secret") {
		t.Fatalf("api key leaked in output: %q", out)
	}
}

func TestConfigSetKeyPersists(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, env, "", "config", "set-key", "fresh-key-123")
	if err != nil {
		t.Fatalf("config set-key: %v", err)
	}
	requireContains(t, out, "Saved TMDB API key")

	cfg, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.TMDB.APIKey != "fresh-key-123" {
		t.Fatalf("expected persisted key, got %q", cfg.TMDB.APIKey)
	}

	info, err := os.Stat(env.configPath)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}
