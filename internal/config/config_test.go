package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug not set")
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Analysis.DefaultLimit != 5 || cfg.Analysis.MaxLimit != 20 {
		t.Errorf("analysis defaults = %+v", cfg.Analysis)
	}
	if cfg.Scoring == nil {
		t.Fatal("scoring defaults missing")
	}
	if cfg.Scoring.GapPenalty != -500 {
		t.Errorf("gap penalty = %d, want -500", cfg.Scoring.GapPenalty)
	}
}

func TestLoadScoringOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "scoring:\n  gap_penalty: -300\n  path_limit: 3\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scoring.GapPenalty != -300 {
		t.Errorf("gap penalty = %d, want -300", cfg.Scoring.GapPenalty)
	}
	if cfg.Scoring.PathLimit != 3 {
		t.Errorf("path limit = %d, want 3", cfg.Scoring.PathLimit)
	}
	// Untouched weights keep their defaults.
	if cfg.Scoring.ScoreCutoff != 5 {
		t.Errorf("score cutoff = %d, want default 5", cfg.Scoring.ScoreCutoff)
	}
}

func TestLoadExpandsRelativePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "lexicon:\n  database_path: ./lexicon.db\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := filepath.Join(dir, "lexicon.db")
	if cfg.Lexicon.DatabasePath != want {
		t.Errorf("database path = %q, want %q", cfg.Lexicon.DatabasePath, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Server.Port = 9999
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", loaded.Server.Port)
	}
}
