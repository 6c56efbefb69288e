package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/erazemk/oglasna/internal/board"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oglasna.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
addr = "127.0.0.1:9090"
base_url = "https://board.example/"

[storage]
path = "/var/lib/oglasna/board.sqlite3"

[images]
thumbnails = true

[share]
platforms = ["Facebook", "facebook", " instagram "]

[[events.seed]]
title = "Potluck"
date = "2025-12-01"
link = "https://example.com/potluck"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Addr = "127.0.0.1:9090"
	want.BaseURL = "https://board.example"
	want.Storage.Path = "/var/lib/oglasna/board.sqlite3"
	want.Images.Thumbnails = true
	want.Share.Platforms = []string{"facebook", "instagram"}
	want.Events.Seed = []board.EventInput{{Title: "Potluck", Date: "2025-12-01", Link: "https://example.com/potluck"}}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadEmptySeedDisablesSamples(t *testing.T) {
	path := writeConfig(t, "[events]\nseed = []\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Events.Seed == nil || len(cfg.Events.Seed) != 0 {
		t.Errorf("expected an explicit empty seed list, got %#v", cfg.Events.Seed)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "addr = ", "loading config"},
		{"unknown key", "adress = \":80\"", "unknown key"},
		{"unknown driver", "[storage]\ndriver = \"mongo\"", "unknown storage driver"},
		{"postgres without dsn", "[storage]\ndriver = \"postgres\"", "storage.dsn is required"},
		{"bad base url", "base_url = \"board.example\"", "base_url"},
		{"bad placeholder", "[images]\nneed_placeholder = \"ftp://x\"", "placeholder image"},
		{"tiny thumbnails", "[images]\nmax_dimension = 4", "max_dimension"},
		{"bad platform", "[share]\nplatforms = [\"myspace\"]", "unsupported share platform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestMemoryDriver(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[storage]\ndriver = \"Memory\"\npath = \"\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("expected memory driver, got %q", cfg.Storage.Driver)
	}
}
