// Package config loads the server configuration from a TOML file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/erazemk/oglasna/internal/board"
	"github.com/erazemk/oglasna/internal/sanitize"
	"github.com/erazemk/oglasna/internal/share"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the server configuration.
type Config struct {
	Addr    string
	BaseURL string
	LogPath string
	Storage StorageConfig
	Images  ImagesConfig
	Share   ShareConfig
	Events  EventsConfig
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Driver string
	Path   string
	DSN    string
}

// ImagesConfig holds image defaults and thumbnailing.
type ImagesConfig struct {
	PrayerPlaceholder string
	NeedPlaceholder   string
	Thumbnails        bool
	MaxDimension      int
}

// ShareConfig lists the offered share platforms.
type ShareConfig struct {
	Platforms []string
}

// EventsConfig holds the events seeded on an empty board. Nil means the
// built-in sample events.
type EventsConfig struct {
	Seed []board.EventInput
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr: ":8080",
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "oglasna.sqlite3",
		},
		Images: ImagesConfig{
			PrayerPlaceholder: board.DefaultPrayerImage,
			NeedPlaceholder:   board.DefaultNeedImage,
			MaxDimension:      480,
		},
		Share: ShareConfig{
			Platforms: append([]string(nil), share.Platforms...),
		},
	}
}

type fileConfig struct {
	Addr    string `toml:"addr"`
	BaseURL string `toml:"base_url"`
	Log     string `toml:"log"`
	Storage struct {
		Driver string `toml:"driver"`
		Path   string `toml:"path"`
		DSN    string `toml:"dsn"`
	} `toml:"storage"`
	Images struct {
		PrayerPlaceholder string `toml:"prayer_placeholder"`
		NeedPlaceholder   string `toml:"need_placeholder"`
		Thumbnails        bool   `toml:"thumbnails"`
		MaxDimension      int    `toml:"max_dimension"`
	} `toml:"images"`
	Share struct {
		Platforms []string `toml:"platforms"`
	} `toml:"share"`
	Events struct {
		Seed []struct {
			Title string `toml:"title"`
			Date  string `toml:"date"`
			Image string `toml:"image"`
			Link  string `toml:"link"`
		} `toml:"seed"`
	} `toml:"events"`
}

// Load reads path and overlays the keys it defines onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("loading config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("base_url") {
		cfg.BaseURL = strings.TrimRight(strings.TrimSpace(raw.BaseURL), "/")
	}
	if meta.IsDefined("log") {
		cfg.LogPath = strings.TrimSpace(raw.Log)
	}

	if meta.IsDefined("storage", "driver") {
		cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(raw.Storage.Driver))
	}
	if meta.IsDefined("storage", "path") {
		cfg.Storage.Path = strings.TrimSpace(raw.Storage.Path)
	}
	if meta.IsDefined("storage", "dsn") {
		cfg.Storage.DSN = strings.TrimSpace(raw.Storage.DSN)
	}

	if meta.IsDefined("images", "prayer_placeholder") {
		cfg.Images.PrayerPlaceholder = strings.TrimSpace(raw.Images.PrayerPlaceholder)
	}
	if meta.IsDefined("images", "need_placeholder") {
		cfg.Images.NeedPlaceholder = strings.TrimSpace(raw.Images.NeedPlaceholder)
	}
	if meta.IsDefined("images", "thumbnails") {
		cfg.Images.Thumbnails = raw.Images.Thumbnails
	}
	if meta.IsDefined("images", "max_dimension") {
		cfg.Images.MaxDimension = raw.Images.MaxDimension
	}

	if meta.IsDefined("share", "platforms") {
		cfg.Share.Platforms = normalizePlatforms(raw.Share.Platforms)
	}

	if meta.IsDefined("events", "seed") {
		cfg.Events.Seed = []board.EventInput{}
		for _, s := range raw.Events.Seed {
			cfg.Events.Seed = append(cfg.Events.Seed, board.EventInput{
				Title: s.Title,
				Date:  s.Date,
				Image: s.Image,
				Link:  s.Link,
			})
		}
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cfg for values the server cannot run with.
func Validate(cfg Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if cfg.BaseURL != "" && !sanitize.ValidateURL(cfg.BaseURL) {
		return fmt.Errorf("base_url must start with http:// or https://")
	}

	switch cfg.Storage.Driver {
	case DriverSQLite:
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	for _, u := range []string{cfg.Images.PrayerPlaceholder, cfg.Images.NeedPlaceholder} {
		if u == "" || !sanitize.ValidateURL(u) {
			return fmt.Errorf("placeholder image %q must be an http(s) URL", u)
		}
	}
	if cfg.Images.MaxDimension < 16 {
		return fmt.Errorf("images.max_dimension must be at least 16")
	}

	for _, p := range cfg.Share.Platforms {
		if !share.Supported(p) {
			return fmt.Errorf("unsupported share platform %q", p)
		}
	}
	return nil
}

func normalizePlatforms(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool)
	for _, p := range in {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
