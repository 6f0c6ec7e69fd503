// Package config loads the routeplanner configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/routeplanner/config.toml
// (~/.config/routeplanner/config.toml when XDG_CONFIG_HOME is unset):
//
//	[dataset]
//	locations = "data/Locations.csv"
//	distances = "data/Distances.csv"
//
//	[cache]
//	backend = "redis"   # file, redis or none
//	ttl = "12h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[log]
//	level = "debug"
//
//	[planner]
//	alternative = "disjoint"
//
// Every key is optional. Missing keys keep the values from [Default].
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	rperrors "github.com/staragarcia/routeplanner/pkg/errors"
)

// AppName names the configuration and cache directories.
const AppName = "routeplanner"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete configuration.
type Config struct {
	Dataset Dataset `toml:"dataset"`
	Cache   Cache   `toml:"cache"`
	Log     Log     `toml:"log"`
	Planner Planner `toml:"planner"`
	Server  Server  `toml:"server"`
}

// Dataset names the files the road network is loaded from. When JSON is
// set it is used instead of the CSV pair.
type Dataset struct {
	Locations string `toml:"locations"`
	Distances string `toml:"distances"`
	JSON      string `toml:"json"`
}

// Cache configures report caching.
type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"` // file backend; empty means CacheDir()
	TTL       time.Duration `toml:"ttl"`
	Namespace string        `toml:"namespace"` // key prefix, e.g. one per city
	Redis     Redis         `toml:"redis"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Planner configures route planning.
type Planner struct {
	Alternative string `toml:"alternative"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Dataset: Dataset{
			Locations: "data/Locations.csv",
			Distances: "data/Distances.csv",
		},
		Cache: Cache{
			Backend: BackendFile,
			TTL:     24 * time.Hour,
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: AppName + ":",
			},
		},
		Log:     Log{Level: "info"},
		Planner: Planner{Alternative: "detour"},
		Server:  Server{Addr: ":8080"},
	}
}

// Load reads the file at path on top of Default. An empty path means
// DefaultPath, and a missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, rperrors.Wrap(rperrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, rperrors.Wrap(rperrors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, rperrors.New(rperrors.ErrCodeInvalidInput, "config file %s: unknown key %s", path, undecoded[0])
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return rperrors.New(rperrors.ErrCodeInvalidInput, "cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return rperrors.New(rperrors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return rperrors.Wrap(rperrors.ErrCodeInvalidInput, err, "log level %q", c.Log.Level)
	}
	switch c.Planner.Alternative {
	case "", "detour", "disjoint":
	default:
		return rperrors.New(rperrors.ErrCodeInvalidInput, "alternative strategy %q (want detour or disjoint)", c.Planner.Alternative)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() log.Level {
	l, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// DefaultPath returns the configuration file path using the XDG standard
// (~/.config/routeplanner/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/routeplanner/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
