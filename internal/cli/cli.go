// Package cli implements the routeplanner command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/staragarcia/routeplanner/pkg/buildinfo"
	"github.com/staragarcia/routeplanner/pkg/cache"
	"github.com/staragarcia/routeplanner/pkg/config"
	"github.com/staragarcia/routeplanner/pkg/dataset"
	"github.com/staragarcia/routeplanner/pkg/httputil"
	"github.com/staragarcia/routeplanner/pkg/planner"
	"github.com/staragarcia/routeplanner/pkg/roadmap"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	locations  string
	distances  string
	graphJSON  string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Routeplanner finds driving and park-and-walk routes",
		Long: `Routeplanner finds the fastest driving route between two locations of a road
network, alternatives to it, routes that avoid given locations or roads, and
environmentally friendly routes that park the car and walk the rest of the way.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/routeplanner/config.toml)")
	flags.StringVar(&c.locations, "locations", "", "locations CSV file or URL (overrides config)")
	flags.StringVar(&c.distances, "distances", "", "distances CSV file or URL (overrides config)")
	flags.StringVar(&c.graphJSON, "graph", "", "JSON graph file or URL, used instead of the CSV pair")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the report cache")

	// Register all subcommands
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.restrictedCommand())
	root.AddCommand(c.ecoCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.menuCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies flag overrides. The config
// log level only applies when --verbose was not given.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.locations != "" {
		cfg.Dataset.Locations = c.locations
	}
	if c.distances != "" {
		cfg.Dataset.Distances = c.distances
	}
	if c.graphJSON != "" {
		cfg.Dataset.JSON = c.graphJSON
	}
	if c.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	c.Config = cfg

	if c.Logger.GetLevel() != log.DebugLevel {
		c.SetLogLevel(cfg.Level())
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Planner Factory
// =============================================================================

// loadGraph reads the configured dataset. Remote files are downloaded
// through rc.
func (c *CLI) loadGraph(ctx context.Context, rc cache.Cache) (*roadmap.Graph[int], error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	fetch := httputil.NewClient(rc, c.Config.Cache.TTL, logger)

	var (
		g   *roadmap.Graph[int]
		err error
	)
	if path := c.Config.Dataset.JSON; path != "" {
		g, err = dataset.ImportJSONFrom(ctx, fetch, path)
	} else {
		g, err = dataset.LoadFrom(ctx, fetch, c.Config.Dataset.Locations, c.Config.Dataset.Distances)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	prog.done(fmt.Sprintf("Loaded %d locations and %d roads", g.VertexCount(), g.EdgeCount()))
	return g, nil
}

// newPlanner loads the dataset and creates a planner for CLI use. The caller
// closes the planner's cache.
func (c *CLI) newPlanner(ctx context.Context) (*planner.Planner, error) {
	strategy, err := planner.ParseStrategy(c.Config.Planner.Alternative)
	if err != nil {
		return nil, err
	}
	rc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	g, err := c.loadGraph(ctx, rc)
	if err != nil {
		rc.Close()
		return nil, err
	}

	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns+":")
	}
	p := planner.NewPlanner(g, rc, keyer, loggerFromContext(ctx))
	p.Alternative = strategy
	p.TTL = c.Config.Cache.TTL
	return p, nil
}

// newCache opens the configured cache backend. A file cache that cannot be
// located falls back to no caching.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: the configured one, or the XDG
// default (~/.cache/routeplanner/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// openOutput returns w for "" or "-", otherwise creates path.
func openOutput(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
