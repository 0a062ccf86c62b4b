// Package cli implements the railnet command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mlmac-seid/london-train-network/pkg/buildinfo"
	"github.com/mlmac-seid/london-train-network/pkg/cache"
	"github.com/mlmac-seid/london-train-network/pkg/config"
	"github.com/mlmac-seid/london-train-network/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "railnet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "railnet",
		Short:        "Railnet analyzes train station networks",
		Long:         `Railnet is a CLI tool for analyzing directed, weighted train station networks: it computes density, centrality, shortest-path statistics and connectivity structure, and renders force-directed network diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Make the logger reachable from any command context.
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	}

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.CacheConfig, noCache bool) (*pipeline.Runner, error) {
	cch, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

// newCache selects the cache backend from config. A file cache whose
// directory cannot be resolved degrades to a null cache instead of failing.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "redis" {
		return cache.NewRedisCache(ctx, cfg.Addr, cfg.Password, cfg.DB)
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/railnet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// applyConfig fills pipeline options from the config file for any flag the
// user did not set explicitly. Flags win over file values.
func applyConfig(cmd *cobra.Command, cfg config.Config, opts *pipeline.Options) {
	if !cmd.Flags().Changed("engine") && cfg.Layout.Engine != "" {
		opts.Engine = cfg.Layout.Engine
	}
	if !cmd.Flags().Changed("seed") && cfg.Layout.Seed != 0 {
		opts.Seed = cfg.Layout.Seed
	}
	if !cmd.Flags().Changed("width") && cfg.Layout.Width != 0 {
		opts.Width = cfg.Layout.Width
	}
	if !cmd.Flags().Changed("height") && cfg.Layout.Height != 0 {
		opts.Height = cfg.Layout.Height
	}
	if !cmd.Flags().Changed("format") && len(cfg.Output.Formats) > 0 {
		opts.Formats = cfg.Output.Formats
	}
}
