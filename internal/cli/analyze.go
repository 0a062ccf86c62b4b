package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlmac-seid/london-train-network/pkg/config"
	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/pipeline"
)

// analyzeCommand creates the analyze command running the full pipeline.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		formatsStr string
		delimiter  string
		output     string
		configPath string
		topN       int
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "analyze [stations.csv] [routes.csv]",
		Short: "Compute network metrics and render the station diagram",
		Long: `Compute network metrics and render the station diagram.

The analyze command loads the station and route tables, builds the directed
network, computes density, degree centrality, shortest-path statistics,
diameter and strongly connected components, renders the requested artifacts
and prints a styled metrics summary.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.StationsPath = args[0]
			opts.RoutesPath = args[1]
			opts.Formats = parseFormats(formatsStr)
			if err := applyDelimiter(&opts, delimiter); err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyConfig(cmd, cfg, &opts)

			return c.runAnalyze(cmd.Context(), opts, cfg, output, topN, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "input field delimiter (default ',')")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultFile, "config file path")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "layout engine: neato (default), fdp")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "layout seed for reproducible diagrams (default 42)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "drawing width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "drawing height in pixels")
	cmd.Flags().IntVar(&topN, "top", pipeline.DefaultTopN, "degree table rows shown in the summary")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached results exist")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runAnalyze executes the pipeline and presents the results.
func (c *CLI) runAnalyze(ctx context.Context, opts pipeline.Options, cfg config.Config, output string, topN int, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Analyzing network...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return err
	}
	spinner.Stop()

	printSuccess("Analyzed %s", filepath.Base(opts.StationsPath))
	printStats(result.Stats.StationCount, result.Stats.RouteCount, result.CacheInfo.MetricsHit)
	if result.Stats.ShiftedIDs {
		printDetail("Station ids shifted to a 1-based range")
	}
	if result.Stats.DroppedSentinel {
		printDetail("Dropped a trailing placeholder station row")
	}

	if result.Report.UnreachablePairs > 0 {
		printWarning("Network is not strongly connected: %d station pairs are unreachable", result.Report.UnreachablePairs)
	}

	printReport(result.Report, topN)
	printNewline()

	if output == "" {
		output = cfg.Output.Dir
		if output != "" && output != "." {
			output = filepath.Join(output, baseName(opts.StationsPath))
		}
	}
	return writeArtifacts(result.Artifacts, opts, output)
}

// applyDelimiter parses the --delimiter flag into the pipeline options.
func applyDelimiter(opts *pipeline.Options, delimiter string) error {
	if delimiter == "" {
		return nil
	}
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "delimiter must be a single character, got %q", delimiter)
	}
	opts.Delimiter = runes[0]
	return nil
}

// baseName strips the directory and extension from a path.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeArtifacts writes rendered artifacts to disk.
// With a single format, output names the file directly; with multiple
// formats, output is a base path and each artifact gets its extension.
func writeArtifacts(artifacts map[string][]byte, opts pipeline.Options, output string) error {
	base := output
	if base == "" || base == "." {
		base = "railnet"
	}
	// Strip a known format extension so "out.svg" works as a base too
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if pipeline.ValidFormats[ext] {
		base = strings.TrimSuffix(base, "."+ext)
	}

	for _, format := range opts.Formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if len(opts.Formats) == 1 && output != "" && ext != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
