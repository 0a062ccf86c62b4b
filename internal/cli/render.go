package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlmac-seid/london-train-network/pkg/config"
	"github.com/mlmac-seid/london-train-network/pkg/pipeline"
)

// renderCommand creates the render command for producing artifacts without
// the metrics summary. Useful when only the diagram is wanted, e.g. in
// scripts or build pipelines.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		delimiter  string
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [stations.csv] [routes.csv]",
		Short: "Render the station network diagram",
		Long: `Render the station network diagram.

The render command loads the input tables, builds the network and writes
the requested artifacts without printing the metrics summary. The metrics
are still computed when the json format is requested.

Use 'analyze' to also see the metrics summary.`,
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

			return c.runRender(cmd.Context(), opts, cfg, output, noCache)
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
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached results exist")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the pipeline and writes artifacts only.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, cfg config.Config, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering network...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %d stations, %d routes", result.Stats.StationCount, result.Stats.RouteCount)
	printStats(result.Stats.StationCount, result.Stats.RouteCount, result.CacheInfo.RenderHit)

	return writeArtifacts(result.Artifacts, opts, output)
}
