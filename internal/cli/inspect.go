package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlmac-seid/london-train-network/pkg/loader"
	"github.com/mlmac-seid/london-train-network/pkg/network"
	"github.com/mlmac-seid/london-train-network/pkg/pipeline"
)

// inspectCommand creates the inspect command for checking input data.
func (c *CLI) inspectCommand() *cobra.Command {
	var delimiter string

	cmd := &cobra.Command{
		Use:   "inspect [stations.csv] [routes.csv]",
		Short: "Validate input data and show structural facts",
		Long: `Validate input data and show structural facts.

The inspect command loads and validates the input tables and builds the
network without computing metrics or rendering. Use it to check a dataset
before a full analysis, or to diagnose data integrity failures.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{}
			if err := applyDelimiter(&opts, delimiter); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], args[1], opts.Delimiter)
		},
	}

	cmd.Flags().StringVar(&delimiter, "delimiter", "", "input field delimiter (default ',')")

	return cmd
}

// runInspect loads, validates and summarizes the input without analysis.
func (c *CLI) runInspect(ctx context.Context, stationsPath, routesPath string, delimiter rune) error {
	p := newProgress(loggerFromContext(ctx))

	loaded, err := loader.LoadFiles(stationsPath, routesPath, loader.Options{Delimiter: delimiter})
	if err != nil {
		printError("Validation failed")
		return err
	}

	n, err := network.Build(loaded.Stations, loaded.Routes)
	if err != nil {
		printError("Validation failed")
		return err
	}
	p.done(fmt.Sprintf("Validated %d stations, %d routes", n.StationCount(), n.RouteCount()))

	printSuccess("Input data is valid")
	printKeyValue("Stations", fmt.Sprintf("%d", n.StationCount()))
	printKeyValue("Routes", fmt.Sprintf("%d", n.RouteCount()))
	if loaded.Shifted {
		printDetail("Station ids shifted to a 1-based range")
	}
	if loaded.DroppedSentinel {
		printDetail("Dropped a trailing placeholder station row")
	}

	minDeg, maxDeg := degreeRange(n)
	printKeyValue("Degree range", fmt.Sprintf("%d – %d", minDeg, maxDeg))
	printKeyValue("Isolated", fmt.Sprintf("%d stations", isolatedCount(n)))

	return nil
}

// degreeRange returns the minimum and maximum undirected degree.
func degreeRange(n *network.Network) (int, int) {
	ids := n.StationIDs()
	if len(ids) == 0 {
		return 0, 0
	}
	minDeg, maxDeg := n.Degree(ids[0]), n.Degree(ids[0])
	for _, id := range ids[1:] {
		d := n.Degree(id)
		if d < minDeg {
			minDeg = d
		}
		if d > maxDeg {
			maxDeg = d
		}
	}
	return minDeg, maxDeg
}

// isolatedCount counts stations with no incident routes.
func isolatedCount(n *network.Network) int {
	count := 0
	for _, id := range n.StationIDs() {
		if n.Degree(id) == 0 {
			count++
		}
	}
	return count
}
