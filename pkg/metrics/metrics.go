// Package metrics computes network-science measures over a station network.
//
// Every metric is a read-only computation over a built [network.Network]
// snapshot; nothing here mutates the graph. The individual measures are
// independent of each other, but all of them require the graph to be fully
// constructed first - the pipeline enforces that sequencing.
//
// Semantics are deliberately kept at output parity with the exploratory
// analysis this tool replaces:
//
//   - Density uses the raw route count over n×(n−1), even though parallel
//     edges can in principle push the ratio past a simple graph's bound.
//   - Degree centrality ignores edge direction (in+out incident count).
//   - Distances are unweighted hop counts over directed routes.
//
// A "more correct" directed/weighted variant would be easy to build, but
// would silently change every published number.
package metrics

import (
	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/network"
)

// Report is a derived, read-only snapshot of all computed metrics.
// It has no identity beyond the computation that produced it and is
// JSON-serializable for machine-readable output.
type Report struct {
	RunID string `json:"run_id,omitempty"` // assigned by the pipeline
	Seed  uint64 `json:"seed,omitempty"`   // layout seed recorded for reproducibility

	StationCount int     `json:"station_count"`
	RouteCount   int     `json:"route_count"`
	Density      float64 `json:"density"`

	DegreeTable []DegreeEntry `json:"degree_table"`

	MeanDistance      float64     `json:"mean_distance"`
	DistanceHistogram map[int]int `json:"distance_histogram"`
	UnreachablePairs  int         `json:"unreachable_pairs"`
	Diameter          int         `json:"diameter"`
	DiameterPath      []int64     `json:"diameter_path"`

	Components Components `json:"components"`
}

// DegreeEntry is one row of the degree centrality table.
type DegreeEntry struct {
	StationID int64  `json:"station_id"`
	Name      string `json:"name"`
	Degree    int    `json:"degree"`
}

// Compute derives the full metrics report from the network.
// Fails with an EMPTY_GRAPH error when the network has no stations:
// the degenerate case must be reported, never silently zeroed.
func Compute(n *network.Network) (*Report, error) {
	if n.StationCount() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "metrics require at least one station")
	}

	density, err := Density(n)
	if err != nil {
		return nil, err
	}
	dist, err := AnalyzeDistances(n)
	if err != nil {
		return nil, err
	}
	comps, err := StronglyConnectedComponents(n)
	if err != nil {
		return nil, err
	}

	return &Report{
		StationCount:      n.StationCount(),
		RouteCount:        n.RouteCount(),
		Density:           density,
		DegreeTable:       DegreeCentrality(n),
		MeanDistance:      dist.Mean,
		DistanceHistogram: dist.Histogram,
		UnreachablePairs:  dist.UnreachablePairs,
		Diameter:          dist.Diameter,
		DiameterPath:      dist.DiameterPath,
		Components:        *comps,
	}, nil
}

// Density returns routeCount / (n × (n−1)), the directed simple-graph
// normalization over the raw edge count. A single-station network has
// density 0 by convention. Fails with EMPTY_GRAPH on a zero-vertex network.
func Density(n *network.Network) (float64, error) {
	count := n.StationCount()
	if count == 0 {
		return 0, errors.New(errors.ErrCodeEmptyGraph, "density requires at least one station")
	}
	if count == 1 {
		return 0, nil
	}
	return float64(n.RouteCount()) / float64(count*(count-1)), nil
}
