package metrics

import (
	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/network"
)

// DistanceStats aggregates every geodesic-distance measure so the all-pairs
// BFS only runs once. Distances are hop counts over directed routes; edge
// weights play no role here.
type DistanceStats struct {
	// Mean is the average shortest-path length over all ordered reachable
	// pairs, excluding self-pairs and unreachable pairs. Zero when no pair
	// is reachable.
	Mean float64

	// Histogram maps each path length ℓ ≥ 1 to the number of ordered
	// reachable pairs at exactly that hop distance.
	Histogram map[int]int

	// UnreachablePairs counts ordered pairs (u, v), u ≠ v, with no directed
	// path from u to v. Histogram totals plus this equal n×(n−1).
	UnreachablePairs int

	// Diameter is the maximum finite geodesic distance, 0 when no pair is
	// reachable.
	Diameter int

	// DiameterPath is one concrete shortest path realizing the diameter,
	// as a station id sequence of Diameter+1 entries. Empty when the
	// diameter is 0.
	DiameterPath []int64
}

// AnalyzeDistances runs an unweighted BFS from every station and derives
// the mean distance, the geodesic distance histogram, the unreachable pair
// count, and the diameter with a witness path.
// Fails with EMPTY_GRAPH on a zero-vertex network.
func AnalyzeDistances(n *network.Network) (*DistanceStats, error) {
	ids := n.StationIDs()
	if len(ids) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "distance metrics require at least one station")
	}

	stats := &DistanceStats{Histogram: make(map[int]int)}

	var (
		sum          int
		reachable    int
		bestSrc      int64
		bestDst      int64
		bestDist     int
		totalOrdered = len(ids) * (len(ids) - 1)
	)

	for _, src := range ids {
		dist := bfs(n, src)
		for _, dst := range ids {
			if dst == src {
				continue
			}
			d, ok := dist[dst]
			if !ok {
				continue
			}
			stats.Histogram[d]++
			sum += d
			reachable++
			if d > bestDist {
				bestDist, bestSrc, bestDst = d, src, dst
			}
		}
	}

	stats.UnreachablePairs = totalOrdered - reachable
	if reachable > 0 {
		stats.Mean = float64(sum) / float64(reachable)
	}
	stats.Diameter = bestDist
	if bestDist > 0 {
		stats.DiameterPath = shortestPath(n, bestSrc, bestDst)
	}
	return stats, nil
}

// bfs returns hop distances from src to every reachable station, following
// routes in their direction. Parallel edges and self-loops are naturally
// ignored by the visited check.
func bfs(n *network.Network, src int64) map[int64]int {
	dist := map[int64]int{src: 0}
	queue := []int64{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range n.Outgoing(cur) {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// shortestPath reconstructs one shortest directed path src→dst by BFS with
// parent links. Returns nil if dst is unreachable.
func shortestPath(n *network.Network, src, dst int64) []int64 {
	parent := map[int64]int64{src: src}
	queue := []int64{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == dst {
			break
		}
		for _, next := range n.Outgoing(cur) {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}

	if _, ok := parent[dst]; !ok {
		return nil
	}
	var path []int64
	for at := dst; ; at = parent[at] {
		path = append(path, at)
		if at == src {
			break
		}
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
