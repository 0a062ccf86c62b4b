package metrics

import (
	"sort"

	"github.com/mlmac-seid/london-train-network/pkg/network"
)

// DegreeCentrality returns one entry per station, sorted by descending
// undirected degree (in+out incident routes). Ties keep the original
// station order from the input data, so the table is fully deterministic.
func DegreeCentrality(n *network.Network) []DegreeEntry {
	ids := n.StationIDs()
	entries := make([]DegreeEntry, 0, len(ids))
	for _, id := range ids {
		s, _ := n.Station(id)
		entries = append(entries, DegreeEntry{
			StationID: id,
			Name:      s.Name,
			Degree:    n.Degree(id),
		})
	}

	// SliceStable preserves insertion order within equal degrees.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Degree > entries[j].Degree
	})
	return entries
}
