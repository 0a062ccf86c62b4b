package metrics

import (
	"sort"

	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/network"
)

// Components describes the strongly connected component decomposition.
// Two stations share a component iff each can reach the other via directed
// routes; stations unreachable to/from anything form singleton components.
type Components struct {
	// Count is the number of strongly connected components.
	Count int `json:"count"`

	// Sizes lists component sizes in descending order. They sum to the
	// station count: the components partition the vertex set exactly.
	Sizes []int `json:"sizes"`

	// Membership maps each station id to its component id. Component ids
	// are assigned in discovery order and carry no meaning beyond identity.
	Membership map[int64]int `json:"membership"`
}

// tarjanState holds per-station bookkeeping during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// StronglyConnectedComponents decomposes the network using Tarjan's
// algorithm in O(V+E) time, following routes in their direction only.
// Fails with EMPTY_GRAPH on a zero-vertex network.
func StronglyConnectedComponents(n *network.Network) (*Components, error) {
	ids := n.StationIDs()
	if len(ids) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "component decomposition requires at least one station")
	}

	state := make(map[int64]*tarjanState, len(ids))
	membership := make(map[int64]int, len(ids))
	var (
		stack   []int64
		counter int
		sizes   []int
	)

	var strongconnect func(u int64)
	strongconnect = func(u int64) {
		state[u] = &tarjanState{index: counter, lowlink: counter, onStack: true}
		counter++
		stack = append(stack, u)

		for _, v := range n.Outgoing(u) {
			if _, visited := state[v]; !visited {
				strongconnect(v)
				if state[v].lowlink < state[u].lowlink {
					state[u].lowlink = state[v].lowlink
				}
			} else if state[v].onStack {
				if state[v].index < state[u].lowlink {
					state[u].lowlink = state[v].index
				}
			}
		}

		// u is a root: pop the stack down to u to form one component.
		if state[u].lowlink == state[u].index {
			id := len(sizes)
			size := 0
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				membership[w] = id
				size++
				if w == u {
					break
				}
			}
			sizes = append(sizes, size)
		}
	}

	for _, id := range ids {
		if _, visited := state[id]; !visited {
			strongconnect(id)
		}
	}

	sorted := append([]int(nil), sizes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	return &Components{
		Count:      len(sizes),
		Sizes:      sorted,
		Membership: membership,
	}, nil
}
