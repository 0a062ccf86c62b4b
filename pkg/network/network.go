// Package network defines the directed, weighted multigraph of train
// stations and routes that the analysis pipeline operates on.
//
// The graph uses explicit adjacency lists keyed by stable, externally
// assigned integer station ids. There is no hidden renumbering: the id a
// station carries in the input data is the id every metric reports.
//
// A Network is built once by the loader and never mutated afterwards. It is
// safe for concurrent reads but not for concurrent writes.
package network

import "slices"

// Network is a directed multigraph over the set of station ids, with the
// route list as its edge set. The zero value is not usable - use New.
type Network struct {
	stations map[int64]*Station
	order    []int64 // station ids in insertion order, used for stable iteration
	routes   []Route
	outgoing map[int64][]int64 // station id -> target ids, one entry per route
	incoming map[int64][]int64 // station id -> source ids, one entry per route
}

// New creates an empty network.
func New() *Network {
	return &Network{
		stations: make(map[int64]*Station),
		outgoing: make(map[int64][]int64),
		incoming: make(map[int64][]int64),
	}
}

// AddStation adds a station to the network.
// Returns ErrInvalidStationID if the id is not positive, or
// ErrDuplicateStationID if a station with the same id already exists.
func (n *Network) AddStation(s Station) error {
	if s.ID <= 0 {
		return ErrInvalidStationID
	}
	if _, exists := n.stations[s.ID]; exists {
		return ErrDuplicateStationID
	}
	st := s
	n.stations[st.ID] = &st
	n.order = append(n.order, st.ID)
	return nil
}

// AddRoute adds a directed route between two existing stations.
// Returns ErrUnknownSourceStation or ErrUnknownTargetStation if an endpoint
// does not exist, or ErrInvalidWeight if the weight is outside
// [MinWeight, MaxWeight]. Parallel routes between the same ordered pair are
// allowed; each call appends a distinct edge.
func (n *Network) AddRoute(r Route) error {
	if _, ok := n.stations[r.From]; !ok {
		return ErrUnknownSourceStation
	}
	if _, ok := n.stations[r.To]; !ok {
		return ErrUnknownTargetStation
	}
	if r.Weight < MinWeight || r.Weight > MaxWeight {
		return ErrInvalidWeight
	}
	n.routes = append(n.routes, r)
	n.outgoing[r.From] = append(n.outgoing[r.From], r.To)
	n.incoming[r.To] = append(n.incoming[r.To], r.From)
	return nil
}

// Station returns the station with the given id and true, or nil and false
// if not found.
func (n *Network) Station(id int64) (*Station, bool) {
	s, ok := n.stations[id]
	return s, ok
}

// HasStation reports whether a station with the given id exists.
func (n *Network) HasStation(id int64) bool {
	_, ok := n.stations[id]
	return ok
}

// Stations returns all stations in insertion order.
func (n *Network) Stations() []*Station {
	out := make([]*Station, len(n.order))
	for i, id := range n.order {
		out[i] = n.stations[id]
	}
	return out
}

// StationIDs returns all station ids in insertion order.
// Insertion order matches the original station order in the input data and
// is used for deterministic iteration and tie-breaking.
func (n *Network) StationIDs() []int64 {
	return slices.Clone(n.order)
}

// Routes returns a copy of all routes in insertion order.
func (n *Network) Routes() []Route {
	return slices.Clone(n.routes)
}

// StationCount returns the number of stations in the network.
func (n *Network) StationCount() int { return len(n.stations) }

// RouteCount returns the number of routes in the network, counting parallel
// edges individually.
func (n *Network) RouteCount() int { return len(n.routes) }

// Outgoing returns the target station ids of routes leaving the station,
// one entry per route. The returned slice is a read-only view.
func (n *Network) Outgoing(id int64) []int64 { return n.outgoing[id] }

// Incoming returns the source station ids of routes entering the station,
// one entry per route. The returned slice is a read-only view.
func (n *Network) Incoming(id int64) []int64 { return n.incoming[id] }

// OutDegree returns the number of routes leaving the station.
func (n *Network) OutDegree(id int64) int { return len(n.outgoing[id]) }

// InDegree returns the number of routes entering the station.
func (n *Network) InDegree(id int64) int { return len(n.incoming[id]) }

// Degree returns the undirected degree of the station: the count of incident
// routes in either direction. Each directed route contributes one increment
// to its source's and one to its target's degree.
func (n *Network) Degree(id int64) int {
	return len(n.outgoing[id]) + len(n.incoming[id])
}

// Build constructs a network from a station set and route set.
// Every route endpoint must reference an existing station; the first
// violation aborts construction with the underlying sentinel error.
func Build(stations []Station, routes []Route) (*Network, error) {
	n := New()
	for _, s := range stations {
		if err := n.AddStation(s); err != nil {
			return nil, err
		}
	}
	for _, r := range routes {
		if err := n.AddRoute(r); err != nil {
			return nil, err
		}
	}
	return n, nil
}
