package network

import "errors"

var (
	// ErrInvalidStationID is returned by [Network.AddStation] when the station
	// id is not a positive integer. External ids are 1-based and stable; the
	// graph never renumbers them.
	ErrInvalidStationID = errors.New("station id must be positive")

	// ErrDuplicateStationID is returned by [Network.AddStation] when a station
	// with the same id already exists. Station ids must be unique.
	ErrDuplicateStationID = errors.New("duplicate station id")

	// ErrUnknownSourceStation is returned by [Network.AddRoute] when the From
	// station does not exist in the network.
	ErrUnknownSourceStation = errors.New("unknown source station")

	// ErrUnknownTargetStation is returned by [Network.AddRoute] when the To
	// station does not exist in the network.
	ErrUnknownTargetStation = errors.New("unknown target station")

	// ErrInvalidWeight is returned by [Network.AddRoute] when the route weight
	// falls outside the [MinWeight, MaxWeight] range.
	ErrInvalidWeight = errors.New("route weight out of range")
)

// Route weights are small integers encoding line quality in the source data.
const (
	MinWeight = 1
	MaxWeight = 3
)

// Station is a vertex in the rail network. Stations are immutable once
// loaded: created at load time, read-only afterward.
type Station struct {
	ID   int64   // Unique 1-based identifier, externally assigned
	Name string  // Display name
	Lat  float64 // Latitude, informational only
	Lon  float64 // Longitude, informational only
}

// Route is a directed, weighted edge between two stations. Multiple routes
// between the same ordered pair are allowed and never deduplicated.
type Route struct {
	From   int64 // Source station id
	To     int64 // Target station id
	Weight int   // Weight in [MinWeight, MaxWeight]
}
