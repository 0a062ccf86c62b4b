// Package loader reads station and route tables from delimited files and
// produces validated, normalized record sets ready for graph construction.
//
// Two inputs are expected:
//
//   - stations: header row with at least "index" and "name" columns
//     (latitude/longitude and any extra columns are carried or ignored)
//   - routes: header row with "source", "target" and "weight" columns
//
// Column lookup is by header name, so column order and extra columns do not
// matter. All integrity violations surface as DATA_INTEGRITY errors: the
// whole report is invalid if any input row is, so loading is all-or-nothing.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/network"
)

// Options configures loading.
type Options struct {
	// Delimiter is the field separator. Defaults to ','.
	Delimiter rune
}

// Result holds the loaded and normalized record sets.
type Result struct {
	Stations []network.Station
	Routes   []network.Route

	// Shifted reports whether a +1 id shift was applied to make ids 1-based.
	Shifted bool
	// DroppedSentinel reports whether a placeholder station row was removed.
	DroppedSentinel bool
}

// LoadFiles reads the two input files and returns validated records.
func LoadFiles(stationsPath, routesPath string, opts Options) (*Result, error) {
	sf, err := os.Open(stationsPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open stations file %s", stationsPath)
	}
	defer sf.Close()

	rf, err := os.Open(routesPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open routes file %s", routesPath)
	}
	defer rf.Close()

	return Load(sf, rf, opts)
}

// Load reads stations and routes from the given readers.
//
// Normalization: if the minimum station index is 0, every station id and
// every route endpoint is shifted by +1 so ids are 1-based positive
// integers. A trailing placeholder station (id equal to the retained
// count+1 with a blank name) is dropped as a data-cleaning rule.
//
// Failures: duplicate station ids, routes referencing unknown stations,
// malformed numeric fields and out-of-range weights all fail with a
// DATA_INTEGRITY error.
func Load(stations, routes io.Reader, opts Options) (*Result, error) {
	rawStations, err := readStations(stations, opts)
	if err != nil {
		return nil, err
	}
	rawRoutes, err := readRoutes(routes, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Stations: rawStations, Routes: rawRoutes}
	normalize(res)

	if err := validate(res); err != nil {
		return nil, err
	}
	return res, nil
}

// normalize applies the 1-based id shift and drops the placeholder row.
func normalize(res *Result) {
	if len(res.Stations) == 0 {
		return
	}

	minID := res.Stations[0].ID
	maxID := res.Stations[0].ID
	for _, s := range res.Stations[1:] {
		if s.ID < minID {
			minID = s.ID
		}
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	// The graph representation requires positive ids. Shift the whole id
	// space, stations and route endpoints alike, when the data is 0-based.
	if minID == 0 {
		res.Shifted = true
		maxID++
		for i := range res.Stations {
			res.Stations[i].ID++
		}
		for i := range res.Routes {
			res.Routes[i].From++
			res.Routes[i].To++
		}
	}

	// Observed data quirk, not generic behavior: the export carries one
	// trailing placeholder row with no meaningful name. Its id equals the
	// retained station count+1, so it can never be a route endpoint target
	// of the real network.
	if maxID == int64(len(res.Stations)) {
		for i, s := range res.Stations {
			if s.ID == maxID && strings.TrimSpace(s.Name) == "" {
				res.Stations = append(res.Stations[:i], res.Stations[i+1:]...)
				res.DroppedSentinel = true
				break
			}
		}
	}
}

// validate checks id uniqueness and route endpoint references.
func validate(res *Result) error {
	seen := make(map[int64]bool, len(res.Stations))
	for _, s := range res.Stations {
		if seen[s.ID] {
			return errors.New(errors.ErrCodeDataIntegrity, "duplicate station id %d", s.ID)
		}
		seen[s.ID] = true
	}

	for i, r := range res.Routes {
		if !seen[r.From] {
			return errors.New(errors.ErrCodeDataIntegrity,
				"route %d references unknown source station %d", i, r.From)
		}
		if !seen[r.To] {
			return errors.New(errors.ErrCodeDataIntegrity,
				"route %d references unknown target station %d", i, r.To)
		}
		if r.Weight < network.MinWeight || r.Weight > network.MaxWeight {
			return errors.New(errors.ErrCodeDataIntegrity,
				"route %d has weight %d outside [%d, %d]", i, r.Weight, network.MinWeight, network.MaxWeight)
		}
	}
	return nil
}

func newReader(r io.Reader, opts Options) *csv.Reader {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// headerIndex maps lower-cased header names to column positions.
func headerIndex(header []string) map[string]int {
	h := make(map[string]int, len(header))
	for i, name := range header {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

// field returns the trimmed value of the named column, or "" if absent.
func field(row []string, h map[string]int, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readStations(r io.Reader, opts Options) ([]network.Station, error) {
	cr := newReader(r, opts)

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "read stations header")
	}
	h := headerIndex(header)
	for _, required := range []string{"index", "name"} {
		if _, ok := h[required]; !ok {
			return nil, errors.New(errors.ErrCodeDataIntegrity, "stations file missing %q column", required)
		}
	}

	var stations []network.Station
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "read stations row %d", line)
		}

		id, err := strconv.ParseInt(field(row, h, "index"), 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "stations row %d: bad index", line)
		}
		if id < 0 {
			return nil, errors.New(errors.ErrCodeDataIntegrity, "stations row %d: negative index %d", line, id)
		}

		s := network.Station{ID: id, Name: field(row, h, "name")}
		// Coordinates are informational; missing or blank values stay zero.
		if v := field(row, h, "latitude"); v != "" {
			if s.Lat, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "stations row %d: bad latitude", line)
			}
		}
		if v := field(row, h, "longitude"); v != "" {
			if s.Lon, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "stations row %d: bad longitude", line)
			}
		}
		stations = append(stations, s)
	}
	return stations, nil
}

func readRoutes(r io.Reader, opts Options) ([]network.Route, error) {
	cr := newReader(r, opts)

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "read routes header")
	}
	h := headerIndex(header)
	for _, required := range []string{"source", "target", "weight"} {
		if _, ok := h[required]; !ok {
			return nil, errors.New(errors.ErrCodeDataIntegrity, "routes file missing %q column", required)
		}
	}

	var routes []network.Route
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "read routes row %d", line)
		}

		from, err := strconv.ParseInt(field(row, h, "source"), 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "routes row %d: bad source", line)
		}
		to, err := strconv.ParseInt(field(row, h, "target"), 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "routes row %d: bad target", line)
		}
		weight, err := strconv.Atoi(field(row, h, "weight"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataIntegrity, err, "routes row %d: bad weight", line)
		}

		routes = append(routes, network.Route{From: from, To: to, Weight: weight})
	}
	return routes, nil
}
