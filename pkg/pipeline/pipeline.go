// Package pipeline provides the core analysis pipeline for railnet.
//
// This package implements the complete load → build → metrics → render
// pipeline used by the CLI. Centralizing it keeps behavior identical no
// matter which subcommand triggers an analysis.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Parse and validate the station and route CSV files
//  2. Build: Construct the directed multigraph from the loaded records
//  3. Metrics: Compute the network metrics report
//  4. Render: Generate visualization artifacts (SVG, PNG, DOT, JSON)
//
// Metrics and render results are cached by content hash, so re-running an
// analysis on unchanged data only pays for loading and building.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    StationsPath: "stations.csv",
//	    RoutesPath:   "routes.csv",
//	    Formats:      []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlmac-seid/london-train-network/pkg/cache"
	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/metrics"
	"github.com/mlmac-seid/london-train-network/pkg/network"
	"github.com/mlmac-seid/london-train-network/pkg/render"
)

// Defaults shared by CLI flags and config file handling.
const (
	// DefaultEngine is the default force-directed layout engine.
	DefaultEngine = render.EngineNeato

	// DefaultSeed is the default layout seed for reproducibility.
	// It is recorded in every report even when the caller never set it.
	DefaultSeed = uint64(42)

	// DefaultWidth is the default drawing width in pixels.
	DefaultWidth = 1200

	// DefaultHeight is the default drawing height in pixels.
	DefaultHeight = 800

	// DefaultTopN is the default number of degree table rows shown in
	// the text report. The JSON report always carries the full table.
	DefaultTopN = 10
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	render.EngineNeato: true,
	render.EngineFDP:   true,
}

// Options contains all configuration for the analysis pipeline.
type Options struct {
	// Load options
	StationsPath string `json:"stations_path"`
	RoutesPath   string `json:"routes_path"`
	Delimiter    rune   `json:"delimiter,omitempty"`
	Refresh      bool   `json:"refresh,omitempty"`

	// Layout options
	Engine string `json:"engine,omitempty"`
	Seed   uint64 `json:"seed,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Network is the constructed station graph.
	Network *network.Network

	// NetworkHash is the content hash of the loaded data, used as the
	// cache key root for derived results.
	NetworkHash string

	// Report holds all computed metrics.
	Report *metrics.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StationCount    int
	RouteCount      int
	DroppedSentinel bool
	ShiftedIDs      bool
	LoadTime        time.Duration
	BuildTime       time.Duration
	MetricsTime     time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each cached pipeline stage.
type CacheInfo struct {
	MetricsHit bool // Whether the metrics report came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that a layout engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: neato, fdp)", engine)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.StationsPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "stations path is required")
	}
	if o.RoutesPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "routes path is required")
	}

	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Engine: o.Engine,
		Seed:   o.Seed,
		Width:  o.Width,
		Height: o.Height,
	}
}

// RenderOpts returns the render options derived from the pipeline options.
func (o *Options) RenderOpts() render.Options {
	return render.Options{
		Engine: o.Engine,
		Seed:   o.Seed,
		Width:  o.Width,
		Height: o.Height,
	}
}
