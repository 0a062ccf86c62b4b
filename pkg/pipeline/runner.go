package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mlmac-seid/london-train-network/pkg/cache"
	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/loader"
	"github.com/mlmac-seid/london-train-network/pkg/metrics"
	"github.com/mlmac-seid/london-train-network/pkg/network"
	"github.com/mlmac-seid/london-train-network/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → metrics → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	loaded, err := loader.LoadFiles(opts.StationsPath, opts.RoutesPath, loader.Options{Delimiter: opts.Delimiter})
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.DroppedSentinel = loaded.DroppedSentinel
	result.Stats.ShiftedIDs = loaded.Shifted

	// Content hash over the normalized records keys all derived results.
	if data, err := json.Marshal(loaded); err == nil {
		result.NetworkHash = cache.Hash(data)
	}

	r.Logger.Info("loaded input data",
		"stations", len(loaded.Stations),
		"routes", len(loaded.Routes),
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	n, err := network.Build(loaded.Stations, loaded.Routes)
	if err != nil {
		return nil, err
	}
	result.Network = n
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.StationCount = n.StationCount()
	result.Stats.RouteCount = n.RouteCount()

	r.Logger.Info("built network",
		"stations", n.StationCount(),
		"routes", n.RouteCount(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Metrics
	metricsStart := time.Now()
	report, metricsHit, err := r.ComputeWithCacheInfo(ctx, n, result.NetworkHash, opts)
	if err != nil {
		return nil, err
	}
	report.RunID = result.RunID
	report.Seed = opts.Seed
	result.Report = report
	result.Stats.MetricsTime = time.Since(metricsStart)
	result.CacheInfo.MetricsHit = metricsHit

	r.Logger.Info("computed metrics",
		"density", report.Density,
		"diameter", report.Diameter,
		"components", report.Components.Count,
		"duration", result.Stats.MetricsTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, n, report, result.NetworkHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeWithCacheInfo computes the metrics report with caching and
// returns cache hit info. The cached report's RunID and Seed are stale
// and are overwritten by the caller.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, n *network.Network, networkHash string, opts Options) (*metrics.Report, bool, error) {
	cacheKey := r.Keyer.ReportKey(networkHash)

	if !opts.Refresh && networkHash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached metrics.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil // Cache hit
			}
			// Fall through to recompute on deserialization failure
		}
	}

	report, err := metrics.Compute(n)
	if err != nil {
		return nil, false, err
	}

	if networkHash != "" {
		if data, err := json.Marshal(report); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLReport)
		}
	}

	return report, false, nil // Cache miss
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, n *network.Network, report *metrics.Report, networkHash string, opts Options) (map[string][]byte, bool, error) {
	// Try to get all formats from cache
	allCached := !opts.Refresh && networkHash != ""
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(networkHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := r.renderAll(ctx, n, report, opts)
	if err != nil {
		return nil, false, err
	}

	if networkHash != "" {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(networkHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		}
	}

	return rendered, false, nil // Cache miss
}

// renderAll produces every requested format from scratch.
func (r *Runner) renderAll(ctx context.Context, n *network.Network, report *metrics.Report, opts Options) (map[string][]byte, error) {
	dot := render.ToDOT(n, opts.RenderOpts())
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot, opts.Engine)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, dot, opts.Engine)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = json.MarshalIndent(report, "", "  ")
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
