package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlmac-seid/london-train-network/pkg/cache"
	"github.com/mlmac-seid/london-train-network/pkg/errors"
	"github.com/mlmac-seid/london-train-network/pkg/metrics"
)

const (
	stationsCSV = `index,name,latitude,longitude
1,A,51.5,-0.1
2,B,51.6,-0.2
3,C,51.7,-0.3
4,D,51.8,-0.4
`
	routesCSV = `source,target,weight
1,2,1
2,3,2
3,4,3
`
)

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	stations := filepath.Join(dir, "stations.csv")
	routes := filepath.Join(dir, "routes.csv")
	require.NoError(t, os.WriteFile(stations, []byte(stationsCSV), 0644))
	require.NoError(t, os.WriteFile(routes, []byte(routesCSV), 0644))
	return stations, routes
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		opts := Options{StationsPath: "s.csv", RoutesPath: "r.csv"}
		require.NoError(t, opts.ValidateAndSetDefaults())
		assert.Equal(t, DefaultEngine, opts.Engine)
		assert.Equal(t, DefaultSeed, opts.Seed)
		assert.Equal(t, DefaultWidth, opts.Width)
		assert.Equal(t, DefaultHeight, opts.Height)
		assert.Equal(t, []string{FormatSVG}, opts.Formats)
		assert.NotNil(t, opts.Logger)
	})

	t.Run("MissingPaths", func(t *testing.T) {
		err := (&Options{RoutesPath: "r.csv"}).ValidateAndSetDefaults()
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

		err = (&Options{StationsPath: "s.csv"}).ValidateAndSetDefaults()
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	})

	t.Run("BadEngine", func(t *testing.T) {
		opts := Options{StationsPath: "s.csv", RoutesPath: "r.csv", Engine: "circo"}
		err := opts.ValidateAndSetDefaults()
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidEngine))
	})

	t.Run("BadFormat", func(t *testing.T) {
		opts := Options{StationsPath: "s.csv", RoutesPath: "r.csv", Formats: []string{"svg", "bmp"}}
		err := opts.ValidateAndSetDefaults()
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	})
}

func TestExecute(t *testing.T) {
	stations, routes := writeFixtures(t)
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		StationsPath: stations,
		RoutesPath:   routes,
		Formats:      []string{FormatDOT, FormatJSON},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.NotEmpty(t, result.NetworkHash)
	assert.Equal(t, 4, result.Stats.StationCount)
	assert.Equal(t, 3, result.Stats.RouteCount)

	// The seed is recorded even though the caller never set it.
	assert.Equal(t, DefaultSeed, result.Report.Seed)
	assert.Equal(t, result.RunID, result.Report.RunID)
	assert.InDelta(t, 10.0/6.0, result.Report.MeanDistance, 1e-12)
	assert.Equal(t, 3, result.Report.Diameter)

	dot := string(result.Artifacts[FormatDOT])
	assert.Contains(t, dot, "start=42;")
	assert.Contains(t, dot, `[label="A"];`)

	var decoded metrics.Report
	require.NoError(t, json.Unmarshal(result.Artifacts[FormatJSON], &decoded))
	assert.Equal(t, result.Report.Density, decoded.Density)
	assert.Equal(t, result.RunID, decoded.RunID)
}

func TestExecuteCaching(t *testing.T) {
	stations, routes := writeFixtures(t)
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{
		StationsPath: stations,
		RoutesPath:   routes,
		Formats:      []string{FormatDOT, FormatJSON},
	}

	first, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.MetricsHit)
	assert.False(t, first.CacheInfo.RenderHit)

	second, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.MetricsHit)
	assert.True(t, second.CacheInfo.RenderHit)

	// Each run gets a fresh id even when everything is cached.
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, second.RunID, second.Report.RunID)
	assert.Equal(t, first.Report.Density, second.Report.Density)

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.MetricsHit)
	assert.False(t, third.CacheInfo.RenderHit)
}

func TestExecuteDataIntegrityFailure(t *testing.T) {
	dir := t.TempDir()
	stations := filepath.Join(dir, "stations.csv")
	routes := filepath.Join(dir, "routes.csv")
	require.NoError(t, os.WriteFile(stations, []byte(stationsCSV), 0644))
	// Route references a station that doesn't exist
	bad := strings.Replace(routesCSV, "3,4,3", "3,99,3", 1)
	require.NoError(t, os.WriteFile(routes, []byte(bad), 0644))

	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		StationsPath: stations,
		RoutesPath:   routes,
		Formats:      []string{FormatDOT},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDataIntegrity))
}

func TestExecuteMissingFile(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		StationsPath: filepath.Join(t.TempDir(), "nope.csv"),
		RoutesPath:   filepath.Join(t.TempDir(), "nope.csv"),
		Formats:      []string{FormatDOT},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
