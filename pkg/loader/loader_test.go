package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlmac-seid/london-train-network/pkg/errors"
)

const stationsOneBased = `index,name,latitude,longitude,zone,total_lines
1,Paddington,51.5154,-0.1755,1,3
2,Baker Street,51.5226,-0.1571,1,5
3,Kings Cross,51.5308,-0.1238,1,6
`

const routesSimple = `source,target,weight,line
1,2,1,1
2,3,2,1
3,1,3,2
`

func TestLoadOneBased(t *testing.T) {
	res, err := Load(strings.NewReader(stationsOneBased), strings.NewReader(routesSimple), Options{})
	require.NoError(t, err)

	assert.Len(t, res.Stations, 3)
	assert.Len(t, res.Routes, 3)
	assert.False(t, res.Shifted)
	assert.False(t, res.DroppedSentinel)

	assert.Equal(t, int64(1), res.Stations[0].ID)
	assert.Equal(t, "Paddington", res.Stations[0].Name)
	assert.InDelta(t, 51.5154, res.Stations[0].Lat, 1e-9)
	assert.Equal(t, 2, res.Routes[1].Weight)
}

func TestLoadZeroBasedShift(t *testing.T) {
	stations := `index,name,latitude,longitude
0,Paddington,51.5154,-0.1755
1,Baker Street,51.5226,-0.1571
2,Kings Cross,51.5308,-0.1238
`
	routes := `source,target,weight
0,1,1
1,2,2
`
	res, err := Load(strings.NewReader(stations), strings.NewReader(routes), Options{})
	require.NoError(t, err)

	assert.True(t, res.Shifted)
	// Station ids become 1-based, route endpoints shift identically.
	assert.Equal(t, int64(1), res.Stations[0].ID)
	assert.Equal(t, int64(3), res.Stations[2].ID)
	assert.Equal(t, int64(1), res.Routes[0].From)
	assert.Equal(t, int64(2), res.Routes[0].To)
	assert.Equal(t, int64(3), res.Routes[1].To)
}

func TestLoadDropsSentinelRow(t *testing.T) {
	// 0-based export with a trailing placeholder row: after the +1 shift its
	// id equals retained count+1 and the name is blank.
	stations := `index,name,latitude,longitude
0,Paddington,51.5154,-0.1755
1,Baker Street,51.5226,-0.1571
2,Kings Cross,51.5308,-0.1238
3, ,0,0
`
	routes := `source,target,weight
0,1,1
`
	res, err := Load(strings.NewReader(stations), strings.NewReader(routes), Options{})
	require.NoError(t, err)

	assert.True(t, res.Shifted)
	assert.True(t, res.DroppedSentinel)
	require.Len(t, res.Stations, 3)
	for _, s := range res.Stations {
		assert.NotEqual(t, int64(4), s.ID)
	}
}

func TestLoadKeepsNamedLastStation(t *testing.T) {
	// A real station in the last position must never be treated as the
	// placeholder, even when its id is the maximum.
	res, err := Load(strings.NewReader(stationsOneBased), strings.NewReader(routesSimple), Options{})
	require.NoError(t, err)
	assert.Len(t, res.Stations, 3)
	assert.Equal(t, "Kings Cross", res.Stations[2].Name)
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name     string
		stations string
		routes   string
	}{
		{
			"DuplicateStationID",
			"index,name\n1,A\n1,B\n",
			"source,target,weight\n",
		},
		{
			"UnknownRouteSource",
			"index,name\n1,A\n2,B\n",
			"source,target,weight\n9,2,1\n",
		},
		{
			"UnknownRouteTarget",
			"index,name\n1,A\n2,B\n",
			"source,target,weight\n1,9,1\n",
		},
		{
			"WeightOutOfRange",
			"index,name\n1,A\n2,B\n",
			"source,target,weight\n1,2,7\n",
		},
		{
			"MalformedIndex",
			"index,name\nxx,A\n",
			"source,target,weight\n",
		},
		{
			"MalformedWeight",
			"index,name\n1,A\n2,B\n",
			"source,target,weight\n1,2,heavy\n",
		},
		{
			"MissingNameColumn",
			"index,label\n1,A\n",
			"source,target,weight\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.stations), strings.NewReader(tt.routes), Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeDataIntegrity),
				"want DATA_INTEGRITY, got %v", err)
		})
	}
}

func TestLoadColumnOrderIndependent(t *testing.T) {
	stations := `name,longitude,index,latitude
Paddington,-0.1755,1,51.5154
Baker Street,-0.1571,2,51.5226
`
	routes := `weight,target,source
1,2,1
`
	res, err := Load(strings.NewReader(stations), strings.NewReader(routes), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Paddington", res.Stations[0].Name)
	assert.Equal(t, int64(1), res.Routes[0].From)
	assert.Equal(t, int64(2), res.Routes[0].To)
}

func TestLoadCustomDelimiter(t *testing.T) {
	stations := "index;name\n1;A\n2;B\n"
	routes := "source;target;weight\n1;2;1\n"

	res, err := Load(strings.NewReader(stations), strings.NewReader(routes), Options{Delimiter: ';'})
	require.NoError(t, err)
	assert.Len(t, res.Stations, 2)
	assert.Len(t, res.Routes, 1)
}

func TestLoadFilesMissing(t *testing.T) {
	_, err := LoadFiles("does-not-exist.csv", "also-missing.csv", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
