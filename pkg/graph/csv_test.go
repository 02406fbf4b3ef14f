package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStationsNormalizesCity(t *testing.T) {
	stations, err := ReadStations(strings.NewReader(stationsCSV))
	require.NoError(t, err)
	require.Len(t, stations, 5)
	assert.Equal(t, UnknownCity, stations[4].City)
	assert.Equal(t, "KGX", stations[0].Code)
	assert.Equal(t, 51.5308, stations[0].Lat())
	assert.Equal(t, -0.1238, stations[0].Lon())
}

func TestReadStationsNanCity(t *testing.T) {
	input := "code,name,city,lat,long\nA,Alpha,NaN,1,2\n"
	stations, err := ReadStations(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, UnknownCity, stations[0].City)
}

func TestReadStationsColumnOrderAndExtras(t *testing.T) {
	input := "long,lat,extra,city,name,code\n-2,53,zzz,Leeds,Leeds,LDS\n"
	stations, err := ReadStations(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "LDS", stations[0].Code)
	assert.Equal(t, 53.0, stations[0].Lat())
	assert.Equal(t, -2.0, stations[0].Lon())
}

func TestReadStationsMissingColumn(t *testing.T) {
	_, err := ReadStations(strings.NewReader("code,name,lat,long\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadStations(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadStationsBadNumber(t *testing.T) {
	_, err := ReadStations(strings.NewReader("code,name,city,lat,long\nA,Alpha,X,north,2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadEdges(t *testing.T) {
	edges, err := ReadEdges(strings.NewReader(edgesCSV))
	require.NoError(t, err)
	require.Len(t, edges, 7)
	assert.Equal(t, MakeEdge("KGX", "YRK", 302.5), edges[0])
	assert.Equal(t, MakeEdge("YRK", "KGX", 302.5), edges[1])
}

func TestReadEdgesRejectsInvalidDistance(t *testing.T) {
	for _, distance := range []string{"-5", "NaN", "Inf", "-Inf"} {
		input := "source,target,distance\nA,B,1\nB,A," + distance + "\n"
		_, err := ReadEdges(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrInvalidDistance, distance)
		assert.ErrorContains(t, err, "line 3", distance)
	}

	edges, err := ReadEdges(strings.NewReader("source,target,distance\nA,B,0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, edges[0].Distance)
}

func TestLoadCSVRejectsNegativeDistance(t *testing.T) {
	stations := "code,name,city,lat,long\nO,O,X,0,0\nA,A,X,0,1\nB,B,X,0,2\nD,D,X,0,3\n"
	edges := "source,target,distance\nO,A,1\nA,B,1\nB,A,-5\nB,D,10\n"
	_, err := LoadCSV(strings.NewReader(stations), strings.NewReader(edges))
	assert.ErrorIs(t, err, ErrInvalidDistance)
}

func TestLoadCSVFreezesGraph(t *testing.T) {
	g := loadFixture(t)
	assert.True(t, g.IsFrozen())
	assert.Equal(t, 5, g.StationCount())
	assert.Equal(t, 7, g.ArcCount())
}

func TestWriteAndReadBack(t *testing.T) {
	g := loadFixture(t)

	var sb, eb bytes.Buffer
	require.NoError(t, WriteStationsCSV(&sb, g.Stations()))
	edges, err := ReadEdges(strings.NewReader(edgesCSV))
	require.NoError(t, err)
	require.NoError(t, WriteEdgesCSV(&eb, edges))

	g2, err := LoadCSV(&sb, &eb)
	require.NoError(t, err)
	assert.Equal(t, g.AsString(), g2.AsString())
	assert.Equal(t, g.Statistics(), g2.Statistics())
}
