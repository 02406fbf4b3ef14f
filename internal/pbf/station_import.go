package pbf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/qedus/osmpbf"

	"github.com/natevvv/smartpath-rail/pkg/geometry"
	"github.com/natevvv/smartpath-rail/pkg/graph"
)

var ErrUnsupportedFormat = errors.New("unsupported extract format")

// StationImporter collects railway stations from an OpenStreetMap extract.
// Both .osm.pbf and .osm XML files are read.
type StationImporter struct {
	filename string
	stations map[string]graph.Station
	skipped  int
}

func NewStationImporter(filename string) *StationImporter {
	return &StationImporter{
		filename: filename,
		stations: make(map[string]graph.Station),
	}
}

func (si *StationImporter) Import(ctx context.Context) error {
	file, err := os.Open(si.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	switch {
	case strings.HasSuffix(si.filename, ".pbf"):
		return si.ImportPBF(file)
	case strings.HasSuffix(si.filename, ".osm"), strings.HasSuffix(si.filename, ".xml"):
		return si.ImportXML(ctx, file)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, si.filename)
	}
}

func (si *StationImporter) ImportPBF(r io.Reader) error {
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode pbf: %w", err)
		}
		if node, ok := v.(*osmpbf.Node); ok {
			tags := node.Tags
			si.add(node.ID, node.Lat, node.Lon, func(key string) string { return tags[key] })
		}
	}
}

func (si *StationImporter) ImportXML(ctx context.Context, r io.Reader) error {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		if node, ok := scanner.Object().(*osm.Node); ok {
			si.add(int64(node.ID), node.Lat, node.Lon, node.Tags.Find)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("decode osm xml: %w", err)
	}
	return nil
}

// Stations returns the imported stations sorted by code.
func (si *StationImporter) Stations() []graph.Station {
	stations := make([]graph.Station, 0, len(si.stations))
	for _, s := range si.stations {
		stations = append(stations, s)
	}
	slices.SortFunc(stations, func(a, b graph.Station) int { return strings.Compare(a.Code, b.Code) })
	return stations
}

// Skipped is the number of station nodes dropped for a missing name or a duplicate code.
func (si *StationImporter) Skipped() int {
	return si.skipped
}

func (si *StationImporter) add(id int64, lat, lon float64, tag func(string) string) {
	if !isStation(tag) {
		return
	}
	station, ok := StationFromTags(id, lat, lon, tag)
	if !ok {
		si.skipped++
		return
	}
	if _, exists := si.stations[station.Code]; exists {
		si.skipped++
		return
	}
	si.stations[station.Code] = station
}

func isStation(tag func(string) string) bool {
	if tag("railway") == "station" {
		return true
	}
	return tag("public_transport") == "station" && tag("train") == "yes"
}

// StationFromTags builds a station from the tags of a node. The code is the
// CRS code when tagged, then the generic ref, then the node id.
func StationFromTags(id int64, lat, lon float64, tag func(string) string) (graph.Station, bool) {
	name := strings.TrimSpace(tag("name"))
	if name == "" {
		return graph.Station{}, false
	}

	code := firstNonEmpty(tag("ref:crs"), tag("railway:ref"), tag("ref"))
	if code == "" {
		code = "OSM" + strconv.FormatInt(id, 10)
	}

	city := firstNonEmpty(tag("addr:city"), tag("is_in:city"))
	if city == "" {
		city = graph.UnknownCity
	}

	return graph.Station{
		Code:     strings.ToUpper(code),
		Name:     name,
		City:     city,
		Location: geometry.MakePoint(lat, lon),
	}, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
