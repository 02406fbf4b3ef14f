package graph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/natevvv/smartpath-rail/pkg/geometry"
)

var (
	stationColumns = []string{"code", "name", "city", "lat", "long"}
	edgeColumns    = []string{"source", "target", "distance"}
)

// ReadStations parses station records with the header code,name,city,lat,long.
// Columns are matched by name; a missing or "nan" city becomes UnknownCity.
func ReadStations(r io.Reader) ([]Station, error) {
	stations := make([]Station, 0)
	err := readRecords(r, stationColumns, func(line int, rec map[string]string) error {
		lat, err := parseFloat(rec["lat"])
		if err != nil {
			return fmt.Errorf("line %d: lat: %w", line, err)
		}
		lon, err := parseFloat(rec["long"])
		if err != nil {
			return fmt.Errorf("line %d: long: %w", line, err)
		}
		stations = append(stations, Station{
			Code:     rec["code"],
			Name:     rec["name"],
			City:     normalizeCity(rec["city"]),
			Location: geometry.MakePoint(lat, lon),
		})
		return nil
	})
	return stations, err
}

// ReadEdges parses edge records with the header source,target,distance.
// Distances must be finite and not negative.
func ReadEdges(r io.Reader) ([]Edge, error) {
	edges := make([]Edge, 0)
	err := readRecords(r, edgeColumns, func(line int, rec map[string]string) error {
		distance, err := parseFloat(rec["distance"])
		if err != nil {
			return fmt.Errorf("line %d: distance: %w", line, err)
		}
		if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
			return fmt.Errorf("line %d: distance %q: %w", line, rec["distance"], ErrInvalidDistance)
		}
		edges = append(edges, MakeEdge(rec["source"], rec["target"], distance))
		return nil
	})
	return edges, err
}

// Build creates a frozen graph from the given records, preserving their order.
func Build(stations []Station, edges []Edge) *RailGraph {
	g := NewRailGraph()
	for _, s := range stations {
		g.AddStation(s.Code, s.Name, s.City, s.Lat(), s.Lon())
	}
	for _, e := range edges {
		g.AddEdge(e.From, e.To, e.Distance)
	}
	g.Freeze()
	return g
}

func LoadCSV(stationsCSV, edgesCSV io.Reader) (*RailGraph, error) {
	stations, err := ReadStations(stationsCSV)
	if err != nil {
		return nil, fmt.Errorf("read stations: %w", err)
	}
	edges, err := ReadEdges(edgesCSV)
	if err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}
	return Build(stations, edges), nil
}

func LoadCSVFiles(stationsFile, edgesFile string) (*RailGraph, error) {
	sf, err := os.Open(stationsFile)
	if err != nil {
		return nil, err
	}
	defer sf.Close()

	ef, err := os.Open(edgesFile)
	if err != nil {
		return nil, err
	}
	defer ef.Close()

	return LoadCSV(sf, ef)
}

func WriteStationsCSV(w io.Writer, stations []Station) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stationColumns); err != nil {
		return err
	}
	for _, s := range stations {
		rec := []string{s.Code, s.Name, s.City, formatFloat(s.Lat()), formatFloat(s.Lon())}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteEdgesCSV(w io.Writer, edges []Edge) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(edgeColumns); err != nil {
		return err
	}
	for _, e := range edges {
		if err := cw.Write([]string{e.From, e.To, formatFloat(e.Distance)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readRecords(r io.Reader, required []string, fn func(line int, rec map[string]string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return err
	}

	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	line := 1
	rec := make(map[string]string, len(required))
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return err
		}
		for _, col := range required {
			rec[col] = ""
			if i := index[col]; i < len(fields) {
				rec[col] = strings.TrimSpace(fields[i])
			}
		}
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}

func normalizeCity(city string) string {
	if city == "" || strings.EqualFold(city, "nan") {
		return UnknownCity
	}
	return city
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
