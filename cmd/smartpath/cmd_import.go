package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/natevvv/smartpath-rail/internal/pbf"
	"github.com/natevvv/smartpath-rail/pkg/graph"
)

var (
	importInput  string
	importOutput string

	importCmd = &cobra.Command{
		Use:   "import-osm",
		Short: "Extract railway stations from an OpenStreetMap .osm.pbf or .osm file into a stations CSV",
		RunE:  runImport,
	}
)

func init() {
	importCmd.Flags().StringVar(&importInput, "input", "", "OpenStreetMap extract")
	importCmd.Flags().StringVar(&importOutput, "output", "stations.csv", "stations CSV to write")
	importCmd.MarkFlagRequired("input")
}

func runImport(cmd *cobra.Command, args []string) error {
	importer := pbf.NewStationImporter(importInput)
	if err := importer.Import(cmd.Context()); err != nil {
		return fmt.Errorf("import %s: %w", importInput, err)
	}
	stations := importer.Stations()

	file, err := os.Create(importOutput)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := graph.WriteStationsCSV(file, stations); err != nil {
		return err
	}
	slog.Info("stations exported", "input", importInput, "output", importOutput,
		"stations", len(stations), "skipped", importer.Skipped())
	return file.Close()
}
