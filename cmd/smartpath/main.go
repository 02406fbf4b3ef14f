package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/natevvv/smartpath-rail/internal/config"
	"github.com/natevvv/smartpath-rail/pkg/graph"
)

var (
	configPath   string
	envFile      string
	stationsFile string
	edgesFile    string

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "smartpath",
		Short: "Shortest paths on a railway network",
		Long: `smartpath loads a railway network from station and connection CSV files
and answers fewest-stop and shortest-distance route queries between cities and stations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}
			if stationsFile != "" {
				loaded.Data.Stations = stationsFile
			}
			if edgesFile != "" {
				loaded.Data.Edges = edgesFile
			}
			cfg = loaded
			slog.SetDefault(cfg.Log.NewLogger(cmd.ErrOrStderr()))
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "smartpath.yaml", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with SMARTPATH_* overrides")
	rootCmd.PersistentFlags().StringVar(&stationsFile, "stations-file", "", "stations CSV (overrides data.stations)")
	rootCmd.PersistentFlags().StringVar(&edgesFile, "edges-file", "", "connections CSV (overrides data.edges)")

	rootCmd.AddCommand(serveCmd, routeCmd, statsCmd, importCmd, benchmarkCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadNetwork() (*graph.RailGraph, error) {
	g, err := graph.LoadCSVFiles(cfg.Data.Stations, cfg.Data.Edges)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	slog.Info("network loaded", "stations", g.StationCount(), "connections", g.ArcCount(), "cities", len(g.Cities()))
	return g, nil
}
