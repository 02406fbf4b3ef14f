package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	statsTop int

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Print network statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := loadNetwork()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			stats := network.Statistics()
			fmt.Fprintf(w, "stations: %d\nconnections: %d\ncities: %d\nconnections per station: %.2f\n",
				stats.TotalStations, stats.TotalConnections, stats.TotalCities, stats.AvgConnectionsPerStation)

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\nCITY\tSTATIONS")
			for _, c := range network.TopCities(statsTop) {
				fmt.Fprintf(tw, "%s\t%d\n", c.City, c.Stations)
			}
			fmt.Fprintln(tw, "\nSTATION\tCONNECTIONS")
			for _, s := range network.BusiestStations(statsTop) {
				fmt.Fprintf(tw, "%s (%s)\t%d\n", s.Station.Name, s.Station.Code, s.Connections)
			}
			return tw.Flush()
		},
	}
)

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "number of cities and stations to list")
}
