package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/natevvv/smartpath-rail/pkg/graph"
	"github.com/natevvv/smartpath-rail/pkg/graph/path"
	"github.com/natevvv/smartpath-rail/pkg/itinerary"
	"github.com/natevvv/smartpath-rail/pkg/routing"
)

var (
	routeFrom      string
	routeTo        string
	routeAlgorithm string
	routeStations  bool

	routeCmd = &cobra.Command{
		Use:   "route",
		Short: "Print the itinerary between two cities, or two stations with --stations",
		Example: `  smartpath route --from London --to York --algorithm bfs
  smartpath route --from KGX --to YRK --stations`,
		RunE: runRoute,
	}
)

func init() {
	routeCmd.Flags().StringVar(&routeFrom, "from", "", "origin city (station code with --stations)")
	routeCmd.Flags().StringVar(&routeTo, "to", "", "destination city (station code with --stations)")
	routeCmd.Flags().StringVar(&routeAlgorithm, "algorithm", "", "bfs or dijkstra between cities, a_star between stations")
	routeCmd.Flags().BoolVar(&routeStations, "stations", false, "treat --from and --to as station codes")
	routeCmd.MarkFlagRequired("from")
	routeCmd.MarkFlagRequired("to")
}

func runRoute(cmd *cobra.Command, args []string) error {
	network, err := loadNetwork()
	if err != nil {
		return err
	}
	router := routing.NewRouter(network, routing.WithWorkers(cfg.Routing.Workers))

	var result routing.RouteResult
	if routeStations {
		strategy, err := strategyOrDefault(routeAlgorithm, path.StrategyAStar)
		if err != nil {
			return err
		}
		result, err = router.BestRouteBetweenStations(cmd.Context(), routeFrom, routeTo, strategy)
		if err != nil {
			return err
		}
	} else {
		strategy, err := strategyOrDefault(routeAlgorithm, path.StrategyDijkstra)
		if err != nil {
			return err
		}
		result, err = router.BestRouteBetweenCities(cmd.Context(), routeFrom, routeTo, strategy)
		if err != nil {
			return err
		}
	}

	return printRoute(cmd.OutOrStdout(), network, result)
}

func strategyOrDefault(name string, fallback path.Strategy) (path.Strategy, error) {
	if name == "" {
		return fallback, nil
	}
	return path.ParseStrategy(name)
}

func printRoute(w io.Writer, g graph.Graph, result routing.RouteResult) error {
	if !result.Found {
		_, err := fmt.Fprintf(w, "%s\n", result.Message)
		return err
	}

	trip := itinerary.Annotate(g, result.Strategy, result.Path, result.Metric)
	fmt.Fprintf(w, "%s -> %s (%s)\n", result.OriginStation.Name, result.DestinationStation.Name, result.Strategy.Description())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCODE\tSTATION\tCITY\tNEXT KM")
	for _, step := range trip.Steps {
		next := "-"
		if step.DistanceToNext != nil {
			next = fmt.Sprintf("%.1f", *step.DistanceToNext)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", step.Step, step.Code, step.Name, step.City, next)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "distance: %.1f km, stops: %d, price: £%.2f, time: %s, searches: %d\n",
		trip.TotalDistanceKm, trip.NumStops, trip.Price, trip.Duration, result.Searches)
	return err
}
