package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/natevvv/smartpath-rail/pkg/graph"
	p "github.com/natevvv/smartpath-rail/pkg/graph/path"
)

var (
	benchmarkTargets int
	benchmarkSeed    int64
	cpuProfile       string

	benchmarkCmd = &cobra.Command{
		Use:   "benchmark",
		Short: "Run every search strategy on random station pairs and compare against Dijkstra",
		RunE:  runBenchmark,
	}
)

func init() {
	benchmarkCmd.Flags().IntVarP(&benchmarkTargets, "targets", "n", 100, "how many random station pairs to search")
	benchmarkCmd.Flags().Int64Var(&benchmarkSeed, "seed", 0, "random seed, 0 uses the current time")
	benchmarkCmd.Flags().StringVar(&cpuProfile, "cpu", "", "write cpu profile to file")
}

// target is an origin/destination pair with its reference distance.
type target struct {
	origin, destination string
	length              float64
}

type benchmarkStats struct {
	strategy           p.Strategy
	completed          int
	found              int
	runtime            time.Duration
	pqPops             int
	relaxationAttempts int
	relaxedEdges       int
	settledNodes       int
	invalidLengths     []int // indices into targets
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	network, err := loadNetwork()
	if err != nil {
		return err
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	seed := benchmarkSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	reference := p.NewDijkstra(network)
	targets := createTargets(benchmarkTargets, network.Stations(), reference, rand.New(rand.NewSource(seed)))
	fmt.Fprintf(cmd.OutOrStdout(), "seed %d, %d targets\n", seed, len(targets))

	// an interrupt stops the run; results so far are still shown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := make([]*benchmarkStats, 0, len(p.Strategies))
	for _, strategy := range p.Strategies {
		if ctx.Err() != nil {
			break
		}
		navigator, err := p.NewNavigator(strategy, network)
		if err != nil {
			return err
		}
		stats := &benchmarkStats{strategy: strategy}
		results = append(results, stats)
		benchmark(ctx, navigator, targets, stats)
	}

	showResults(cmd.OutOrStdout(), results, targets)
	return nil
}

func createTargets(n int, stations []graph.Station, reference p.Navigator, rng *rand.Rand) []target {
	if len(stations) == 0 {
		return nil
	}
	targets := make([]target, n)
	for i := range targets {
		origin := stations[rng.Intn(len(stations))].Code
		destination := stations[rng.Intn(len(stations))].Code
		result := reference.ComputeShortestPath(origin, destination)
		targets[i] = target{origin: origin, destination: destination, length: result.Metric}
	}
	return targets
}

// benchmark runs the navigator on the targets until ctx is done. Distance
// strategies are checked against the reference length.
func benchmark(ctx context.Context, navigator p.Navigator, targets []target, stats *benchmarkStats) {
	for i, t := range targets {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		result := navigator.ComputeShortestPath(t.origin, t.destination)
		stats.runtime += time.Since(start)

		stats.completed++
		if result.Found() {
			stats.found++
		}
		stats.pqPops += result.KPIs.PqPops
		stats.relaxationAttempts += result.KPIs.RelaxationAttempts
		stats.relaxedEdges += result.KPIs.RelaxedEdges
		stats.settledNodes += result.KPIs.SettledNodes

		if navigator.Strategy() != p.StrategyBFS && math.Abs(result.Metric-t.length) > 1e-6 {
			stats.invalidLengths = append(stats.invalidLengths, i)
		}
	}
}

func showResults(w io.Writer, results []*benchmarkStats, targets []target) {
	for _, stats := range results {
		if stats.completed == 0 {
			continue
		}
		fmt.Fprintf(w, "\n[%s]\n", stats.strategy.Description())
		fmt.Fprintf(w, "Found: %d/%d\n", stats.found, stats.completed)
		fmt.Fprintf(w, "Average runtime: %.3fms\n", float64(stats.runtime.Nanoseconds())/float64(stats.completed)/1e6)
		fmt.Fprintf(w, "Average pq pops: %d\n", stats.pqPops/stats.completed)
		fmt.Fprintf(w, "Average relaxation attempts: %d\n", stats.relaxationAttempts/stats.completed)
		fmt.Fprintf(w, "Average edge relaxations: %d\n", stats.relaxedEdges/stats.completed)
		fmt.Fprintf(w, "Average settled nodes: %d\n", stats.settledNodes/stats.completed)
		if stats.strategy == p.StrategyBFS {
			continue
		}
		fmt.Fprintf(w, "%d/%d invalid path lengths.\n", len(stats.invalidLengths), stats.completed)
		for _, i := range stats.invalidLengths {
			fmt.Fprintf(w, "Case %d (%s -> %s) has invalid length, reference: %.3f\n", i, targets[i].origin, targets[i].destination, targets[i].length)
		}
	}
}
