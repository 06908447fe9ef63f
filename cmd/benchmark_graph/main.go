package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/autotrack/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	repeatsKey = "repeats"
	onlyKey    = "only"
)

var perfTestCfgs = []benchmarkTestConfig{
	{
		name:           "simple component",
		width:          10,
		staticFraction: 1,
		nSources:       2,
		totalLayers:    5,
		readFraction:   0.2,
		iterations:     60000,
	},
	{
		name:           "dynamic component",
		width:          10,
		totalLayers:    10,
		staticFraction: 0.75,
		nSources:       6,
		readFraction:   0.2,
		iterations:     15000,
	},
	{
		name:           "large web app",
		width:          1000,
		totalLayers:    12,
		staticFraction: 0.95,
		nSources:       4,
		readFraction:   1,
		iterations:     700,
	},
	{
		name:           "wide dense",
		width:          1000,
		totalLayers:    5,
		staticFraction: 1,
		nSources:       25,
		readFraction:   1,
		iterations:     300,
	},
	{
		name:           "deep",
		width:          5,
		totalLayers:    500,
		staticFraction: 1,
		nSources:       3,
		readFraction:   1,
		iterations:     500,
	},
	{
		name:           "very dynamic",
		width:          100,
		totalLayers:    15,
		staticFraction: 0.5,
		nSources:       6,
		readFraction:   1,
		iterations:     2000,
	},
}

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_graph",
		Usage: "Run layered computed graphs with static and dynamic nodes",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per config, the best one is reported",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  onlyKey,
				Usage: "Only run configs whose name contains this",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting graph benchmark, please wait...")
	defer log.Print("Finished graph benchmark")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "recomputes", "updateRate", "title",
	})

	testRepeats := int(cmd.Int(repeatsKey))
	only := cmd.String(onlyKey)
	for _, cfg := range perfTestCfgs {
		if only != "" && !strings.Contains(cfg.name, only) {
			continue
		}
		log.Printf("Running '%s' config", cfg.name)
		best := runConfig(cfg, testRepeats)
		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))

		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(best.count),
			humanize.Comma(int64(updateRate)),
			cfg.title(),
		})
	}
	table.Render()
	return nil
}

// runConfig builds a fresh graph for each repeat and keeps the fastest run.
func runConfig(cfg benchmarkTestConfig, repeats int) *results {
	best := &results{duration: time.Duration(math.MaxInt64)}
	for i := 0; i < repeats; i++ {
		counter := new(int64)
		graph := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
			counter:        counter,
			width:          cfg.width,
			totalLayers:    cfg.totalLayers,
			nSources:       cfg.nSources,
			staticFraction: cfg.staticFraction,
		})

		start := time.Now()
		sum := benchmarkRunGraph(graph, cfg.iterations, cfg.readFraction)
		duration := time.Since(start)

		if duration < best.duration {
			best.duration = duration
			best.sum = sum
			best.count = *counter
		}
	}
	return best
}

type benchmarkTestConfig struct {
	name           string
	width          int64   // width of dependency graph to construct
	totalLayers    int64   // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes that always read all their sources
	nSources       int64   // number of sources read by each node
	readFraction   float64 // fraction of the last layer observed in each iteration
	iterations     int64
}

func (cfg benchmarkTestConfig) title() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type benchmarkGraph struct {
	state     *reactive.State
	sources   []*reactive.ObservableValue[int]
	layers    [][]*reactive.ComputedValue[int]
	isDynamic [][]bool
}

type benchmarkMakeGraphConfig struct {
	counter                      *int64
	width, totalLayers, nSources int64
	staticFraction               float64
}

func benchmarkMakeGraph(cfg *benchmarkMakeGraphConfig) *benchmarkGraph {
	s := reactive.NewState()
	sources := make([]*reactive.ObservableValue[int], cfg.width)
	for i := range sources {
		sources[i] = reactive.NewBox(s, i)
	}
	graph := &benchmarkGraph{state: s, sources: sources}

	readers := make([]func() int, len(sources))
	for i, src := range sources {
		readers[i] = src.Get
	}

	random := rand.New(rand.NewSource(0))
	numRows := max(cfg.totalLayers-1, 1)
	for l := int64(0); l < numRows; l++ {
		row, isDynamic := makeBenchmarkRow(&benchmarkRowConfig{
			state:          s,
			sources:        readers,
			counter:        cfg.counter,
			staticFraction: cfg.staticFraction,
			nSources:       cfg.nSources,
			rand:           random,
		})
		graph.layers = append(graph.layers, row)
		graph.isDynamic = append(graph.isDynamic, isDynamic)

		readers = make([]func() int, len(row))
		for i, c := range row {
			readers[i] = c.Get
		}
	}
	return graph
}

// benchmarkRunGraph writes one source per iteration and lets an autorun read
// some or all of the leaves. It returns the sum of the observed leaves.
func benchmarkRunGraph(graph *benchmarkGraph, iterations int64, readFraction float64) int {
	s := graph.state
	random := rand.New(rand.NewSource(0))
	leaves := graph.layers[len(graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := benchmarkRemoveElems(leaves, skipCount, random)

	sum := 0
	reader := reactive.Autorun(s, func(r *reactive.Reaction) error {
		sum = 0
		for _, leaf := range readLeaves {
			sum += leaf.Get()
		}
		return nil
	}, reactive.WithReactionName("leaves"))
	defer reader.Dispose()

	for i := 0; i < int(iterations); i++ {
		s.Batch(func() {
			sourceDex := i % len(graph.sources)
			graph.sources[sourceDex].Set(i + sourceDex)
		})
	}
	return sum
}

func benchmarkRemoveElems[T comparable](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}

type benchmarkRowConfig struct {
	state          *reactive.State
	sources        []func() int
	counter        *int64
	staticFraction float64
	nSources       int64
	rand           *rand.Rand
}

func makeBenchmarkRow(cfg *benchmarkRowConfig) (row []*reactive.ComputedValue[int], isDynamic []bool) {
	row = make([]*reactive.ComputedValue[int], len(cfg.sources))
	isDynamic = make([]bool, len(cfg.sources))

	for myDex := range cfg.sources {
		mySources := make([]func() int, 0, cfg.nSources)
		for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
			mySources = append(mySources, cfg.sources[(myDex+sourceDex)%len(cfg.sources)])
		}

		if cfg.rand.Float64() < cfg.staticFraction {
			row[myDex] = reactive.NewComputed(cfg.state, func() int {
				*cfg.counter++
				sum := 0
				for _, source := range mySources {
					sum += source()
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = reactive.NewComputed(cfg.state, func() int {
			*cfg.counter++
			sum := first()
			if len(tail) == 0 {
				return sum
			}
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)
			for i := 0; i < len(tail); i++ {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += tail[i]()
			}
			return sum
		})
		isDynamic[myDex] = true
	}
	return row, isDynamic
}
