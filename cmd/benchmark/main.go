package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/autotrack/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "pprof"
)

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100, 1_000}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Time write propagation through computed chains",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes timed per graph shape",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(itersKey))
	log.Printf("warming up")
	benchmarkPropagate(iters, false)

	benchmarkPropagate(iters, true)
	benchmarkBatched(iters, true)
	return nil
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, calc *tachymeter.Metrics) {
	tbl.AppendRow(table.Row{
		name,
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
	})
}

// buildChains hangs w chains of h computed values off src, each observed by
// an autorun. It returns how many times the autoruns have run.
func buildChains(s *reactive.State, src *reactive.ObservableValue[int], w, h int) *int {
	runs := new(int)
	for i := 0; i < w; i++ {
		last := func() int { return src.Get() }
		for j := 0; j < h; j++ {
			prev := last
			c := reactive.NewComputed(s, func() int {
				return prev() + 1
			})
			last = c.Get
		}
		tail := last
		reactive.Autorun(s, func(r *reactive.Reaction) error {
			tail()
			*runs++
			return nil
		})
	}
	return runs
}

func propagate(w, h, iters int) *tachymeter.Metrics {
	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	s := reactive.NewState()
	src := reactive.NewBox(s, 1)
	buildChains(s, src, w, h)

	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Set(src.Peek() + 1)
		tach.AddTime(time.Since(start))
	}
	return tach.Calc()
}

func benchmarkPropagate(iters int, shouldRender bool) {
	tbl := newTable("Propagate")
	for _, w := range ww {
		for _, h := range hh {
			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), propagate(w, h, iters))
		}
	}
	if shouldRender {
		tbl.Render()
	}
}

// batched writes w sources in one batch, every autorun reading all of them.
func batched(w, iters int) *tachymeter.Metrics {
	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	s := reactive.NewState()
	sources := make([]*reactive.ObservableValue[int], w)
	for i := range sources {
		sources[i] = reactive.NewBox(s, i)
	}
	sum := reactive.NewComputed(s, func() int {
		total := 0
		for _, src := range sources {
			total += src.Get()
		}
		return total
	})
	reactive.Autorun(s, func(r *reactive.Reaction) error {
		sum.Get()
		return nil
	})

	for i := 0; i < iters; i++ {
		start := time.Now()
		s.Batch(func() {
			for _, src := range sources {
				src.Set(src.Peek() + 1)
			}
		})
		tach.AddTime(time.Since(start))
	}
	return tach.Calc()
}

func benchmarkBatched(iters int, shouldRender bool) {
	tbl := newTable("Batched writes")
	for _, w := range ww {
		appendCalc(tbl, fmt.Sprintf("batch: %d sources", w), batched(w, iters))
	}
	if shouldRender {
		tbl.Render()
	}
}
