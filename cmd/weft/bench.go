package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/weft-ui/weft/internal/config"
	"github.com/weft-ui/weft/internal/errors"
	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/vdom"
)

func benchCmd() *cobra.Command {
	var (
		boxes      int
		writes     int
		listSize   int
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the reactive engine headlessly",
		Long: `Runs two headless workloads and reports wall times:

  • a write/flush storm over deferred effects
  • repeated render-and-diff of a keyed list

Workload sizes come from flags; weft.json in the working directory
supplies defaults for any flag left unset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(".")
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			reactive.DebugMode = cfg.Debug

			if !cmd.Flags().Changed("boxes") {
				boxes = cfg.Bench.Boxes
			}
			if !cmd.Flags().Changed("writes") {
				writes = cfg.Bench.Writes
			}
			if !cmd.Flags().Changed("list-size") {
				listSize = cfg.Bench.ListSize
			}
			if !cmd.Flags().Changed("iterations") {
				iterations = cfg.Bench.Iterations
			}
			if boxes <= 0 || writes <= 0 || listSize <= 0 || iterations <= 0 {
				return errors.Newf(errors.CategoryCLI, "bench workload sizes must be positive")
			}

			benchReactive(cfg, boxes, writes)
			benchDiff(listSize, iterations)
			return nil
		},
	}

	cmd.Flags().IntVar(&boxes, "boxes", config.DefaultBenchBoxes, "Number of boxed values")
	cmd.Flags().IntVar(&writes, "writes", config.DefaultBenchWrites, "Writes spread over the boxes per flush cycle")
	cmd.Flags().IntVar(&listSize, "list-size", config.DefaultBenchListSize, "Keyed children per rendered list")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultBenchIterations, "Render-and-diff iterations")

	return cmd
}

func benchEngine(cfg *config.Config) *reactive.Engine {
	var opts []reactive.EngineOption
	if cfg.Metrics {
		opts = append(opts, reactive.WithMetrics(prometheus.NewRegistry()))
	}
	if cfg.Tracer != "" {
		opts = append(opts, reactive.WithTracer(cfg.Tracer))
	}
	return reactive.NewEngine(opts...)
}

func benchReactive(cfg *config.Config, boxes, writes int) {
	e := benchEngine(cfg)

	cells := make([]*reactive.Box[int], boxes)
	runs := 0
	for i := range cells {
		cells[i] = reactive.NewBox(e, 0)
	}
	for i := range cells {
		b := cells[i]
		e.Effect(func() {
			_ = b.Get()
			runs++
		}, reactive.Deferred())
	}

	start := time.Now()
	for w := 0; w < writes; w++ {
		cells[w%boxes].Set(w + 1)
	}
	e.Flush()
	elapsed := time.Since(start)

	fmt.Printf("reactive: %d boxes, %d writes, %d effect runs in %s\n",
		boxes, writes, runs-boxes, elapsed)
}

func benchDiff(listSize, iterations int) {
	render := func(offset int) *vdom.VNode {
		children := make([]*vdom.VNode, listSize)
		for i := 0; i < listSize; i++ {
			id := (i + offset) % listSize
			children[i] = vdom.Element("li", map[string]any{"class": "row"},
				vdom.Textf("item %d", id),
			).WithKey(fmt.Sprintf("k%d", id))
		}
		return vdom.Element("ul", nil, children...)
	}

	prev := render(0)
	totalPatches := 0
	start := time.Now()
	for i := 1; i <= iterations; i++ {
		next := render(i)
		patches, err := vdom.Diff(prev, next)
		if err != nil {
			fmt.Printf("diff: %v\n", err)
			return
		}
		totalPatches += len(patches)
		prev = next
	}
	elapsed := time.Since(start)

	fmt.Printf("diff: %d keyed children, %d iterations, %d patches in %s\n",
		listSize, iterations, totalPatches, elapsed)
}
