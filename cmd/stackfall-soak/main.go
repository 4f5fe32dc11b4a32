package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/stackfall/game"
)

// moves is the input policy's vocabulary. Pause, Restart and Leaderboard are
// left out so every game runs to completion.
var moves = []game.Command{
	game.MoveLeft,
	game.MoveRight,
	game.SoftDrop,
	game.Rotate,
	game.HardDrop,
	game.DifficultyUp,
	game.DifficultyDown,
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Upper bound on the total run time.")
	games := flag.Int("games", 100, "Number of games to play.")
	seed := flag.Uint64("seed", 1, "Seed for piece order and the input policy.")
	inputs := flag.Int("inputs", 3, "Maximum random inputs applied between ticks.")
	maxTicks := flag.Int("max-ticks", 100000, "Abandon a game after this many ticks.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting soak run...")

	pieces := rand.New(rand.NewPCG(*seed, 0x5eed))
	policy := rand.New(rand.NewPCG(*seed, 0x90_11c7))

	loop := game.NewLoop(game.Options{Rand: pieces})
	clears := &clearCounter{}
	loop.Subscribe(clears.observe)

	report := &Report{
		Duration:       *duration,
		Games:          *games,
		Seed:           *seed,
		Inputs:         *inputs,
		MaxTicks:       *maxTicks,
		GCPauseMetrics: *gcPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Games:
	for i := 0; i < *games; i++ {
		if i > 0 {
			loop.Apply(game.Restart)
		}

		ticks := 0
		for ; ticks < *maxTicks; ticks++ {
			if ctx.Err() != nil {
				report.Abandoned++
				break Games
			}
			for range policy.IntN(*inputs + 1) {
				loop.Apply(moves[policy.IntN(len(moves))])
			}

			tickStart := time.Now()
			res := loop.Tick()
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
			report.TotalTicks++

			if res.GameOver {
				break
			}
		}

		snap := loop.Snapshot()
		if !snap.Over {
			report.Abandoned++
		}
		report.add(snap)

		if (i+1)%10 == 0 {
			log.Printf("Played %d games...\n", i+1)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Clears = clears.counts
	report.TickTime.Finalize()
	report.Pipeline = loop.Scheduler().Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak run finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// clearCounter tallies line-clear events by size.
type clearCounter struct {
	counts [5]int
}

func (c *clearCounter) observe(ev game.Event) {
	if ev.Kind == game.EventLinesCleared && ev.Lines > 0 && ev.Lines < len(c.counts) {
		c.counts[ev.Lines]++
	}
}
