// cc-stress hammers the concurrent accumulators from many goroutines with no
// external locking, then verifies that one consume after the join barrier
// hands back every entry.
package main

import (
	"net/http"
	"os"
	"runtime"

	_ "net/http/pprof"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/talagrand/CsWinRT/concurrent"
	"github.com/talagrand/CsWinRT/utils"
)

var app = &cli.App{
	Name:  "cc-stress",
	Usage: "fork-join stress harness for the concurrent accumulators.",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "threads",
			Aliases: []string{"t"},
			Value:   runtime.NumCPU(),
			Usage:   "Goroutines forked per round",
		},
		&cli.IntFlag{
			Name:    "inserts",
			Aliases: []string{"n"},
			Value:   100000,
			Usage:   "Inserts per goroutine per round",
		},
		&cli.IntFlag{
			Name:    "rounds",
			Aliases: []string{"r"},
			Value:   10,
			Usage:   "Accumulate/consume cycles (the same containers are reused)",
		},
		&cli.BoolFlag{
			Name:  "overlap",
			Usage: "All goroutines insert the same key range (collision heavy)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Load the workload from a yaml file (flags override it)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Debug log level",
			Action: func(_ *cli.Context, s bool) error {
				if s {
					utils.SetLevel(1)
				}
				return nil
			},
		},
		&cli.BoolFlag{
			Name:  "pprof",
			Usage: "Serve runtime profiles on 0.0.0.0:6060",
		},
	},
	Action: run,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("cc-stress finished")
	}
}

func run(c *cli.Context) error {
	work := DefaultWorkload()
	if path := c.String("config"); path != "" {
		var err error
		if work, err = LoadWorkload(path); err != nil {
			return err
		}
	}
	if c.IsSet("threads") || work.Threads == 0 {
		work.Threads = c.Int("threads")
	}
	if c.IsSet("inserts") || work.PerThread == 0 {
		work.PerThread = c.Int("inserts")
	}
	if c.IsSet("rounds") || work.Rounds == 0 {
		work.Rounds = c.Int("rounds")
	}
	if c.IsSet("overlap") {
		work.Overlap = c.Bool("overlap")
	}

	if c.Bool("pprof") {
		go func() {
			log.Err(http.ListenAndServe("0.0.0.0:6060", nil)).Msg("pprof server stopped")
		}()
	}

	log.Info().Msg("Workload: threads " + utils.V(work.Threads) + " inserts " + utils.V(work.PerThread) +
		" rounds " + utils.V(work.Rounds) + " overlap " + utils.V(work.Overlap))

	// Shared across rounds: each consume must leave them clean for the next
	// accumulation phase.
	cm := &concurrent.Map[string, int]{}
	cs := &concurrent.Set[string]{}

	var watch utils.Watch
	watch.Start()

	roundUs := make([]int64, 0, work.Rounds)
	for round := 0; round < work.Rounds; round++ {
		roundUs = append(roundUs, work.RunRound(&watch, cm, cs, round).Microseconds())
	}

	totalInserts := int64(work.Rounds) * int64(work.Threads) * int64(work.PerThread) * 2 // map + set
	workUs := utils.Max(watch.Elapsed().Microseconds(), 1)
	log.Info().Msg("Accumulate(ms) " + utils.V(utils.Sum(roundUs)/1000) +
		" realtime(ms): " + utils.V(watch.AbsoluteElapsed().Milliseconds()))
	log.Info().Msg("Round(us) min " + utils.V(utils.MinSlice(roundUs)) +
		" median " + utils.V(utils.Median(roundUs)) +
		" 95p " + utils.V(utils.Percentile(roundUs, 95)) +
		" max " + utils.V(utils.MaxSlice(roundUs)))
	log.Info().Msg("Inserts " + utils.V(totalInserts) + " rate(per-ms) " + utils.V(totalInserts*1000/workUs))
	utils.MemoryStats()
	return nil
}
