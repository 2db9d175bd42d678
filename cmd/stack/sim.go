package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/registry"
	"github.com/vovakirdan/tui-stack/internal/stack"
)

var (
	flagSimVariant   string
	flagSimRuns      int
	flagSimTolerance float64
	flagSimJitter    float64
	flagSimMaxTicks  int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot games",
	Long: `Play games without a terminal. The autopilot taps once the moving
block is within --tolerance of the block below, plus a random error of up
to --jitter. Drops are logged at debug level.

Examples:
  stack sim --seed 42
  stack sim --runs 20 --jitter 0.3 --log-level warn
  stack sim --variant stack_hard --tolerance 0`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimVariant, "variant", "stack", "Variant to simulate")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of games to play")
	simCmd.Flags().Float64Var(&flagSimTolerance, "tolerance", 0.05, "Alignment the autopilot aims for, in world units")
	simCmd.Flags().Float64Var(&flagSimJitter, "jitter", 0.2, "Maximum random aiming error, in world units")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 60*60*10, "Stop a game after this many ticks")
}

// simGame is the part of the game the autopilot drives and inspects.
type simGame interface {
	registry.Game
	Snapshot() stack.Snapshot
}

type simOptions struct {
	Tolerance float64
	Jitter    float64
	MaxTicks  int
	Rand      *rand.Rand
}

type simResult struct {
	State    core.GameState
	Ticks    int
	Finished bool // Reached game over before MaxTicks
}

// simulate plays one game from the start tap to game over.
// The game must already be Reset.
func simulate(g simGame, opts simOptions) simResult {
	aim := opts.Tolerance + opts.Jitter*opts.Rand.Float64()
	var res simResult

	for res.Ticks < opts.MaxTicks {
		in := core.NewInputFrame()
		snap := g.Snapshot()

		switch snap.Phase {
		case stack.PhaseInit:
			in.Set(core.ActionTap)
		case stack.PhasePlaying:
			axis := snap.MoveAxis
			offset := snap.Current.Position.Get(axis) - snap.Previous.Position.Get(axis)
			if math.Abs(offset) <= aim {
				in.Set(core.ActionTap)
				aim = opts.Tolerance + opts.Jitter*opts.Rand.Float64()
			}
		}

		step := g.Step(in)
		res.Ticks++
		res.State = step.State
		if step.State.GameOver {
			res.Finished = true
			break
		}
	}
	return res
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSimRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}
	logger, err := newLogger("stack-sim", false)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	created, err := registry.CreateHosted(flagSimVariant, registry.Host{Logger: logger})
	if err != nil {
		return err
	}
	game, ok := created.(simGame)
	if !ok {
		return fmt.Errorf("variant %q cannot be simulated", flagSimVariant)
	}

	opts := simOptions{
		Tolerance: flagSimTolerance,
		Jitter:    flagSimJitter,
		MaxTicks:  flagSimMaxTicks,
		Rand:      rng,
	}

	total, best := 0, 0
	for run := 1; run <= flagSimRuns; run++ {
		game.Reset(core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  24,
			TickRate: flagFPS,
			Seed:     seed + int64(run-1),
		})
		res := simulate(game, opts)

		logger.Info("run finished",
			"run", run,
			"score", res.State.Score,
			"perfects", res.State.Perfects,
			"best_combo", res.State.BestCombo,
			"ticks", res.Ticks,
			"finished", res.Finished,
		)
		fmt.Printf("run %d: score %d, perfects %d, best combo %d\n",
			run, res.State.Score, res.State.Perfects, res.State.BestCombo)

		total += res.State.Score
		best = max(best, res.State.Score)
	}

	if flagSimRuns > 1 {
		fmt.Printf("best %d, average %.1f over %d runs\n",
			best, float64(total)/float64(flagSimRuns), flagSimRuns)
	}
	return nil
}
