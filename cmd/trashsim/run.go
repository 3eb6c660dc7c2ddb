package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"trashpiles/internal/app"
	"trashpiles/internal/bot"
	"trashpiles/internal/domain"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// maxTurnsPerGame aborts a game that fails to converge so a bad rule change
// cannot hang the simulator.
const maxTurnsPerGame = 20000

var (
	flagGames   int
	flagSeed    int64
	flagLevels  string
	flagVerbose bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate AI-vs-AI games and report the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(flagVerbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		levels, err := parseLevels(flagLevels)
		if err != nil {
			return err
		}

		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		logger.Info("starting simulation",
			zap.Int("games", flagGames),
			zap.Int64("seed", seed),
			zap.String("levels", flagLevels),
		)

		wins := make([]int, len(levels))
		totalTurns := 0
		for game := 0; game < flagGames; game++ {
			winner, turns, err := simulateGame(logger, seed+int64(game), levels)
			if err != nil {
				return fmt.Errorf("game %d: %w", game, err)
			}
			wins[winner]++
			totalTurns += turns
			logger.Debug("game finished",
				zap.Int("game", game),
				zap.Int("winnerSeat", winner),
				zap.Int("turns", turns),
			)
		}

		for seat, count := range wins {
			logger.Info("seat results",
				zap.Int("seat", seat),
				zap.String("level", levelName(levels[seat])),
				zap.Int("wins", count),
			)
		}
		logger.Info("simulation complete",
			zap.Int("games", flagGames),
			zap.Float64("avgTurns", float64(totalTurns)/float64(flagGames)),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&flagGames, "games", 100, "number of games to simulate")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "base RNG seed (0 picks one from the clock)")
	runCmd.Flags().StringVar(&flagLevels, "levels", "good,smart", "comma-separated bot levels per seat (good, smart, god)")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every game and event")
	rootCmd.AddCommand(runCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func parseLevels(s string) ([]bot.BotLevel, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > app.MaxPlayersPerMatch {
		return nil, fmt.Errorf("need between 2 and %d seats, got %d", app.MaxPlayersPerMatch, len(parts))
	}
	levels := make([]bot.BotLevel, 0, len(parts))
	for _, part := range parts {
		switch strings.TrimSpace(part) {
		case "good":
			levels = append(levels, bot.BotLevelGood)
		case "smart":
			levels = append(levels, bot.BotLevelSmart)
		case "god":
			levels = append(levels, bot.BotLevelGod)
		default:
			return nil, fmt.Errorf("unknown bot level %q", part)
		}
	}
	return levels, nil
}

func levelName(level bot.BotLevel) string {
	switch level {
	case bot.BotLevelSmart:
		return "smart"
	case bot.BotLevelGod:
		return "god"
	default:
		return "good"
	}
}

// simulateGame plays one full game and returns the winning seat and the
// number of dispatched plans.
func simulateGame(logger *zap.Logger, seed int64, levels []bot.BotLevel) (int, int, error) {
	rng := rand.New(rand.NewSource(seed))
	dispatcher := app.NewDispatcher(
		&domain.GameState{Phase: domain.PhaseSetup},
		app.NewCardHandler(),
		app.NewMatchHandler(rng),
		app.NewTurnHandler(rng),
		app.NewSkillHandler(),
		app.NewChallengeHandler(),
	)

	agents := make([]*bot.Agent, 0, len(levels))
	specs := make([]app.PlayerSpec, 0, len(levels))
	for i, level := range levels {
		brain, err := bot.NewBrain(level)
		if err != nil {
			return 0, 0, err
		}
		name := fmt.Sprintf("%s-%d", levelName(level), i)
		agents = append(agents, &bot.Agent{PlayerID: i, Name: name, Strategy: brain})
		specs = append(specs, app.PlayerSpec{Name: name, IsAI: true})
	}

	dispatcher.Subscribe(func(ev app.Event) {
		for _, agent := range agents {
			if len(ev.Recipients) == 0 || containsInt(ev.Recipients, agent.PlayerID) {
				agent.OnGameEvent(ev)
			}
		}
		if logger.Core().Enabled(zap.DebugLevel) {
			logger.Debug("event", zap.String("kind", string(ev.Kind)), zap.Ints("recipients", ev.Recipients))
		}
	})

	if _, err := dispatcher.Dispatch(app.InitializeCommand{Players: specs}); err != nil {
		return 0, 0, err
	}
	if _, err := dispatcher.Dispatch(app.StartCommand{}); err != nil {
		return 0, 0, err
	}

	for turn := 0; turn < maxTurnsPerGame; turn++ {
		state := dispatcher.State()
		if state.Phase != domain.PhasePlaying {
			winner, ok := domain.RoundWinner(state)
			if !ok {
				return 0, 0, fmt.Errorf("game over without a winner")
			}
			return winner, turn, nil
		}

		current := state.Players[state.CurrentPlayerIndex].ID
		commands, err := agents[current].Play(state)
		if err != nil {
			return 0, 0, fmt.Errorf("bot %d: %w", current, err)
		}
		for _, cmd := range commands {
			if _, err := dispatcher.Dispatch(cmd); err != nil {
				return 0, 0, fmt.Errorf("dispatch %s: %w", cmd.Name(), err)
			}
			if dispatcher.State().Phase != domain.PhasePlaying {
				break
			}
		}
	}
	return 0, 0, fmt.Errorf("no result after %d turns", maxTurnsPerGame)
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
