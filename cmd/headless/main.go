// Command headless flies duel rounds without a window, autopilot versus
// autopilot by default, and logs each outcome.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Saranunt/OpenGL-Flight-Sim/config"
	"github.com/Saranunt/OpenGL-Flight-Sim/game"
	"github.com/Saranunt/OpenGL-Flight-Sim/logging"
)

// ErrUnknownPilot is returned for a -pilots entry that names no pilot
var ErrUnknownPilot = errors.New("unknown pilot")

// RoundResult summarizes one headless round
type RoundResult struct {
	Outcome  game.Outcome
	TimedOut bool
	Steps    int
}

func main() {
	configPath := flag.String("config", "", "config file (yaml, json or toml)")
	logLevel := flag.String("log-level", "INFO", "TRACE, DEBUG, INFO, WARN or ERROR")
	duration := flag.Float64("duration", 120, "simulated seconds per round before calling it a timeout")
	dt := flag.Float64("dt", 1.0/60, "fixed simulation step in seconds")
	rounds := flag.Int("rounds", 1, "rounds to fly on the same terrain")
	seed := flag.Int64("seed", -1, "terrain seed; negative keeps the configured seed")
	pilots := flag.String("pilots", "autopilot,autopilot", "comma separated pilot per seat: autopilot, level or circle")
	flag.Parse()

	logger := logging.New(logging.Options{Level: *logLevel, Console: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
	}
	if *seed >= 0 {
		cfg.Terrain.Seed = uint64(*seed)
	}
	if *dt <= 0 || *duration <= 0 || *rounds < 1 {
		logger.Fatal().Float64("dt", *dt).Float64("duration", *duration).Int("rounds", *rounds).Msg("Invalid run parameters")
	}

	logger.Info().
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Uint64("seed", cfg.Terrain.Seed).
		Int("rounds", *rounds).
		Msg("Starting headless duel")

	started := time.Now()
	results, err := RunDuel(cfg, logger, strings.Split(*pilots, ","), *rounds, *dt, *duration)
	if err != nil {
		logger.Fatal().Err(err).Str("pilots", *pilots).Msg("Failed to set up pilots")
	}

	wins := map[int]int{}
	var draws, timeouts int
	for _, r := range results {
		switch {
		case r.TimedOut:
			timeouts++
		case r.Outcome.Draw:
			draws++
		case r.Outcome.Winner >= 0:
			wins[r.Outcome.Winner]++
		}
	}

	logger.Info().
		Int("p1_wins", wins[0]).
		Int("p2_wins", wins[1]).
		Int("draws", draws).
		Int("timeouts", timeouts).
		Dur("wall", time.Since(started)).
		Msg("Headless duel finished")
}

// pilotFor builds the input provider for a pilot name
func pilotFor(name string, cfg game.Config, terrain *game.HeightField) (game.InputProvider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "autopilot":
		return game.NewAutopilot(cfg.Autopilot, terrain), nil
	case "level":
		return game.InputFunc(func(_, _ game.AircraftState) game.ControlInput {
			return game.ControlInput{}
		}), nil
	case "circle":
		return game.InputFunc(func(_, _ game.AircraftState) game.ControlInput {
			return game.ControlInput{RollAxis: 1, ThrottleAxis: 1, FireHeld: true}
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPilot, name)
	}
}

// RunDuel flies the given number of rounds on one terrain. Seats without a
// named pilot get the autopilot.
func RunDuel(cfg game.Config, logger zerolog.Logger, pilots []string, rounds int, dt, duration float64) ([]RoundResult, error) {
	match := game.NewMatch(cfg, game.WithLogger(logger))
	providers := make([]game.InputProvider, match.AircraftCount())
	for i := range providers {
		name := ""
		if i < len(pilots) {
			name = pilots[i]
		}
		p, err := pilotFor(name, cfg, match.Terrain())
		if err != nil {
			return nil, err
		}
		providers[i] = p
	}

	results := make([]RoundResult, 0, rounds)
	for round := 0; round < rounds; round++ {
		// Release then press confirm: starts from the menu, restarts from game over
		match.Update(0, nil, false)
		match.Update(0, nil, true)

		result := flyRound(match, providers, dt, duration)
		results = append(results, result)

		event := logger.Info().Int("round", match.Round()).Int("steps", result.Steps)
		if result.TimedOut {
			event.Float64("elapsed", match.Elapsed()).Msg("Round timed out")
			match.Restart()
			continue
		}
		event.Int("winner", result.Outcome.Winner).
			Bool("draw", result.Outcome.Draw).
			Float64("elapsed", result.Outcome.Elapsed).
			Msg("Round finished")
	}
	return results, nil
}

func flyRound(match *game.Match, providers []game.InputProvider, dt, duration float64) RoundResult {
	var steps int
	for match.Phase() == game.PhasePlaying {
		if match.Elapsed() >= duration {
			return RoundResult{TimedOut: true, Steps: steps}
		}
		match.Update(dt, match.PollInputs(providers), false)
		steps++
	}

	outcome, _ := match.Outcome()
	return RoundResult{Outcome: outcome, Steps: steps}
}
