package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Saranunt/OpenGL-Flight-Sim/config"
	"github.com/Saranunt/OpenGL-Flight-Sim/logging"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, json or toml); SKYDUEL_* env vars override it")
	logLevel := flag.String("log-level", "INFO", "TRACE, DEBUG, INFO, WARN or ERROR")
	logFile := flag.String("log-file", "", "also write logs to this file")
	profileDir := flag.String("profile-dir", "", "capture CPU profiles and traces here when a frame stalls")
	autopilot := flag.Bool("autopilot", false, "fly player 2 with the autopilot")
	flag.Parse()

	var file io.Writer
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		file = f
	}
	logger := logging.New(logging.Options{Level: *logLevel, Console: os.Stdout, File: file})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
	}
	if *profileDir != "" {
		cfg.Profiler.Dir = *profileDir
	}

	g := NewGame(cfg, logger, GameOptions{Autopilot: *autopilot})

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("Sky Duel")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("Game loop stopped")
	}
	logger.Info().Msg("Bye")
}
