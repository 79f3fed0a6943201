package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
	"github.com/Saranunt/OpenGL-Flight-Sim/logging"
)

// startupGrace skips stall detection while the window and GPU warm up
const startupGrace = 3 * time.Second

// GameOptions selects how the second seat is flown
type GameOptions struct {
	// Autopilot flies player 2 instead of the second keyboard layout
	Autopilot bool
}

// Game is the ebiten shell around a game.Match
type Game struct {
	config   game.Config
	logger   zerolog.Logger
	frameLog zerolog.Logger

	match     *game.Match
	providers []game.InputProvider
	inputs    []game.ControlInput

	camera   *Camera
	face     text.Face
	profiler *game.StallProfiler
	debug    DebugState

	terrainImage  *ebiten.Image
	terrainSource *game.HeightField

	radarTrails      [][]RadarTrailPoint
	radarTrailTimers []float64

	gameStartTime  time.Time
	lastUpdateTime time.Time
	lastDelta      float64
	lastPhase      game.Phase
}

// NewGame creates the window-side state and a fresh match
func NewGame(cfg game.Config, logger zerolog.Logger, opts GameOptions) *Game {
	match := game.NewMatch(cfg, game.WithLogger(logger))

	providers := []game.InputProvider{
		NewPlayerControls(0, playerOneKeys),
		NewPlayerControls(1, playerTwoKeys),
	}
	if opts.Autopilot {
		providers[1] = game.NewAutopilot(cfg.Autopilot, match.Terrain())
	}

	now := time.Now()
	g := &Game{
		config:         cfg,
		logger:         logger,
		frameLog:       logging.Sampled(logger),
		match:          match,
		providers:      providers,
		camera:         NewCamera(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Screen.PixelsPerUnit),
		face:           text.NewGoXFace(basicfont.Face7x13),
		profiler:       game.NewStallProfiler(cfg.Profiler, logger),
		gameStartTime:  now,
		lastUpdateTime: now,
		lastPhase:      match.Phase(),
	}
	g.resetRadarTrails()
	g.camera.Follow(match.Snapshots())

	logger.Info().
		Int("width", cfg.Screen.Width).
		Int("height", cfg.Screen.Height).
		Bool("autopilot", opts.Autopilot).
		Bool("profiler", g.profiler.Enabled()).
		Msg("Game created")
	return g
}

// Update advances the match by the wall-clock frame delta
func (g *Game) Update() error {
	if err := g.handleWindowKeys(); err != nil {
		g.profiler.Wait()
		return err
	}

	now := time.Now()
	dt := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	if now.Sub(g.gameStartTime) >= startupGrace {
		g.profiler.Observe(dt)
	}

	// The core runs unclamped, so long frames are capped here
	if limit := g.config.Match.MaxDeltaTime; limit > 0 && dt > limit {
		g.frameLog.Debug().Float64("dt", dt).Float64("limit", limit).Msg("Frame delta clamped")
		dt = limit
	}
	g.lastDelta = dt

	g.inputs = g.match.PollInputs(g.providers)
	g.match.Update(dt, g.inputs, confirmHeld())

	if phase := g.match.Phase(); phase != g.lastPhase {
		if phase == game.PhasePlaying {
			g.resetRadarTrails()
		}
		g.lastPhase = phase
	}

	snapshots := g.match.Snapshots()
	if g.match.Phase() == game.PhasePlaying {
		g.updateRadarTrails(dt, snapshots)
	}
	g.camera.Follow(snapshots)

	return nil
}

// Draw renders the world, then the HUD and phase overlays
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g.drawWorld(screen)
	g.drawOffscreenIndicators(screen)
	g.drawRadars(screen)
	g.drawHUD(screen)

	switch g.match.Phase() {
	case game.PhaseStartMenu:
		g.drawStartMenu(screen)
	case game.PhaseGameOver:
		g.drawGameOver(screen)
	}

	g.drawDebugOverlay(screen)
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Screen.Width, g.config.Screen.Height
}
