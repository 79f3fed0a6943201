package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DebugState holds debug toggles that persist across rounds
type DebugState struct {
	ShowOverlay       bool // F1: frame and entity counters
	ShowPredictedPath bool // F2: predicted flight path on the radar
}

// drawDebugOverlay prints frame timing and simulation counters
func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	if !g.debug.ShowOverlay {
		return
	}

	lines := fmt.Sprintf("FPS %.0f | TPS %.0f | dt %.3f\nround %d | phase %s | t %.1fs\nprojectiles %d | trail %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.lastDelta,
		g.match.Round(), g.match.Phase(), g.match.Elapsed(),
		len(g.match.Projectiles()), len(g.match.Trails()))
	if g.profiler.IsProfiling() {
		lines += "\nprofiling..."
	}
	ebitenutil.DebugPrintAt(screen, lines, int(g.camera.Width)/2-120, 4)
}
