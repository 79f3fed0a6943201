package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
)

// predictFlightPath runs the flight model forward on a copy of the aircraft,
// holding the current input
func (g *Game) predictFlightPath(a game.AircraftState, input game.ControlInput) []game.Vec3 {
	sim := a
	positions := make([]game.Vec3, 0, predictedPathSteps+1)
	positions = append(positions, sim.Position)

	for i := 0; i < predictedPathSteps; i++ {
		game.UpdateFlight(&sim, predictedPathStepTime, input, g.config.Flight)
		positions = append(positions, sim.Position)
	}
	return positions
}

// drawPredictedPath draws the path on the radar, fading toward the end
func (g *Game) drawPredictedPath(screen *ebiten.Image, view radarView, positions []game.Vec3) {
	if len(positions) < 2 {
		return
	}
	for i := 0; i+1 < len(positions); i++ {
		p1, _ := view.project(positions[i].X, positions[i].Z)
		p2, _ := view.project(positions[i+1].X, positions[i+1].Z)

		progress := float64(i) / float64(len(positions)-1)
		clr := withAlpha(colorPredictedPath, 1-progress*0.8)
		vector.StrokeLine(screen, float32(p1.x), float32(p1.y), float32(p2.x), float32(p2.y), 1, clr, true)
	}
}
