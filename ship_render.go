package main

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
)

// glyphScale grows the aircraft slightly with altitude so height reads top-down
func (g *Game) glyphScale(a game.AircraftState) float64 {
	alt := a.Position.Y - g.match.Terrain().SurfaceHeightAt(a.Position.X, a.Position.Z)
	return game.ClampFloat(0.8+alt/600, 0.8, 1.6)
}

// drawAircraftShadow draws a ground shadow offset by altitude
func (g *Game) drawAircraftShadow(screen *ebiten.Image, a game.AircraftState) {
	if !a.IsAlive {
		return
	}
	alt := a.Position.Y - g.match.Terrain().SurfaceHeightAt(a.Position.X, a.Position.Z)
	sx, sy := g.camera.WorldToScreen(a.Position.X, a.Position.Z)
	off := max(0, alt) * shadowAltitudeScale
	vector.DrawFilledCircle(screen, float32(sx+off), float32(sy+off), 6, colorShadow, true)
}

// drawAircraft draws the glyph, boost flame and health bar
func (g *Game) drawAircraft(screen *ebiten.Image, index int, a game.AircraftState) {
	sx, sy := g.camera.WorldToScreen(a.Position.X, a.Position.Z)
	if !g.camera.Visible(sx, sy, 40) {
		return
	}

	if !a.IsAlive {
		drawWreck(screen, sx, sy)
		return
	}

	clr := colorForPlayer(index)
	angle := headingAngle(a.Yaw)
	scale := g.glyphScale(a)

	// Banking foreshortens the wings
	span := aircraftWingOffsetX * math.Max(0.25, math.Cos(game.Radians(a.Roll))) * scale
	nose := rotatePoint(vec2{0, aircraftNoseOffsetY * scale}, angle)
	left := rotatePoint(vec2{-span, aircraftWingOffsetY * scale}, angle)
	right := rotatePoint(vec2{span, aircraftWingOffsetY * scale}, angle)
	tail := rotatePoint(vec2{0, aircraftTailOffsetY * scale}, angle)

	outline := []vec2{nose, left, tail, right}
	for i, p := range outline {
		q := outline[(i+1)%len(outline)]
		vector.StrokeLine(screen, float32(sx+p.x), float32(sy+p.y), float32(sx+q.x), float32(sy+q.y), 2, clr, true)
	}

	if a.Booster.IsBoosting {
		flameLength := (flameBaseLength + rand.Float64()*flameVarLength) * scale
		anchor := rotatePoint(vec2{0, aircraftTailOffsetY * scale}, angle)
		tip := rotatePoint(vec2{0, aircraftTailOffsetY*scale + flameLength}, angle)
		flameColor := color.NRGBA{R: colorFlame.R, G: colorFlame.G + uint8(rand.IntN(60)), B: colorFlame.B, A: 255}
		vector.StrokeLine(screen,
			float32(sx+anchor.x), float32(sy+anchor.y),
			float32(sx+tip.x), float32(sy+tip.y),
			3, flameColor, true)
	}

	if a.Health < a.MaxHealth {
		barWidth := 28.0
		barHeight := 4.0
		barX := sx - barWidth/2
		barY := sy - 22*scale
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), colorHealthBack, true)
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth*a.HealthFraction()), float32(barHeight), colorHealth, true)
	}
}

// drawWreck marks a destroyed aircraft with a cross
func drawWreck(screen *ebiten.Image, sx, sy float64) {
	const r = 7
	grey := color.NRGBA{R: 140, G: 140, B: 140, A: 255}
	vector.StrokeLine(screen, float32(sx-r), float32(sy-r), float32(sx+r), float32(sy+r), 2, grey, true)
	vector.StrokeLine(screen, float32(sx-r), float32(sy+r), float32(sx+r), float32(sy-r), 2, grey, true)
}
