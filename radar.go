package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
)

// RadarTrailPoint is a past ground position shown fading on the radar
type RadarTrailPoint struct {
	X, Z float64
	age  float64
}

func (g *Game) resetRadarTrails() {
	n := g.match.AircraftCount()
	g.radarTrails = make([][]RadarTrailPoint, n)
	g.radarTrailTimers = make([]float64, n)
}

// updateRadarTrails ages trail points and drops a new one per interval
func (g *Game) updateRadarTrails(dt float64, aircraft []game.AircraftState) {
	if len(g.radarTrails) != len(aircraft) {
		g.resetRadarTrails()
	}

	for i, a := range aircraft {
		trail := g.radarTrails[i][:0]
		for _, p := range g.radarTrails[i] {
			p.age += dt
			if p.age < radarTrailMaxAge {
				trail = append(trail, p)
			}
		}
		g.radarTrails[i] = trail

		if !a.IsAlive {
			continue
		}
		g.radarTrailTimers[i] += dt
		if g.radarTrailTimers[i] >= radarTrailUpdateInterval {
			g.radarTrails[i] = append(g.radarTrails[i], RadarTrailPoint{X: a.Position.X, Z: a.Position.Z})
			if len(g.radarTrails[i]) > radarTrailMaxPoints {
				g.radarTrails[i] = g.radarTrails[i][1:]
			}
			g.radarTrailTimers[i] = 0
		}
	}
}

// radarView projects world X/Z onto one player's heading-up radar
type radarView struct {
	center vec2
	self   game.AircraftState
	scale  float64
}

func (r radarView) project(x, z float64) (vec2, float64) {
	offset := vec2{x - r.self.Position.X, -(z - r.self.Position.Z)}
	dist := math.Hypot(offset.x, offset.y)
	rotated := rotatePoint(offset, -headingAngle(r.self.Yaw))
	p := vec2{rotated.x * r.scale, rotated.y * r.scale}

	// Clamp to radar edge so distant targets sit on the rim
	edgeLimit := radarRadius - radarEdgeMargin
	if edge := math.Hypot(p.x, p.y); edge > edgeLimit {
		f := edgeLimit / edge
		p.x *= f
		p.y *= f
	}
	return vec2{r.center.x + p.x, r.center.y + p.y}, dist
}

// drawRadars draws one heading-up radar per living player in the bottom corners
func (g *Game) drawRadars(screen *ebiten.Image) {
	if g.match.Phase() != game.PhasePlaying {
		return
	}
	snapshots := g.match.Snapshots()
	for i, self := range snapshots {
		if i > 1 || !self.IsAlive {
			continue
		}
		cx := radarMargin + radarRadius
		if i == 1 {
			cx = g.camera.Width - radarMargin - radarRadius
		}
		view := radarView{
			center: vec2{cx, g.camera.Height - radarMargin - radarRadius},
			self:   self,
			scale:  radarRadius / radarRange,
		}
		g.drawRadar(screen, i, view, snapshots)
	}
}

func (g *Game) drawRadar(screen *ebiten.Image, index int, view radarView, all []game.AircraftState) {
	c := view.center
	vector.DrawFilledCircle(screen, float32(c.x), float32(c.y), radarRadius+radarEdgeMargin, colorRadarBackdrop, true)
	vector.StrokeCircle(screen, float32(c.x), float32(c.y), radarRadius, 1, colorRadarRing, true)
	vector.StrokeCircle(screen, float32(c.x), float32(c.y), radarRadius/2, 1, colorRadarRing, true)

	// Own heading always points up
	vector.StrokeLine(screen, float32(c.x), float32(c.y), float32(c.x), float32(c.y-radarRadius+radarHeadingOffset), 1, colorRadarHeading, true)

	g.drawRadarTrail(screen, view, g.radarTrails[index], colorRadarSelf)
	if g.debug.ShowPredictedPath && index < len(g.inputs) {
		g.drawPredictedPath(screen, view, g.predictFlightPath(view.self, g.inputs[index]))
	}

	for j, other := range all {
		if j == index {
			continue
		}
		clr := colorForPlayer(j)
		if j < len(g.radarTrails) {
			g.drawRadarTrail(screen, view, g.radarTrails[j], clr)
		}
		if !other.IsAlive {
			continue
		}

		p, dist := view.project(other.Position.X, other.Position.Z)
		g.drawRadarBlip(screen, p, other, view.self, clr)

		// Altitude difference alongside range
		label := fmt.Sprintf("%.0f %+.0f", dist, other.Position.Y-view.self.Position.Y)
		ebitenutil.DebugPrintAt(screen, label, int(p.x+radarLabelOffsetX), int(p.y-radarLabelOffsetY))
	}

	vector.DrawFilledCircle(screen, float32(c.x), float32(c.y), radarCenterDotSize, colorRadarSelf, true)
}

// drawRadarBlip draws a small heading triangle for another aircraft
func (g *Game) drawRadarBlip(screen *ebiten.Image, p vec2, other, self game.AircraftState, clr color.NRGBA) {
	renderAngle := headingAngle(other.Yaw) - headingAngle(self.Yaw)
	nose := rotatePoint(vec2{0, -6}, renderAngle)
	left := rotatePoint(vec2{-4, 4}, renderAngle)
	right := rotatePoint(vec2{4, 4}, renderAngle)

	pts := []vec2{nose, left, right}
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(p.x+a.x), float32(p.y+a.y), float32(p.x+b.x), float32(p.y+b.y), 1, clr, true)
	}
	if other.Booster.IsBoosting {
		tail := rotatePoint(vec2{0, 10}, renderAngle)
		vector.StrokeLine(screen, float32(p.x), float32(p.y), float32(p.x+tail.x), float32(p.y+tail.y), 1, colorFlame, true)
	}
	vector.DrawFilledCircle(screen, float32(p.x), float32(p.y), radarBlipSize/2, clr, true)
}

// drawRadarTrail draws a trail with segments fading by age
func (g *Game) drawRadarTrail(screen *ebiten.Image, view radarView, trail []RadarTrailPoint, trailColor color.NRGBA) {
	for j := 0; j+1 < len(trail); j++ {
		p1, _ := view.project(trail[j].X, trail[j].Z)
		p2, _ := view.project(trail[j+1].X, trail[j+1].Z)

		age := (trail[j].age + trail[j+1].age) / 2
		opacity := game.ClampFloat(1-age/radarTrailMaxAge, 0, 1) * trailOpacityMax
		vector.StrokeLine(screen, float32(p1.x), float32(p1.y), float32(p2.x), float32(p2.y), 1, withAlpha(trailColor, opacity), true)
	}
}
