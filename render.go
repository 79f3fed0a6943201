package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
)

// vec2 is a point in screen space
type vec2 struct {
	x, y float64
}

// rotatePoint rotates a point around the origin by the given angle (in radians)
func rotatePoint(p vec2, angle float64) vec2 {
	sinA := math.Sin(angle)
	cosA := math.Cos(angle)
	return vec2{
		x: p.x*cosA - p.y*sinA,
		y: p.x*sinA + p.y*cosA,
	}
}

// headingAngle is the screen rotation for a yaw in degrees; yaw 0 points up
func headingAngle(yawDeg float64) float64 {
	return game.Radians(yawDeg)
}

// drawWorld draws terrain, trails, projectiles and aircraft back to front
func (g *Game) drawWorld(screen *ebiten.Image) {
	g.drawTerrain(screen)
	g.drawTrails(screen)
	g.drawProjectiles(screen)

	snapshots := g.match.Snapshots()
	for _, a := range snapshots {
		g.drawAircraftShadow(screen, a)
	}
	for i, a := range snapshots {
		g.drawAircraft(screen, i, a)
	}
}

// drawTerrain draws the cached height map image under the camera
func (g *Game) drawTerrain(screen *ebiten.Image) {
	field := g.match.Terrain()
	if field == nil {
		return
	}
	if g.terrainSource != field {
		g.terrainImage = buildTerrainImage(field)
		g.terrainSource = field
	}

	w := g.terrainImage.Bounds().Dx()
	texel := field.Size() / float64(max(w-1, 1))
	half := field.Size() / 2

	// Texel centers sit on grid samples, so the image extends half a texel past the edge
	sx, sy := g.camera.WorldToScreen(-half-texel/2, half+texel/2)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(texel*g.camera.Zoom, texel*g.camera.Zoom)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.terrainImage, op)
}

// buildTerrainImage shades every grid sample by height. Row 0 is the +Z edge.
func buildTerrainImage(field *game.HeightField) *ebiten.Image {
	samples := field.Resolution() + 1
	stride := max(1, (samples+terrainImageLimit-1)/terrainImageLimit)
	n := (samples-1)/stride + 1

	lo, hi := field.MinMax()
	sea := field.SeaLevel()
	pix := make([]byte, 4*n*n)
	for row := 0; row < n; row++ {
		iz := (n - 1 - row) * stride
		for col := 0; col < n; col++ {
			ix := col * stride
			c := terrainColor(field.Sample(ix, iz), lo, hi, sea)
			o := 4 * (row*n + col)
			pix[o], pix[o+1], pix[o+2], pix[o+3] = c.R, c.G, c.B, c.A
		}
	}

	img := ebiten.NewImage(n, n)
	img.WritePixels(pix)
	return img
}

func terrainColor(h, lo, hi, sea float64) color.NRGBA {
	if h < sea {
		depth := 0.0
		if sea > lo {
			depth = (sea - h) / (sea - lo)
		}
		return lerpColor(colorSeaShallow, colorSeaDeep, depth)
	}

	t := 0.0
	if hi > sea {
		t = (h - sea) / (hi - sea)
	}
	if t < 0.6 {
		return lerpColor(colorLowland, colorHighland, t/0.6)
	}
	return lerpColor(colorHighland, colorPeak, (t-0.6)/0.4)
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = game.ClampFloat(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(game.Lerp(float64(x), float64(y), t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// drawTrails draws boost particles fading with their remaining life
func (g *Game) drawTrails(screen *ebiten.Image) {
	for _, p := range g.match.Trails() {
		sx, sy := g.camera.WorldToScreen(p.Position.X, p.Position.Z)
		if !g.camera.Visible(sx, sy, p.Size) {
			continue
		}
		radius := max(1, p.Size*0.25*g.camera.Zoom/g.config.Screen.PixelsPerUnit)
		clr := withAlpha(colorTrailParticle, p.Alpha())
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)
	}
}

// drawProjectiles draws bullets tinted by owner
func (g *Game) drawProjectiles(screen *ebiten.Image) {
	for _, p := range g.match.Projectiles() {
		sx, sy := g.camera.WorldToScreen(p.Position.X, p.Position.Z)
		if !g.camera.Visible(sx, sy, 4) {
			continue
		}
		radius := max(1.5, p.Radius*g.camera.Zoom*2)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), colorProjectile, true)

		// Short streak back along the velocity
		tail := p.Velocity.Scale(-0.03)
		tx, ty := g.camera.WorldToScreen(p.Position.X+tail.X, p.Position.Z+tail.Z)
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(tx), float32(ty), 1, colorForPlayer(p.Owner), true)
	}
}
