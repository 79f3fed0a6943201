package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
)

const controlsHelp = `P1  W/S pitch  A/D roll  Q/E throttle  LShift boost  Space fire
P2  arrows pitch/roll  ,/. throttle  RShift boost  / fire
Gamepad  left stick fly  right stick throttle  LT boost  RT fire
F1 debug  F2 predicted path  F11 fullscreen  Esc quit`

// drawText draws s with its top-left corner at x, y
func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = hudLineHeight
	text.Draw(screen, s, g.face, op)
}

// drawCenteredText draws s centered horizontally around cx
func (g *Game) drawCenteredText(screen *ebiten.Image, s string, cx, y float64, clr color.Color) {
	w, _ := text.Measure(s, g.face, hudLineHeight)
	g.drawText(screen, s, cx-w/2, y, clr)
}

// drawHUD draws a status panel per player: P1 top-left, P2 top-right
func (g *Game) drawHUD(screen *ebiten.Image) {
	if g.match.Phase() == game.PhaseStartMenu {
		return
	}
	for i, a := range g.match.Snapshots() {
		if i > 1 {
			break
		}
		x := hudPadding
		if i == 1 {
			x = g.camera.Width - hudPadding - hudBarWidth - hudLabelMarginX
		}
		g.drawPlayerPanel(screen, i, a, x, hudPadding)
	}
}

func (g *Game) drawPlayerPanel(screen *ebiten.Image, index int, a game.AircraftState, x, y float64) {
	clr := colorForPlayer(index)
	alt := a.Position.Y - g.match.Terrain().SurfaceHeightAt(a.Position.X, a.Position.Z)

	status := "DOWN"
	if a.IsAlive {
		status = fmt.Sprintf("SPD %3.0f  ALT %4.0f", a.Speed, alt)
	}
	g.drawText(screen, fmt.Sprintf("P%d  %s", index+1, status), x, y, clr)

	barX := x + hudLabelMarginX
	y += hudLineHeight
	g.drawText(screen, "HP", x, y-3, colorMenuText)
	drawBar(screen, barX, y, a.HealthFraction(), colorHealth)

	y += hudLineHeight
	fuelColor := colorFuel
	label := "FUEL"
	if a.Booster.Exhausted {
		fuelColor = colorFuelExhausted
		label = "EMPTY"
	} else if a.Booster.IsBoosting {
		label = "BOOST"
	}
	g.drawText(screen, label, x, y-3, colorMenuText)
	drawBar(screen, barX, y, a.FuelFraction(), fuelColor)
}

func drawBar(screen *ebiten.Image, x, y, fraction float64, clr color.NRGBA) {
	fraction = game.ClampFloat(fraction, 0, 1)
	vector.DrawFilledRect(screen, float32(x), float32(y), hudBarWidth, hudBarHeight, colorHealthBack, true)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(hudBarWidth*fraction), hudBarHeight, clr, true)
}

func (g *Game) drawBackdrop(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.camera.Width), float32(g.camera.Height), colorOverlayBackdrop, false)
}

// drawStartMenu draws the title, controls and start prompt
func (g *Game) drawStartMenu(screen *ebiten.Image) {
	g.drawBackdrop(screen)
	cx := g.camera.Width / 2
	y := g.camera.Height/3 - 40

	g.drawCenteredText(screen, "SKY DUEL", cx, y, colorMenuTitle)
	g.drawCenteredText(screen, "Press Enter to start", cx, y+3*hudLineHeight, colorMenuText)
	g.drawCenteredText(screen, controlsHelp, cx, y+6*hudLineHeight, colorMenuText)
}

// drawGameOver draws the outcome and restart prompt
func (g *Game) drawGameOver(screen *ebiten.Image) {
	g.drawBackdrop(screen)
	cx := g.camera.Width / 2
	y := g.camera.Height/3 - 20

	outcome, ok := g.match.Outcome()
	headline := "ROUND OVER"
	var clr color.Color = colorMenuText
	switch {
	case !ok:
	case outcome.Draw:
		headline = "DRAW"
		clr = colorDrawText
	case outcome.Winner >= 0:
		headline = fmt.Sprintf("PLAYER %d WINS", outcome.Winner+1)
		clr = colorWinnerText
	}

	g.drawCenteredText(screen, headline, cx, y, clr)
	if ok {
		g.drawCenteredText(screen, fmt.Sprintf("Round %d lasted %.1fs", g.match.Round(), outcome.Elapsed), cx, y+2*hudLineHeight, colorMenuText)
	}
	g.drawCenteredText(screen, "Press Enter to fly again", cx, y+4*hudLineHeight, colorMenuText)
}

// drawOffscreenIndicators draws edge-of-screen arrows toward aircraft outside the view
func (g *Game) drawOffscreenIndicators(screen *ebiten.Image) {
	if g.match.Phase() != game.PhasePlaying {
		return
	}
	minX, maxX := indicatorMargin, g.camera.Width-indicatorMargin
	minY, maxY := indicatorMargin, g.camera.Height-indicatorMargin
	center := vec2{g.camera.Width / 2, g.camera.Height / 2}

	for i, a := range g.match.Snapshots() {
		if !a.IsAlive {
			continue
		}
		sx, sy := g.camera.WorldToScreen(a.Position.X, a.Position.Z)
		if g.camera.Visible(sx, sy, 0) {
			continue
		}

		dx, dy := sx-center.x, sy-center.y
		length := math.Hypot(dx, dy)
		if length < 1 {
			continue
		}
		dir := vec2{dx / length, dy / length}
		pos := vec2{game.ClampFloat(sx, minX, maxX), game.ClampFloat(sy, minY, maxY)}
		g.drawIndicator(screen, pos, dir, length/g.camera.Zoom, colorForPlayer(i))
	}
}

func (g *Game) drawIndicator(screen *ebiten.Image, pos, dir vec2, dist float64, clr color.NRGBA) {
	tip := vec2{pos.x + dir.x*indicatorArrowLen*0.6, pos.y + dir.y*indicatorArrowLen*0.6}
	tailPt := vec2{pos.x - dir.x*indicatorArrowLen*0.4, pos.y - dir.y*indicatorArrowLen*0.4}
	vector.StrokeLine(screen, float32(tailPt.x), float32(tailPt.y), float32(tip.x), float32(tip.y), 2, clr, true)

	wingLen := indicatorArrowLen * 0.5
	for _, side := range []float64{1, -1} {
		wing := rotatePoint(dir, side*math.Pi/6)
		vector.StrokeLine(screen, float32(tip.x), float32(tip.y), float32(tip.x-wing.x*wingLen), float32(tip.y-wing.y*wingLen), 2, clr, true)
	}

	labelX := game.ClampFloat(pos.x+indicatorLabelX, 4, g.camera.Width-hudLabelMarginX)
	labelY := game.ClampFloat(pos.y-indicatorLabelY, 4, g.camera.Height-hudLabelMarginY)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f", dist), int(labelX), int(labelY))
}
