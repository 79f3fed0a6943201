package main

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Camera constants
const (
	cameraFollow      = 0.1  // fraction of the gap closed per frame
	cameraMinZoom     = 0.15 // pixels per world unit when the pair is far apart
	cameraFramePad    = 160  // pixels kept between the pair and the screen edge
	terrainImageLimit = 512  // max texels per side for the terrain image
)

// Radar constants
const (
	radarRadius              = 70.0
	radarRange               = 900.0
	radarMargin              = 14.0
	radarEdgeMargin          = 4.0
	radarHeadingOffset       = 6.0
	radarCenterDotSize       = 2.0
	radarBlipSize            = 3.0
	radarLabelOffsetX        = 8.0
	radarLabelOffsetY        = 8.0
	radarTrailMaxAge         = 3.0 // seconds
	radarTrailUpdateInterval = 0.1 // seconds between trail points
	radarTrailMaxPoints      = 30
	trailOpacityMax          = 0.6
)

// Predicted path constants
const (
	predictedPathSteps    = 20
	predictedPathStepTime = 0.1 // seconds per step
)

// Aircraft glyph geometry, in pixels before zoom
const (
	aircraftNoseOffsetY = -14.0
	aircraftWingOffsetX = 11.0
	aircraftWingOffsetY = 8.0
	aircraftTailOffsetY = 6.0
	flameBaseLength     = 14.0
	flameVarLength      = 6.0
	shadowAltitudeScale = 0.05 // pixels of shadow offset per unit of altitude
)

// UI constants
const (
	indicatorMargin   = 18.0
	indicatorArrowLen = 18.0
	indicatorLabelX   = 8
	indicatorLabelY   = 8
	hudLabelMarginX   = 64
	hudLabelMarginY   = 12
	hudBarWidth       = 120.0
	hudBarHeight      = 8.0
	hudPadding        = 10.0
	hudLineHeight     = 16.0
)

// Color constants
var (
	colorBackground      = color.NRGBA{R: 8, G: 20, B: 48, A: 255}
	colorSeaDeep         = color.NRGBA{R: 16, G: 40, B: 96, A: 255}
	colorSeaShallow      = color.NRGBA{R: 40, G: 90, B: 150, A: 255}
	colorLowland         = color.NRGBA{R: 60, G: 120, B: 60, A: 255}
	colorHighland        = color.NRGBA{R: 120, G: 100, B: 70, A: 255}
	colorPeak            = color.NRGBA{R: 235, G: 235, B: 240, A: 255}
	colorShadow          = color.NRGBA{R: 0, G: 0, B: 0, A: 90}
	colorProjectile      = color.NRGBA{R: 255, G: 240, B: 120, A: 255}
	colorFlame           = color.NRGBA{R: 255, G: 160, B: 40, A: 255}
	colorHealthBack      = color.NRGBA{R: 100, G: 0, B: 0, A: 255}
	colorHealth          = color.NRGBA{R: 0, G: 220, B: 0, A: 255}
	colorFuel            = color.NRGBA{R: 80, G: 200, B: 255, A: 255}
	colorFuelExhausted   = color.NRGBA{R: 200, G: 80, B: 80, A: 255}
	colorRadarBackdrop   = color.NRGBA{R: 10, G: 16, B: 32, A: 200}
	colorRadarRing       = color.NRGBA{R: 24, G: 48, B: 96, A: 255}
	colorRadarHeading    = color.NRGBA{R: 120, G: 210, B: 255, A: 255}
	colorRadarSelf       = color.NRGBA{R: 180, G: 255, B: 200, A: 255}
	colorPredictedPath   = color.NRGBA{R: 0, G: 255, B: 0, A: 200}
	colorOverlayBackdrop = color.NRGBA{R: 0, G: 0, B: 0, A: 160}
	colorMenuTitle       = colornames.Gold
	colorMenuText        = colornames.Whitesmoke
	colorWinnerText      = colornames.Lightgreen
	colorDrawText        = colornames.Orange
)

// colorTrailParticle is the boost exhaust tint
var colorTrailParticle = color.NRGBAModel.Convert(colornames.Orangered).(color.NRGBA)

// playerColors tints aircraft by index; index 0 and 1 are the duel pair
var playerColors = []color.NRGBA{
	{R: 90, G: 200, B: 255, A: 255},
	{R: 255, G: 90, B: 90, A: 255},
	{R: 255, G: 220, B: 90, A: 255},
	{R: 160, G: 255, B: 120, A: 255},
}

func colorForPlayer(i int) color.NRGBA {
	if i < 0 {
		i = 0
	}
	return playerColors[i%len(playerColors)]
}

// withAlpha scales the alpha of c by a in [0,1]
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = max(0, min(1, a))
	c.A = uint8(float64(c.A) * a)
	return c
}
