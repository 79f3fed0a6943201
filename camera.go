package main

import (
	"math"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
)

// Camera is a top-down viewport over the X/Z plane. Screen up is +Z.
type Camera struct {
	X, Z   float64 // camera position in world coordinates
	Zoom   float64 // pixels per world unit
	Width  float64 // viewport width
	Height float64 // viewport height

	baseZoom float64
}

// NewCamera creates a camera at the origin
func NewCamera(width, height, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		Zoom:     zoom,
		Width:    width,
		Height:   height,
		baseZoom: zoom,
	}
}

// WorldToScreen converts world X/Z to screen coordinates
func (c *Camera) WorldToScreen(wx, wz float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := -(wz-c.Z)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world X/Z
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wz := -(sy-c.Height/2)/c.Zoom + c.Z
	return wx, wz
}

// Visible reports whether a screen point lies inside the viewport plus margin
func (c *Camera) Visible(sx, sy, margin float64) bool {
	return sx >= -margin && sx <= c.Width+margin && sy >= -margin && sy <= c.Height+margin
}

// Follow eases the camera toward the midpoint of the living aircraft and
// zooms out far enough to keep them framed
func (c *Camera) Follow(aircraft []game.AircraftState) {
	var (
		n                      int
		sumX, sumZ             float64
		minX, maxX, minZ, maxZ = math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	)
	for _, a := range aircraft {
		if !a.IsAlive || !a.Position.IsFinite() {
			continue
		}
		n++
		sumX += a.Position.X
		sumZ += a.Position.Z
		minX, maxX = min(minX, a.Position.X), max(maxX, a.Position.X)
		minZ, maxZ = min(minZ, a.Position.Z), max(maxZ, a.Position.Z)
	}
	if n == 0 {
		return
	}

	targetX := sumX / float64(n)
	targetZ := sumZ / float64(n)
	c.X += (targetX - c.X) * cameraFollow
	c.Z += (targetZ - c.Z) * cameraFollow

	zoom := c.baseZoom
	if spanX := maxX - minX; spanX > 0 {
		zoom = min(zoom, (c.Width-2*cameraFramePad)/spanX)
	}
	if spanZ := maxZ - minZ; spanZ > 0 {
		zoom = min(zoom, (c.Height-2*cameraFramePad)/spanZ)
	}
	zoom = max(zoom, cameraMinZoom)
	c.Zoom += (zoom - c.Zoom) * cameraFollow
}
