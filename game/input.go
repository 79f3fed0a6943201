package game

import "math"

// ControlInput is one tick of pilot input, already normalized by the source.
// Axes are in [-1, 1]. Positive PitchAxis pushes the nose down, positive
// RollAxis banks left and positive ThrottleAxis speeds up.
type ControlInput struct {
	PitchAxis    float64
	RollAxis     float64
	ThrottleAxis float64
	BoostHeld    bool
	FireHeld     bool
}

// Clamped bounds every axis to [-1, 1] and zeroes NaN
func (c ControlInput) Clamped() ControlInput {
	c.PitchAxis = clampAxis(c.PitchAxis)
	c.RollAxis = clampAxis(c.RollAxis)
	c.ThrottleAxis = clampAxis(c.ThrottleAxis)
	return c
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return ClampFloat(v, -1, 1)
}

// InputProvider defines the interface for aircraft control sources
type InputProvider interface {
	// Input returns the controls for self this tick. opponent is the other
	// aircraft and may be ignored by human sources.
	Input(self, opponent AircraftState) ControlInput
}

// InputFunc adapts a plain function to InputProvider
type InputFunc func(self, opponent AircraftState) ControlInput

func (f InputFunc) Input(self, opponent AircraftState) ControlInput {
	return f(self, opponent)
}

// Trigger turns a held button into a single press event
type Trigger struct {
	prevHeld bool
}

// Update returns true only on a released to pressed transition
func (t *Trigger) Update(held bool) bool {
	pressed := held && !t.prevHeld
	t.prevHeld = held
	return pressed
}

// Reset forgets the previous state
func (t *Trigger) Reset() {
	t.prevHeld = false
}
