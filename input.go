package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
)

// gamepadDeadzone ignores stick drift before the flight model's own deadzone
const gamepadDeadzone = 0.1

// KeyBindings maps one player's keyboard controls
type KeyBindings struct {
	NoseDown, NoseUp       ebiten.Key
	RollLeft, RollRight    ebiten.Key
	ThrottleUp, ThrottleDn ebiten.Key
	Boost, Fire            ebiten.Key
}

var (
	playerOneKeys = KeyBindings{
		NoseDown: ebiten.KeyW, NoseUp: ebiten.KeyS,
		RollLeft: ebiten.KeyA, RollRight: ebiten.KeyD,
		ThrottleUp: ebiten.KeyE, ThrottleDn: ebiten.KeyQ,
		Boost: ebiten.KeyShiftLeft, Fire: ebiten.KeySpace,
	}
	playerTwoKeys = KeyBindings{
		NoseDown: ebiten.KeyArrowUp, NoseUp: ebiten.KeyArrowDown,
		RollLeft: ebiten.KeyArrowLeft, RollRight: ebiten.KeyArrowRight,
		ThrottleUp: ebiten.KeyPeriod, ThrottleDn: ebiten.KeyComma,
		Boost: ebiten.KeyShiftRight, Fire: ebiten.KeySlash,
	}
)

// PlayerControls reads one player's keyboard bindings and, if connected,
// the gamepad at the same index
type PlayerControls struct {
	keys    KeyBindings
	gamepad int
}

// NewPlayerControls creates controls for the player at index
func NewPlayerControls(index int, keys KeyBindings) *PlayerControls {
	return &PlayerControls{keys: keys, gamepad: index}
}

// Input implements game.InputProvider. Keyboard and gamepad are summed
// and clamped so either can fly.
func (p *PlayerControls) Input(_, _ game.AircraftState) game.ControlInput {
	in := game.ControlInput{
		PitchAxis:    keyAxis(p.keys.NoseDown, p.keys.NoseUp),
		RollAxis:     keyAxis(p.keys.RollLeft, p.keys.RollRight),
		ThrottleAxis: keyAxis(p.keys.ThrottleUp, p.keys.ThrottleDn),
		BoostHeld:    ebiten.IsKeyPressed(p.keys.Boost),
		FireHeld:     ebiten.IsKeyPressed(p.keys.Fire),
	}

	if id, ok := gamepadAt(p.gamepad); ok {
		pad := readGamepad(id)
		in.PitchAxis += pad.PitchAxis
		in.RollAxis += pad.RollAxis
		in.ThrottleAxis += pad.ThrottleAxis
		in.BoostHeld = in.BoostHeld || pad.BoostHeld
		in.FireHeld = in.FireHeld || pad.FireHeld
	}

	return in.Clamped()
}

func keyAxis(positive, negative ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(positive) {
		v++
	}
	if ebiten.IsKeyPressed(negative) {
		v--
	}
	return v
}

// gamepadAt returns the index-th connected gamepad with a standard layout
func gamepadAt(index int) (ebiten.GamepadID, bool) {
	var n int
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if n == index {
			return id, true
		}
		n++
	}
	return 0, false
}

// readGamepad maps a standard layout: left stick flies, right stick
// vertical is throttle, right trigger fires, left trigger boosts
func readGamepad(id ebiten.GamepadID) game.ControlInput {
	axis := func(a ebiten.StandardGamepadAxis) float64 {
		v := ebiten.StandardGamepadAxisValue(id, a)
		if math.Abs(v) < gamepadDeadzone {
			return 0
		}
		return v
	}
	pressed := func(b ebiten.StandardGamepadButton) bool {
		return ebiten.IsStandardGamepadButtonPressed(id, b)
	}

	return game.ControlInput{
		// Stick forward reads negative and means nose down
		PitchAxis:    -axis(ebiten.StandardGamepadAxisLeftStickVertical),
		RollAxis:     -axis(ebiten.StandardGamepadAxisLeftStickHorizontal),
		ThrottleAxis: -axis(ebiten.StandardGamepadAxisRightStickVertical),
		BoostHeld:    pressed(ebiten.StandardGamepadButtonFrontBottomLeft),
		FireHeld:     pressed(ebiten.StandardGamepadButtonFrontBottomRight) || pressed(ebiten.StandardGamepadButtonRightBottom),
	}
}

// confirmHeld is the level signal the match edge-detects for start and restart
func confirmHeld() bool {
	if ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeyNumpadEnter) {
		return !altPressed()
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(id) &&
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

func altPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight)
}

// handleWindowKeys processes fullscreen, debug overlay and quit keys
func (g *Game) handleWindowKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) ||
		(altPressed() && inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.ShowOverlay = !g.debug.ShowOverlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.debug.ShowPredictedPath = !g.debug.ShowPredictedPath
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}
