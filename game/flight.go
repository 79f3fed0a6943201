package game

import "math"

// UpdateFlight integrates orientation and position for one tick.
//
// Roll follows the roll axis at a rate that ramps up the longer the axis is
// held. Bank angle turns the aircraft through sin(roll), and pitch input is
// damped at steep banks and split between pitch and yaw.
func UpdateFlight(a *Aircraft, dt float64, input ControlInput, cfg FlightConfig) {
	dt = sanitizeDelta(dt)
	if a == nil || !a.IsAlive || dt == 0 {
		return
	}
	input = input.Clamped()

	// Track how long each axis has been held
	a.RollInputTime = holdTimer(a.RollInputTime, input.RollAxis, dt, cfg)
	a.PitchInputTime = holdTimer(a.PitchInputTime, input.PitchAxis, dt, cfg)

	// Roll
	a.Roll += input.RollAxis * rampedRate(a.RollInputTime, cfg) * dt
	a.Roll = ClampFloat(a.Roll, -cfg.RollLimitDeg, cfg.RollLimitDeg)
	rollRad := Radians(a.Roll)
	sinRoll := math.Sin(rollRad)
	cosRoll := math.Cos(rollRad)

	// Banked turn: no yaw when level, full turn rate at 90 degrees
	a.Yaw -= sinRoll * cfg.TurnRateDegPerSec * dt

	// Pitch authority shrinks as the bank steepens
	dp := input.PitchAxis * rampedRate(a.PitchInputTime, cfg) * dt * math.Max(0.1, math.Abs(cosRoll))
	a.Pitch += dp * cosRoll
	a.Yaw += dp * sinRoll

	a.Yaw = WrapDegrees(a.Yaw)
	a.Pitch = WrapDegrees(a.Pitch)

	// Throttle trims the cruise speed
	if input.ThrottleAxis != 0 {
		a.BaseSpeed = ClampFloat(a.BaseSpeed+input.ThrottleAxis*cfg.ThrottleAccel*dt, cfg.MinSpeed, cfg.MaxSpeed)
	}

	speed := a.Speed
	if !isFinite(speed) {
		speed = a.BaseSpeed
		a.Speed = speed
	}
	a.Position = a.Position.Add(a.Forward().Scale(speed * dt))
}

func holdTimer(current, axis, dt float64, cfg FlightConfig) float64 {
	if math.Abs(axis) <= cfg.Deadzone {
		return 0
	}
	return math.Min(current+dt, cfg.AccelWindowSeconds)
}

// rampedRate interpolates the angular rate by how long the axis has been held
func rampedRate(held float64, cfg FlightConfig) float64 {
	if cfg.AccelWindowSeconds <= 0 {
		return cfg.MaxRateDegPerSec
	}
	t := ClampFloat(held/cfg.AccelWindowSeconds, 0, 1)
	return Lerp(cfg.MinRateDegPerSec, cfg.MaxRateDegPerSec, t)
}
