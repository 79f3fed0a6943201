package game

import "math"

const minTimeConstant = 0.001

// ExponentialApproach moves current toward target with a first-order lag.
// For tau > 0 and dt >= 0 it never overshoots.
func ExponentialApproach(current, target, dt, tau float64) float64 {
	dt = sanitizeDelta(dt)
	tau = math.Max(minTimeConstant, tau)
	alpha := 1 - math.Exp(-dt/tau)
	return current + (target-current)*alpha
}

// UpdateBooster advances fuel and smooths speed toward the boost target.
// Booster.BoostHeld must be set from input before calling.
func UpdateBooster(a *Aircraft, dt float64) {
	if a == nil {
		return
	}
	dt = sanitizeDelta(dt)
	b := &a.Booster

	if !a.IsAlive {
		b.IsBoosting = false
		a.Speed = a.BaseSpeed
		return
	}

	maxFuel := math.Max(0, b.MaxFuelSeconds)
	recharge := math.Max(minTimeConstant, b.RechargeSeconds)
	b.FuelSeconds = ClampFloat(b.FuelSeconds, 0, maxFuel)

	canBoost := !b.Exhausted && maxFuel > 0 && b.FuelSeconds > 0
	if b.BoostHeld && canBoost {
		b.IsBoosting = true
		b.FuelSeconds = math.Max(0, b.FuelSeconds-dt)

		// Running dry latches until the tank is full again
		if b.FuelSeconds <= 0 {
			b.FuelSeconds = 0
			b.IsBoosting = false
			b.Exhausted = true
		}
	} else {
		b.IsBoosting = false

		if maxFuel > 0 && b.FuelSeconds < maxFuel {
			b.FuelSeconds = math.Min(maxFuel, b.FuelSeconds+maxFuel/recharge*dt)
		}
		if b.Exhausted && b.FuelSeconds >= maxFuel {
			b.FuelSeconds = maxFuel
			b.Exhausted = false
		}
	}

	multiplier := 1.0
	ramp := b.RampDownSeconds
	if b.IsBoosting {
		multiplier = math.Max(1, b.SpeedMultiplier)
		ramp = b.RampUpSeconds
	}
	target := math.Max(0, a.BaseSpeed*multiplier)

	a.Speed = ExponentialApproach(a.Speed, target, dt, ramp)
}
