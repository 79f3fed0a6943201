package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialApproach(t *testing.T) {
	tests := []struct {
		name                     string
		current, target, dt, tau float64
		want                     float64
	}{
		{"zero dt holds", 10, 20, 0, 0.5, 10},
		{"negative dt holds", 10, 20, -1, 0.5, 10},
		{"one time constant", 0, 1, 0.5, 0.5, 1 - math.Exp(-1)},
		{"huge dt lands on target", 0, 25, 1e6, 0.5, 25},
		{"zero tau is floored", 0, 1, 0.001, 0, 1 - math.Exp(-1)},
		{"approach from above", 30, 10, 0.5, 0.5, 10 + 20*math.Exp(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExponentialApproach(tt.current, tt.target, tt.dt, tt.tau), 1e-9)
		})
	}
}

func TestExponentialApproach_NeverOvershoots(t *testing.T) {
	for _, tau := range []float64{0.001, 0.1, 0.5} {
		speed := 0.0
		prev := speed
		for i := 0; i < 2000; i++ {
			speed = ExponentialApproach(speed, 25, 0.005, tau)
			require.LessOrEqual(t, speed, 25.0)
			require.GreaterOrEqual(t, speed, prev)
			prev = speed
		}
		assert.InDelta(t, 25.0, speed, 1e-3, "tau %v converges", tau)
	}
}

func TestUpdateBooster_RampsTowardBoostedSpeed(t *testing.T) {
	a, _ := newTestAircraft()
	a.Booster.BoostHeld = true

	UpdateBooster(a, 0.1)

	assert.True(t, a.Booster.IsBoosting)
	assert.InDelta(t, 2.9, a.Booster.FuelSeconds, 1e-9)
	want := 25 + (125-25)*(1-math.Exp(-0.1/0.5))
	assert.InDelta(t, want, a.Speed, 1e-9)
}

func TestUpdateBooster_FuelDrainsThenLatchesExhausted(t *testing.T) {
	a, _ := newTestAircraft()
	a.Booster.BoostHeld = true
	dt := 0.05

	// Fuel strictly decreases while boosting
	prev := a.Booster.FuelSeconds
	steps := 0
	for !a.Booster.Exhausted {
		UpdateBooster(a, dt)
		require.Less(t, a.Booster.FuelSeconds, prev)
		prev = a.Booster.FuelSeconds
		steps++
		require.Less(t, steps, 1000, "booster never ran dry")
	}
	assert.Zero(t, a.Booster.FuelSeconds)
	assert.False(t, a.Booster.IsBoosting, "boost ends on the tick fuel runs out")

	// Holding boost while exhausted only recharges
	steps = 0
	for a.Booster.Exhausted {
		UpdateBooster(a, dt)
		require.False(t, a.Booster.IsBoosting)
		require.GreaterOrEqual(t, a.Booster.FuelSeconds, prev)
		prev = a.Booster.FuelSeconds
		steps++
		require.Less(t, steps, 1000, "booster never recovered")
	}
	assert.InDelta(t, a.Booster.MaxFuelSeconds, a.Booster.FuelSeconds, 1e-9)

	// Full tank allows boosting again
	UpdateBooster(a, dt)
	assert.True(t, a.Booster.IsBoosting)
}

func TestUpdateBooster_PartialFuelRecharges(t *testing.T) {
	a, _ := newTestAircraft()
	a.Booster.FuelSeconds = 1

	UpdateBooster(a, 1.0)

	// 3s of fuel over 5s of recharge
	assert.InDelta(t, 1.6, a.Booster.FuelSeconds, 1e-9)
	assert.False(t, a.Booster.Exhausted)
}

func TestUpdateBooster_ReleaseDecaysToBaseSpeed(t *testing.T) {
	a, _ := newTestAircraft()
	a.Speed = 125

	for i := 0; i < 1000; i++ {
		UpdateBooster(a, 0.01)
		require.GreaterOrEqual(t, a.Speed, a.BaseSpeed)
	}
	assert.InDelta(t, a.BaseSpeed, a.Speed, 1e-3)
}

func TestUpdateBooster_DeadAircraft(t *testing.T) {
	a, _ := newTestAircraft()
	a.IsAlive = false
	a.Booster.IsBoosting = true
	a.Booster.BoostHeld = true
	a.Speed = 90

	UpdateBooster(a, 0.1)

	assert.False(t, a.Booster.IsBoosting)
	assert.Equal(t, a.BaseSpeed, a.Speed)
}

func TestUpdateBooster_DegenerateTuning(t *testing.T) {
	a, _ := newTestAircraft()
	a.Booster.RechargeSeconds = 0
	a.Booster.RampDownSeconds = 0
	a.Booster.FuelSeconds = -4

	UpdateBooster(a, 0.1)

	assert.InDelta(t, a.Booster.MaxFuelSeconds, a.Booster.FuelSeconds, 1e-9, "zero recharge refills instantly")
	assert.False(t, math.IsNaN(a.Speed))

	noTank, _ := newTestAircraft()
	noTank.Booster.MaxFuelSeconds = 0
	noTank.Booster.BoostHeld = true
	UpdateBooster(noTank, 0.1)
	assert.False(t, noTank.Booster.IsBoosting)
	assert.Zero(t, noTank.Booster.FuelSeconds)
}
