package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictiveAim_StillTarget(t *testing.T) {
	target := Vec3{X: 10, Y: 5, Z: 100}
	assert.Equal(t, target, PredictiveAim(Vec3{}, target, Vec3{}, 80))
	assert.Equal(t, target, PredictiveAim(Vec3{}, target, Vec3{X: 25}, 0), "no bullet speed")
	assert.Equal(t, target, PredictiveAim(target, target, Vec3{X: 25}, 80), "point blank")
}

func TestPredictiveAim_LeadsCrossingTarget(t *testing.T) {
	shooter := Vec3{}
	target := Vec3{Z: 200}
	vel := Vec3{X: 25}

	aim := PredictiveAim(shooter, target, vel, 80)

	assert.Greater(t, aim.X, 0.0, "aims ahead of a target crossing to the right")
	assert.InDelta(t, 200.0, aim.Z, 1e-9)

	// Bullet and target arrive at about the same time
	tBullet := aim.Distance(shooter) / 80
	tTarget := aim.X / vel.X
	assert.InDelta(t, tTarget, tBullet, 0.01)
}
