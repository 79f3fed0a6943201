package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTarget(pos Vec3) *Aircraft {
	return NewAircraft(1, Spawn{Position: pos, Yaw: 180}, DefaultConfig())
}

func TestProjectileSystem_FireSpawnsAhead(t *testing.T) {
	shooter, cfg := newTestAircraft()
	ps := NewProjectileSystem(shooter.ID, cfg.Weapon)

	p := ps.Fire(shooter)

	assert.InDelta(t, 5.0, p.Position.Z, 1e-9)
	assert.InDelta(t, 100.0, p.Position.Y, 1e-9)
	assert.InDelta(t, 80.0, p.Velocity.Z, 1e-9)
	assert.Equal(t, 0.5, p.Radius)
	assert.Equal(t, 3.0, p.Lifetime)
	assert.Equal(t, shooter.ID, p.Owner)
	assert.Equal(t, 1, ps.Len())

	// Spawn offset clears the shooter's own sphere
	assert.Greater(t, p.Position.Distance(shooter.Position), shooter.ColliderRadius+p.Radius)
}

func TestProjectileSystem_LifecycleWithoutHit(t *testing.T) {
	shooter, cfg := newTestAircraft()
	ps := NewProjectileSystem(shooter.ID, cfg.Weapon)
	spawn := ps.Fire(shooter)

	for i := 1; i <= 5; i++ {
		hits := ps.Update(0.5)
		require.Empty(t, hits)
		require.Equal(t, 1, ps.Len(), "alive after %d updates", i)

		got := ps.Projectiles()[0]
		want := spawn.Position.Add(spawn.Velocity.Scale(0.5 * float64(i)))
		assert.InDelta(t, want.Z, got.Position.Z, 1e-9)
		assert.InDelta(t, 3.0-0.5*float64(i), got.Lifetime, 1e-9)
	}

	// Lifetime reaches exactly zero on the sixth update
	ps.Update(0.5)
	assert.Zero(t, ps.Len())
}

func TestProjectileSystem_HitDamagesAndRemoves(t *testing.T) {
	shooter, cfg := newTestAircraft()
	ps := NewProjectileSystem(shooter.ID, cfg.Weapon)
	ps.Fire(shooter)

	// After 0.5s the bullet is at z=45, inside reach of a sphere centred at z=48
	target := newTestTarget(Vec3{Y: 100, Z: 48})

	hits := ps.Update(0.5, target)

	require.Len(t, hits, 1)
	assert.Equal(t, target.ID, hits[0].TargetID)
	assert.Equal(t, shooter.ID, hits[0].Owner)
	assert.False(t, hits[0].Killed)
	assert.InDelta(t, 95.0, target.Health, 1e-9)
	assert.Zero(t, ps.Len())
}

func TestProjectileSystem_HitBeatsExpiry(t *testing.T) {
	shooter, cfg := newTestAircraft()
	cfg.Weapon.Lifetime = 0.5
	ps := NewProjectileSystem(shooter.ID, cfg.Weapon)
	ps.Fire(shooter)
	target := newTestTarget(Vec3{Y: 100, Z: 46})

	hits := ps.Update(0.5, target)

	require.Len(t, hits, 1)
	assert.InDelta(t, 95.0, target.Health, 1e-9)
	assert.Zero(t, ps.Len())
}

func TestProjectileSystem_DeadTargetsAreIgnored(t *testing.T) {
	shooter, cfg := newTestAircraft()
	ps := NewProjectileSystem(shooter.ID, cfg.Weapon)
	ps.Fire(shooter)
	target := newTestTarget(Vec3{Y: 100, Z: 46})
	target.IsAlive = false
	target.Health = 0

	hits := ps.Update(0.5, target)

	assert.Empty(t, hits)
	assert.Equal(t, 1, ps.Len())
}

func TestProjectileSystem_TwoHitsSameTickClampAndDieOnce(t *testing.T) {
	target := newTestTarget(Vec3{Y: 100})
	target.Health = 6
	ps := NewProjectileSystem(0, DefaultConfig().Weapon)
	for i := 0; i < 2; i++ {
		ps.projectiles = append(ps.projectiles, Projectile{
			Position: Vec3{Y: 100, Z: -2},
			Velocity: Vec3{Z: 1},
			Radius:   0.5,
			Lifetime: 3,
		})
	}

	hits := ps.Update(0.1, target)

	require.Len(t, hits, 2)
	assert.False(t, hits[0].Killed)
	assert.True(t, hits[1].Killed)
	assert.Zero(t, target.Health, "health clamps at zero")
	assert.False(t, target.IsAlive)
}

func TestProjectileSystem_Clear(t *testing.T) {
	shooter, cfg := newTestAircraft()
	ps := NewProjectileSystem(shooter.ID, cfg.Weapon)
	ps.Fire(shooter)
	ps.Fire(shooter)

	snapshot := ps.Projectiles()
	snapshot[0].Lifetime = 99
	assert.Equal(t, 3.0, ps.Projectiles()[0].Lifetime, "snapshot is a copy")

	ps.Clear()
	assert.Zero(t, ps.Len())
	assert.Empty(t, ps.Projectiles())
}

func TestTryFire_Cooldown(t *testing.T) {
	shooter, cfg := newTestAircraft()
	ps := NewProjectileSystem(shooter.ID, cfg.Weapon)

	_, fired := TryFire(shooter, ps, false, 0.1)
	assert.False(t, fired, "trigger not held")

	_, fired = TryFire(shooter, ps, true, 0)
	require.True(t, fired)
	assert.InDelta(t, 1/8.0, shooter.FireCooldown, 1e-12)

	_, fired = TryFire(shooter, ps, true, 0.1)
	assert.False(t, fired, "still cooling down")

	_, fired = TryFire(shooter, ps, true, 0.05)
	assert.True(t, fired)
	assert.Equal(t, 2, ps.Len())

	shooter.IsAlive = false
	shooter.FireCooldown = 0
	_, fired = TryFire(shooter, ps, true, 0.1)
	assert.False(t, fired, "wrecks do not shoot")
}
