package game

import "math"

// Seeds for the first two trail emitters. Further emitters derive their own.
var trailSeeds = [...]uint32{0x12345678, 0x87654321}

// TrailParticle is one puff of boost exhaust
type TrailParticle struct {
	Position Vec3
	Velocity Vec3

	// Lifetime is the total lifetime, Remaining counts down to zero
	Lifetime  float64
	Remaining float64
	Size      float64
}

// Alpha returns the fade value for rendering: held at full early on, then
// fading out over the rest of the lifetime
func (p TrailParticle) Alpha() float64 {
	alpha := ClampFloat(p.Remaining/math.Max(0.001, p.Lifetime), 0, 1)
	return math.Min(1, alpha*1.6)
}

// BoostTrail is a per-aircraft exhaust emitter active while boosting
type BoostTrail struct {
	config      TrailConfig
	particles   []TrailParticle
	accumulator float64
	seed        uint32
	rngState    uint32
}

// NewBoostTrail creates the emitter for the aircraft with the given index
func NewBoostTrail(index int, cfg TrailConfig) *BoostTrail {
	seed := uint32(0x9e3779b9) * uint32(index+1)
	if index >= 0 && index < len(trailSeeds) {
		seed = trailSeeds[index]
	}
	return &BoostTrail{
		config:    cfg,
		particles: make([]TrailParticle, 0, cfg.MaxParticles),
		seed:      seed,
		rngState:  seed,
	}
}

// nextFloat01 is an LCG so trails replay identically
func (t *BoostTrail) nextFloat01() float64 {
	t.rngState = 1664525*t.rngState + 1013904223
	mantissa := (t.rngState >> 8) & 0x00FFFFFF
	return float64(mantissa) / float64(0x01000000)
}

// Update ages existing particles and emits new ones behind a boosting aircraft
func (t *BoostTrail) Update(a *Aircraft, dt float64) {
	dt = sanitizeDelta(dt)

	// Update existing particles
	for i := len(t.particles) - 1; i >= 0; i-- {
		p := &t.particles[i]
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		p.Remaining -= dt

		// Remove dead particles
		if p.Remaining <= 0 {
			t.particles = append(t.particles[:i], t.particles[i+1:]...)
		}
	}

	if a == nil || !a.IsAlive {
		return
	}
	if !a.Booster.IsBoosting {
		t.accumulator = 0
		return
	}

	t.accumulator += t.config.EmitRate * dt
	toEmit := int(t.accumulator)
	t.accumulator -= float64(toEmit)
	if toEmit == 0 {
		return
	}

	forward := a.Forward()
	up := Vec3{Y: 1}
	right := up.Cross(forward).NormalizeOr(Vec3{X: 1})

	// Slightly behind the plane
	base := a.Position.Sub(forward.Scale(t.config.BackOffset)).Add(up.Scale(t.config.UpOffset))
	speed := math.Max(t.config.MinSpeed, a.Speed)

	for i := 0; i < toEmit; i++ {
		side := (t.nextFloat01() - 0.5) * 0.9
		vertical := (t.nextFloat01() - 0.5) * 0.4
		jitter := right.Scale((t.nextFloat01() - 0.5) * 3).Add(up.Scale(t.nextFloat01() * 1.5))
		lifetime := Lerp(t.config.MinLifetime, t.config.MaxLifetime, t.nextFloat01())
		size := Lerp(t.config.MinSize, t.config.MaxSize, t.nextFloat01())

		if len(t.particles) >= t.config.MaxParticles {
			continue
		}
		t.particles = append(t.particles, TrailParticle{
			Position:  base.Add(right.Scale(side)).Add(up.Scale(vertical)),
			Velocity:  forward.Scale(-speed * t.config.SpeedFraction).Add(jitter),
			Lifetime:  lifetime,
			Remaining: lifetime,
			Size:      size,
		})
	}
}

// Particles returns a copy of the live particles
func (t *BoostTrail) Particles() []TrailParticle {
	out := make([]TrailParticle, len(t.particles))
	copy(out, t.particles)
	return out
}

// Len returns the number of live particles
func (t *BoostTrail) Len() int {
	return len(t.particles)
}

// Clear drops every particle and rewinds the jitter sequence
func (t *BoostTrail) Clear() {
	t.particles = t.particles[:0]
	t.accumulator = 0
	t.rngState = t.seed
}
