package game

// Projectile is a single bullet in flight
type Projectile struct {
	Position Vec3
	Velocity Vec3
	Radius   float64

	// Lifetime is the remaining time in seconds
	Lifetime float64

	// Owner is the ID of the aircraft that fired it
	Owner int
}

// Hit records a projectile striking an aircraft
type Hit struct {
	Owner    int
	TargetID int
	Position Vec3
	Damage   float64
	Killed   bool
}

// ProjectileSystem owns every projectile fired by one aircraft
type ProjectileSystem struct {
	owner       int
	config      WeaponConfig
	projectiles []Projectile
}

// NewProjectileSystem creates a projectile system for one shooter
func NewProjectileSystem(owner int, cfg WeaponConfig) *ProjectileSystem {
	return &ProjectileSystem{
		owner:       owner,
		config:      cfg,
		projectiles: make([]Projectile, 0, 64),
	}
}

// Owner returns the ID of the shooter this system belongs to
func (ps *ProjectileSystem) Owner() int {
	return ps.owner
}

// Fire spawns a projectile ahead of the shooter along its heading.
// Rate limiting is the caller's job.
func (ps *ProjectileSystem) Fire(shooter *Aircraft) Projectile {
	forward := shooter.Forward()
	p := Projectile{
		Position: shooter.Position.Add(forward.Scale(ps.config.SpawnOffset)),
		Velocity: forward.Scale(ps.config.BulletSpeed),
		Radius:   ps.config.Radius,
		Lifetime: ps.config.Lifetime,
		Owner:    ps.owner,
	}
	ps.projectiles = append(ps.projectiles, p)
	return p
}

// Update advances every projectile, applies hits against the living targets
// and drops projectiles that hit something or ran out of time.
func (ps *ProjectileSystem) Update(dt float64, targets ...*Aircraft) []Hit {
	dt = sanitizeDelta(dt)
	var hits []Hit

	// Compact in place: survivors are copied down over removed entries
	kept := ps.projectiles[:0]
	for _, p := range ps.projectiles {
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		p.Lifetime -= dt

		// A hit wins over expiry in the same tick
		if hit, ok := ps.hitTest(p, targets); ok {
			hits = append(hits, hit)
			continue
		}
		if p.Lifetime <= 0 {
			continue
		}
		kept = append(kept, p)
	}
	clear(ps.projectiles[len(kept):])
	ps.projectiles = kept

	return hits
}

// hitTest applies damage to the first living target the projectile overlaps.
func (ps *ProjectileSystem) hitTest(p Projectile, targets []*Aircraft) (Hit, bool) {
	for _, target := range targets {
		if target == nil || !target.IsAlive {
			continue
		}
		reach := p.Radius + target.ColliderRadius
		if p.Position.Distance(target.Position) > reach {
			continue
		}
		killed := target.ApplyDamage(ps.config.Damage)
		return Hit{
			Owner:    p.Owner,
			TargetID: target.ID,
			Position: p.Position,
			Damage:   ps.config.Damage,
			Killed:   killed,
		}, true
	}
	return Hit{}, false
}

// Projectiles returns a copy of the live projectiles
func (ps *ProjectileSystem) Projectiles() []Projectile {
	out := make([]Projectile, len(ps.projectiles))
	copy(out, ps.projectiles)
	return out
}

// Len returns the number of live projectiles
func (ps *ProjectileSystem) Len() int {
	return len(ps.projectiles)
}

// Clear removes every projectile
func (ps *ProjectileSystem) Clear() {
	clear(ps.projectiles)
	ps.projectiles = ps.projectiles[:0]
}

// TryFire consumes the fire input against the aircraft's cooldown.
// The cooldown ticks down every call and resets to 1/FireRate after a shot.
func TryFire(a *Aircraft, ps *ProjectileSystem, fireHeld bool, dt float64) (Projectile, bool) {
	a.FireCooldown = max(0, a.FireCooldown-sanitizeDelta(dt))
	if !fireHeld || !a.IsAlive || a.FireCooldown > 0 || a.FireRate <= 0 {
		return Projectile{}, false
	}
	a.FireCooldown = 1 / a.FireRate
	return ps.Fire(a), true
}
