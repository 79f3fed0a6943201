package game

// BoosterState is the speed-boost sub-state of an aircraft
type BoosterState struct {
	FuelSeconds     float64
	MaxFuelSeconds  float64
	RechargeSeconds float64
	SpeedMultiplier float64
	RampUpSeconds   float64
	RampDownSeconds float64

	// BoostHeld mirrors the pilot's boost input for the current tick
	BoostHeld  bool
	IsBoosting bool

	// Exhausted latches when fuel runs out and clears only at full fuel
	Exhausted bool
}

// Aircraft is the mutable state of one player's plane.
// Angles are in degrees.
type Aircraft struct {
	ID int

	Position Vec3
	Yaw      float64
	Pitch    float64
	Roll     float64

	// BaseSpeed is the throttle-controlled cruise speed, Speed the effective one
	BaseSpeed float64
	Speed     float64

	Health    float64
	MaxHealth float64
	IsAlive   bool

	Booster BoosterState

	// Seconds the pitch/roll axes have been held, used to ramp turn rate
	PitchInputTime float64
	RollInputTime  float64

	FireCooldown float64
	FireRate     float64

	ColliderRadius float64
}

// AircraftState is a read-only copy of an aircraft handed to renderers and AI
type AircraftState = Aircraft

// NewAircraft creates an aircraft at the given spawn
func NewAircraft(id int, spawn Spawn, cfg Config) *Aircraft {
	a := &Aircraft{ID: id}
	a.Reset(spawn, cfg)
	return a
}

// Reset reinitializes every field to its spawn value
func (a *Aircraft) Reset(spawn Spawn, cfg Config) {
	id := a.ID
	*a = Aircraft{
		ID:        id,
		Position:  spawn.Position,
		Yaw:       WrapDegrees(spawn.Yaw),
		BaseSpeed: cfg.Aircraft.BaseSpeed,
		Speed:     cfg.Aircraft.BaseSpeed,
		Health:    cfg.Aircraft.Health,
		MaxHealth: cfg.Aircraft.Health,
		IsAlive:   cfg.Aircraft.Health > 0,
		Booster: BoosterState{
			FuelSeconds:     cfg.Booster.MaxFuelSeconds,
			MaxFuelSeconds:  cfg.Booster.MaxFuelSeconds,
			RechargeSeconds: cfg.Booster.RechargeSeconds,
			SpeedMultiplier: cfg.Booster.SpeedMultiplier,
			RampUpSeconds:   cfg.Booster.RampUpSeconds,
			RampDownSeconds: cfg.Booster.RampDownSeconds,
		},
		FireRate:       cfg.Aircraft.FireRate,
		ColliderRadius: cfg.Aircraft.ColliderRadius,
	}
}

// ApplyDamage subtracts health and reports whether this call killed the aircraft.
// Health is clamped to [0, MaxHealth].
func (a *Aircraft) ApplyDamage(amount float64) (died bool) {
	if !isFinite(amount) {
		return false
	}
	a.Health = ClampFloat(a.Health-amount, 0, a.maxHealth())
	if a.IsAlive && a.Health <= 0 {
		a.IsAlive = false
		return true
	}
	return false
}

func (a *Aircraft) maxHealth() float64 {
	if a.MaxHealth > 0 {
		return a.MaxHealth
	}
	return 100
}

// Forward returns the unit heading from the current yaw and pitch
func (a *Aircraft) Forward() Vec3 {
	return ForwardVector(a.Yaw, a.Pitch)
}

// Snapshot returns a value copy safe to hold across ticks
func (a *Aircraft) Snapshot() AircraftState {
	return *a
}

// FuelFraction returns booster fuel in [0, 1]
func (a *Aircraft) FuelFraction() float64 {
	if a.Booster.MaxFuelSeconds <= 0 {
		return 0
	}
	return ClampFloat(a.Booster.FuelSeconds/a.Booster.MaxFuelSeconds, 0, 1)
}

// HealthFraction returns health in [0, 1]
func (a *Aircraft) HealthFraction() float64 {
	return ClampFloat(a.Health/a.maxHealth(), 0, 1)
}
