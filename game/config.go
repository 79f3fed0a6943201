package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the simulation
type Config struct {
	Aircraft  AircraftConfig  `mapstructure:"aircraft"`
	Flight    FlightConfig    `mapstructure:"flight"`
	Booster   BoosterConfig   `mapstructure:"booster"`
	Terrain   TerrainConfig   `mapstructure:"terrain"`
	Collision CollisionConfig `mapstructure:"collision"`
	Weapon    WeaponConfig    `mapstructure:"weapon"`
	Trail     TrailConfig     `mapstructure:"trail"`
	Autopilot AutopilotConfig `mapstructure:"autopilot"`
	Match     MatchConfig     `mapstructure:"match"`
	Screen    ScreenConfig    `mapstructure:"screen"`
	Profiler  ProfilerConfig  `mapstructure:"profiler"`
}

// AircraftConfig holds the spawn values of an aircraft
type AircraftConfig struct {
	// BaseSpeed is the cruise speed in units per second
	BaseSpeed float64 `mapstructure:"base_speed"`

	// Health is the starting (and maximum) health
	Health float64 `mapstructure:"health"`

	// ColliderRadius is the radius of the hit sphere
	ColliderRadius float64 `mapstructure:"collider_radius"`

	// FireRate is shots per second
	FireRate float64 `mapstructure:"fire_rate"`
}

// FlightConfig tunes the flight dynamics model
type FlightConfig struct {
	// Deadzone is the axis magnitude below which an input counts as released
	Deadzone float64 `mapstructure:"deadzone"`

	// AccelWindowSeconds is how long an axis must be held to reach MaxRateDegPerSec
	AccelWindowSeconds float64 `mapstructure:"accel_window_seconds"`

	MinRateDegPerSec float64 `mapstructure:"min_rate_deg_per_sec"`
	MaxRateDegPerSec float64 `mapstructure:"max_rate_deg_per_sec"`

	// RollLimitDeg bounds roll to [-RollLimitDeg, RollLimitDeg]
	RollLimitDeg float64 `mapstructure:"roll_limit_deg"`

	// TurnRateDegPerSec is the yaw rate at a 90 degree bank
	TurnRateDegPerSec float64 `mapstructure:"turn_rate_deg_per_sec"`

	// ThrottleAccel is how fast base speed changes under full throttle (units/s^2)
	ThrottleAccel float64 `mapstructure:"throttle_accel"`
	MinSpeed      float64 `mapstructure:"min_speed"`
	MaxSpeed      float64 `mapstructure:"max_speed"`
}

// BoosterConfig holds the booster values an aircraft spawns with
type BoosterConfig struct {
	MaxFuelSeconds  float64 `mapstructure:"max_fuel_seconds"`
	RechargeSeconds float64 `mapstructure:"recharge_seconds"`
	SpeedMultiplier float64 `mapstructure:"speed_multiplier"`
	RampUpSeconds   float64 `mapstructure:"ramp_up_seconds"`
	RampDownSeconds float64 `mapstructure:"ramp_down_seconds"`
}

// CollisionConfig tunes terrain contact
type CollisionConfig struct {
	// ProbeMargin is added to the collider radius for the probe circle
	ProbeMargin float64 `mapstructure:"probe_margin"`

	// Samples is the number of points on the probe circle
	Samples int `mapstructure:"samples"`

	// DamagePerTick is applied on every tick spent below the surface
	DamagePerTick float64 `mapstructure:"damage_per_tick"`

	// SpeedDamping multiplies speed on every colliding tick
	SpeedDamping float64 `mapstructure:"speed_damping"`
}

// WeaponConfig tunes the projectile system
type WeaponConfig struct {
	// SpawnOffset is the distance ahead of the shooter a projectile appears
	SpawnOffset float64 `mapstructure:"spawn_offset"`
	BulletSpeed float64 `mapstructure:"bullet_speed"`
	Lifetime    float64 `mapstructure:"lifetime"`
	Radius      float64 `mapstructure:"radius"`
	Damage      float64 `mapstructure:"damage"`
}

// TrailConfig tunes the boost trail emitter
type TrailConfig struct {
	EmitRate      float64 `mapstructure:"emit_rate"`
	MaxParticles  int     `mapstructure:"max_particles"`
	BackOffset    float64 `mapstructure:"back_offset"`
	UpOffset      float64 `mapstructure:"up_offset"`
	MinSpeed      float64 `mapstructure:"min_speed"`
	SpeedFraction float64 `mapstructure:"speed_fraction"`
	MinLifetime   float64 `mapstructure:"min_lifetime"`
	MaxLifetime   float64 `mapstructure:"max_lifetime"`
	MinSize       float64 `mapstructure:"min_size"`
	MaxSize       float64 `mapstructure:"max_size"`
}

// MatchConfig holds round setup
type MatchConfig struct {
	Spawns []Spawn `mapstructure:"spawns"`

	// SpawnClearance is the minimum height above the surface at spawn
	SpawnClearance float64 `mapstructure:"spawn_clearance"`

	// MaxDeltaTime caps a single frame delta in the app loop
	MaxDeltaTime float64 `mapstructure:"max_delta_time"`
}

// Spawn is a starting position and heading
type Spawn struct {
	Position Vec3    `mapstructure:"position"`
	Yaw      float64 `mapstructure:"yaw"`
}

// ScreenConfig holds window settings
type ScreenConfig struct {
	// Width is the window width in pixels
	Width int `mapstructure:"width"`

	// Height is the window height in pixels
	Height int `mapstructure:"height"`

	// PixelsPerUnit is the top-down map zoom
	PixelsPerUnit float64 `mapstructure:"pixels_per_unit"`
}

// ProfilerConfig controls stall capture
type ProfilerConfig struct {
	// Dir is where profiles are written. Empty disables capture.
	Dir string `mapstructure:"dir"`

	StallThreshold  float64 `mapstructure:"stall_threshold"`
	CooldownSeconds float64 `mapstructure:"cooldown_seconds"`
	CaptureSeconds  float64 `mapstructure:"capture_seconds"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Aircraft: AircraftConfig{
			BaseSpeed:      25.0,
			Health:         100.0,
			ColliderRadius: 3.0,
			FireRate:       8.0,
		},
		Flight: FlightConfig{
			Deadzone:           0.05,
			AccelWindowSeconds: 1.5,
			MinRateDegPerSec:   30.0,
			MaxRateDegPerSec:   90.0,
			RollLimitDeg:       45.0,
			TurnRateDegPerSec:  45.0,
			ThrottleAccel:      10.0,
			MinSpeed:           1.0,
			MaxSpeed:           50.0,
		},
		Booster: BoosterConfig{
			MaxFuelSeconds:  3.0,
			RechargeSeconds: 5.0,
			SpeedMultiplier: 5.0,
			RampUpSeconds:   0.5,
			RampDownSeconds: 0.5,
		},
		Terrain: DefaultTerrainConfig(),
		Collision: CollisionConfig{
			ProbeMargin:   2.0,
			Samples:       8,
			DamagePerTick: 0.1,
			SpeedDamping:  0.95,
		},
		Weapon: WeaponConfig{
			SpawnOffset: 5.0, // clears collider (3) plus bullet radius
			BulletSpeed: 80.0,
			Lifetime:    3.0,
			Radius:      0.5,
			Damage:      5.0,
		},
		Trail: TrailConfig{
			EmitRate:      55.0,
			MaxParticles:  256,
			BackOffset:    2.4,
			UpOffset:      0.2,
			MinSpeed:      20.0,
			SpeedFraction: 0.6,
			MinLifetime:   0.25,
			MaxLifetime:   0.45,
			MinSize:       10.0,
			MaxSize:       20.0,
		},
		Autopilot: DefaultAutopilotConfig(),
		Match: MatchConfig{
			Spawns: []Spawn{
				{Position: Vec3{X: 0, Y: 200, Z: -400}, Yaw: 0},
				{Position: Vec3{X: 0, Y: 200, Z: 400}, Yaw: 180},
			},
			SpawnClearance: 30.0,
			MaxDeltaTime:   0.1,
		},
		Screen: ScreenConfig{
			Width:         1024,
			Height:        768,
			PixelsPerUnit: 0.6,
		},
		Profiler: ProfilerConfig{
			Dir:             "",
			StallThreshold:  0.25,
			CooldownSeconds: 10.0,
			CaptureSeconds:  5.0,
		},
	}
}

// Validate rejects tunings the simulation cannot run with
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Aircraft.BaseSpeed >= 0, "aircraft.base_speed must be >= 0"},
		{c.Aircraft.Health > 0, "aircraft.health must be > 0"},
		{c.Aircraft.ColliderRadius > 0, "aircraft.collider_radius must be > 0"},
		{c.Aircraft.FireRate > 0, "aircraft.fire_rate must be > 0"},
		{c.Flight.AccelWindowSeconds > 0, "flight.accel_window_seconds must be > 0"},
		{c.Flight.MinRateDegPerSec <= c.Flight.MaxRateDegPerSec, "flight.min_rate_deg_per_sec must not exceed max"},
		{c.Flight.RollLimitDeg > 0 && c.Flight.RollLimitDeg <= 90, "flight.roll_limit_deg must be in (0, 90]"},
		{c.Flight.MinSpeed <= c.Flight.MaxSpeed, "flight.min_speed must not exceed max_speed"},
		{c.Booster.MaxFuelSeconds >= 0, "booster.max_fuel_seconds must be >= 0"},
		{c.Terrain.Size > 0, "terrain.size must be > 0"},
		{c.Terrain.Resolution > 0, "terrain.resolution must be > 0"},
		{c.Terrain.Octaves >= 0, "terrain.octaves must be >= 0"},
		{c.Collision.Samples >= 1, "collision.samples must be >= 1"},
		{c.Collision.SpeedDamping >= 0 && c.Collision.SpeedDamping <= 1, "collision.speed_damping must be in [0, 1]"},
		{c.Weapon.Radius >= 0, "weapon.radius must be >= 0"},
		{c.Weapon.Lifetime > 0, "weapon.lifetime must be > 0"},
		{c.Trail.MaxParticles >= 0, "trail.max_particles must be >= 0"},
		{c.Trail.MinLifetime > 0 && c.Trail.MinLifetime <= c.Trail.MaxLifetime, "trail lifetimes must satisfy 0 < min <= max"},
		{len(c.Match.Spawns) >= 2, "match needs at least two spawns"},
		{c.Match.MaxDeltaTime > 0, "match.max_delta_time must be > 0"},
		{c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive"},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.msg)
		}
	}
	return nil
}
