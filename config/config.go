package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Saranunt/OpenGL-Flight-Sim/game"
)

// EnvPrefix prefixes every environment override, e.g. SKYDUEL_TERRAIN_SEED
const EnvPrefix = "SKYDUEL"

// ErrReadConfig wraps failures to read or decode the config file
var ErrReadConfig = errors.New("error reading config file")

// Load builds the game configuration from defaults, an optional file and
// SKYDUEL_* environment variables, in increasing priority. An empty path
// skips the file. The file format follows its extension (yaml, json, toml).
func Load(path string) (game.Config, error) {
	v := viper.New()
	setDefaults(v, game.DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return game.Config{}, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}
	}

	var cfg game.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return game.Config{}, fmt.Errorf("%w: decode: %w", ErrReadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}

	return cfg, nil
}

// setDefaults registers every key so env overrides and partial files work
func setDefaults(v *viper.Viper, d game.Config) {
	v.SetDefault("aircraft.base_speed", d.Aircraft.BaseSpeed)
	v.SetDefault("aircraft.health", d.Aircraft.Health)
	v.SetDefault("aircraft.collider_radius", d.Aircraft.ColliderRadius)
	v.SetDefault("aircraft.fire_rate", d.Aircraft.FireRate)

	v.SetDefault("flight.deadzone", d.Flight.Deadzone)
	v.SetDefault("flight.accel_window_seconds", d.Flight.AccelWindowSeconds)
	v.SetDefault("flight.min_rate_deg_per_sec", d.Flight.MinRateDegPerSec)
	v.SetDefault("flight.max_rate_deg_per_sec", d.Flight.MaxRateDegPerSec)
	v.SetDefault("flight.roll_limit_deg", d.Flight.RollLimitDeg)
	v.SetDefault("flight.turn_rate_deg_per_sec", d.Flight.TurnRateDegPerSec)
	v.SetDefault("flight.throttle_accel", d.Flight.ThrottleAccel)
	v.SetDefault("flight.min_speed", d.Flight.MinSpeed)
	v.SetDefault("flight.max_speed", d.Flight.MaxSpeed)

	v.SetDefault("booster.max_fuel_seconds", d.Booster.MaxFuelSeconds)
	v.SetDefault("booster.recharge_seconds", d.Booster.RechargeSeconds)
	v.SetDefault("booster.speed_multiplier", d.Booster.SpeedMultiplier)
	v.SetDefault("booster.ramp_up_seconds", d.Booster.RampUpSeconds)
	v.SetDefault("booster.ramp_down_seconds", d.Booster.RampDownSeconds)

	v.SetDefault("terrain.size", d.Terrain.Size)
	v.SetDefault("terrain.resolution", d.Terrain.Resolution)
	v.SetDefault("terrain.seed", d.Terrain.Seed)
	v.SetDefault("terrain.octaves", d.Terrain.Octaves)
	v.SetDefault("terrain.amplitude", d.Terrain.Amplitude)
	v.SetDefault("terrain.frequency", d.Terrain.Frequency)
	v.SetDefault("terrain.persistence", d.Terrain.Persistence)
	v.SetDefault("terrain.lacunarity", d.Terrain.Lacunarity)
	v.SetDefault("terrain.height_offset", d.Terrain.HeightOffset)
	v.SetDefault("terrain.sea_level", d.Terrain.SeaLevel)

	v.SetDefault("collision.probe_margin", d.Collision.ProbeMargin)
	v.SetDefault("collision.samples", d.Collision.Samples)
	v.SetDefault("collision.damage_per_tick", d.Collision.DamagePerTick)
	v.SetDefault("collision.speed_damping", d.Collision.SpeedDamping)

	v.SetDefault("weapon.spawn_offset", d.Weapon.SpawnOffset)
	v.SetDefault("weapon.bullet_speed", d.Weapon.BulletSpeed)
	v.SetDefault("weapon.lifetime", d.Weapon.Lifetime)
	v.SetDefault("weapon.radius", d.Weapon.Radius)
	v.SetDefault("weapon.damage", d.Weapon.Damage)

	v.SetDefault("trail.emit_rate", d.Trail.EmitRate)
	v.SetDefault("trail.max_particles", d.Trail.MaxParticles)
	v.SetDefault("trail.back_offset", d.Trail.BackOffset)
	v.SetDefault("trail.up_offset", d.Trail.UpOffset)
	v.SetDefault("trail.min_speed", d.Trail.MinSpeed)
	v.SetDefault("trail.speed_fraction", d.Trail.SpeedFraction)
	v.SetDefault("trail.min_lifetime", d.Trail.MinLifetime)
	v.SetDefault("trail.max_lifetime", d.Trail.MaxLifetime)
	v.SetDefault("trail.min_size", d.Trail.MinSize)
	v.SetDefault("trail.max_size", d.Trail.MaxSize)

	v.SetDefault("autopilot.max_bank_deg", d.Autopilot.MaxBankDeg)
	v.SetDefault("autopilot.bank_per_deg_error", d.Autopilot.BankPerDegError)
	v.SetDefault("autopilot.max_pitch_deg", d.Autopilot.MaxPitchDeg)
	v.SetDefault("autopilot.pitch_per_unit", d.Autopilot.PitchPerUnit)
	v.SetDefault("autopilot.min_altitude", d.Autopilot.MinAltitude)
	v.SetDefault("autopilot.look_ahead", d.Autopilot.LookAhead)
	v.SetDefault("autopilot.pull_up_clearance", d.Autopilot.PullUpClearance)
	v.SetDefault("autopilot.fire_cone_deg", d.Autopilot.FireConeDeg)
	v.SetDefault("autopilot.fire_range", d.Autopilot.FireRange)
	v.SetDefault("autopilot.boost_range", d.Autopilot.BoostRange)
	v.SetDefault("autopilot.lead_speed", d.Autopilot.LeadSpeed)

	v.SetDefault("match.spawns", spawnMaps(d.Match.Spawns))
	v.SetDefault("match.spawn_clearance", d.Match.SpawnClearance)
	v.SetDefault("match.max_delta_time", d.Match.MaxDeltaTime)

	v.SetDefault("screen.width", d.Screen.Width)
	v.SetDefault("screen.height", d.Screen.Height)
	v.SetDefault("screen.pixels_per_unit", d.Screen.PixelsPerUnit)

	v.SetDefault("profiler.dir", d.Profiler.Dir)
	v.SetDefault("profiler.stall_threshold", d.Profiler.StallThreshold)
	v.SetDefault("profiler.cooldown_seconds", d.Profiler.CooldownSeconds)
	v.SetDefault("profiler.capture_seconds", d.Profiler.CaptureSeconds)
}

// spawnMaps converts spawns to the shape a config file would decode into
func spawnMaps(spawns []game.Spawn) []map[string]any {
	out := make([]map[string]any, 0, len(spawns))
	for _, s := range spawns {
		out = append(out, map[string]any{
			"position": map[string]any{
				"x": s.Position.X,
				"y": s.Position.Y,
				"z": s.Position.Z,
			},
			"yaw": s.Yaw,
		})
	}
	return out
}
