package game

import "math"

// AutopilotConfig tunes the pursuit AI
type AutopilotConfig struct {
	// MaxBankDeg is the steepest bank the autopilot commands
	MaxBankDeg float64 `mapstructure:"max_bank_deg"`

	// BankPerDegError is degrees of bank per degree of heading error
	BankPerDegError float64 `mapstructure:"bank_per_deg_error"`

	// MaxPitchDeg bounds commanded climb and dive angles
	MaxPitchDeg float64 `mapstructure:"max_pitch_deg"`

	// PitchPerUnit is degrees of pitch per unit of altitude error
	PitchPerUnit float64 `mapstructure:"pitch_per_unit"`

	// MinAltitude is the lowest height above the surface it will hold
	MinAltitude float64 `mapstructure:"min_altitude"`

	// LookAhead is how far ahead the terrain is probed
	LookAhead float64 `mapstructure:"look_ahead"`

	// PullUpClearance triggers a pull-up when clearance ahead drops below it
	PullUpClearance float64 `mapstructure:"pull_up_clearance"`

	FireConeDeg float64 `mapstructure:"fire_cone_deg"`
	FireRange   float64 `mapstructure:"fire_range"`

	// BoostRange is the distance beyond which it boosts to close in
	BoostRange float64 `mapstructure:"boost_range"`

	// LeadSpeed is the bullet speed used to lead a moving target; 0 aims at it directly
	LeadSpeed float64 `mapstructure:"lead_speed"`
}

// DefaultAutopilotConfig returns a moderately aggressive pursuer
func DefaultAutopilotConfig() AutopilotConfig {
	return AutopilotConfig{
		MaxBankDeg:      40.0,
		BankPerDegError: 1.5,
		MaxPitchDeg:     25.0,
		PitchPerUnit:    0.5,
		MinAltitude:     60.0,
		LookAhead:       60.0,
		PullUpClearance: 25.0,
		FireConeDeg:     8.0,
		FireRange:       220.0, // bullets travel 240 units before expiring
		BoostRange:      500.0,
		LeadSpeed:       80.0,
	}
}

// Autopilot chases the opponent: bank toward it, match altitude, shoot
// when lined up and boost to close distance.
type Autopilot struct {
	config  AutopilotConfig
	terrain *HeightField
}

// NewAutopilot creates a pursuit input provider. terrain may be nil.
func NewAutopilot(cfg AutopilotConfig, terrain *HeightField) *Autopilot {
	return &Autopilot{
		config:  cfg,
		terrain: terrain,
	}
}

// Input implements InputProvider
func (ap *Autopilot) Input(self, opponent AircraftState) ControlInput {
	if !self.IsAlive {
		return ControlInput{}
	}
	cfg := ap.config

	distance := opponent.Position.Distance(self.Position)
	hasTarget := opponent.IsAlive && distance > 1e-6

	// Steer and shoot at where the opponent will be
	aimPoint := opponent.Position
	if cfg.LeadSpeed > 0 {
		aimPoint = PredictiveAim(self.Position, opponent.Position, opponent.Forward().Scale(opponent.Speed), cfg.LeadSpeed)
	}
	toTarget := aimPoint.Sub(self.Position)
	if toTarget.Length() < 1e-6 {
		toTarget = opponent.Position.Sub(self.Position)
	}

	desiredRoll := 0.0
	desiredAltitude := self.Position.Y
	if hasTarget {
		// Calculate heading error to the opponent
		desiredYaw := math.Atan2(toTarget.X, toTarget.Z) * 180 / math.Pi
		yawError := SignedAngleDelta(self.Yaw, desiredYaw)

		// Positive roll turns toward lower yaw, so bank against the error
		desiredRoll = ClampFloat(-yawError*cfg.BankPerDegError, -cfg.MaxBankDeg, cfg.MaxBankDeg)
		desiredAltitude = opponent.Position.Y
	}

	// Hold a floor above the ground under us
	floor := cfg.MinAltitude
	if ap.terrain != nil {
		floor += ap.terrain.SurfaceHeightAt(self.Position.X, self.Position.Z)
	}
	desiredAltitude = math.Max(desiredAltitude, floor)

	// Negative pitch is nose up
	desiredPitch := ClampFloat(-(desiredAltitude-self.Position.Y)*cfg.PitchPerUnit, -cfg.MaxPitchDeg, cfg.MaxPitchDeg)

	// Terrain ahead overrides everything: wings level and climb
	if ap.terrain != nil && ClearanceAhead(&self, ap.terrain, cfg.LookAhead) < cfg.PullUpClearance {
		desiredRoll = 0
		desiredPitch = -cfg.MaxPitchDeg
	}

	currentPitch := SignedAngleDelta(0, self.Pitch)
	input := ControlInput{
		RollAxis:  ClampFloat((desiredRoll-self.Roll)/10, -1, 1),
		PitchAxis: ClampFloat((desiredPitch-currentPitch)/10, -1, 1),
	}

	if hasTarget {
		aim := toTarget.NormalizeOr(self.Forward())
		cosAngle := ClampFloat(self.Forward().Dot(aim), -1, 1)
		offAxis := math.Acos(cosAngle) * 180 / math.Pi
		input.FireHeld = offAxis <= cfg.FireConeDeg && distance <= cfg.FireRange
		input.BoostHeld = distance > cfg.BoostRange
	}

	return input
}
