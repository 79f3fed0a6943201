package game

import (
	"math"

	"github.com/rs/zerolog"
)

// Phase is the match state machine phase
type Phase int

const (
	PhaseStartMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStartMenu:
		return "start_menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Death causes reported in logs and outcomes
const (
	CauseTerrain    = "terrain"
	CauseProjectile = "projectile"
)

// Outcome summarizes a finished round
type Outcome struct {
	// Winner is the surviving aircraft ID, or -1
	Winner int

	// Draw is set when every aircraft died on the same tick
	Draw bool

	Survivors []int
	Elapsed   float64
}

// Match represents the full simulation state of a duel
type Match struct {
	config  Config
	logger  zerolog.Logger
	terrain *HeightField

	phase   Phase
	confirm Trigger

	spawns      []Spawn
	aircraft    []*Aircraft
	projectiles []*ProjectileSystem
	trails      []*BoostTrail

	elapsed float64
	round   int
	outcome Outcome
}

// MatchOption configures a Match
type MatchOption func(*Match)

// WithLogger sets the logger used for match events
func WithLogger(logger zerolog.Logger) MatchOption {
	return func(m *Match) {
		m.logger = logger
	}
}

// WithTerrain uses an existing heightfield instead of generating one
func WithTerrain(terrain *HeightField) MatchOption {
	return func(m *Match) {
		m.terrain = terrain
	}
}

// NewMatch creates a match in the start menu
func NewMatch(config Config, opts ...MatchOption) *Match {
	m := &Match{
		config: config,
		logger: zerolog.Nop(),
		phase:  PhaseStartMenu,
		round:  1,
	}
	for _, opt := range opts {
		opt(m)
	}

	// Terrain is generated once and survives restarts
	if m.terrain == nil {
		m.terrain = GenerateTerrain(config.Terrain)
	}

	spawns := config.Match.Spawns
	if len(spawns) < 2 {
		spawns = DefaultConfig().Match.Spawns
	}
	for i, spawn := range spawns {
		spawn = m.clearSpawn(spawn)
		m.spawns = append(m.spawns, spawn)
		m.aircraft = append(m.aircraft, NewAircraft(i, spawn, config))
		m.projectiles = append(m.projectiles, NewProjectileSystem(i, config.Weapon))
		m.trails = append(m.trails, NewBoostTrail(i, config.Trail))
	}
	m.resetOutcome()

	minH, maxH := m.terrain.MinMax()
	m.logger.Debug().
		Int("aircraft", len(m.aircraft)).
		Float64("terrainMin", minH).
		Float64("terrainMax", maxH).
		Msg("Match created")

	return m
}

// clearSpawn lifts a spawn point above the surface clearance
func (m *Match) clearSpawn(spawn Spawn) Spawn {
	floor := m.terrain.SurfaceHeightAt(spawn.Position.X, spawn.Position.Z) + m.config.Match.SpawnClearance
	spawn.Position.Y = math.Max(spawn.Position.Y, floor)
	return spawn
}

// Update advances the state machine by one frame. confirmHeld is the raw
// start/restart button; only its press edge acts.
func (m *Match) Update(dt float64, inputs []ControlInput, confirmHeld bool) {
	pressed := m.confirm.Update(confirmHeld)

	switch m.phase {
	case PhaseStartMenu:
		if pressed {
			m.setPhase(PhasePlaying)
		}
	case PhasePlaying:
		m.Tick(dt, inputs)
	case PhaseGameOver:
		if pressed {
			m.Restart()
		}
	}
}

// Tick runs one simulation step. It does nothing outside PhasePlaying.
// inputs[i] drives aircraft i; missing entries are neutral.
func (m *Match) Tick(dt float64, inputs []ControlInput) {
	if m.phase != PhasePlaying {
		return
	}
	dt = sanitizeDelta(dt)
	if dt == 0 {
		return
	}

	// Flight, boost, terrain and fire control per living aircraft
	for i, a := range m.aircraft {
		if !a.IsAlive {
			continue
		}
		var input ControlInput
		if i < len(inputs) {
			input = inputs[i].Clamped()
		}

		UpdateFlight(a, dt, input, m.config.Flight)

		a.Booster.BoostHeld = input.BoostHeld
		UpdateBooster(a, dt)

		if contact, hit := ResolveTerrainCollision(a, m.terrain, m.config.Collision); hit && contact.Killed {
			m.logDeath(a, CauseTerrain, -1)
		}

		TryFire(a, m.projectiles[i], input.FireHeld, dt)
	}

	// Each aircraft's projectiles are tested against everyone else
	targets := make([]*Aircraft, 0, len(m.aircraft))
	for _, ps := range m.projectiles {
		targets = targets[:0]
		for _, a := range m.aircraft {
			if a.ID != ps.Owner() {
				targets = append(targets, a)
			}
		}
		for _, hit := range ps.Update(dt, targets...) {
			m.logger.Debug().
				Int("shooter", hit.Owner).
				Int("target", hit.TargetID).
				Float64("health", m.aircraft[hit.TargetID].Health).
				Msg("Projectile hit")
			if hit.Killed {
				m.logDeath(m.aircraft[hit.TargetID], CauseProjectile, hit.Owner)
			}
		}
	}

	for i, trail := range m.trails {
		trail.Update(m.aircraft[i], dt)
	}

	// Anything destroyed this tick stops boosting
	for _, a := range m.aircraft {
		if !a.IsAlive {
			UpdateBooster(a, dt)
		}
	}

	m.elapsed += dt

	// The death tick has fully applied before the phase changes
	m.checkTermination()
}

func (m *Match) logDeath(a *Aircraft, cause string, killer int) {
	event := m.logger.Info().
		Int("aircraft", a.ID).
		Str("cause", cause).
		Float64("elapsed", m.elapsed)
	if killer >= 0 {
		event = event.Int("killer", killer)
	}
	event.Msg("Aircraft destroyed")
}

func (m *Match) checkTermination() {
	var survivors []int
	for _, a := range m.aircraft {
		if a.IsAlive {
			survivors = append(survivors, a.ID)
		}
	}
	if len(survivors) == len(m.aircraft) {
		return
	}

	m.outcome = Outcome{
		Winner:    -1,
		Draw:      len(survivors) == 0,
		Survivors: survivors,
		Elapsed:   m.elapsed,
	}
	if len(survivors) == 1 {
		m.outcome.Winner = survivors[0]
	}

	m.logger.Info().
		Int("round", m.round).
		Int("winner", m.outcome.Winner).
		Bool("draw", m.outcome.Draw).
		Float64("elapsed", m.elapsed).
		Msg("Round over")
	m.setPhase(PhaseGameOver)
}

// Restart puts every aircraft back on its spawn, drops all projectiles and
// trails and starts a new round on the same terrain.
func (m *Match) Restart() {
	for i, a := range m.aircraft {
		a.Reset(m.spawns[i], m.config)
		m.projectiles[i].Clear()
		m.trails[i].Clear()
	}
	m.elapsed = 0
	m.round++
	m.resetOutcome()
	m.setPhase(PhasePlaying)
}

func (m *Match) resetOutcome() {
	m.outcome = Outcome{Winner: -1}
}

func (m *Match) setPhase(phase Phase) {
	if phase == m.phase {
		return
	}
	m.logger.Info().
		Str("from", m.phase.String()).
		Str("to", phase.String()).
		Int("round", m.round).
		Msg("Phase changed")
	m.phase = phase
}

// Phase returns the current phase
func (m *Match) Phase() Phase {
	return m.phase
}

// Outcome returns the result of the last round; ok is false until GameOver
func (m *Match) Outcome() (Outcome, bool) {
	return m.outcome, m.phase == PhaseGameOver
}

// Elapsed returns simulated seconds in the current round
func (m *Match) Elapsed() float64 {
	return m.elapsed
}

// Round returns the 1-based round number
func (m *Match) Round() int {
	return m.round
}

// AircraftCount returns the number of aircraft in the match
func (m *Match) AircraftCount() int {
	return len(m.aircraft)
}

// Aircraft returns a snapshot of aircraft i
func (m *Match) Aircraft(i int) AircraftState {
	return m.aircraft[i].Snapshot()
}

// Snapshots returns a snapshot of every aircraft, indexed by ID
func (m *Match) Snapshots() []AircraftState {
	out := make([]AircraftState, len(m.aircraft))
	for i, a := range m.aircraft {
		out[i] = a.Snapshot()
	}
	return out
}

// Projectiles returns every live projectile
func (m *Match) Projectiles() []Projectile {
	var out []Projectile
	for _, ps := range m.projectiles {
		out = append(out, ps.Projectiles()...)
	}
	return out
}

// Trails returns every live boost trail particle
func (m *Match) Trails() []TrailParticle {
	var out []TrailParticle
	for _, t := range m.trails {
		out = append(out, t.Particles()...)
	}
	return out
}

// Terrain returns the shared heightfield
func (m *Match) Terrain() *HeightField {
	return m.terrain
}

// Config returns the tuning the match was created with
func (m *Match) Config() Config {
	return m.config
}

// PollInputs asks each provider for its aircraft's controls. The opponent
// handed to provider i is the closest other living aircraft.
func (m *Match) PollInputs(providers []InputProvider) []ControlInput {
	inputs := make([]ControlInput, len(m.aircraft))
	for i, a := range m.aircraft {
		if i >= len(providers) || providers[i] == nil {
			continue
		}
		inputs[i] = providers[i].Input(a.Snapshot(), m.opponentOf(i))
	}
	return inputs
}

func (m *Match) opponentOf(i int) AircraftState {
	self := m.aircraft[i]
	var best *Aircraft
	bestDist := math.Inf(1)
	for j, other := range m.aircraft {
		if j == i {
			continue
		}
		d := self.Position.Distance(other.Position)
		// Prefer living opponents over wrecks
		switch {
		case best == nil,
			other.IsAlive && !best.IsAlive,
			other.IsAlive == best.IsAlive && d < bestDist:
			best, bestDist = other, d
		}
	}
	if best == nil {
		return AircraftState{ID: -1}
	}
	return best.Snapshot()
}
