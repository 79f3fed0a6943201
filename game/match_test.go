package game

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMatch starts a match over open sea and returns it in PhasePlaying
func newTestMatch(t *testing.T, terrain *HeightField) (*Match, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	m := NewMatch(DefaultConfig(), WithTerrain(terrain), WithLogger(logger))
	require.Equal(t, PhaseStartMenu, m.Phase())

	m.Update(0.016, nil, true)
	require.Equal(t, PhasePlaying, m.Phase())
	m.Update(0, nil, false)
	return m, &buf
}

func TestMatch_StartNeedsConfirmEdge(t *testing.T) {
	m := NewMatch(DefaultConfig(), WithTerrain(flatTerrain(2000, -50)))

	m.Update(0.016, nil, false)
	assert.Equal(t, PhaseStartMenu, m.Phase())

	before := m.Aircraft(0)
	m.Tick(0.5, nil)
	assert.Equal(t, before, m.Aircraft(0), "no simulation in the menu")

	m.Update(0.016, nil, true)
	assert.Equal(t, PhasePlaying, m.Phase())
}

func TestMatch_SpawnsFaceEachOther(t *testing.T) {
	m := NewMatch(DefaultConfig(), WithTerrain(flatTerrain(2000, -50)))

	require.Equal(t, 2, m.AircraftCount())
	a, b := m.Aircraft(0), m.Aircraft(1)
	assert.Equal(t, Vec3{0, 200, -400}, a.Position)
	assert.Equal(t, Vec3{0, 200, 400}, b.Position)
	assert.Equal(t, 0.0, a.Yaw)
	assert.Equal(t, 180.0, b.Yaw)
}

func TestMatch_SpawnClearsHighTerrain(t *testing.T) {
	m := NewMatch(DefaultConfig(), WithTerrain(flatTerrain(2000, 500)))

	assert.InDelta(t, 530.0, m.Aircraft(0).Position.Y, 1e-9)
	assert.InDelta(t, 530.0, m.Aircraft(1).Position.Y, 1e-9)
}

func TestMatch_TwoHitsOnLowHealthEndsRound(t *testing.T) {
	m, logs := newTestMatch(t, flatTerrain(2000, -50))
	victim := m.aircraft[0]
	victim.Health = 6

	for i := 0; i < 2; i++ {
		m.projectiles[1].projectiles = append(m.projectiles[1].projectiles, Projectile{
			Position: victim.Position,
			Radius:   0.5,
			Lifetime: 3,
			Owner:    1,
		})
	}

	m.Update(0.01, nil, false)

	state := m.Aircraft(0)
	assert.Zero(t, state.Health, "clamped, not -4")
	assert.False(t, state.IsAlive)
	assert.Equal(t, 8.0, state.FireRate)
	assert.Equal(t, PhaseGameOver, m.Phase())
	assert.Empty(t, m.Projectiles())

	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, 1, outcome.Winner)
	assert.False(t, outcome.Draw)
	assert.Equal(t, []int{1}, outcome.Survivors)

	assert.Equal(t, 1, strings.Count(logs.String(), "Aircraft destroyed"), "death signalled once")
	assert.Contains(t, logs.String(), `"cause":"projectile"`)
	assert.Equal(t, 2, strings.Count(logs.String(), "Projectile hit"))
}

func TestMatch_ShotDownWhileBoostingStopsBoosting(t *testing.T) {
	m, _ := newTestMatch(t, flatTerrain(2000, -50))
	victim := m.aircraft[0]
	victim.Health = 3
	victim.Booster.IsBoosting = true
	victim.Speed = 60

	m.projectiles[1].projectiles = append(m.projectiles[1].projectiles, Projectile{
		Position: victim.Position,
		Radius:   0.5,
		Lifetime: 3,
		Owner:    1,
	})
	m.Update(0.01, []ControlInput{{BoostHeld: true}}, false)

	require.Equal(t, PhaseGameOver, m.Phase())
	state := m.Aircraft(0)
	assert.False(t, state.IsAlive)
	assert.False(t, state.Booster.IsBoosting)
	assert.Equal(t, state.BaseSpeed, state.Speed)
}

func TestMatch_ZeroDeltaDoesNotSimulate(t *testing.T) {
	m, _ := newTestMatch(t, flatTerrain(2000, 50))
	a := m.aircraft[0]
	a.Position.Y = 20
	before := m.Aircraft(0)

	// Confirm pressed mid-round arrives with no elapsed time
	m.Update(0, []ControlInput{{FireHeld: true}}, true)

	assert.Equal(t, before, m.Aircraft(0), "no terrain damage or damping on an empty tick")
	assert.Empty(t, m.Projectiles())
	assert.Zero(t, m.Elapsed())
	assert.Equal(t, PhasePlaying, m.Phase())
}

func TestMatch_RestartResetsRound(t *testing.T) {
	terrain := flatTerrain(2000, -50)
	m, _ := newTestMatch(t, terrain)

	// Fly around, burn fuel and shoot for a while
	inputs := []ControlInput{
		{RollAxis: 1, BoostHeld: true, FireHeld: true},
		{PitchAxis: -1, ThrottleAxis: 1, BoostHeld: true},
	}
	for i := 0; i < 60; i++ {
		m.Update(1.0/60, inputs, false)
	}
	require.NotEmpty(t, m.Projectiles())
	require.NotEmpty(t, m.Trails())

	m.aircraft[1].ApplyDamage(1000)
	m.Update(1.0/60, inputs, false)
	require.Equal(t, PhaseGameOver, m.Phase())

	m.Update(1.0/60, nil, true)

	assert.Equal(t, PhasePlaying, m.Phase())
	assert.Equal(t, 2, m.Round())
	assert.Zero(t, m.Elapsed())
	assert.Empty(t, m.Projectiles())
	assert.Empty(t, m.Trails())
	assert.Same(t, terrain, m.Terrain(), "terrain is reused")
	_, ok := m.Outcome()
	assert.False(t, ok)

	for i := 0; i < m.AircraftCount(); i++ {
		a := m.Aircraft(i)
		assert.Equal(t, 100.0, a.Health)
		assert.True(t, a.IsAlive)
		assert.Equal(t, 25.0, a.Speed)
		assert.Equal(t, 25.0, a.BaseSpeed)
		assert.Equal(t, 3.0, a.Booster.FuelSeconds)
		assert.False(t, a.Booster.Exhausted)
		assert.Zero(t, a.FireCooldown)
		assert.Zero(t, a.Roll)
		assert.Equal(t, m.spawns[i].Position, a.Position)
	}
}

func TestMatch_RestartNeedsFreshPress(t *testing.T) {
	m, _ := newTestMatch(t, flatTerrain(2000, -50))
	m.aircraft[0].ApplyDamage(1000)

	// Confirm already held when the round ends
	m.Update(0.016, nil, true)
	require.Equal(t, PhaseGameOver, m.Phase())
	m.Update(0.016, nil, true)
	assert.Equal(t, PhaseGameOver, m.Phase(), "holding does not restart")

	m.Update(0.016, nil, false)
	m.Update(0.016, nil, true)
	assert.Equal(t, PhasePlaying, m.Phase())
}

func TestMatch_SimultaneousTerrainDeathsDraw(t *testing.T) {
	m, logs := newTestMatch(t, flatTerrain(2000, 50))
	for _, a := range m.aircraft {
		a.Health = 0.05
		a.Position.Y = 10
	}

	m.Tick(0.01, nil)

	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.True(t, outcome.Draw)
	assert.Equal(t, -1, outcome.Winner)
	assert.Equal(t, 2, strings.Count(logs.String(), `"cause":"terrain"`))
}

func TestMatch_ScrapingTerrainDrains(t *testing.T) {
	m, _ := newTestMatch(t, flatTerrain(2000, 50))
	a := m.aircraft[0]

	const ticks = 10
	for i := 0; i < ticks; i++ {
		a.Position.Y = 20
		m.Tick(0.01, nil)
		require.GreaterOrEqual(t, a.Position.Y, 50.0)
	}

	assert.InDelta(t, 100-ticks*0.1, m.Aircraft(0).Health, 1e-9)
	assert.Equal(t, PhasePlaying, m.Phase())
}

func TestMatch_ProjectilesSkipTheirOwner(t *testing.T) {
	m, _ := newTestMatch(t, flatTerrain(2000, -50))
	shooter := m.aircraft[0]
	m.projectiles[0].projectiles = append(m.projectiles[0].projectiles, Projectile{
		Position: shooter.Position,
		Radius:   0.5,
		Lifetime: 3,
	})

	m.Tick(0.01, nil)

	assert.Equal(t, 100.0, m.Aircraft(0).Health)
	assert.Len(t, m.Projectiles(), 1)
}

func TestMatch_PollInputs(t *testing.T) {
	m := NewMatch(DefaultConfig(), WithTerrain(flatTerrain(2000, -50)))
	seen := map[int]int{}
	record := InputFunc(func(self, opponent AircraftState) ControlInput {
		seen[self.ID] = opponent.ID
		return ControlInput{FireHeld: true}
	})

	inputs := m.PollInputs([]InputProvider{record, record})
	assert.Equal(t, map[int]int{0: 1, 1: 0}, seen)
	assert.True(t, inputs[1].FireHeld)

	inputs = m.PollInputs([]InputProvider{record})
	assert.Len(t, inputs, 2)
	assert.Equal(t, ControlInput{}, inputs[1], "missing providers are neutral")
}

func TestMatch_AutopilotDuelStaysFinite(t *testing.T) {
	cfg := DefaultConfig()
	m := NewMatch(cfg)
	providers := []InputProvider{
		NewAutopilot(cfg.Autopilot, m.Terrain()),
		NewAutopilot(cfg.Autopilot, m.Terrain()),
	}

	m.Update(0, nil, true)
	for i := 0; i < 60*60 && m.Phase() == PhasePlaying; i++ {
		m.Update(1.0/60, m.PollInputs(providers), false)

		for _, a := range m.Snapshots() {
			require.True(t, a.Position.IsFinite())
			require.GreaterOrEqual(t, a.Yaw, 0.0)
			require.Less(t, a.Yaw, 360.0)
			require.GreaterOrEqual(t, a.Health, 0.0)
			require.LessOrEqual(t, a.Health, 100.0)
		}
	}
	assert.Greater(t, m.Elapsed(), 0.0)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "start_menu", PhaseStartMenu.String())
	assert.Equal(t, "playing", PhasePlaying.String())
	assert.Equal(t, "game_over", PhaseGameOver.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
