package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatTerrain builds a terrain with no noise, so every sample is height
func flatTerrain(size, height float64) *HeightField {
	return GenerateTerrain(TerrainConfig{
		Size:         size,
		Resolution:   10,
		Octaves:      0,
		HeightOffset: height,
	})
}

func TestGenerateTerrain_SampleCount(t *testing.T) {
	field := GenerateTerrain(DefaultTerrainConfig())

	require.Equal(t, 100, field.Resolution())
	assert.Len(t, field.heights, 101*101)
	assert.InDelta(t, 20.0, field.CellSize(), 1e-12)
	assert.InDelta(t, 2000.0, field.Size(), 1e-12)
}

func TestHeightAt_CornersReturnStoredSamples(t *testing.T) {
	field := GenerateTerrain(DefaultTerrainConfig())

	tests := []struct {
		name   string
		x, z   float64
		ix, iz int
	}{
		{"near corner", -1000, -1000, 0, 0},
		{"far corner", 1000, 1000, 100, 100},
		{"far x", 1000, -1000, 100, 0},
		{"far z", -1000, 1000, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, field.Sample(tt.ix, tt.iz), field.HeightAt(tt.x, tt.z), 1e-9)
		})
	}
}

func TestHeightAt_CornersWithUnevenCells(t *testing.T) {
	for _, grid := range []struct {
		size float64
		res  int
	}{
		{1, 49},
		{2000, 30},
		{333.3, 7},
		{2000, 100},
	} {
		cfg := DefaultTerrainConfig()
		cfg.Size = grid.size
		cfg.Resolution = grid.res
		field := GenerateTerrain(cfg)
		half := grid.size / 2
		n := grid.res

		corners := []struct {
			x, z   float64
			ix, iz int
		}{
			{-half, -half, 0, 0},
			{half, -half, n, 0},
			{-half, half, 0, n},
			{half, half, n, n},
		}
		for _, c := range corners {
			assert.Equal(t, field.Sample(c.ix, c.iz), field.HeightAt(c.x, c.z),
				"size=%v res=%d sample (%d,%d)", grid.size, grid.res, c.ix, c.iz)
		}

		// Every stored sample is reachable through its own world position
		for iz := 0; iz <= n; iz++ {
			for ix := 0; ix <= n; ix++ {
				x, z := field.SampleWorldPosition(ix, iz)
				require.Equal(t, field.Sample(ix, iz), field.HeightAt(x, z),
					"size=%v res=%d sample (%d,%d)", grid.size, grid.res, ix, iz)
			}
		}
	}
}

func TestHeightAt_OutsideReturnsSeaLevel(t *testing.T) {
	cfg := DefaultTerrainConfig()
	cfg.SeaLevel = -3
	field := GenerateTerrain(cfg)

	for _, p := range [][2]float64{
		{1000.5, 0},
		{0, -1000.5},
		{-5000, 5000},
		{math.NaN(), 0},
	} {
		assert.Equal(t, -3.0, field.HeightAt(p[0], p[1]), "point %v", p)
	}
	assert.Equal(t, -3.0, field.Sample(101, 0))
	assert.Equal(t, -3.0, field.Sample(0, -1))
}

func TestHeightAt_Bilinear(t *testing.T) {
	field := GenerateTerrain(DefaultTerrainConfig())

	// On a grid point
	x, z := field.SampleWorldPosition(37, 52)
	assert.InDelta(t, field.Sample(37, 52), field.HeightAt(x, z), 1e-9)

	// Halfway along a grid line
	mid := (field.Sample(37, 52) + field.Sample(38, 52)) / 2
	assert.InDelta(t, mid, field.HeightAt(x+field.CellSize()/2, z), 1e-9)

	// Cell centre is the mean of the four corners
	centre := (field.Sample(37, 52) + field.Sample(38, 52) + field.Sample(37, 53) + field.Sample(38, 53)) / 4
	assert.InDelta(t, centre, field.HeightAt(x+field.CellSize()/2, z+field.CellSize()/2), 1e-9)
}

func TestGenerateTerrain_Seeds(t *testing.T) {
	cfg := DefaultTerrainConfig()
	a := GenerateTerrain(cfg)
	b := GenerateTerrain(cfg)
	assert.Equal(t, a.heights, b.heights, "same seed is deterministic")

	cfg.Seed = 42
	c := GenerateTerrain(cfg)
	d := GenerateTerrain(cfg)
	assert.Equal(t, c.heights, d.heights)
	assert.NotEqual(t, a.heights, c.heights, "seed shifts the pattern")
}

func TestGenerateTerrain_MinMax(t *testing.T) {
	field := GenerateTerrain(DefaultTerrainConfig())
	lo, hi := field.MinMax()
	require.Less(t, lo, hi)

	for iz := 0; iz <= field.Resolution(); iz++ {
		for ix := 0; ix <= field.Resolution(); ix++ {
			h := field.Sample(ix, iz)
			require.GreaterOrEqual(t, h, lo)
			require.LessOrEqual(t, h, hi)
		}
	}

	// Five octaves of 150 halving bound the heights
	bound := 150.0 * (1 + 0.5 + 0.25 + 0.125 + 0.0625)
	assert.GreaterOrEqual(t, lo, 10-bound)
	assert.LessOrEqual(t, hi, 10+bound)
}

func TestGenerateTerrain_DegenerateConfig(t *testing.T) {
	field := GenerateTerrain(TerrainConfig{Size: -5, Resolution: 0})

	assert.Equal(t, 1, field.Resolution())
	assert.False(t, math.IsNaN(field.HeightAt(0, 0)))
}

func TestValueNoise_Range(t *testing.T) {
	for x := -20.0; x < 20; x += 0.37 {
		for z := -20.0; z < 20; z += 0.41 {
			n := ValueNoise(x, z)
			require.GreaterOrEqual(t, n, -1.0)
			require.LessOrEqual(t, n, 1.0)
		}
	}
}

func TestSurfaceHeightAt_NeverBelowSea(t *testing.T) {
	underwater := flatTerrain(1000, -30)

	assert.InDelta(t, -30.0, underwater.HeightAt(0, 0), 1e-9)
	assert.Equal(t, 0.0, underwater.SurfaceHeightAt(0, 0))

	island := flatTerrain(1000, 50)
	assert.InDelta(t, 50.0, island.SurfaceHeightAt(100, -100), 1e-9)
}
