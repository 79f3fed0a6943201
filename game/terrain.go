package game

import (
	"math"
	"math/rand/v2"
)

// TerrainConfig controls heightfield generation
type TerrainConfig struct {
	// Size is the side length of the square world region, centered on the origin
	Size float64 `mapstructure:"size"`

	// Resolution is the number of cells per side; samples are (Resolution+1)^2
	Resolution int `mapstructure:"resolution"`

	// Seed 0 keeps the lattice unshifted
	Seed uint64 `mapstructure:"seed"`

	Octaves      int     `mapstructure:"octaves"`
	Amplitude    float64 `mapstructure:"amplitude"`
	Frequency    float64 `mapstructure:"frequency"`
	Persistence  float64 `mapstructure:"persistence"`
	Lacunarity   float64 `mapstructure:"lacunarity"`
	HeightOffset float64 `mapstructure:"height_offset"`

	// SeaLevel is returned outside the grid and is the collision floor
	SeaLevel float64 `mapstructure:"sea_level"`
}

// DefaultTerrainConfig returns the island terrain used by the game
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Size:         2000.0,
		Resolution:   100,
		Seed:         0,
		Octaves:      5,
		Amplitude:    150.0,
		Frequency:    2.5,
		Persistence:  0.5,
		Lacunarity:   2.0,
		HeightOffset: 10.0, // leaves some of the map underwater
		SeaLevel:     0.0,
	}
}

// HeightField is an immutable grid of terrain heights
type HeightField struct {
	heights    []float64
	resolution int
	size       float64
	cellSize   float64
	seaLevel   float64
	minHeight  float64
	maxHeight  float64
}

// GenerateTerrain builds a heightfield from layered value noise
func GenerateTerrain(cfg TerrainConfig) *HeightField {
	res := cfg.Resolution
	if res < 1 {
		res = 1
	}
	size := cfg.Size
	if !(size > 0) {
		size = 1
	}

	var offsetX, offsetZ float64
	if cfg.Seed != 0 {
		rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
		offsetX = math.Floor(rng.Float64() * 4096)
		offsetZ = math.Floor(rng.Float64() * 4096)
	}

	stride := res + 1
	field := &HeightField{
		heights:    make([]float64, stride*stride),
		resolution: res,
		size:       size,
		cellSize:   size / float64(res),
		seaLevel:   cfg.SeaLevel,
		minHeight:  math.Inf(1),
		maxHeight:  math.Inf(-1),
	}

	for iz := 0; iz <= res; iz++ {
		for ix := 0; ix <= res; ix++ {
			u := float64(ix) / float64(res)
			v := float64(iz) / float64(res)

			// Sum the octaves
			height := 0.0
			amplitude := cfg.Amplitude
			frequency := cfg.Frequency
			for octave := 0; octave < cfg.Octaves; octave++ {
				height += ValueNoise(u*frequency+offsetX, v*frequency+offsetZ) * amplitude
				amplitude *= cfg.Persistence
				frequency *= cfg.Lacunarity
			}
			height += cfg.HeightOffset

			field.heights[iz*stride+ix] = height
			field.minHeight = math.Min(field.minHeight, height)
			field.maxHeight = math.Max(field.maxHeight, height)
		}
	}

	return field
}

// ValueNoise returns smoothstep-interpolated lattice noise in [-1, 1]
func ValueNoise(x, z float64) float64 {
	xi := math.Floor(x)
	zi := math.Floor(z)
	sx := smoothStep(x - xi)
	sz := smoothStep(z - zi)

	n00 := latticeHash(xi, zi)
	n10 := latticeHash(xi+1, zi)
	n01 := latticeHash(xi, zi+1)
	n11 := latticeHash(xi+1, zi+1)

	nx0 := Lerp(n00, n10, sx)
	nx1 := Lerp(n01, n11, sx)
	return Lerp(nx0, nx1, sz)*2 - 1
}

// latticeHash is a cheap deterministic hash in [0, 1)
func latticeHash(x, z float64) float64 {
	n := math.Sin(x*12.9898+z*78.233) * 43758.5453
	return n - math.Floor(n)
}

func smoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// HeightAt returns the bilinear terrain height at world (x, z).
// Points outside the grid return sea level. The far edge is inclusive.
func (h *HeightField) HeightAt(x, z float64) float64 {
	half := h.size * 0.5
	res := float64(h.resolution)
	gx := snapGrid((x+half)*res/h.size, res)
	gz := snapGrid((z+half)*res/h.size, res)

	if !(gx >= 0 && gx <= res && gz >= 0 && gz <= res) {
		return h.seaLevel
	}

	x0 := int(math.Floor(gx))
	z0 := int(math.Floor(gz))
	x1 := min(x0+1, h.resolution)
	z1 := min(z0+1, h.resolution)
	fx := gx - float64(x0)
	fz := gz - float64(z0)

	h00 := h.Sample(x0, z0)
	h10 := h.Sample(x1, z0)
	h01 := h.Sample(x0, z1)
	h11 := h.Sample(x1, z1)

	h0 := Lerp(h00, h10, fx)
	h1 := Lerp(h01, h11, fx)
	return Lerp(h0, h1, fz)
}

// gridSnapEpsilon absorbs rounding in the world to grid conversion
const gridSnapEpsilon = 1e-9

// snapGrid pulls grid coordinates that rounded just past an edge or just
// short of a grid line back onto it.
func snapGrid(g, res float64) float64 {
	if nearest := math.Round(g); math.Abs(g-nearest) <= gridSnapEpsilon*math.Max(1, res) {
		return nearest
	}
	return g
}

// SurfaceHeightAt returns the height an aircraft cannot go below: the
// terrain where it rises above the sea, otherwise the sea itself.
func (h *HeightField) SurfaceHeightAt(x, z float64) float64 {
	return math.Max(h.HeightAt(x, z), h.seaLevel)
}

// Sample returns a stored grid sample, or sea level outside the grid
func (h *HeightField) Sample(ix, iz int) float64 {
	if ix < 0 || ix > h.resolution || iz < 0 || iz > h.resolution {
		return h.seaLevel
	}
	return h.heights[iz*(h.resolution+1)+ix]
}

// SampleWorldPosition returns the world (x, z) of grid sample (ix, iz)
func (h *HeightField) SampleWorldPosition(ix, iz int) (float64, float64) {
	half := h.size * 0.5
	res := float64(h.resolution)
	return float64(ix)*h.size/res - half, float64(iz)*h.size/res - half
}

func (h *HeightField) Resolution() int { return h.resolution }

func (h *HeightField) Size() float64 { return h.size }

func (h *HeightField) CellSize() float64 { return h.cellSize }

func (h *HeightField) SeaLevel() float64 { return h.seaLevel }

// MinMax returns the lowest and highest stored samples
func (h *HeightField) MinMax() (float64, float64) {
	return h.minHeight, h.maxHeight
}
