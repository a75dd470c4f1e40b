// Package terrain writes environmental property layers onto grid spaces
// using layered simplex noise: elevation, moisture, and temperature fields
// plus a derived biome classification. Layers are deterministic from the
// configured seed.
package terrain

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/cellspace/internal/space"
)

// Property names written onto each cell.
const (
	PropElevation   = "elevation"
	PropMoisture    = "moisture"
	PropTemperature = "temperature"
	PropBiome       = "biome"
)

// Config holds terrain generation parameters.
type Config struct {
	Seed        int64   // Noise seed; independent of the space's seed.
	Frequency   float64 // Base noise frequency per grid unit.
	SeaLevel    float64 // Elevation threshold for water (0.0–1.0).
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0).
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		Seed:        42,
		Frequency:   0.08,
		SeaLevel:    0.25,
		MountainLvl: 0.72,
	}
}

// Generate writes elevation, moisture, temperature, and biome properties
// onto every cell of the grid.
func Generate(g *space.Grid, cfg Config) {
	// Three noise generators for independent layers.
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	moistNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	tempNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	height := float64(g.Height())

	for cell := range g.AllCells().All() {
		coord := cell.Coordinate()
		x := float64(coord.X)
		y := float64(coord.Y)

		elev := octaveNoise(elevNoise, x, y, 4, cfg.Frequency, 0.5)
		moist := octaveNoise(moistNoise, x, y, 3, cfg.Frequency*0.75, 0.5)
		temp := octaveNoise(tempNoise, x, y, 3, cfg.Frequency*0.6, 0.5)

		// Temperature falls with elevation and distance from the
		// horizontal midline.
		latitude := 0.0
		if height > 1 {
			latitude = math.Abs(y-height/2) / (height / 2)
		}
		temp = temp*0.6 + (1.0-latitude)*0.3 + (1.0-elev)*0.1

		cell.SetProperty(PropElevation, elev)
		cell.SetProperty(PropMoisture, moist)
		cell.SetProperty(PropTemperature, temp)
		cell.SetProperty(PropBiome, deriveBiome(elev, moist, temp, cfg))
	}
}

// deriveBiome classifies a cell from its environmental parameters.
func deriveBiome(elev, moist, temp float64, cfg Config) string {
	switch {
	case elev < cfg.SeaLevel:
		return "water"
	case elev > cfg.MountainLvl:
		return "mountain"
	case temp < 0.25:
		return "tundra"
	case moist < 0.25 && temp > 0.5:
		return "desert"
	case moist > 0.7 && elev < 0.45:
		return "swamp"
	case moist > 0.45:
		return "forest"
	default:
		return "plains"
	}
}

// BiomeCounts summarizes the biome distribution over a generated grid.
func BiomeCounts(g *space.Grid) map[string]int {
	counts := make(map[string]int)
	for cell := range g.AllCells().All() {
		if b, ok := cell.Property(PropBiome); ok {
			counts[b.(string)]++
		}
	}
	return counts
}

// octaveNoise layers multiple noise frequencies into fractal terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
