// Package noise provides the seeded continuous noise used by height effects,
// biome selection and surface mixing.
package noise

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"voxelterrain/internal/config"
)

// ErrUnknownBackend is returned by New for backends other than simplex or perlin.
var ErrUnknownBackend = errors.New("noise: unknown backend")

// Source is a deterministic octave-indexed noise function. Every method
// returns values in [-1, 1] and is safe for concurrent use.
type Source interface {
	// Sample evaluates the given octave layer at (x, y).
	Sample(octave int, x, y float64) float64
	// Sample3 evaluates the given octave layer at (x, y, z).
	Sample3(octave int, x, y, z float64) float64
	// Displacement returns a 2D offset vector used to jitter coordinates.
	Displacement(x, y float64) (dx, dy float64)
	// Ground returns the layered base noise used by ground height effects.
	Ground(x, y float64) float64
}

// New builds the backend named in cfg for the world seed.
func New(cfg config.NoiseConfig, seed int64) (Source, error) {
	octaves := cfg.Octaves
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	switch strings.ToLower(cfg.Backend) {
	case "", BackendSimplex:
		return NewSimplex(seed, octaves), nil
	case BackendPerlin:
		return NewPerlin(seed, octaves), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

const (
	BackendSimplex = "simplex"
	BackendPerlin  = "perlin"

	// DefaultOctaves is the number of independent layers a source carries.
	DefaultOctaves = 6
)

// ground layers three octaves at shrinking wavelengths; the weights sum to
// 0.875 so the result stays inside [-1, 1].
func ground(s Source, x, y float64) float64 {
	return s.Sample(0, x/49, y/49)*0.5 +
		s.Sample(1, x/23, y/23)*0.25 +
		s.Sample(2, x/11, y/11)*0.125
}

func layer(octave, layers int) int {
	if octave < 0 {
		octave = -octave
	}
	return octave % layers
}

func bounded(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
