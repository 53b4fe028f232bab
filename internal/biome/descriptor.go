// Package biome describes biomes and keeps the immutable registry the
// terrain generator selects them from.
package biome

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"voxelterrain/internal/height"
	"voxelterrain/internal/surface"
)

// ErrInvalidBiome wraps every descriptor or registry configuration error.
var ErrInvalidBiome = errors.New("biome: invalid configuration")

type Flags uint8

const (
	AllowRivers Flags = 1 << iota
	AllowLakes
	// Edge biomes are placed between other biomes and never selected by
	// climate on their own.
	Edge
	// SurfaceBlendIn lets neighbouring elevations average into this biome.
	SurfaceBlendIn
	// SurfaceBlendOut lets this biome's elevation contribute to neighbours.
	SurfaceBlendOut
	Snowy
	// Oceanic biomes are chosen by the continent mask instead of climate.
	Oceanic
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{AllowRivers, "rivers"},
	{AllowLakes, "lakes"},
	{Edge, "edge"},
	{SurfaceBlendIn, "blend-in"},
	{SurfaceBlendOut, "blend-out"},
	{Snowy, "snowy"},
	{Oceanic, "oceanic"},
}

func (f Flags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Descriptor is the static definition of one biome. Elevations are absolute
// block heights.
type Descriptor struct {
	ID          int
	Name        string
	Temperature float64
	Rainfall    float64

	BaseHeight   float64
	MinElevation float64
	MaxElevation float64

	// Weight scales how readily the selector picks the biome; 0 disables
	// climate selection.
	Weight float64
	Flags  Flags

	Height  *height.Effect
	Surface *surface.Painter
}

func (d *Descriptor) Has(f Flags) bool {
	return d.Flags&f == f
}

// Elevation evaluates the height tree at (x, z) on top of the base height
// and clamps the result into the biome's range. NaN falls back to the base.
func (d *Descriptor) Elevation(src *height.Sources, x, z float64) float64 {
	h := d.BaseHeight + d.Height.Added(src, x, z)
	if math.IsNaN(h) {
		h = d.BaseHeight
	}
	return math.Max(d.MinElevation, math.Min(d.MaxElevation, h))
}

// Traits returns the per-column properties the surface painter consults.
func (d *Descriptor) Traits() surface.Traits {
	return surface.Traits{Biome: d.ID, Snowy: d.Has(Snowy)}
}

func (d *Descriptor) Validate() error {
	if d.ID < 0 {
		return fmt.Errorf("%w: biome %q has negative id %d", ErrInvalidBiome, d.Name, d.ID)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: biome %d has no name", ErrInvalidBiome, d.ID)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"temperature", d.Temperature},
		{"rainfall", d.Rainfall},
		{"base height", d.BaseHeight},
		{"min elevation", d.MinElevation},
		{"max elevation", d.MaxElevation},
		{"weight", d.Weight},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: biome %s: %s %v is not finite", ErrInvalidBiome, d.Name, v.name, v.value)
		}
	}
	if d.MinElevation > d.MaxElevation {
		return fmt.Errorf("%w: biome %s: elevation range [%v, %v] is inverted", ErrInvalidBiome, d.Name, d.MinElevation, d.MaxElevation)
	}
	if d.Weight < 0 {
		return fmt.Errorf("%w: biome %s: weight %v is negative", ErrInvalidBiome, d.Name, d.Weight)
	}
	if err := d.Height.Validate(); err != nil {
		return fmt.Errorf("%w: biome %s: %w", ErrInvalidBiome, d.Name, err)
	}
	if err := d.Surface.Validate(); err != nil {
		return fmt.Errorf("%w: biome %s: %w", ErrInvalidBiome, d.Name, err)
	}
	return nil
}
