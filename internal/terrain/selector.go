package terrain

import (
	"errors"
	"math"

	"voxelterrain/internal/biome"
	"voxelterrain/internal/noise"
)

const (
	// Continent values below oceanLevel are ocean; the band up to
	// oceanLevel+beachWidth becomes the edge biome.
	oceanLevel = -0.25
	beachWidth = 0.035

	octaveContinent   = 3
	octaveTemperature = 4
	octaveRainfall    = 5

	continentStretch = 2.5
	climateOffset    = 1024.0
)

// Selector maps block columns to biomes using continent and climate noise.
type Selector struct {
	noise  noise.Source
	scale  float64
	ocean  *biome.Descriptor
	edge   *biome.Descriptor
	inland []*biome.Descriptor
}

func NewSelector(src noise.Source, registry *biome.Registry, scale float64) (*Selector, error) {
	s := &Selector{noise: src, scale: scale}
	for _, d := range registry.Biomes() {
		switch {
		case d.Has(biome.Oceanic):
			if s.ocean == nil {
				s.ocean = d
			}
		case d.Has(biome.Edge):
			if s.edge == nil {
				s.edge = d
			}
		case d.Weight > 0:
			s.inland = append(s.inland, d)
		}
	}
	if len(s.inland) == 0 {
		return nil, errors.New("terrain: registry has no selectable inland biome")
	}
	return s, nil
}

// Climate returns the temperature and rainfall at a block column on the
// scales biome descriptors use.
func (s *Selector) Climate(x, z int) (temperature, rainfall float64) {
	fx, fz := float64(x)/s.scale, float64(z)/s.scale
	t := s.noise.Sample(octaveTemperature, fx+climateOffset, fz)
	r := s.noise.Sample(octaveRainfall, fx, fz-climateOffset)
	return 0.5 + 1.5*t, 0.5 + 0.5*r
}

// Continent is the land mask at a block column in [-1, 1].
func (s *Selector) Continent(x, z int) float64 {
	w := s.scale * continentStretch
	return s.noise.Sample(octaveContinent, float64(x)/w, float64(z)/w)
}

// At returns the biome for block column (x, z).
func (s *Selector) At(x, z int) *biome.Descriptor {
	c := s.Continent(x, z)
	if s.ocean != nil && c < oceanLevel {
		return s.ocean
	}
	if s.ocean != nil && s.edge != nil && c < oceanLevel+beachWidth {
		return s.edge
	}

	t, r := s.Climate(x, z)
	best := s.inland[0]
	bestScore := math.Inf(1)
	for _, d := range s.inland {
		score := math.Hypot(t-d.Temperature, r-d.Rainfall) / d.Weight
		if score < bestScore {
			best, bestScore = d, score
		}
	}
	return best
}
