package surface

import (
	"errors"
	"fmt"

	"voxelterrain/internal/material"
)

// ErrInvalidPainter wraps every error reported by Painter.Validate.
var ErrInvalidPainter = errors.New("surface: invalid painter")

type Kind uint8

const (
	KindGeneric Kind = iota + 1
	KindDesert
	KindJungle
	KindMesa
	KindSavanna
	KindTaiga
	KindMushroom
	KindIcePlains
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindDesert:
		return "desert"
	case KindJungle:
		return "jungle"
	case KindMesa:
		return "mesa"
	case KindSavanna:
		return "savanna"
	case KindTaiga:
		return "taiga"
	case KindMushroom:
		return "mushroom"
	case KindIcePlains:
		return "ice-plains"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Painter describes how one biome dresses its columns. Values are built by
// the variant constructors and never mutated afterwards.
type Painter struct {
	Kind Kind

	Top         material.ID
	Filler      material.ID
	CliffStone  material.ID
	ShadowStone material.ID
	Cobble      material.ID
	// Depth is the deepest filler voxel below the surface, inclusive.
	Depth int

	CliffLow   float64
	CliffSteep float64

	// Mix patches replace the top material where the mix noise sampled at
	// (blockX/MixWidth, blockZ/MixWidth) exceeds MixHeight; MixChance > 1
	// thins them to 1 in MixChance.
	Mix       material.ID
	MixWidth  float64
	MixHeight float64
	MixChance int
	MixOctave int

	// Extra fills ExtraDepth voxels directly below the filler band.
	Extra      material.ID
	ExtraDepth int

	// Bands replace filler and cliff stone by y mod len(Bands). Below
	// BandStart the surface keeps Top.
	Bands     []material.ID
	BandStart int

	// Surface voxels at or above SnowLine become Snow. Zero disables it.
	SnowLine int
	Snow     material.ID

	// Freeze turns surface water into ice even outside snowy biomes.
	Freeze bool
}

type cliffMode uint8

const (
	cliffNone cliffMode = iota
	cliffLow
	cliffSteep
)

func (p *Painter) cliffMode(signal float64) cliffMode {
	switch {
	case signal > p.CliffSteep:
		return cliffSteep
	case signal > p.CliffLow:
		return cliffLow
	default:
		return cliffNone
	}
}

// Paint scans col from the top of the world down, rewriting raw stone by
// its depth below the last air or water voxel. Water at or above sea level
// freezes in snowy biomes.
func (p *Painter) Paint(col *Column) {
	chunk := col.Chunk
	if chunk == nil {
		return
	}
	x, z := col.X, col.Z
	seaLevel := chunk.SeaLevel()
	freeze := p.Freeze || col.traits().Snowy
	mode := p.cliffMode(col.Cliff())
	mixed := p.mixed(col)

	depth := -1
	for y := chunk.Height() - 1; y >= 0; y-- {
		switch chunk.MaterialAt(x, y, z) {
		case material.Air:
			depth = -1
		case material.Water:
			depth = -1
			if freeze && y >= seaLevel {
				chunk.SetMaterial(x, y, z, material.Ice)
			}
		case material.Stone:
			depth++
			if id, ok := p.layer(col, mode, mixed, depth, y, seaLevel); ok {
				chunk.SetMaterial(x, y, z, id)
			}
		}
	}
}

// layer picks the material for a stone voxel at the given depth. ok is
// false when the voxel stays stone.
func (p *Painter) layer(col *Column, mode cliffMode, mixed bool, depth, y, seaLevel int) (material.ID, bool) {
	switch mode {
	case cliffSteep:
		if depth <= p.Depth {
			return p.ShadowStone, true
		}
	case cliffLow:
		if depth <= 1 {
			if col.chance(3) {
				return p.Cobble, true
			}
			return p.cliffStone(y), true
		}
		if depth <= p.Depth {
			return p.cliffStone(y), true
		}
	default:
		if depth == 0 {
			return p.surface(col, mixed, y, seaLevel), true
		}
		if depth <= p.Depth {
			return p.filler(y), true
		}
	}
	if p.ExtraDepth > 0 && depth > p.Depth && depth <= p.Depth+p.ExtraDepth {
		return p.Extra, true
	}
	return 0, false
}

func (p *Painter) surface(col *Column, mixed bool, y, seaLevel int) material.ID {
	if y < seaLevel-1 {
		return p.filler(y)
	}
	if p.SnowLine > 0 && y >= p.SnowLine {
		return p.Snow
	}
	if mixed && col.chance(p.MixChance) {
		return p.Mix
	}
	if len(p.Bands) > 0 && y >= p.BandStart {
		return p.band(y)
	}
	return p.Top
}

func (p *Painter) filler(y int) material.ID {
	if len(p.Bands) > 0 {
		return p.band(y)
	}
	return p.Filler
}

func (p *Painter) cliffStone(y int) material.ID {
	if len(p.Bands) > 0 {
		return p.band(y)
	}
	return p.CliffStone
}

func (p *Painter) band(y int) material.ID {
	n := len(p.Bands)
	return p.Bands[((y%n)+n)%n]
}

// mixed samples the mix noise once per column.
func (p *Painter) mixed(col *Column) bool {
	if p.Mix == material.Air || p.MixWidth <= 0 || col.Noise == nil {
		return false
	}
	v := col.Noise.Sample(p.MixOctave, float64(col.BlockX)/p.MixWidth, float64(col.BlockZ)/p.MixWidth)
	return v > p.MixHeight
}

// Validate rejects painters that would place unknown materials or index an
// empty band table.
func (p *Painter) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: missing painter", ErrInvalidPainter)
	}
	if p.Kind < KindGeneric || p.Kind > KindIcePlains {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidPainter, p.Kind)
	}
	slots := []struct {
		name string
		id   material.ID
	}{
		{"top", p.Top},
		{"filler", p.Filler},
		{"cliff stone", p.CliffStone},
		{"shadow stone", p.ShadowStone},
		{"cobble", p.Cobble},
	}
	for _, slot := range slots {
		if !slot.id.Solid() {
			return fmt.Errorf("%w: %s: %s material %s is not solid", ErrInvalidPainter, p.Kind, slot.name, slot.id)
		}
	}
	if p.Depth < 0 {
		return fmt.Errorf("%w: %s: depth %d is negative", ErrInvalidPainter, p.Kind, p.Depth)
	}
	if p.CliffLow < 0 || p.CliffSteep < p.CliffLow {
		return fmt.Errorf("%w: %s: cliff thresholds low=%v steep=%v", ErrInvalidPainter, p.Kind, p.CliffLow, p.CliffSteep)
	}
	if p.Mix != material.Air {
		if !p.Mix.Solid() {
			return fmt.Errorf("%w: %s: mix material %s is not solid", ErrInvalidPainter, p.Kind, p.Mix)
		}
		if !(p.MixWidth > 0) {
			return fmt.Errorf("%w: %s: mix width %v must be positive", ErrInvalidPainter, p.Kind, p.MixWidth)
		}
	}
	if p.ExtraDepth < 0 || (p.ExtraDepth > 0 && !p.Extra.Solid()) {
		return fmt.Errorf("%w: %s: extra band of %d voxels needs a solid material", ErrInvalidPainter, p.Kind, p.ExtraDepth)
	}
	for i, id := range p.Bands {
		if !id.Solid() {
			return fmt.Errorf("%w: %s: band %d material %s is not solid", ErrInvalidPainter, p.Kind, i, id)
		}
	}
	if p.SnowLine < 0 || (p.SnowLine > 0 && !p.Snow.Solid()) {
		return fmt.Errorf("%w: %s: snow line %d needs a solid snow material", ErrInvalidPainter, p.Kind, p.SnowLine)
	}
	return nil
}
