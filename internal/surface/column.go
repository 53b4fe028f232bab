// Package surface rewrites raw stone/water/air columns into finished terrain
// materials: topsoil, filler, cliff rock, and per-biome extras.
package surface

import (
	"math/rand/v2"

	"voxelterrain/internal/material"
	"voxelterrain/internal/noise"
)

// Chunk is the voxel accessor a painter mutates. Coordinates are local to
// the chunk: x and z in [0, size), y in [0, Height()).
type Chunk interface {
	MaterialAt(x, y, z int) material.ID
	SetMaterial(x, y, z int, id material.ID)
	SeaLevel() int
	Height() int
}

// Traits are the per-column biome properties the painter needs.
type Traits struct {
	Biome int
	Snowy bool
}

// Column carries everything one painting pass over a single column reads.
type Column struct {
	Chunk Chunk
	// X and Z are chunk-local, BlockX and BlockZ are world coordinates.
	X, Z           int
	BlockX, BlockZ int
	// Size is the chunk width; Heights and Biomes are packed by x*Size+z.
	Size    int
	Heights []float64
	Biomes  []Traits
	River   float64
	Rand    *rand.Rand
	Noise   noise.Source
}

func (c *Column) index(x, z int) int {
	return x*c.Size + z
}

func (c *Column) traits() Traits {
	i := c.index(c.X, c.Z)
	if i < 0 || i >= len(c.Biomes) {
		return Traits{}
	}
	return c.Biomes[i]
}

// Cliff is the column's cliff signal attenuated by river strength.
func (c *Column) Cliff() float64 {
	river := c.River
	if river < 0 {
		river = 0
	}
	if river > 1 {
		river = 1
	}
	return CalcCliff(c.X, c.Z, c.Heights, c.Size) * (1 - river)
}

// chance draws true with probability 1/n from the column stream. A column
// without a stream never draws true.
func (c *Column) chance(n int) bool {
	if n <= 1 {
		return true
	}
	if c.Rand == nil {
		return false
	}
	return c.Rand.IntN(n) == 0
}

// ColumnRand returns the PCG stream used for one column's scattering.
func ColumnRand(seed int64, blockX, blockZ int) *rand.Rand {
	hi := uint64(seed) ^ uint64(int64(blockX))*0x9E3779B97F4A7C15
	lo := uint64(int64(blockZ))*0xC2B2AE3D27D4EB4F ^ 0x165667B19E3779F9
	return rand.New(rand.NewPCG(hi, lo))
}
