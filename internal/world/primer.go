package world

import (
	"fmt"

	"voxelterrain/internal/material"
)

// Primer is the dense voxel buffer a chunk is generated into before its
// columns are flushed to storage. Distinct columns may be written from
// different goroutines.
type Primer struct {
	dim      Dimensions
	seaLevel int
	voxels   []material.ID
}

func NewPrimer(dim Dimensions, seaLevel int) *Primer {
	return &Primer{
		dim:      dim,
		seaLevel: seaLevel,
		voxels:   make([]material.ID, dim.Width*dim.Depth*dim.Height),
	}
}

func (p *Primer) index(x, y, z int) (int, bool) {
	if x < 0 || z < 0 || y < 0 || x >= p.dim.Width || z >= p.dim.Depth || y >= p.dim.Height {
		return 0, false
	}
	return (x*p.dim.Depth+z)*p.dim.Height + y, true
}

func (p *Primer) MaterialAt(x, y, z int) material.ID {
	i, ok := p.index(x, y, z)
	if !ok {
		return material.Air
	}
	return p.voxels[i]
}

func (p *Primer) SetMaterial(x, y, z int, id material.ID) {
	if i, ok := p.index(x, y, z); ok {
		p.voxels[i] = id
	}
}

func (p *Primer) SeaLevel() int { return p.seaLevel }

func (p *Primer) Height() int { return p.dim.Height }

// Column returns the live column slice at (x, z), bottom first.
func (p *Primer) Column(x, z int) []material.ID {
	start, ok := p.index(x, 0, z)
	if !ok {
		return nil
	}
	return p.voxels[start : start+p.dim.Height]
}

// FillRaw writes the unpainted column: stone up to top, water up to
// waterTop, air above.
func (p *Primer) FillRaw(x, z, top, waterTop int) {
	column := p.Column(x, z)
	for y := range column {
		switch {
		case y <= top:
			column[y] = material.Stone
		case y <= waterTop:
			column[y] = material.Water
		default:
			column[y] = material.Air
		}
	}
}

// Flush copies every column into chunk.
func (p *Primer) Flush(chunk *Chunk) error {
	if chunk.Dimensions() != p.dim {
		return fmt.Errorf("primer dimensions %+v do not match chunk %v %+v", p.dim, chunk.Key, chunk.Dimensions())
	}
	for x := range p.dim.Width {
		for z := range p.dim.Depth {
			if !chunk.SetColumn(x, z, p.Column(x, z)) {
				return fmt.Errorf("store column (%d,%d) of chunk %v", x, z, chunk.Key)
			}
		}
	}
	return nil
}
