package terrain

import (
	"math"

	"voxelterrain/internal/biome"
)

const (
	octaveRiver = 2
	octaveLake  = 1

	lakeThreshold = 0.55
	lakeMaxDepth  = 6.0
	riverBedDrop  = 2
)

// columnShape is the phase one result for one column.
type columnShape struct {
	biome     *biome.Descriptor
	elevation float64
	river     float64
	waterTop  int
}

// elevation evaluates the biome at (x, z) and averages it with its
// neighbours over the blend kernel. A neighbour contributes its own height
// tree only when the centre blends in and the neighbour blends out.
func (g *Generator) elevation(center *biome.Descriptor, x, z int) float64 {
	fx, fz := float64(x), float64(z)
	own := center.Elevation(g.sources, fx, fz)
	radius := g.cfg.Terrain.BlendRadius
	if radius <= 0 || !center.Has(biome.SurfaceBlendIn) {
		return own
	}

	cache := map[int]float64{center.ID: own}
	total, weight := 0.0, 0.0
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			nb := g.selector.At(x+dx, z+dz)
			if nb.ID != center.ID && !nb.Has(biome.SurfaceBlendOut) {
				nb = center
			}
			h, ok := cache[nb.ID]
			if !ok {
				h = nb.Elevation(g.sources, fx, fz)
				cache[nb.ID] = h
			}
			total += h
			weight++
		}
	}
	return total / weight
}

// riverStrength is 1 on a river's centre line and falls to 0 at the
// configured width.
func (g *Generator) riverStrength(d *biome.Descriptor, x, z int) float64 {
	width := g.cfg.Terrain.RiverWidth
	if width <= 0 || !d.Has(biome.AllowRivers) {
		return 0
	}
	w := g.cfg.Terrain.RiverWavelength
	n := math.Abs(g.sources.Noise.Sample(octaveRiver, float64(x)/w, float64(z)/w))
	if n >= width {
		return 0
	}
	return 1 - n/width
}

// lakeDepth is how far a lake basin sinks the column below its surface.
func (g *Generator) lakeDepth(d *biome.Descriptor, x, z int) float64 {
	if !d.Has(biome.AllowLakes) {
		return 0
	}
	w := g.cfg.Terrain.LakeWavelength
	n := g.sources.Noise.Sample(octaveLake, float64(x)/w, float64(z)/w)
	if n <= lakeThreshold {
		return 0
	}
	return (n - lakeThreshold) / (1 - lakeThreshold) * lakeMaxDepth
}

// shape computes the biome, final elevation and water level of a column.
func (g *Generator) shape(x, z int) columnShape {
	seaLevel := g.cfg.World.SeaLevel
	d := g.selector.At(x, z)
	h := g.elevation(d, x, z)
	if math.IsNaN(h) {
		h = d.BaseHeight
	}

	river := g.riverStrength(d, x, z)
	bed := float64(seaLevel - riverBedDrop)
	if river > 0 && h > bed {
		h += (bed - h) * river
	}

	waterTop := seaLevel
	if depth := g.lakeDepth(d, x, z); depth > 0 && river == 0 {
		surface := math.Floor(h) - 1
		if surface > float64(seaLevel) {
			waterTop = int(surface)
		}
		h -= depth
	}

	maxY := float64(g.cfg.World.Height - 1)
	h = math.Max(1, math.Min(maxY, h))
	return columnShape{biome: d, elevation: h, river: river, waterTop: waterTop}
}
