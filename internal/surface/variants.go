package surface

import "voxelterrain/internal/material"

const (
	defaultDepth      = 4
	defaultCliffLow   = 3
	defaultCliffSteep = 7
)

func base(kind Kind, top, filler material.ID) *Painter {
	return &Painter{
		Kind:        kind,
		Top:         top,
		Filler:      filler,
		CliffStone:  material.CliffStone,
		ShadowStone: material.ShadowStone,
		Cobble:      material.Cobblestone,
		Depth:       defaultDepth,
		CliffLow:    defaultCliffLow,
		CliffSteep:  defaultCliffSteep,
		Snow:        material.Snow,
	}
}

// Generic paints top over filler with the shared cliff rules.
func Generic(top, filler material.ID) *Painter {
	return base(KindGeneric, top, filler)
}

// Desert lays sand over a sandstone band.
func Desert() *Painter {
	p := base(KindDesert, material.Sand, material.Sand)
	p.CliffStone = material.Sandstone
	p.Cobble = material.Sandstone
	p.Depth = 3
	p.Extra = material.Sandstone
	p.ExtraDepth = 4
	return p
}

// Jungle scatters podzol patches through the grass.
func Jungle() *Painter {
	p := base(KindJungle, material.Grass, material.Dirt)
	p.Cobble = material.MossyCobblestone
	p.Mix = material.Podzol
	p.MixWidth = 24
	p.MixHeight = 0.35
	p.MixChance = 1
	p.MixOctave = 3
	return p
}

// Savanna mixes coarse dirt into dry grass on a steeper cliff profile.
func Savanna() *Painter {
	p := base(KindSavanna, material.Grass, material.Dirt)
	p.Mix = material.CoarseDirt
	p.MixWidth = 16
	p.MixHeight = 0.2
	p.MixChance = 3
	p.MixOctave = 4
	p.CliffLow = 2
	p.CliffSteep = 5
	return p
}

// Taiga mixes podzol under the canopy and snows over high ground.
func Taiga(snowLine int) *Painter {
	p := base(KindTaiga, material.Grass, material.Dirt)
	p.Cobble = material.MossyCobblestone
	p.Mix = material.Podzol
	p.MixWidth = 32
	p.MixHeight = 0.1
	p.MixChance = 2
	p.MixOctave = 5
	p.SnowLine = snowLine
	return p
}

// Mesa stacks coloured clay bands under red sand.
func Mesa(bandStart int) *Painter {
	p := base(KindMesa, material.RedSand, material.HardenedClay)
	p.Depth = 8
	p.CliffLow = 2
	p.CliffSteep = 12
	p.Bands = MesaBands()
	p.BandStart = bandStart
	return p
}

// MesaBands is the repeating clay palette used by Mesa.
func MesaBands() []material.ID {
	return []material.ID{
		material.HardenedClay,
		material.ClayOrange,
		material.ClayOrange,
		material.HardenedClay,
		material.ClayYellow,
		material.HardenedClay,
		material.ClayBrown,
		material.ClayWhite,
		material.HardenedClay,
		material.ClayRed,
		material.ClayLightGray,
		material.HardenedClay,
	}
}

func Mushroom() *Painter {
	return base(KindMushroom, material.Mycelium, material.Dirt)
}

// IcePlains covers the ground in snow and freezes surface water.
func IcePlains() *Painter {
	p := base(KindIcePlains, material.Snow, material.Dirt)
	p.Cobble = material.PackedIce
	p.Freeze = true
	return p
}
