package biome

import (
	"voxelterrain/internal/height"
	"voxelterrain/internal/material"
	"voxelterrain/internal/surface"
)

// Stable biome ids of the default catalogue.
const (
	IDOcean          = 0
	IDPlains         = 1
	IDDesert         = 2
	IDExtremeHills   = 3
	IDForest         = 4
	IDTaiga          = 5
	IDSwampland      = 6
	IDIcePlains      = 12
	IDMushroomIsland = 14
	IDBeach          = 16
	IDJungle         = 21
	IDSavanna        = 35
	IDMesa           = 37
)

// DefaultCatalogue returns the built-in biomes with elevations placed around
// seaLevel.
func DefaultCatalogue(seaLevel int) []Descriptor {
	sea := float64(seaLevel)
	blend := SurfaceBlendIn | SurfaceBlendOut

	return []Descriptor{
		{
			ID: IDOcean, Name: "Ocean",
			Temperature: 0.5, Rainfall: 0.5,
			BaseHeight: sea - 18, MinElevation: sea - 40, MaxElevation: sea - 3,
			Weight: 1,
			Flags:  Oceanic | blend,
			Height: height.Summed(
				height.Ground(10),
				height.Scaled(-4, height.VoronoiBorder(96)),
			),
			Surface: surface.Generic(material.Sand, material.Gravel),
		},
		{
			ID: IDPlains, Name: "Plains",
			Temperature: 0.8, Rainfall: 0.4,
			BaseHeight: sea + 4, MinElevation: sea - 6, MaxElevation: sea + 24,
			Weight: 1.2,
			Flags:  AllowRivers | AllowLakes | blend,
			Height: height.Summed(
				height.Ground(5),
				height.Spike(90, 0.45, 3, 1.5, height.Constant(8)),
			),
			Surface: surface.Generic(material.Grass, material.Dirt),
		},
		{
			ID: IDDesert, Name: "Desert",
			Temperature: 2.0, Rainfall: 0,
			BaseHeight: sea + 5, MinElevation: sea - 4, MaxElevation: sea + 30,
			Weight: 1,
			Flags:  AllowRivers | blend,
			Height: height.Summed(
				height.Ground(4),
				height.Jitter(3, 20, height.Scaled(7, height.VoronoiBorder(48))),
			),
			Surface: surface.Desert(),
		},
		{
			ID: IDExtremeHills, Name: "ExtremeHills",
			Temperature: 0.2, Rainfall: 0.3,
			BaseHeight: sea + 18, MinElevation: sea, MaxElevation: sea + 110,
			Weight: 0.8,
			Flags:  AllowRivers | SurfaceBlendOut,
			Height: height.Summed(
				height.Ground(14),
				height.Jitter(6, 32, height.Spike(70, 0.12, 2, 1.7, height.Constant(70))),
			),
			Surface: snowCapped(surface.Generic(material.Grass, material.Dirt), seaLevel+60),
		},
		{
			ID: IDForest, Name: "Forest",
			Temperature: 0.7, Rainfall: 0.8,
			BaseHeight: sea + 6, MinElevation: sea - 4, MaxElevation: sea + 40,
			Weight: 1,
			Flags:  AllowRivers | AllowLakes | blend,
			Height: height.Summed(
				height.Ground(9),
				height.Spike(60, 0.3, 3, 1.2, height.Constant(10)),
			),
			Surface: surface.Generic(material.Grass, material.Dirt),
		},
		{
			ID: IDTaiga, Name: "Taiga",
			Temperature: -0.5, Rainfall: 0.4,
			BaseHeight: sea + 8, MinElevation: sea - 4, MaxElevation: sea + 60,
			Weight: 1,
			Flags:  AllowRivers | AllowLakes | Snowy | blend,
			Height: height.Summed(
				height.Ground(10),
				height.Spike(56, 0.25, 4, 1.4, height.Constant(18)),
			),
			Surface: surface.Taiga(seaLevel + 40),
		},
		{
			ID: IDSwampland, Name: "Swampland",
			Temperature: 0.8, Rainfall: 0.9,
			BaseHeight: sea, MinElevation: sea - 3, MaxElevation: sea + 6,
			Weight: 0.7,
			Flags:  AllowRivers | AllowLakes | blend,
			Height:  height.Ground(2),
			Surface: surface.Generic(material.Grass, material.Dirt),
		},
		{
			ID: IDIcePlains, Name: "IcePlains",
			Temperature: -1.0, Rainfall: 0.5,
			BaseHeight: sea + 3, MinElevation: sea - 4, MaxElevation: sea + 20,
			Weight: 0.8,
			Flags:  AllowRivers | AllowLakes | Snowy | blend,
			Height: height.Summed(
				height.Ground(4),
				height.Spike(80, 0.5, 2, 2, height.Constant(6)),
			),
			Surface: surface.IcePlains(),
		},
		{
			ID: IDMushroomIsland, Name: "MushroomIsland",
			Temperature: 0.9, Rainfall: 1.0,
			BaseHeight: sea + 5, MinElevation: sea - 2, MaxElevation: sea + 30,
			Weight: 0.1,
			Flags:  SurfaceBlendIn,
			Height: height.Summed(
				height.Ground(6),
				height.Scaled(8, height.VoronoiBorder(40)),
			),
			Surface: surface.Mushroom(),
		},
		{
			ID: IDBeach, Name: "Beach",
			Temperature: 0.8, Rainfall: 0.4,
			BaseHeight: sea + 1, MinElevation: sea - 3, MaxElevation: sea + 4,
			Weight: 0,
			Flags:  Edge | AllowRivers | blend,
			Height:  height.Ground(1.5),
			Surface: surface.Generic(material.Sand, material.Sand),
		},
		{
			ID: IDJungle, Name: "Jungle",
			Temperature: 1.2, Rainfall: 0.95,
			BaseHeight: sea + 6, MinElevation: sea - 4, MaxElevation: sea + 45,
			Weight: 0.9,
			Flags:  AllowRivers | AllowLakes | blend,
			Height: height.Summed(
				height.Ground(8),
				height.Jitter(4, 24, height.Spike(40, 0.2, 5, 1.3, height.Constant(16))),
			),
			Surface: surface.Jungle(),
		},
		{
			ID: IDSavanna, Name: "Savanna",
			Temperature: 1.4, Rainfall: 0.1,
			BaseHeight: sea + 7, MinElevation: sea - 2, MaxElevation: sea + 40,
			Weight: 0.9,
			Flags:  AllowRivers | blend,
			Height: height.Summed(
				height.Ground(5),
				height.Spike(64, 0.55, 1, 1, height.Constant(20)),
			),
			Surface: surface.Savanna(),
		},
		{
			ID: IDMesa, Name: "Mesa",
			Temperature: 1.8, Rainfall: 0.05,
			BaseHeight: sea + 12, MinElevation: sea, MaxElevation: sea + 60,
			Weight: 0.5,
			Flags:  AllowRivers | SurfaceBlendOut,
			Height: height.Summed(
				height.Ground(6),
				height.Spike(50, 0.4, 4, 2, height.Constant(34)),
			),
			Surface: surface.Mesa(seaLevel + 10),
		},
	}
}

// DefaultRegistry builds a registry from DefaultCatalogue.
func DefaultRegistry(seaLevel int) (*Registry, error) {
	return NewRegistry(DefaultCatalogue(seaLevel)...)
}

func snowCapped(p *surface.Painter, line int) *surface.Painter {
	p.SnowLine = line
	return p
}
