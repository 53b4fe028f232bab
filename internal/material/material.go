// Package material enumerates the terrain materials the generator places.
//
// IDs are opaque to the height and surface code; the palette only exists so
// previews, dumps and configuration can refer to materials by name.
package material

import "strings"

// ID identifies a terrain material.
type ID uint16

const (
	Air ID = iota
	Stone
	Water
	Grass
	Dirt
	CoarseDirt
	Podzol
	Mycelium
	Sand
	RedSand
	Sandstone
	Gravel
	Cobblestone
	MossyCobblestone
	HardenedClay
	ClayWhite
	ClayOrange
	ClayYellow
	ClayBrown
	ClayRed
	ClayLightGray
	Snow
	Ice
	PackedIce
	Bedrock
	CliffStone
	ShadowStone

	count
)

// Definition names a material and gives it a display colour.
type Definition struct {
	ID    ID
	Name  string
	Color string
}

var palette = [count]Definition{
	{ID: Air, Name: "air", Color: "#000000"},
	{ID: Stone, Name: "stone", Color: "#7d7d7d"},
	{ID: Water, Name: "water", Color: "#2f5fbf"},
	{ID: Grass, Name: "grass", Color: "#5d9b3d"},
	{ID: Dirt, Name: "dirt", Color: "#8b5a2b"},
	{ID: CoarseDirt, Name: "coarse_dirt", Color: "#77553b"},
	{ID: Podzol, Name: "podzol", Color: "#5a3f1c"},
	{ID: Mycelium, Name: "mycelium", Color: "#6f6265"},
	{ID: Sand, Name: "sand", Color: "#c2b280"},
	{ID: RedSand, Name: "red_sand", Color: "#a9581e"},
	{ID: Sandstone, Name: "sandstone", Color: "#d2b48c"},
	{ID: Gravel, Name: "gravel", Color: "#857f7b"},
	{ID: Cobblestone, Name: "cobblestone", Color: "#8a8a8a"},
	{ID: MossyCobblestone, Name: "mossy_cobblestone", Color: "#6e7f5c"},
	{ID: HardenedClay, Name: "hardened_clay", Color: "#965d43"},
	{ID: ClayWhite, Name: "clay_white", Color: "#d1b2a1"},
	{ID: ClayOrange, Name: "clay_orange", Color: "#a25426"},
	{ID: ClayYellow, Name: "clay_yellow", Color: "#ba8523"},
	{ID: ClayBrown, Name: "clay_brown", Color: "#4d3323"},
	{ID: ClayRed, Name: "clay_red", Color: "#8f3d2e"},
	{ID: ClayLightGray, Name: "clay_light_gray", Color: "#876a61"},
	{ID: Snow, Name: "snow", Color: "#f0fbfb"},
	{ID: Ice, Name: "ice", Color: "#91b4fe"},
	{ID: PackedIce, Name: "packed_ice", Color: "#7da3eb"},
	{ID: Bedrock, Name: "bedrock", Color: "#2b2b2b"},
	{ID: CliffStone, Name: "cliff_stone", Color: "#9a9590"},
	{ID: ShadowStone, Name: "shadow_stone", Color: "#4a4850"},
}

// Palette returns every known material definition in id order.
func Palette() []Definition {
	out := make([]Definition, len(palette))
	copy(out, palette[:])
	return out
}

// Valid reports whether id is a known material.
func (id ID) Valid() bool {
	return id < count
}

// String returns the material name, or "unknown" for ids outside the palette.
func (id ID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return palette[id].Name
}

// Color returns the display colour as a #rrggbb string.
func (id ID) Color() string {
	if !id.Valid() {
		return ""
	}
	return palette[id].Color
}

// Solid reports whether the material occupies its voxel for surface scans.
func (id ID) Solid() bool {
	return id != Air && id != Water && id.Valid()
}

// Lookup resolves a material by name, ignoring case.
func Lookup(name string) (ID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, def := range palette {
		if def.Name == name {
			return def.ID, true
		}
	}
	return 0, false
}
