package biome

import (
	"fmt"
	"slices"
	"strings"
)

// Registry holds validated biome descriptors. It is immutable after
// construction and safe for concurrent reads.
type Registry struct {
	ordered []*Descriptor
	byID    map[int]*Descriptor
	byName  map[string]*Descriptor
}

// NewRegistry validates and copies descs. Duplicate ids or names fail the
// whole registry.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	if len(descs) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one biome", ErrInvalidBiome)
	}
	r := &Registry{
		ordered: make([]*Descriptor, 0, len(descs)),
		byID:    make(map[int]*Descriptor, len(descs)),
		byName:  make(map[string]*Descriptor, len(descs)),
	}
	for i := range descs {
		d := descs[i]
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if prev, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: id %d used by %s and %s", ErrInvalidBiome, d.ID, prev.Name, d.Name)
		}
		key := nameKey(d.Name)
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate biome name %q", ErrInvalidBiome, d.Name)
		}
		r.byID[d.ID] = &d
		r.byName[key] = &d
		r.ordered = append(r.ordered, &d)
	}
	slices.SortFunc(r.ordered, func(a, b *Descriptor) int { return a.ID - b.ID })
	return r, nil
}

// Biome returns the descriptor registered under id.
func (r *Registry) Biome(id int) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ByName looks a biome up by name, ignoring case.
func (r *Registry) ByName(name string) (*Descriptor, bool) {
	d, ok := r.byName[nameKey(name)]
	return d, ok
}

// Biomes returns every descriptor in id order.
func (r *Registry) Biomes() []*Descriptor {
	return slices.Clone(r.ordered)
}

func (r *Registry) Len() int { return len(r.ordered) }

// WithWeights returns a new registry whose rarity weights are overridden by
// name. The receiver is left untouched.
func (r *Registry) WithWeights(weights map[string]float64) (*Registry, error) {
	descs := make([]Descriptor, len(r.ordered))
	for i, d := range r.ordered {
		descs[i] = *d
	}
	for name, weight := range weights {
		target, ok := r.byName[nameKey(name)]
		if !ok {
			return nil, fmt.Errorf("%w: weight for unknown biome %q", ErrInvalidBiome, name)
		}
		for i := range descs {
			if descs[i].ID == target.ID {
				descs[i].Weight = weight
			}
		}
	}
	return NewRegistry(descs...)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
