// Package height defines the composable height effects that turn world
// coordinates into an elevation contribution.
package height

import (
	"errors"
	"fmt"
	"math"

	"voxelterrain/internal/cellular"
	"voxelterrain/internal/noise"
)

// ErrInvalidEffect wraps every error reported by Effect.Validate.
var ErrInvalidEffect = errors.New("height: invalid effect")

const maxDepth = 64

// Sources is the shared, read-only generator state effects sample from.
type Sources struct {
	Noise noise.Source
	Field *cellular.Field
}

type Kind uint8

const (
	KindGround Kind = iota + 1
	KindJitter
	KindSpike
	KindSummed
	KindVoronoiBorder
	KindConstant
	KindScaled
)

func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindJitter:
		return "jitter"
	case KindSpike:
		return "spike"
	case KindSummed:
		return "summed"
	case KindVoronoiBorder:
		return "voronoi-border"
	case KindConstant:
		return "constant"
	case KindScaled:
		return "scaled"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Effect is one node of an immutable height effect tree. Which fields are
// meaningful depends on Kind; use the constructors rather than literals.
type Effect struct {
	Kind       Kind
	Amplitude  float64 // ground, jitter
	Wavelength float64 // jitter, spike, voronoi-border
	Threshold  float64 // spike
	Power      float64 // spike
	Octave     int     // spike
	Value      float64 // constant value, scaled factor
	A, B       *Effect
}

// Ground scales the layered ground noise by amplitude.
func Ground(amplitude float64) *Effect {
	return &Effect{Kind: KindGround, Amplitude: amplitude}
}

// Jitter evaluates child at coordinates displaced by noise sampled at
// (x/wavelength, y/wavelength) and rounded to whole blocks.
func Jitter(amplitude, wavelength float64, child *Effect) *Effect {
	return &Effect{Kind: KindJitter, Amplitude: amplitude, Wavelength: wavelength, A: child}
}

// Spike multiplies child by a hill factor derived from rectified noise.
func Spike(wavelength, minimumThreshold float64, octave int, power float64, child *Effect) *Effect {
	return &Effect{
		Kind:       KindSpike,
		Wavelength: wavelength,
		Threshold:  minimumThreshold,
		Octave:     octave,
		Power:      power,
		A:          child,
	}
}

func Summed(a, b *Effect) *Effect {
	return &Effect{Kind: KindSummed, A: a, B: b}
}

// VoronoiBorder returns 1 - InteriorValue of the cellular field sampled at
// (x/pointWavelength, y/pointWavelength). That is Shortest/Next, which is
// low near feature points and reaches 1 on cell borders.
func VoronoiBorder(pointWavelength float64) *Effect {
	return &Effect{Kind: KindVoronoiBorder, Wavelength: pointWavelength}
}

func Constant(value float64) *Effect {
	return &Effect{Kind: KindConstant, Value: value}
}

func Scaled(factor float64, child *Effect) *Effect {
	return &Effect{Kind: KindScaled, Value: factor, A: child}
}

// Added evaluates the tree at (x, y).
func (e *Effect) Added(src *Sources, x, y float64) float64 {
	switch e.Kind {
	case KindGround:
		return src.Noise.Ground(x, y) * e.Amplitude
	case KindJitter:
		dx, dy := src.Noise.Displacement(x/e.Wavelength, y/e.Wavelength)
		return e.A.Added(src, math.Round(x+dx*e.Amplitude), math.Round(y+dy*e.Amplitude))
	case KindSpike:
		n := math.Abs(src.Noise.Sample(e.Octave, x/e.Wavelength, y/e.Wavelength))
		hill := BlendedHillHeight(n, e.Threshold)
		return math.Pow(hill, e.Power) * e.A.Added(src, x, y)
	case KindSummed:
		return e.A.Added(src, x, y) + e.B.Added(src, x, y)
	case KindVoronoiBorder:
		return 1 - src.Field.Query(x/e.Wavelength, y/e.Wavelength).InteriorValue()
	case KindConstant:
		return e.Value
	case KindScaled:
		return e.Value * e.A.Added(src, x, y)
	default:
		return 0
	}
}

// Validate reports parameters that would make evaluation divide by zero,
// produce NaN, or dereference a missing child.
func (e *Effect) Validate() error {
	return e.validate("root", 0)
}

func (e *Effect) validate(path string, depth int) error {
	if e == nil {
		return fmt.Errorf("%w: %s: missing effect", ErrInvalidEffect, path)
	}
	if depth > maxDepth {
		return fmt.Errorf("%w: %s: tree deeper than %d", ErrInvalidEffect, path, maxDepth)
	}
	path = path + "/" + e.Kind.String()

	switch e.Kind {
	case KindGround:
		if !finite(e.Amplitude) {
			return fmt.Errorf("%w: %s: amplitude %v is not finite", ErrInvalidEffect, path, e.Amplitude)
		}
	case KindJitter:
		if !finite(e.Amplitude) {
			return fmt.Errorf("%w: %s: amplitude %v is not finite", ErrInvalidEffect, path, e.Amplitude)
		}
		if err := checkWavelength(path, e.Wavelength); err != nil {
			return err
		}
		return e.A.validate(path, depth+1)
	case KindSpike:
		if err := checkWavelength(path, e.Wavelength); err != nil {
			return err
		}
		if !(e.Threshold >= 0 && e.Threshold < 1) {
			return fmt.Errorf("%w: %s: threshold %v outside [0, 1)", ErrInvalidEffect, path, e.Threshold)
		}
		if !(e.Power > 0) || math.IsInf(e.Power, 1) {
			return fmt.Errorf("%w: %s: power %v must be positive", ErrInvalidEffect, path, e.Power)
		}
		if e.Octave < 0 {
			return fmt.Errorf("%w: %s: octave %d is negative", ErrInvalidEffect, path, e.Octave)
		}
		return e.A.validate(path, depth+1)
	case KindSummed:
		if err := e.A.validate(path, depth+1); err != nil {
			return err
		}
		return e.B.validate(path, depth+1)
	case KindVoronoiBorder:
		return checkWavelength(path, e.Wavelength)
	case KindConstant:
		if !finite(e.Value) {
			return fmt.Errorf("%w: %s: value %v is not finite", ErrInvalidEffect, path, e.Value)
		}
	case KindScaled:
		if !finite(e.Value) {
			return fmt.Errorf("%w: %s: factor %v is not finite", ErrInvalidEffect, path, e.Value)
		}
		return e.A.validate(path, depth+1)
	default:
		return fmt.Errorf("%w: %s: unknown kind", ErrInvalidEffect, path)
	}
	return nil
}

// UsesField reports whether any node samples the cellular field.
func (e *Effect) UsesField() bool {
	if e == nil {
		return false
	}
	if e.Kind == KindVoronoiBorder {
		return true
	}
	return e.A.UsesField() || e.B.UsesField()
}

func checkWavelength(path string, w float64) error {
	if !(w > 0) || math.IsInf(w, 1) {
		return fmt.Errorf("%w: %s: wavelength %v must be positive", ErrInvalidEffect, path, w)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
