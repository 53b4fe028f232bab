package cellular

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// neighbourTolerance widens the neighbour pre-check so rounding never skips
// a cell that could hold a closer point.
const neighbourTolerance = 0.001

// Result is the outcome of a Voronoi query.
type Result struct {
	Shortest float64
	Next     float64
	Nearest  mgl64.Vec2
}

// BorderValue returns Shortest/Next: 0 at a feature point, approaching 1 on
// the boundary between two cells. A zero Next reports 1.
func (r Result) BorderValue() float64 {
	if r.Next <= 0 || math.IsInf(r.Next, 1) || math.IsNaN(r.Next) {
		return 1
	}
	v := r.Shortest / r.Next
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

// InteriorValue returns 1 - BorderValue.
func (r Result) InteriorValue() float64 {
	return 1 - r.BorderValue()
}

type cellKey struct {
	x, z int
}

// Field answers Voronoi queries over an infinite plane tiled by unit cells.
// Each cell carries its own subset of the pool, computed once and cached.
// A Field is safe for concurrent use.
type Field struct {
	pool   *Pool
	subset int
	cells  sync.Map // cellKey -> []mgl64.Vec2
}

// NewField binds a pool to the subset size from cfg. A subset size outside
// [2, pool.Len()] is clamped.
func NewField(pool *Pool, cfg Config) *Field {
	subset := cfg.SubsetSize
	if subset > pool.Len() {
		subset = pool.Len()
	}
	if subset < 2 {
		subset = min(2, pool.Len())
	}
	return &Field{pool: pool, subset: subset}
}

func (f *Field) Pool() *Pool { return f.pool }

// CellSubset returns the pool points assigned to cell (cx, cz), shifted into
// that cell. The returned slice is shared and must not be modified.
func (f *Field) CellSubset(cx, cz int) []mgl64.Vec2 {
	key := cellKey{cx, cz}
	if cached, ok := f.cells.Load(key); ok {
		return cached.([]mgl64.Vec2)
	}
	// Concurrent callers may both compute the subset; the values are equal
	// and LoadOrStore keeps whichever landed first.
	actual, _ := f.cells.LoadOrStore(key, f.computeSubset(cx, cz))
	return actual.([]mgl64.Vec2)
}

// computeSubset picks f.subset distinct pool indices by walking an unused
// flag array with skip counts from a generator seeded by the cell
// coordinates. The seed mixing cx + cz*cx*cz collides for some pairs (every
// cell on the cx == 0 column shares seed 0); it is kept so existing seeds
// produce the same terrain.
func (f *Field) computeSubset(cx, cz int) []mgl64.Vec2 {
	seed := int64(cx) + int64(cz)*int64(cx)*int64(cz)
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|1))

	n := f.pool.Len()
	used := make([]bool, n)
	out := make([]mgl64.Vec2, 0, f.subset)
	offset := mgl64.Vec2{float64(cx), float64(cz)}

	cursor := 0
	for picked := range f.subset {
		skip := r.IntN(n - picked)
		for {
			if !used[cursor] {
				if skip == 0 {
					break
				}
				skip--
			}
			cursor = (cursor + 1) % n
		}
		used[cursor] = true
		out = append(out, f.pool.Point(cursor).Add(offset))
	}
	return out
}

// Cached reports how many cell subsets have been memoised.
func (f *Field) Cached() int {
	count := 0
	f.cells.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Query returns the nearest and second nearest feature distances at (x, y).
// Neighbouring cells are visited only when the distance to their region is
// below Next plus a small tolerance; no skipped cell could change the result.
func (f *Field) Query(x, y float64) Result {
	return f.query(x, y, false)
}

// QueryAll is Query without the neighbour pre-check.
func (f *Field) QueryAll(x, y float64) Result {
	return f.query(x, y, true)
}

func (f *Field) query(x, y float64, all bool) Result {
	cx := int(math.Floor(x))
	cz := int(math.Floor(y))
	fx := x - float64(cx)
	fy := y - float64(cz)
	at := mgl64.Vec2{x, y}

	res := Result{Shortest: math.Inf(1), Next: math.Inf(1)}
	res.evaluate(at, f.CellSubset(cx, cz))

	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if !all {
				bx := edgeDistance(fx, dx)
				bz := edgeDistance(fy, dz)
				if math.Sqrt(bx*bx+bz*bz) >= res.Next+neighbourTolerance {
					continue
				}
			}
			res.evaluate(at, f.CellSubset(cx+dx, cz+dz))
		}
	}
	return res
}

// edgeDistance is the distance from fractional coordinate frac to the
// neighbouring cell in direction dir along one axis.
func edgeDistance(frac float64, dir int) float64 {
	switch dir {
	case -1:
		return frac
	case 1:
		return 1 - frac
	default:
		return 0
	}
}

func (r *Result) evaluate(at mgl64.Vec2, points []mgl64.Vec2) {
	for _, p := range points {
		d := p.Sub(at).Len()
		if d < r.Shortest {
			r.Next = r.Shortest
			r.Shortest = d
			r.Nearest = p
		} else if d < r.Next {
			r.Next = d
		}
	}
}
