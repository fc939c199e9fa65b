package motion

// GridLayer produces the Cartesian product of per-axis linearly spaced
// samples: a regularly spaced grid of candidate points, independent of
// the space's own sample lattice.
//
// Registry tag: "grid".
type GridLayer struct {
	space  *Space
	limits [][2]float64 // one pair per axis after broadcasting
	steps  []int        // one count per axis after broadcasting
	points [][]float64  // lazy, cached
}

func init() {
	RegisterLayer("grid", func(space *Space, cfg map[string]interface{}) (Layer, error) {
		limits, ok := cfgFloatPairs(cfg["limits"])
		if !ok {
			return nil, validationErrorf("limits", "grid layer requires a [lo, hi] pair or one pair per axis")
		}
		steps, ok := cfgInts(cfg["steps"])
		if !ok {
			return nil, validationErrorf("steps", "grid layer requires a step count or one per axis")
		}
		return NewGridLayer(space, limits, steps)
	})
}

// NewGridLayer validates limits and steps against the space
// dimensionality, broadcasting single values across all axes. An axis
// whose limits are equal collapses to a single sample.
func NewGridLayer(space *Space, limits [][2]float64, steps []int) (*GridLayer, error) {
	ndims := space.NDims()

	switch len(limits) {
	case ndims:
	case 1:
		pair := limits[0]
		limits = make([][2]float64, ndims)
		for i := range limits {
			limits[i] = pair
		}
	default:
		return nil, validationErrorf("limits", "need 1 or %d limit pairs, got %d", ndims, len(limits))
	}

	switch len(steps) {
	case ndims:
	case 1:
		n := steps[0]
		steps = make([]int, ndims)
		for i := range steps {
			steps[i] = n
		}
	default:
		return nil, validationErrorf("steps", "need 1 or %d step counts, got %d", ndims, len(steps))
	}

	for i := range steps {
		if limits[i][0] == limits[i][1] {
			// Fixed along this axis.
			steps[i] = 1
		}
		if steps[i] < 1 {
			return nil, validationErrorf("steps", "axis %d needs at least one step, got %d", i, steps[i])
		}
	}

	return &GridLayer{
		space:  space,
		limits: limits,
		steps:  steps,
	}, nil
}

// Type implements Layer.
func (l *GridLayer) Type() string { return "grid" }

// Shape implements Layer.
func (l *GridLayer) Shape() []int { return append([]int(nil), l.steps...) }

// Config implements Layer.
func (l *GridLayer) Config() map[string]interface{} {
	limits := make([]interface{}, len(l.limits))
	for i, pair := range l.limits {
		limits[i] = []float64{pair[0], pair[1]}
	}
	steps := make([]int, len(l.steps))
	copy(steps, l.steps)
	return map[string]interface{}{
		"type":   "grid",
		"limits": limits,
		"steps":  steps,
	}
}

// Points implements Layer. Points are produced in row-major order with
// the last axis varying fastest, matching the index order of the batch
// shape.
func (l *GridLayer) Points() [][]float64 {
	if l.points != nil {
		return l.points
	}

	axes := make([][]float64, len(l.steps))
	total := 1
	for i, n := range l.steps {
		axes[i] = linspace(l.limits[i][0], l.limits[i][1], n)
		total *= n
	}

	points := make([][]float64, 0, total)
	idx := make([]int, len(axes))
	for {
		p := make([]float64, len(axes))
		for i, j := range idx {
			p[i] = axes[i][j]
		}
		points = append(points, p)

		// Advance the index tuple, last axis fastest.
		k := len(idx) - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < l.steps[k] {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			break
		}
	}

	l.points = points
	return points
}
