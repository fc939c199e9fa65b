// Package motion implements the motion-list generation engine: a labeled
// coordinate grid over named axes, composable exclusion regions, pluggable
// point layers, and the orchestration that merges them into an ordered
// list of target positions with a reusable inclusion mask.
//
// The engine is single-threaded and synchronous. A MotionList and
// everything it owns are expected to be driven from one logical thread of
// control; callers that share a list across goroutines must serialize
// access themselves.
package motion

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Axis is one labeled dimension of a motion space with a numeric range
// and a sample resolution.
type Axis struct {
	Label string
	Range [2]float64
	Num   int
}

func (a Axis) validate() error {
	if a.Label == "" {
		return validationErrorf("label", "axis label must not be empty")
	}
	if a.Num < 1 {
		return validationErrorf("num", "axis %q needs at least one sample, got %d", a.Label, a.Num)
	}
	if a.Range[0] > a.Range[1] {
		return validationErrorf("range", "axis %q range [%g, %g] is not ordered", a.Label, a.Range[0], a.Range[1])
	}
	return nil
}

// Space is the named, bounded coordinate system a motion system operates
// within. It derives a labeled coordinate grid: one linearly spaced sample
// run per axis, grid dimensionality equal to the axis count. A Space is
// immutable after construction and owned by the MotionList that built it.
type Space struct {
	axes   []Axis
	coords [][]float64 // per-axis sample values, len == Num
}

// spacePresets maps preset names to fixed axis layouts. lapd_xy is the
// standard two-axis probe plane.
var spacePresets = map[string][]Axis{
	"lapd_xy": {
		{Label: "x", Range: [2]float64{-55.0, 55.0}, Num: 221},
		{Label: "y", Range: [2]float64{-55.0, 55.0}, Num: 221},
	},
}

// NewSpace builds a Space from an ordered list of axis definitions.
func NewSpace(axes []Axis) (*Space, error) {
	if len(axes) == 0 {
		return nil, validationErrorf("space", "at least one axis is required")
	}

	seen := make(map[string]bool, len(axes))
	for _, ax := range axes {
		if err := ax.validate(); err != nil {
			return nil, err
		}
		if seen[ax.Label] {
			return nil, validationErrorf("label", "duplicate axis label %q", ax.Label)
		}
		seen[ax.Label] = true
	}

	s := &Space{
		axes:   append([]Axis(nil), axes...),
		coords: make([][]float64, len(axes)),
	}
	for i, ax := range axes {
		s.coords[i] = linspace(ax.Range[0], ax.Range[1], ax.Num)
	}
	return s, nil
}

// NewSpaceFromPreset builds a Space from a named preset layout.
func NewSpaceFromPreset(name string) (*Space, error) {
	axes, ok := spacePresets[name]
	if !ok {
		return nil, validationErrorf("space", "unrecognized space preset %q", name)
	}
	return NewSpace(axes)
}

// NDims returns the dimensionality of the space.
func (s *Space) NDims() int { return len(s.axes) }

// Labels returns the axis labels in axis order.
func (s *Space) Labels() []string {
	labels := make([]string, len(s.axes))
	for i, ax := range s.axes {
		labels[i] = ax.Label
	}
	return labels
}

// Axes returns a copy of the axis definitions.
func (s *Space) Axes() []Axis {
	return append([]Axis(nil), s.axes...)
}

// Shape returns the per-axis sample counts of the coordinate grid.
func (s *Space) Shape() []int {
	shape := make([]int, len(s.axes))
	for i, ax := range s.axes {
		shape[i] = ax.Num
	}
	return shape
}

// AxisCoords returns the sample values along axis i. Callers must not
// modify the returned slice.
func (s *Space) AxisCoords(i int) []float64 { return s.coords[i] }

// Coord maps a grid-index tuple to its coordinate.
func (s *Space) Coord(indices []int) ([]float64, error) {
	if len(indices) != len(s.axes) {
		return nil, &DimensionMismatchError{Want: len(s.axes), Got: len(indices)}
	}
	point := make([]float64, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(s.coords[i]) {
			return nil, validationErrorf("index", "index %d out of range for axis %q (%d samples)", idx, s.axes[i].Label, len(s.coords[i]))
		}
		point[i] = s.coords[i][idx]
	}
	return point, nil
}

// NearestIndex snaps a point to its nearest grid-index tuple along every
// axis. This is a nearest-neighbor snap, not interpolation; points outside
// the axis range clamp to the boundary sample.
func (s *Space) NearestIndex(point []float64) ([]int, error) {
	if len(point) != len(s.axes) {
		return nil, &DimensionMismatchError{Want: len(s.axes), Got: len(point)}
	}
	indices := make([]int, len(point))
	for i, v := range point {
		indices[i] = nearest(s.coords[i], v)
	}
	return indices, nil
}

// nearest returns the index of the sample in coords closest to v.
// coords is sorted ascending and never empty.
func nearest(coords []float64, v float64) int {
	best := 0
	bestDist := math.Abs(coords[0] - v)
	for i := 1; i < len(coords); i++ {
		d := math.Abs(coords[i] - v)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// linspace returns n evenly spaced samples spanning [lo, hi]. A single
// sample collapses to lo.
func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	dst := make([]float64, n)
	floats.Span(dst, lo, hi)
	return dst
}
