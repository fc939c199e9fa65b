package motion

import "math"

// Exclude-region tokens shared by the circular and composite exclusions.
const (
	ExcludeInside  = "inside"
	ExcludeOutside = "outside"
)

// CircularExclusion removes everything inside or outside a circle in a
// two-axis motion space.
//
// Registry tag: "circle".
type CircularExclusion struct {
	space   *Space
	radius  float64
	center  [2]float64
	exclude string
	mask    *Mask
}

func init() {
	RegisterExclusion("circle", func(space *Space, cfg map[string]interface{}) (Exclusion, error) {
		radius, ok := cfgFloat(cfg["radius"])
		if !ok {
			return nil, validationErrorf("radius", "circle exclusion requires a numeric radius")
		}
		var center []float64
		if v, present := cfg["center"]; present && v != nil {
			center, ok = cfgFloats(v)
			if !ok {
				return nil, validationErrorf("center", "circle center must be a coordinate pair")
			}
		}
		exclude := ExcludeOutside
		if v, present := cfg["exclude"]; present {
			if exclude, ok = cfgString(v); !ok {
				return nil, validationErrorf("exclude", "circle exclude must be a string")
			}
		}
		return NewCircularExclusion(space, radius, center, exclude)
	})
}

// NewCircularExclusion validates parameters and computes the mask
// contribution. A negative radius is normalized to its absolute value; a
// nil center defaults to the origin.
func NewCircularExclusion(space *Space, radius float64, center []float64, exclude string) (*CircularExclusion, error) {
	if space.NDims() != 2 {
		return nil, validationErrorf("space", "circle exclusion requires a two-axis space, got %d axes", space.NDims())
	}
	if exclude != ExcludeInside && exclude != ExcludeOutside {
		return nil, validationErrorf("exclude", "must be %q or %q, got %q", ExcludeInside, ExcludeOutside, exclude)
	}
	c := [2]float64{0, 0}
	if center != nil {
		if len(center) != 2 {
			return nil, &DimensionMismatchError{Want: 2, Got: len(center)}
		}
		c[0], c[1] = center[0], center[1]
	}

	ex := &CircularExclusion{
		space:   space,
		radius:  math.Abs(radius),
		center:  c,
		exclude: exclude,
	}
	ex.mask = ex.computeMask()
	return ex, nil
}

func (ex *CircularExclusion) computeMask() *Mask {
	xs := ex.space.AxisCoords(0)
	ys := ex.space.AxisCoords(1)
	mask := NewMask(ex.space.Shape())
	r2 := ex.radius * ex.radius

	for i, x := range xs {
		dx2 := (x - ex.center[0]) * (x - ex.center[0])
		for j, y := range ys {
			dy := y - ex.center[1]
			outside := dx2+dy*dy > r2
			allowed := !outside
			if ex.exclude == ExcludeInside {
				allowed = outside
			}
			mask.Set([]int{i, j}, allowed)
		}
	}
	return mask
}

// Type implements Exclusion.
func (ex *CircularExclusion) Type() string { return "circle" }

// Radius returns the normalized radius.
func (ex *CircularExclusion) Radius() float64 { return ex.radius }

// Center returns the circle center.
func (ex *CircularExclusion) Center() [2]float64 { return ex.center }

// Config implements Exclusion.
func (ex *CircularExclusion) Config() map[string]interface{} {
	return map[string]interface{}{
		"type":    "circle",
		"radius":  ex.radius,
		"center":  []float64{ex.center[0], ex.center[1]},
		"exclude": ex.exclude,
	}
}

// MaskContribution implements Exclusion.
func (ex *CircularExclusion) MaskContribution() *Mask { return ex.mask }

// IsExcluded implements Exclusion.
func (ex *CircularExclusion) IsExcluded(point []float64) (bool, error) {
	return maskExcludes(ex.space, ex.mask, point)
}
