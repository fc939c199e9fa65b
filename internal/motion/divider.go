package motion

import (
	"fmt"
	"math"
	"regexp"
)

// dividerRegionPattern matches the signed-axis exclude token, e.g. "-e0"
// excludes the negative side along axis 0.
var dividerRegionPattern = regexp.MustCompile(`^([+-])e([01])$`)

// DividerExclusion defines a linear boundary in a two-axis motion space
// and excludes one side of it. The slope may be infinite (a vertical
// divider), persisted in configs as the string sentinel "inf".
//
// Registry tag: "divider".
type DividerExclusion struct {
	space     *Space
	slope     float64
	intercept float64
	exclude   string
	sign      float64 // +1 or -1, parsed from the exclude token
	axis      int     // 0 or 1, parsed from the exclude token
	mask      *Mask
}

func init() {
	RegisterExclusion("divider", func(space *Space, cfg map[string]interface{}) (Exclusion, error) {
		var mb []interface{}
		switch v := cfg["mb"].(type) {
		case []interface{}:
			mb = v
		case []float64:
			for _, f := range v {
				mb = append(mb, f)
			}
		case [2]float64:
			mb = []interface{}{v[0], v[1]}
		}
		if len(mb) != 2 {
			return nil, validationErrorf("mb", "divider requires a [slope, intercept] pair")
		}
		slope, ok := cfgSlope(mb[0])
		if !ok {
			return nil, validationErrorf("mb", "slope must be numeric or the sentinel \"inf\"")
		}
		intercept, ok := cfgFloat(mb[1])
		if !ok {
			return nil, validationErrorf("mb", "intercept must be numeric")
		}
		exclude := "-e0"
		if v, present := cfg["exclude"]; present {
			if exclude, ok = cfgString(v); !ok {
				return nil, validationErrorf("exclude", "divider exclude must be a string")
			}
		}
		return NewDividerExclusion(space, slope, intercept, exclude)
	})
}

// NewDividerExclusion validates parameters and computes the mask
// contribution.
func NewDividerExclusion(space *Space, slope, intercept float64, exclude string) (*DividerExclusion, error) {
	if space.NDims() != 2 {
		return nil, validationErrorf("space", "divider exclusion requires a two-axis space, got %d axes", space.NDims())
	}
	if math.IsNaN(slope) || math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, validationErrorf("mb", "slope/intercept pair (%g, %g) is not finite", slope, intercept)
	}

	m := dividerRegionPattern.FindStringSubmatch(exclude)
	if m == nil {
		return nil, validationErrorf("exclude", "token %q does not match [+|-]e[0|1]", exclude)
	}
	sign := 1.0
	if m[1] == "-" {
		sign = -1.0
	}
	axis := 0
	if m[2] == "1" {
		axis = 1
	}

	// A vertical divider has no extent along axis 1, and a horizontal
	// one has no extent along axis 0; the matching tokens are
	// geometrically inconsistent.
	if math.IsInf(slope, 0) && axis == 1 {
		return nil, validationErrorf("exclude", "infinite slope cannot exclude along axis 1")
	}
	if slope == 0 && axis == 0 {
		return nil, validationErrorf("exclude", "zero slope cannot exclude along axis 0")
	}

	ex := &DividerExclusion{
		space:     space,
		slope:     slope,
		intercept: intercept,
		exclude:   exclude,
		sign:      sign,
		axis:      axis,
	}
	ex.mask = ex.computeMask()
	return ex, nil
}

func (ex *DividerExclusion) computeMask() *Mask {
	xs := ex.space.AxisCoords(0)
	ys := ex.space.AxisCoords(1)
	mask := NewMask(ex.space.Shape())

	for i, x := range xs {
		for j, y := range ys {
			// Signed distance surrogate from the dividing line,
			// evaluated along the excluded axis.
			var v float64
			switch {
			case math.IsInf(ex.slope, 0):
				v = x - ex.intercept
			case ex.slope == 0:
				v = y - ex.intercept
			case ex.axis == 1:
				v = y - ex.slope*x - ex.intercept
			default:
				v = x - (y-ex.intercept)/ex.slope
			}
			excluded := v*ex.sign >= 0
			mask.Set([]int{i, j}, !excluded)
		}
	}
	return mask
}

// Type implements Exclusion.
func (ex *DividerExclusion) Type() string { return "divider" }

// Slope returns the divider slope; math.Inf(1) marks a vertical divider.
func (ex *DividerExclusion) Slope() float64 { return ex.slope }

// Intercept returns the divider intercept.
func (ex *DividerExclusion) Intercept() float64 { return ex.intercept }

// Config implements Exclusion.
func (ex *DividerExclusion) Config() map[string]interface{} {
	return map[string]interface{}{
		"type":    "divider",
		"mb":      []interface{}{encodeSlope(ex.slope), ex.intercept},
		"exclude": ex.exclude,
	}
}

// MaskContribution implements Exclusion.
func (ex *DividerExclusion) MaskContribution() *Mask { return ex.mask }

// IsExcluded implements Exclusion.
func (ex *DividerExclusion) IsExcluded(point []float64) (bool, error) {
	return maskExcludes(ex.space, ex.mask, point)
}

func (ex *DividerExclusion) String() string {
	return fmt.Sprintf("divider(mb=(%g, %g), exclude=%s)", ex.slope, ex.intercept, ex.exclude)
}
