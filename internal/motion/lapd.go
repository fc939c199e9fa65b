package motion

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// portLocationAngles maps named LaPD port directions to angular positions
// in degrees, measured in the machine cross-section plane.
var portLocationAngles = map[string]float64{
	"e":      0,
	"east":   0,
	"t":      90,
	"top":    90,
	"w":      180,
	"west":   180,
	"b":      270,
	"bot":    270,
	"bottom": 270,
}

// LaPDExclusion is the site-specific composite exclusion for the LaPD
// chamber: a circular enclosure boundary, plus, when the cone is enabled,
// two divider rays bounding the conical region a probe can reach from its
// port pivot. The combined mask is the logical AND of the sub-exclusion
// masks.
//
// Registry tag: "lapd".
type LaPDExclusion struct {
	space         *Space
	diameter      float64
	pivotRadius   float64
	portAngle     float64 // degrees; resolved from a named token if given
	coneFullAngle float64 // degrees
	includeCone   bool
	sub           []Exclusion
	mask          *Mask
}

func init() {
	RegisterExclusion("lapd", func(space *Space, cfg map[string]interface{}) (Exclusion, error) {
		diameter := 100.0
		pivotRadius := -58.771
		var portLocation interface{} = "E"
		coneFullAngle := 80.0
		includeCone := true

		var ok bool
		if v, present := cfg["diameter"]; present {
			if diameter, ok = cfgFloat(v); !ok {
				return nil, validationErrorf("diameter", "must be numeric")
			}
		}
		if v, present := cfg["pivot_radius"]; present && v != nil {
			if pivotRadius, ok = cfgFloat(v); !ok {
				return nil, validationErrorf("pivot_radius", "must be numeric")
			}
		}
		if v, present := cfg["port_location"]; present && v != nil {
			portLocation = v
		}
		if v, present := cfg["cone_full_angle"]; present && v != nil {
			if coneFullAngle, ok = cfgFloat(v); !ok {
				return nil, validationErrorf("cone_full_angle", "must be numeric")
			}
		}
		if v, present := cfg["include_cone"]; present {
			if includeCone, ok = cfgBool(v); !ok {
				return nil, validationErrorf("include_cone", "must be a boolean")
			}
		}
		return NewLaPDExclusion(space, diameter, pivotRadius, portLocation, coneFullAngle, includeCone)
	})
}

// NewLaPDExclusion validates parameters, resolves the port location, and
// computes the composed mask contribution. portLocation accepts a named
// direction token (east/top/west/bottom and their abbreviations) or a
// numeric angle in degrees.
func NewLaPDExclusion(space *Space, diameter, pivotRadius float64, portLocation interface{}, coneFullAngle float64, includeCone bool) (*LaPDExclusion, error) {
	if space.NDims() != 2 {
		return nil, validationErrorf("space", "lapd exclusion requires a two-axis space, got %d axes", space.NDims())
	}

	ex := &LaPDExclusion{
		space:       space,
		diameter:    math.Abs(diameter),
		includeCone: includeCone,
	}

	if includeCone {
		ex.pivotRadius = math.Abs(pivotRadius)

		if coneFullAngle <= 0 || coneFullAngle >= 180 {
			return nil, validationErrorf("cone_full_angle", "must be within (0, 180) degrees, got %g", coneFullAngle)
		}
		ex.coneFullAngle = coneFullAngle

		switch loc := portLocation.(type) {
		case string:
			angle, ok := portLocationAngles[strings.ToLower(loc)]
			if !ok {
				return nil, validationErrorf("port_location", "unrecognized port token %q", loc)
			}
			ex.portAngle = angle
		default:
			angle, ok := cfgFloat(portLocation)
			if !ok {
				return nil, validationErrorf("port_location", "must be a direction token or numeric angle")
			}
			if angle <= -180 || angle >= 360 {
				return nil, validationErrorf("port_location", "angular port location %g out of (-180, 360) degrees", angle)
			}
			ex.portAngle = angle
		}
	}

	if err := ex.compose(); err != nil {
		return nil, err
	}
	return ex, nil
}

// compose builds the sub-exclusions and combines their masks with AND.
func (ex *LaPDExclusion) compose() error {
	enclosure, err := NewCircularExclusion(ex.space, 0.5*ex.diameter, []float64{0, 0}, ExcludeOutside)
	if err != nil {
		return err
	}
	ex.sub = []Exclusion{enclosure}

	if ex.includeCone {
		if err := ex.composeCone(); err != nil {
			return err
		}
	}

	ex.mask = ex.sub[0].MaskContribution().Clone()
	for _, sub := range ex.sub[1:] {
		if err := ex.mask.And(sub.MaskContribution()); err != nil {
			return err
		}
	}
	return nil
}

// composeCone derives the two divider rays bounding the probe cone.
//
// Points in the machine frame P relate to the port pivot frame P' by a
// rotation through the port angle. The cone's bounding rays are unit
// vectors at ±half-cone-angle in P'; rotating them back into P gives each
// ray's slope and intercept through the pivot point, and rotating the P'
// normal (0, ±1) picks the side of each ray to exclude so the region
// outside the cone is removed.
func (ex *LaPDExclusion) composeCone() error {
	theta := ex.portAngle * math.Pi / 180.0
	alpha := 0.5 * ex.coneFullAngle * math.Pi / 180.0
	pivotX := ex.pivotRadius * math.Cos(theta)
	pivotY := ex.pivotRadius * math.Sin(theta)

	rot := mat.NewDense(2, 2, []float64{
		math.Cos(theta), -math.Sin(theta),
		math.Sin(theta), math.Cos(theta),
	})
	var invRot mat.Dense
	if err := invRot.Inverse(rot); err != nil {
		return validationErrorf("port_location", "degenerate rotation for port angle %g", ex.portAngle)
	}

	for _, half := range []struct {
		name string
		sign float64
	}{
		{"upper", 1.0},
		{"lower", -1.0},
	} {
		// Ray direction in P', rotated into P.
		var traj mat.VecDense
		traj.MulVec(invRot.T(), mat.NewVecDense(2, []float64{-math.Cos(alpha), half.sign * math.Sin(alpha)}))

		slope := traj.AtVec(1) / traj.AtVec(0)
		intercept := pivotY - slope*pivotX

		// Outward normal of the kept half-plane in P', rotated into P.
		var excDir mat.VecDense
		excDir.MulVec(invRot.T(), mat.NewVecDense(2, []float64{0, half.sign}))

		axis := 1
		if math.Abs(excDir.AtVec(0)) > math.Abs(excDir.AtVec(1)) {
			axis = 0
		}
		token := "-e"
		if excDir.AtVec(axis) > 0 {
			token = "+e"
		}
		if axis == 0 {
			token += "0"
		} else {
			token += "1"
		}

		div, err := NewDividerExclusion(ex.space, slope, intercept, token)
		if err != nil {
			return err
		}
		ex.sub = append(ex.sub, div)
	}
	return nil
}

// Type implements Exclusion.
func (ex *LaPDExclusion) Type() string { return "lapd" }

// SubExclusions returns the composed sub-exclusions in composition order:
// the enclosure circle first, then the cone dividers when enabled.
func (ex *LaPDExclusion) SubExclusions() []Exclusion {
	return append([]Exclusion(nil), ex.sub...)
}

// Config implements Exclusion.
func (ex *LaPDExclusion) Config() map[string]interface{} {
	cfg := map[string]interface{}{
		"type":         "lapd",
		"diameter":     ex.diameter,
		"include_cone": ex.includeCone,
	}
	if ex.includeCone {
		cfg["pivot_radius"] = ex.pivotRadius
		cfg["port_location"] = ex.portAngle
		cfg["cone_full_angle"] = ex.coneFullAngle
	}
	return cfg
}

// MaskContribution implements Exclusion.
func (ex *LaPDExclusion) MaskContribution() *Mask { return ex.mask }

// IsExcluded implements Exclusion.
func (ex *LaPDExclusion) IsExcluded(point []float64) (bool, error) {
	return maskExcludes(ex.space, ex.mask, point)
}
