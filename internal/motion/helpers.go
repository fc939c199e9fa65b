package motion

import "math"

// Config payloads arrive as map[string]interface{} decoded from TOML or
// JSON, so parameter values show up as float64, int64, string, or nested
// []interface{} depending on the decoder. These coercions normalize them.

func cfgFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

func cfgInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case uint64:
		return int(x), true
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
	}
	return 0, false
}

func cfgString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func cfgBool(v interface{}) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func cfgFloats(v interface{}) ([]float64, bool) {
	switch x := v.(type) {
	case []float64:
		return append([]float64(nil), x...), true
	case []int:
		out := make([]float64, len(x))
		for i, n := range x {
			out[i] = float64(n)
		}
		return out, true
	case []interface{}:
		out := make([]float64, len(x))
		for i, e := range x {
			f, ok := cfgFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func cfgInts(v interface{}) ([]int, bool) {
	switch x := v.(type) {
	case []int:
		return append([]int(nil), x...), true
	case []int64:
		out := make([]int, len(x))
		for i, n := range x {
			out[i] = int(n)
		}
		return out, true
	case []interface{}:
		out := make([]int, len(x))
		for i, e := range x {
			n, ok := cfgInt(e)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	}
	// A bare scalar broadcasts to a single-element slice.
	if n, ok := cfgInt(v); ok {
		return []int{n}, true
	}
	return nil, false
}

// cfgFloatPairs decodes either one [lo, hi] pair or a list of pairs.
func cfgFloatPairs(v interface{}) ([][2]float64, bool) {
	list, ok := v.([]interface{})
	if !ok {
		// Typed slices from direct construction paths.
		switch x := v.(type) {
		case [][2]float64:
			return append([][2]float64(nil), x...), true
		case [2]float64:
			return [][2]float64{x}, true
		case []float64:
			if len(x) == 2 {
				return [][2]float64{{x[0], x[1]}}, true
			}
		}
		return nil, false
	}
	if len(list) == 0 {
		return nil, false
	}
	if _, scalar := cfgFloat(list[0]); scalar {
		// Flat [lo, hi] form.
		pair, ok := cfgFloats(list)
		if !ok || len(pair) != 2 {
			return nil, false
		}
		return [][2]float64{{pair[0], pair[1]}}, true
	}
	out := make([][2]float64, len(list))
	for i, e := range list {
		pair, ok := cfgFloats(e)
		if !ok || len(pair) != 2 {
			return nil, false
		}
		out[i] = [2]float64{pair[0], pair[1]}
	}
	return out, true
}

// cfgSlope decodes a slope that may carry the "inf" sentinel used by
// persisted divider configs, since TOML and JSON have no infinity literal.
func cfgSlope(v interface{}) (float64, bool) {
	if s, ok := v.(string); ok {
		if s == "inf" {
			return math.Inf(1), true
		}
		return 0, false
	}
	return cfgFloat(v)
}

// encodeSlope is the inverse of cfgSlope for config export.
func encodeSlope(slope float64) interface{} {
	if math.IsInf(slope, 0) {
		return "inf"
	}
	return slope
}
