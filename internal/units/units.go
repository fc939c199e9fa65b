// Package units handles length units for probe coordinates. The engine
// itself is unit-agnostic, but drive tables and display tooling want
// positions in a specific unit, so conversion happens at the edges.
package units

import (
	"fmt"
	"strings"
)

// Unit is a length unit for probe-drive coordinates.
type Unit string

const (
	Centimeter Unit = "cm"
	Millimeter Unit = "mm"
	Meter      Unit = "m"
	Inch       Unit = "inch"
)

// centimeters per unit
var toCentimeters = map[Unit]float64{
	Centimeter: 1,
	Millimeter: 0.1,
	Meter:      100,
	Inch:       2.54,
}

// ParseUnit resolves a unit name, accepting a few common aliases.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cm", "centimeter", "centimeters":
		return Centimeter, nil
	case "mm", "millimeter", "millimeters":
		return Millimeter, nil
	case "m", "meter", "meters":
		return Meter, nil
	case "in", "inch", "inches", `"`:
		return Inch, nil
	}
	return "", fmt.Errorf("unknown length unit %q (want cm, mm, m, or inch)", s)
}

// Convert scales a value from one unit to another.
func Convert(value float64, from, to Unit) (float64, error) {
	fromCm, ok := toCentimeters[from]
	if !ok {
		return 0, fmt.Errorf("unknown length unit %q", from)
	}
	toCm, ok := toCentimeters[to]
	if !ok {
		return 0, fmt.Errorf("unknown length unit %q", to)
	}
	return value * fromCm / toCm, nil
}

// ConvertPoint converts every coordinate of a point, returning a new
// slice.
func ConvertPoint(point []float64, from, to Unit) ([]float64, error) {
	out := make([]float64, len(point))
	for i, v := range point {
		c, err := Convert(v, from, to)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
