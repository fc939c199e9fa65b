package motion

import (
	"errors"
	"math"
	"testing"
)

func TestNewSpaceValidation(t *testing.T) {
	testCases := []struct {
		name      string
		axes      []Axis
		expectErr bool
	}{
		{
			"valid_two_axis",
			[]Axis{
				{Label: "x", Range: [2]float64{-10, 10}, Num: 21},
				{Label: "y", Range: [2]float64{-10, 10}, Num: 21},
			},
			false,
		},
		{"no_axes", nil, true},
		{
			"duplicate_labels",
			[]Axis{
				{Label: "x", Range: [2]float64{-10, 10}, Num: 21},
				{Label: "x", Range: [2]float64{-5, 5}, Num: 11},
			},
			true,
		},
		{
			"empty_label",
			[]Axis{{Label: "", Range: [2]float64{-10, 10}, Num: 21}},
			true,
		},
		{
			"unordered_range",
			[]Axis{{Label: "x", Range: [2]float64{10, -10}, Num: 21}},
			true,
		},
		{
			"zero_samples",
			[]Axis{{Label: "x", Range: [2]float64{-10, 10}, Num: 0}},
			true,
		},
		{
			"single_sample",
			[]Axis{{Label: "x", Range: [2]float64{-10, 10}, Num: 1}},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSpace(tc.axes)
			if tc.expectErr {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewSpaceFromPreset(t *testing.T) {
	s, err := NewSpaceFromPreset("lapd_xy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.NDims(); got != 2 {
		t.Errorf("NDims = %d, want 2", got)
	}
	labels := s.Labels()
	if labels[0] != "x" || labels[1] != "y" {
		t.Errorf("Labels = %v, want [x y]", labels)
	}
	shape := s.Shape()
	if shape[0] != 221 || shape[1] != 221 {
		t.Errorf("Shape = %v, want [221 221]", shape)
	}

	if _, err := NewSpaceFromPreset("lapd_xyzzy"); err == nil {
		t.Error("expected error for unknown preset, got nil")
	}
}

func TestSpaceCoord(t *testing.T) {
	s, err := NewSpace([]Axis{
		{Label: "x", Range: [2]float64{-10, 10}, Num: 21},
		{Label: "y", Range: [2]float64{0, 5}, Num: 6},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := s.Coord([]int{0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p[0] != -10 || p[1] != 0 {
		t.Errorf("Coord(0,0) = %v, want [-10 0]", p)
	}

	p, err = s.Coord([]int{10, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p[0] != 0 || p[1] != 5 {
		t.Errorf("Coord(10,5) = %v, want [0 5]", p)
	}

	if _, err := s.Coord([]int{1}); err == nil {
		t.Error("expected dimension mismatch, got nil")
	}
	if _, err := s.Coord([]int{21, 0}); err == nil {
		t.Error("expected out-of-range error, got nil")
	}
}

func TestSpaceNearestIndex(t *testing.T) {
	s, err := NewSpace([]Axis{
		{Label: "x", Range: [2]float64{-10, 10}, Num: 21},
		{Label: "y", Range: [2]float64{-10, 10}, Num: 21},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := []struct {
		name     string
		point    []float64
		expected []int
	}{
		{"on_grid", []float64{0, 0}, []int{10, 10}},
		{"snaps_down", []float64{0.4, -0.4}, []int{10, 10}},
		{"snaps_up", []float64{0.6, -0.6}, []int{11, 9}},
		{"clamps_below", []float64{-100, 0}, []int{0, 10}},
		{"clamps_above", []float64{100, 0}, []int{20, 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.NearestIndex(tc.point)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got[0] != tc.expected[0] || got[1] != tc.expected[1] {
				t.Errorf("NearestIndex(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}

	_, err = s.NearestIndex([]float64{0, 0, 0})
	var dErr *DimensionMismatchError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
	if dErr.Want != 2 || dErr.Got != 3 {
		t.Errorf("mismatch = want %d got %d, expected want 2 got 3", dErr.Want, dErr.Got)
	}
}

func TestLinspace(t *testing.T) {
	got := linspace(-10, 10, 5)
	want := []float64{-10, -5, 0, 5, 10}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("linspace = %v, want %v", got, want)
		}
	}

	single := linspace(3, 7, 1)
	if len(single) != 1 || single[0] != 3 {
		t.Errorf("linspace(n=1) = %v, want [3]", single)
	}
}
