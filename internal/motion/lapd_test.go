package motion

import (
	"errors"
	"testing"
)

// lapdSpace mirrors the standard probe plane at 1 cm resolution.
func lapdSpace(t *testing.T) *Space {
	t.Helper()
	s, err := NewSpace([]Axis{
		{Label: "x", Range: [2]float64{-55, 55}, Num: 111},
		{Label: "y", Range: [2]float64{-55, 55}, Num: 111},
	})
	if err != nil {
		t.Fatalf("building lapd space: %v", err)
	}
	return s
}

func TestLaPDExclusionWithoutCone(t *testing.T) {
	s := lapdSpace(t)

	ex, err := NewLaPDExclusion(s, 100, -58.771, "E", 80, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With the cone disabled the composite must reduce to exactly the
	// circular enclosure mask.
	circle, err := NewCircularExclusion(s, 50, nil, ExcludeOutside)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ex.MaskContribution().Equal(circle.MaskContribution()) {
		t.Error("no-cone lapd mask should equal the enclosure circle mask")
	}
	if got := len(ex.SubExclusions()); got != 1 {
		t.Errorf("no-cone lapd should compose 1 sub-exclusion, got %d", got)
	}
}

func TestLaPDExclusionConeShrinksInclusion(t *testing.T) {
	s := lapdSpace(t)

	noCone, err := NewLaPDExclusion(s, 100, -58.771, "E", 80, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withCone, err := NewLaPDExclusion(s, 100, -58.771, "E", 80, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(withCone.SubExclusions()); got != 3 {
		t.Fatalf("cone lapd should compose 3 sub-exclusions, got %d", got)
	}

	noConeCount := noCone.MaskContribution().CountTrue()
	withConeCount := withCone.MaskContribution().CountTrue()
	if withConeCount >= noConeCount {
		t.Errorf("cone must strictly shrink the inclusion set: %d (cone) vs %d (no cone)", withConeCount, noConeCount)
	}

	// Every point the cone mask allows must also be allowed without it.
	coneMask := withCone.MaskContribution()
	baseMask := noCone.MaskContribution()
	for i := 0; i < coneMask.Len(); i++ {
		if coneMask.AtFlat(i) && !baseMask.AtFlat(i) {
			t.Fatal("cone mask allows a point the enclosure excludes")
		}
	}
}

func TestLaPDExclusionConeGeometry(t *testing.T) {
	s := lapdSpace(t)

	// East port: the pivot sits at (+R, 0) and the cone opens toward -x.
	ex, err := NewLaPDExclusion(s, 100, -58.771, "east", 80, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The chamber center is on the cone axis and must stay reachable.
	if got, _ := ex.IsExcluded([]float64{0, 0}); got {
		t.Error("chamber center should be inside the east-port cone")
	}
	// Points far off-axis near the port side fall outside the cone.
	if got, _ := ex.IsExcluded([]float64{45, 20}); !got {
		t.Error("off-axis point near the port should be outside the cone")
	}
	// Outside the enclosure is always excluded.
	if got, _ := ex.IsExcluded([]float64{54, 54}); !got {
		t.Error("point outside the enclosure should be excluded")
	}
}

func TestLaPDExclusionPortLocations(t *testing.T) {
	s := lapdSpace(t)

	for _, loc := range []string{"e", "east", "t", "top", "w", "west", "b", "bot", "bottom", "E", "Top", "WEST"} {
		if _, err := NewLaPDExclusion(s, 100, -58.771, loc, 80, true); err != nil {
			t.Errorf("port location %q should be accepted: %v", loc, err)
		}
	}

	// Numeric angles inside the open interval are accepted directly.
	if _, err := NewLaPDExclusion(s, 100, -58.771, 45.0, 80, true); err != nil {
		t.Errorf("numeric port angle should be accepted: %v", err)
	}
}

func TestLaPDExclusionValidation(t *testing.T) {
	s := lapdSpace(t)

	testCases := []struct {
		name     string
		port     interface{}
		coneFull float64
	}{
		{"unknown_token", "northwest", 80},
		{"angle_too_low", -180.0, 80},
		{"angle_too_high", 360.0, 80},
		{"cone_zero", "east", 0},
		{"cone_negative", "east", -10},
		{"cone_too_wide", "east", 180},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLaPDExclusion(s, 100, -58.771, tc.port, tc.coneFull, true)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestLaPDExclusionConfigRoundTrip(t *testing.T) {
	s := lapdSpace(t)

	ex, err := NewLaPDExclusion(s, -100, -58.771, "top", 80, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := ex.Config()
	if cfg["diameter"] != 100.0 {
		t.Errorf("negative diameter should normalize, got %v", cfg["diameter"])
	}
	if cfg["port_location"] != 90.0 {
		t.Errorf("port token should export as its resolved angle, got %v", cfg["port_location"])
	}

	rebuilt, err := newExclusion(s, cfg)
	if err != nil {
		t.Fatalf("rebuilding from config: %v", err)
	}
	if !rebuilt.MaskContribution().Equal(ex.MaskContribution()) {
		t.Error("rebuilt lapd mask differs from original")
	}
}
