package main

import (
	"strings"
	"testing"

	"github.com/banshee-data/probe.motion/internal/motion"
)

func scenarioList(t *testing.T) *motion.MotionList {
	t.Helper()
	space, err := motion.NewSpace([]motion.Axis{
		{Label: "x", Range: [2]float64{-10, 10}, Num: 21},
		{Label: "y", Range: [2]float64{-10, 10}, Num: 21},
	})
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	ml, err := motion.NewMotionList(space,
		[]map[string]interface{}{
			{"type": "grid", "limits": []interface{}{
				[]interface{}{-10.0, 10.0}, []interface{}{-10.0, 10.0},
			}, "steps": 3},
		},
		[]map[string]interface{}{
			{"type": "circle", "radius": 5.0, "exclude": "outside"},
		})
	if err != nil {
		t.Fatalf("NewMotionList: %v", err)
	}
	return ml
}

func TestPrintPoints(t *testing.T) {
	ml := scenarioList(t)

	var out strings.Builder
	if err := printPoints(&out, ml, "mm"); err != nil {
		t.Fatalf("printPoints: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one point, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "# 1 points (mm)") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "0\t0" {
		t.Errorf("unexpected point line: %q", lines[1])
	}
}

func TestPrintPointsRejectsUnknownUnit(t *testing.T) {
	ml := scenarioList(t)
	var out strings.Builder
	if err := printPoints(&out, ml, "cubit"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}
