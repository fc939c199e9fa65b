package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/probe.motion/internal/motion"
)

func scenarioList(t *testing.T) *motion.MotionList {
	t.Helper()
	space, err := motion.NewSpace([]motion.Axis{
		{Label: "x", Range: [2]float64{-10, 10}, Num: 21},
		{Label: "y", Range: [2]float64{-10, 10}, Num: 21},
	})
	require.NoError(t, err)

	ml, err := motion.NewMotionList(space,
		[]map[string]interface{}{{
			"type":   "grid",
			"limits": []interface{}{[]interface{}{-10.0, 10.0}, []interface{}{-10.0, 10.0}},
			"steps":  []interface{}{3, 3},
		}},
		[]map[string]interface{}{{
			"type":    "circle",
			"radius":  5.0,
			"exclude": "outside",
		}},
	)
	require.NoError(t, err)
	return ml
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ml := scenarioList(t)
	path := filepath.Join(t.TempDir(), "scenario.toml")

	require.NoError(t, Save(path, ml.Config()))

	rebuilt, err := LoadMotionList(path)
	require.NoError(t, err)

	if diff := cmp.Diff(ml.Points(), rebuilt.Points()); diff != "" {
		t.Errorf("point sequence changed across file round trip (-orig +loaded):\n%s", diff)
	}
}

func TestSaveLoadDividerInfSlope(t *testing.T) {
	space, err := motion.NewSpace([]motion.Axis{
		{Label: "x", Range: [2]float64{-10, 10}, Num: 21},
		{Label: "y", Range: [2]float64{-10, 10}, Num: 21},
	})
	require.NoError(t, err)

	ml, err := motion.NewMotionList(space,
		[]map[string]interface{}{{
			"type":   "grid",
			"limits": []interface{}{-10.0, 10.0},
			"steps":  5,
		}},
		[]map[string]interface{}{{
			"type":    "divider",
			"mb":      []interface{}{"inf", 2.0},
			"exclude": "-e0",
		}},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "divider.toml")
	require.NoError(t, Save(path, ml.Config()))

	rebuilt, err := LoadMotionList(path)
	require.NoError(t, err)
	if diff := cmp.Diff(ml.Points(), rebuilt.Points()); diff != "" {
		t.Errorf("inf-slope divider did not survive the file round trip:\n%s", diff)
	}
}

func TestLoadHandWrittenFile(t *testing.T) {
	raw := `
[space]
label = ["x", "y"]
range = [[-10.0, 10.0], [-10.0, 10.0]]
num = [21, 21]

[layer.0]
type = "grid"
limits = [[-10.0, 10.0], [-10.0, 10.0]]
steps = [3, 3]

[exclusion.0]
type = "circle"
radius = 5.0
exclude = "outside"
`
	path := filepath.Join(t.TempDir(), "hand.toml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	ml, err := LoadMotionList(path)
	require.NoError(t, err)

	want := [][]float64{{0, 0}}
	if diff := cmp.Diff(want, ml.Points()); diff != "" {
		t.Errorf("hand-written scenario mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	t.Run("wrong_extension", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("space: {}"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.toml"))
		require.Error(t, err)
	})

	t.Run("malformed_toml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(path, []byte("[space\nlabel = "), 0o644))
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("unknown_exclusion_type", func(t *testing.T) {
		raw := `
[space]
label = ["x", "y"]
range = [[-10.0, 10.0], [-10.0, 10.0]]
num = [21, 21]

[exclusion.0]
type = "wormhole"
`
		path := filepath.Join(dir, "unknown.toml")
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
		_, err := LoadMotionList(path)
		var rErr *motion.RegistryError
		require.ErrorAs(t, err, &rErr)
	})
}
