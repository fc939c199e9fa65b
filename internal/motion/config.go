package motion

import (
	"sort"
	"strconv"
)

// SpaceConfig is the declarative form of a motion space: parallel slices
// of axis labels, ranges, and sample counts.
type SpaceConfig struct {
	Label []string     `json:"label" toml:"label"`
	Range [][2]float64 `json:"range" toml:"range"`
	Num   []int        `json:"num" toml:"num"`
}

// Config is the round-trippable representation of a motion list.
// Exclusion and layer configs are keyed by their decimal insertion index
// so the mapping survives format encoders that do not preserve order.
type Config struct {
	Space     SpaceConfig                       `json:"space" toml:"space"`
	Exclusion map[string]map[string]interface{} `json:"exclusion,omitempty" toml:"exclusion,omitempty"`
	Layer     map[string]map[string]interface{} `json:"layer,omitempty" toml:"layer,omitempty"`
}

// Config exports the motion list's full configuration. Reconstructing a
// list from the result reproduces an identical point sequence.
func (ml *MotionList) Config() Config {
	axes := ml.space.Axes()
	cfg := Config{
		Space: SpaceConfig{
			Label: make([]string, len(axes)),
			Range: make([][2]float64, len(axes)),
			Num:   make([]int, len(axes)),
		},
	}
	for i, ax := range axes {
		cfg.Space.Label[i] = ax.Label
		cfg.Space.Range[i] = ax.Range
		cfg.Space.Num[i] = ax.Num
	}

	if len(ml.exclusions) > 0 {
		cfg.Exclusion = make(map[string]map[string]interface{}, len(ml.exclusions))
		for i, ex := range ml.exclusions {
			cfg.Exclusion[strconv.Itoa(i)] = ex.Config()
		}
	}
	if len(ml.layers) > 0 {
		cfg.Layer = make(map[string]map[string]interface{}, len(ml.layers))
		for i, layer := range ml.layers {
			cfg.Layer[strconv.Itoa(i)] = layer.Config()
		}
	}
	return cfg
}

// NewMotionListFromConfig reconstructs a motion list from an exported
// configuration, rebuilding exclusions and layers in their original
// insertion order through the registries.
func NewMotionListFromConfig(cfg Config) (*MotionList, error) {
	sc := cfg.Space
	if len(sc.Label) != len(sc.Range) || len(sc.Label) != len(sc.Num) {
		return nil, validationErrorf("space", "label/range/num lengths disagree: %d/%d/%d", len(sc.Label), len(sc.Range), len(sc.Num))
	}
	axes := make([]Axis, len(sc.Label))
	for i := range sc.Label {
		axes[i] = Axis{Label: sc.Label[i], Range: sc.Range[i], Num: sc.Num[i]}
	}
	space, err := NewSpace(axes)
	if err != nil {
		return nil, err
	}

	layers, err := orderedConfigs(cfg.Layer, "layer")
	if err != nil {
		return nil, err
	}
	exclusions, err := orderedConfigs(cfg.Exclusion, "exclusion")
	if err != nil {
		return nil, err
	}
	return NewMotionList(space, layers, exclusions)
}

// orderedConfigs flattens an index-keyed config mapping back to its
// insertion order.
func orderedConfigs(m map[string]map[string]interface{}, kind string) ([]map[string]interface{}, error) {
	if len(m) == 0 {
		return nil, nil
	}
	keys := make([]int, 0, len(m))
	byIndex := make(map[int]map[string]interface{}, len(m))
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, validationErrorf(kind, "config key %q is not a decimal index", k)
		}
		keys = append(keys, i)
		byIndex[i] = v
	}
	sort.Ints(keys)
	out := make([]map[string]interface{}, 0, len(keys))
	for _, i := range keys {
		out = append(out, byIndex[i])
	}
	return out, nil
}
