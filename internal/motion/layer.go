package motion

import (
	"fmt"
	"sort"
)

// Layer is a point-generation strategy producing raw candidate target
// coordinates. Layer points are not grid-aligned; they are filtered
// against the inclusion mask by the motion list, which snaps each
// candidate to its nearest grid cell.
type Layer interface {
	// Type returns the registry tag of the variant.
	Type() string

	// Config returns the declared parameters, including the type tag,
	// in a form that reconstructs an equivalent layer through the
	// registry.
	Config() map[string]interface{}

	// Points returns the layer's candidate points flattened to a list
	// of D-dimensional coordinates in generation order. The result is
	// computed lazily and cached; callers must not mutate it.
	Points() [][]float64

	// Shape returns the point batch's per-axis sample counts before
	// flattening, excluding the trailing coordinate dimension.
	Shape() []int
}

// LayerFactory constructs a layer variant against a space grid from its
// declared parameters.
type LayerFactory func(space *Space, cfg map[string]interface{}) (Layer, error)

// layerRegistry maps type tags to constructors. Variants register
// themselves in init(), so the map is read-only after process startup.
var layerRegistry = map[string]LayerFactory{}

// RegisterLayer adds a layer variant to the registry. A duplicate tag is
// a startup-time configuration error and panics.
func RegisterLayer(tag string, factory LayerFactory) {
	if tag == "" {
		panic("motion: layer tag must not be empty")
	}
	if _, dup := layerRegistry[tag]; dup {
		panic(fmt.Sprintf("motion: layer type %q already registered", tag))
	}
	layerRegistry[tag] = factory
}

// LayerTypes returns the registered layer tags, sorted for deterministic
// output.
func LayerTypes() []string {
	tags := make([]string, 0, len(layerRegistry))
	for tag := range layerRegistry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// newLayer builds a layer from a config mapping carrying a "type" tag via
// the registry.
func newLayer(space *Space, cfg map[string]interface{}) (Layer, error) {
	tag, ok := cfgString(cfg["type"])
	if !ok {
		return nil, validationErrorf("type", "layer config is missing a type tag")
	}
	factory, ok := layerRegistry[tag]
	if !ok {
		return nil, &RegistryError{Kind: "layer", Tag: tag}
	}
	return factory(space, cfg)
}
