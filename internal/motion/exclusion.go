package motion

import (
	"fmt"
	"sort"
)

// Exclusion is a named rule removing a region of the motion space from
// the allowed set. An exclusion validates its parameters at construction,
// computes a mask contribution of the grid's shape immediately, and is
// only ever built through the registry.
type Exclusion interface {
	// Type returns the registry tag of the variant.
	Type() string

	// Config returns the declared parameters, including the type tag,
	// in a form that reconstructs an equivalent exclusion through the
	// registry.
	Config() map[string]interface{}

	// MaskContribution returns this exclusion's mask over the space
	// grid; true marks points the exclusion allows. Callers must not
	// mutate the returned mask.
	MaskContribution() *Mask

	// IsExcluded reports whether a point is rejected by this exclusion
	// alone, via nearest-neighbor lookup on its mask contribution.
	IsExcluded(point []float64) (bool, error)
}

// ExclusionFactory constructs an exclusion variant against a space grid
// from its declared parameters.
type ExclusionFactory func(space *Space, cfg map[string]interface{}) (Exclusion, error)

// exclusionRegistry maps type tags to constructors. Variants register
// themselves in init(), so the map is read-only after process startup
// and needs no locking.
var exclusionRegistry = map[string]ExclusionFactory{}

// RegisterExclusion adds an exclusion variant to the registry. A
// duplicate tag is a startup-time configuration error and panics.
func RegisterExclusion(tag string, factory ExclusionFactory) {
	if tag == "" {
		panic("motion: exclusion tag must not be empty")
	}
	if _, dup := exclusionRegistry[tag]; dup {
		panic(fmt.Sprintf("motion: exclusion type %q already registered", tag))
	}
	exclusionRegistry[tag] = factory
}

// ExclusionTypes returns the registered exclusion tags, sorted for
// deterministic output.
func ExclusionTypes() []string {
	tags := make([]string, 0, len(exclusionRegistry))
	for tag := range exclusionRegistry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// newExclusion builds an exclusion from a config mapping carrying a
// "type" tag via the registry.
func newExclusion(space *Space, cfg map[string]interface{}) (Exclusion, error) {
	tag, ok := cfgString(cfg["type"])
	if !ok {
		return nil, validationErrorf("type", "exclusion config is missing a type tag")
	}
	factory, ok := exclusionRegistry[tag]
	if !ok {
		return nil, &RegistryError{Kind: "exclusion", Tag: tag}
	}
	return factory(space, cfg)
}

// maskExcludes performs the shared nearest-neighbor exclusion test:
// the point is excluded when its snapped grid cell is false.
func maskExcludes(space *Space, mask *Mask, point []float64) (bool, error) {
	indices, err := space.NearestIndex(point)
	if err != nil {
		return false, err
	}
	return !mask.At(indices), nil
}
