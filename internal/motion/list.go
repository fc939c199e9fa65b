package motion

// MotionList orchestrates a space, an insertion-ordered set of
// exclusions, and an insertion-ordered set of layers into the final
// ordered sequence of accepted target coordinates.
//
// The combined inclusion mask is the logical AND of every active
// exclusion's mask contribution. The final sequence is derived lazily:
// any add or remove invalidates the cache and the next read recomputes
// it. Reads never mutate membership.
type MotionList struct {
	space      *Space
	exclusions []Exclusion
	layers     []Layer

	mask        *Mask
	maskDirty   bool
	points      [][]float64
	pointsDirty bool
}

// NewMotionList builds a motion list over a space, adding the given
// layer and exclusion configs in order through the registries. A nil
// config slice is an empty one.
func NewMotionList(space *Space, layers, exclusions []map[string]interface{}) (*MotionList, error) {
	ml := &MotionList{
		space:       space,
		mask:        NewMask(space.Shape()),
		pointsDirty: true,
	}
	for _, cfg := range layers {
		if err := ml.AddLayer(cfg); err != nil {
			return nil, err
		}
	}
	for _, cfg := range exclusions {
		if err := ml.AddExclusion(cfg); err != nil {
			return nil, err
		}
	}
	return ml, nil
}

// Space returns the motion space the list was built over.
func (ml *MotionList) Space() *Space { return ml.space }

// Exclusions returns the active exclusions in insertion order.
func (ml *MotionList) Exclusions() []Exclusion {
	return append([]Exclusion(nil), ml.exclusions...)
}

// Layers returns the active layers in insertion order.
func (ml *MotionList) Layers() []Layer {
	return append([]Layer(nil), ml.layers...)
}

// AddExclusion constructs an exclusion from its config via the registry
// and folds its mask contribution into the combined mask. A failed
// construction leaves the list unchanged.
func (ml *MotionList) AddExclusion(cfg map[string]interface{}) error {
	ex, err := newExclusion(ml.space, cfg)
	if err != nil {
		return err
	}
	ml.exclusions = append(ml.exclusions, ex)
	if !ml.maskDirty {
		if err := ml.mask.And(ex.MaskContribution()); err != nil {
			return err
		}
	}
	ml.pointsDirty = true
	return nil
}

// RemoveExclusion removes the i-th exclusion (insertion order) and marks
// the mask for a full rebuild.
func (ml *MotionList) RemoveExclusion(i int) error {
	if i < 0 || i >= len(ml.exclusions) {
		return validationErrorf("exclusion", "index %d out of range (%d exclusions)", i, len(ml.exclusions))
	}
	ml.exclusions = append(ml.exclusions[:i], ml.exclusions[i+1:]...)
	ml.maskDirty = true
	ml.pointsDirty = true
	return nil
}

// AddLayer constructs a layer from its config via the registry and
// appends it. A failed construction leaves the list unchanged.
func (ml *MotionList) AddLayer(cfg map[string]interface{}) error {
	layer, err := newLayer(ml.space, cfg)
	if err != nil {
		return err
	}
	ml.layers = append(ml.layers, layer)
	ml.pointsDirty = true
	return nil
}

// RemoveLayer removes the i-th layer (insertion order).
func (ml *MotionList) RemoveLayer(i int) error {
	if i < 0 || i >= len(ml.layers) {
		return validationErrorf("layer", "index %d out of range (%d layers)", i, len(ml.layers))
	}
	ml.layers = append(ml.layers[:i], ml.layers[i+1:]...)
	ml.pointsDirty = true
	return nil
}

// Mask returns the combined inclusion mask, rebuilding it first if an
// exclusion was removed since the last read. Callers must not mutate the
// returned mask.
func (ml *MotionList) Mask() *Mask {
	if ml.maskDirty {
		ml.Rebuild()
	}
	return ml.mask
}

// Rebuild resets the mask to all-true and reapplies every active
// exclusion in insertion order. AND composition is order-independent, so
// a full recompute is the one correct way to undo a removal.
func (ml *MotionList) Rebuild() {
	ml.mask.Fill(true)
	for _, ex := range ml.exclusions {
		// Contributions share the space's shape; And cannot fail here.
		_ = ml.mask.And(ex.MaskContribution())
	}
	ml.maskDirty = false
}

// Points returns the final ordered point sequence: every layer's points
// flattened in layer-insertion order, filtered to candidates whose
// nearest grid cell is allowed by the combined mask. Order is preserved
// and nothing is deduplicated; this is the visitation order. The result
// is cached until the next mutation; callers must not mutate it.
func (ml *MotionList) Points() [][]float64 {
	if !ml.pointsDirty {
		return ml.points
	}

	mask := ml.Mask()
	var points [][]float64
	for _, layer := range ml.layers {
		for _, p := range layer.Points() {
			indices, err := ml.space.NearestIndex(p)
			if err != nil {
				// Layers generate points of the space's own
				// dimensionality; a mismatch cannot happen for
				// registered variants.
				continue
			}
			if mask.At(indices) {
				points = append(points, p)
			}
		}
	}

	ml.points = points
	ml.pointsDirty = false
	return points
}

// IsExcluded reports whether a point would be rejected by the combined
// mask, via the same nearest-neighbor lookup used during generation.
// External collaborators use it to pre-check planned targets before
// commanding motion hardware.
func (ml *MotionList) IsExcluded(point []float64) (bool, error) {
	return maskExcludes(ml.space, ml.Mask(), point)
}
