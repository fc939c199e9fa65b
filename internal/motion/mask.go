package motion

// Mask is an N-dimensional boolean array aligned to a space's coordinate
// grid; true marks an allowed point. The backing array is flat, row-major
// with the last axis varying fastest.
type Mask struct {
	shape []int
	cells []bool
}

// NewMask returns an all-true mask of the given grid shape.
func NewMask(shape []int) *Mask {
	n := 1
	for _, s := range shape {
		n *= s
	}
	m := &Mask{
		shape: append([]int(nil), shape...),
		cells: make([]bool, n),
	}
	m.Fill(true)
	return m
}

// Shape returns the per-axis lengths of the mask.
func (m *Mask) Shape() []int { return append([]int(nil), m.shape...) }

// Len returns the total number of cells.
func (m *Mask) Len() int { return len(m.cells) }

// Fill sets every cell to v.
func (m *Mask) Fill(v bool) {
	for i := range m.cells {
		m.cells[i] = v
	}
}

// flatIndex converts an index tuple to a flat offset. Indices are assumed
// in range; NearestIndex and grid iteration only produce valid tuples.
func (m *Mask) flatIndex(indices []int) int {
	flat := 0
	for i, idx := range indices {
		flat = flat*m.shape[i] + idx
	}
	return flat
}

// At reports the mask value at an index tuple.
func (m *Mask) At(indices []int) bool { return m.cells[m.flatIndex(indices)] }

// Set assigns the mask value at an index tuple.
func (m *Mask) Set(indices []int, v bool) { m.cells[m.flatIndex(indices)] = v }

// AtFlat reports the mask value at a flat offset.
func (m *Mask) AtFlat(i int) bool { return m.cells[i] }

// SetFlat assigns the mask value at a flat offset.
func (m *Mask) SetFlat(i int, v bool) { m.cells[i] = v }

// And combines another mask into this one with logical AND. The shapes
// must match the shared grid, so a length check suffices.
func (m *Mask) And(other *Mask) error {
	if len(m.cells) != len(other.cells) {
		return validationErrorf("mask", "shape mismatch: %v vs %v", m.shape, other.shape)
	}
	for i, v := range other.cells {
		m.cells[i] = m.cells[i] && v
	}
	return nil
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	c := &Mask{
		shape: append([]int(nil), m.shape...),
		cells: append([]bool(nil), m.cells...),
	}
	return c
}

// Equal reports whether two masks have the same shape and cell values.
func (m *Mask) Equal(other *Mask) bool {
	if len(m.shape) != len(other.shape) || len(m.cells) != len(other.cells) {
		return false
	}
	for i, s := range m.shape {
		if s != other.shape[i] {
			return false
		}
	}
	for i, v := range m.cells {
		if v != other.cells[i] {
			return false
		}
	}
	return true
}

// CountTrue returns the number of allowed cells.
func (m *Mask) CountTrue() int {
	n := 0
	for _, v := range m.cells {
		if v {
			n++
		}
	}
	return n
}
