package motion

import "fmt"

// ValidationError reports malformed or out-of-domain parameters for a
// space, axis, exclusion, or layer. It is always returned at construction
// time; a construction that fails leaves the motion list unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid parameters: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %q: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, v ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, v...)}
}

// RegistryError reports an unknown type tag at factory lookup. Duplicate
// registration is a startup-time configuration error and panics instead.
type RegistryError struct {
	Kind string // "exclusion" or "layer"
	Tag  string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Tag)
}

// DimensionMismatchError reports a point or parameter array whose
// dimensionality disagrees with the motion space's axis count.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: space has %d axes, got %d", e.Want, e.Got)
}
