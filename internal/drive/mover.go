// Package drive consumes a generated motion list and commands motion
// hardware one point at a time. The engine itself never talks to
// hardware; this package is the collaborator that does.
package drive

import (
	"context"
)

// Mover is the capability contract exposed by a motion controller. The
// engine's point sequences are consumed index-by-index through MoveTo;
// implementations own all retry and timeout behaviour.
type Mover interface {
	// MoveTo commands motion to the given position and blocks until
	// the move settles or ctx is cancelled.
	MoveTo(ctx context.Context, point []float64) error

	// CurrentPosition reports the present position of all axes.
	CurrentPosition(ctx context.Context) ([]float64, error)

	// Stop halts motion immediately.
	Stop(ctx context.Context) error
}
