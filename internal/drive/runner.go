package drive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/probe.motion/internal/monitoring"
	"github.com/banshee-data/probe.motion/internal/motion"
	"github.com/banshee-data/probe.motion/internal/timeutil"
)

// Runner walks a motion list's final point sequence and commands the
// mover to each point in visitation order. Every target is pre-checked
// against the list's inclusion mask before motion is commanded.
type Runner struct {
	mover Mover
	list  *motion.MotionList

	// RunID identifies this pass for run records and logs.
	RunID string

	// SettleDelay is an optional pause after each completed move,
	// giving diagnostics time to acquire before the next target.
	SettleDelay time.Duration

	// Clock abstracts the settle delay for tests.
	Clock timeutil.Clock

	// OnStep, when set, is invoked after each completed move with the
	// sequence index and the reached point.
	OnStep func(index int, point []float64)
}

// NewRunner creates a runner over a mover and a generated motion list.
func NewRunner(mover Mover, list *motion.MotionList) *Runner {
	return &Runner{
		mover: mover,
		list:  list,
		RunID: uuid.NewString(),
		Clock: timeutil.RealClock{},
	}
}

// Run drives the full sequence. It returns the number of points visited
// and the first error encountered. On cancellation the mover is stopped
// before returning ctx's error.
func (r *Runner) Run(ctx context.Context) (visited int, err error) {
	points := r.list.Points()
	monitoring.Logf("run %s: %d points to visit", r.RunID, len(points))

	for i, point := range points {
		select {
		case <-ctx.Done():
			return visited, r.abort(ctx, visited)
		default:
		}

		// Safety pre-check: the generated sequence only contains
		// allowed points, so a hit here means the list was mutated
		// out from under the runner.
		excluded, err := r.list.IsExcluded(point)
		if err != nil {
			return visited, err
		}
		if excluded {
			return visited, fmt.Errorf("run %s: target %d %v is excluded", r.RunID, i, point)
		}

		if err := r.mover.MoveTo(ctx, point); err != nil {
			if ctx.Err() != nil {
				return visited, r.abort(ctx, visited)
			}
			return visited, fmt.Errorf("run %s: move to point %d failed: %w", r.RunID, i, err)
		}
		visited++

		if r.OnStep != nil {
			r.OnStep(i, point)
		}

		if r.SettleDelay > 0 && i < len(points)-1 {
			select {
			case <-r.Clock.After(r.SettleDelay):
			case <-ctx.Done():
				return visited, r.abort(ctx, visited)
			}
		}
	}

	monitoring.Logf("run %s: completed, %d points visited", r.RunID, visited)
	return visited, nil
}

// abort stops the mover after a cancellation. The stop itself uses a
// fresh context since ctx is already done.
func (r *Runner) abort(ctx context.Context, visited int) error {
	monitoring.Logf("run %s: aborted after %d points", r.RunID, visited)
	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.mover.Stop(stopCtx); err != nil {
		monitoring.Logf("run %s: stop after abort failed: %v", r.RunID, err)
	}
	return ctx.Err()
}
