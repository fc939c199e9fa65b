package drive

import (
	"context"
	"sync"
)

// MockMover implements Mover in memory for tests and dev mode. It
// records every commanded target and can be scripted to fail.
type MockMover struct {
	mu       sync.Mutex
	position []float64
	moves    [][]float64
	stopped  bool

	// FailAfter, when > 0, makes MoveTo fail once that many moves
	// have completed.
	FailAfter int

	// MoveErr is the error returned by a scripted failure.
	MoveErr error
}

// NewMockMover creates a mock mover resting at the given position.
func NewMockMover(start []float64) *MockMover {
	return &MockMover{position: append([]float64(nil), start...)}
}

// MoveTo implements Mover.
func (m *MockMover) MoveTo(ctx context.Context, point []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAfter > 0 && len(m.moves) >= m.FailAfter {
		return m.MoveErr
	}
	m.position = append([]float64(nil), point...)
	m.moves = append(m.moves, m.position)
	return nil
}

// CurrentPosition implements Mover.
func (m *MockMover) CurrentPosition(ctx context.Context) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.position...), nil
}

// Stop implements Mover.
func (m *MockMover) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	return nil
}

// Moves returns every commanded target in order.
func (m *MockMover) Moves() [][]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]float64(nil), m.moves...)
}

// Stopped reports whether Stop was called.
func (m *MockMover) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
