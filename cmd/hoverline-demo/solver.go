package main

import (
	"sync"

	"github.com/dshills/hoverline/internal/geometry"
)

// viewportSolver is a StandardSolver whose viewport follows the terminal
// size. Resize events write it from the event loop while the tracker and
// provider resolve positions on timer goroutines, so both paths go
// through the mutex.
type viewportSolver struct {
	mu    sync.Mutex
	inner geometry.StandardSolver
}

func (s *viewportSolver) setViewport(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Viewport = geometry.Rect{Width: float64(w), Height: float64(h)}
}

// ComputePosition resolves against a snapshot of the current viewport.
func (s *viewportSolver) ComputePosition(anchor geometry.Rect, floating geometry.Size, opts geometry.Options, done func(geometry.Point, error)) {
	s.mu.Lock()
	inner := s.inner
	s.mu.Unlock()
	inner.ComputePosition(anchor, floating, opts, done)
}

var _ geometry.Solver = (*viewportSolver)(nil)
