package main

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/hoverline/internal/element"
	"github.com/dshills/hoverline/internal/geometry"
	"github.com/dshills/hoverline/internal/popup"
)

// The provider evaluates on timer goroutines while the event loop types;
// under the race detector this test fails unless the surface serializes
// its document accesses.
func TestSurfaceConcurrentTypingAndEvaluation(t *testing.T) {
	s := &surface{}
	el := element.NewBase(18, 6)
	p, err := popup.NewProvider(popup.Options{
		Element:  el,
		Debounce: time.Millisecond,
		Solver:   &viewportSolver{},
		Logf:     t.Logf,
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	defer p.Destroy()

	for i := 0; i < 100; i++ {
		s.typeRune('a')
		p.Update(s)
		if i%10 == 0 {
			s.backspace()
			p.Update(s)
		}
	}
	s.typeRune('/')
	p.Update(s)
	time.Sleep(50 * time.Millisecond)

	if !p.Visible() {
		t.Error("popup should be visible after a trailing trigger")
	}
	got := s.text()
	if got[len(got)-1] != '/' {
		t.Errorf("doc ends with %q, want '/'", got[len(got)-1])
	}
}

func TestSurfaceBackspaceOnEmptyDoc(t *testing.T) {
	s := &surface{}
	if s.backspace() {
		t.Error("backspace on an empty document should report false")
	}
	s.typeRune('x')
	if !s.backspace() {
		t.Error("backspace should report true after typing")
	}
	if got := s.text(); got != "" {
		t.Errorf("doc = %q, want empty", got)
	}
}

// Resize events rewrite the viewport while resolutions run on timer
// goroutines; the solver must snapshot it per computation.
func TestViewportSolverConcurrentResize(t *testing.T) {
	solver := &viewportSolver{}
	solver.setViewport(800, 600)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			solver.setViewport(100+i, 100+i)
		}
	}()

	anchor := geometry.Rect{X: 10, Y: 10, Width: 2, Height: 14}
	for i := 0; i < 200; i++ {
		solver.ComputePosition(anchor, geometry.Size{Width: 20, Height: 10}, geometry.Options{}, func(_ geometry.Point, err error) {
			if err != nil {
				t.Errorf("ComputePosition error: %v", err)
			}
		})
	}
	wg.Wait()

	// A quiescent solver resolves against the last viewport written.
	solver.setViewport(100, 100)
	var got geometry.Point
	solver.ComputePosition(geometry.Rect{X: 90, Y: 10, Width: 2, Height: 14}, geometry.Size{Width: 40, Height: 10}, geometry.Options{}, func(p geometry.Point, err error) {
		if err != nil {
			t.Fatalf("ComputePosition error: %v", err)
		}
		got = p
	})
	if got.X != 60 {
		t.Errorf("Pos.X = %v, want 60 (clamped to the 100px viewport)", got.X)
	}
}
