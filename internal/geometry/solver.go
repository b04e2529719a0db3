package geometry

import "errors"

// ErrNoExtent is reported when the floating element has no measurable size,
// typically because it is detached from its rendering surface.
var ErrNoExtent = errors.New("geometry: floating element has no extent")

// Options configures a position resolution.
type Options struct {
	// Placement is the preferred side and alignment.
	Placement Placement

	// Middleware is applied in order after the base position is computed.
	Middleware []Middleware

	// Viewport bounds flipping and clamping. Zero means the solver's own
	// viewport (for StandardSolver) or no constraint.
	Viewport Rect
}

// Solver resolves the screen position of a floating element relative to an
// anchor rectangle.
//
// Resolution may complete asynchronously: done is invoked exactly once,
// possibly from another goroutine and possibly after ComputePosition has
// returned. Callers must not assume the surrounding state is unchanged by
// the time done runs.
type Solver interface {
	ComputePosition(anchor Rect, floating Size, opts Options, done func(Point, error))
}

// StandardSolver is a self-contained Solver that resolves synchronously.
// Hosts with an external positioning engine substitute their own Solver;
// the overlay subsystems only depend on the interface.
type StandardSolver struct {
	// Viewport is used when Options.Viewport is zero.
	Viewport Rect
}

// ComputePosition resolves the position and invokes done before returning.
func (s *StandardSolver) ComputePosition(anchor Rect, floating Size, opts Options, done func(Point, error)) {
	if floating.Width <= 0 || floating.Height <= 0 {
		done(Point{}, ErrNoExtent)
		return
	}

	st := State{
		Anchor:    anchor,
		Floating:  floating,
		Viewport:  opts.Viewport,
		Placement: opts.Placement,
	}
	if st.Viewport.IsEmpty() {
		st.Viewport = s.Viewport
	}
	st.Pos = basePosition(anchor, floating, st.Placement)

	for _, mw := range opts.Middleware {
		mw.Run(&st)
	}

	// Keep the element inside the viewport on the cross axis.
	if !st.Viewport.IsEmpty() {
		if st.Pos.X+floating.Width > st.Viewport.Right() {
			st.Pos.X = st.Viewport.Right() - floating.Width
		}
		if st.Pos.X < st.Viewport.Left() {
			st.Pos.X = st.Viewport.Left()
		}
	}

	done(st.Pos, nil)
}
