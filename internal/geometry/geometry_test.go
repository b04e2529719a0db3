package geometry

import "testing"

func TestRectEdgesNormalizeNegativeExtents(t *testing.T) {
	r := Rect{X: 100, Y: 50, Width: -40, Height: -30}

	if got := r.Left(); got != 60 {
		t.Errorf("Left() = %v, want 60", got)
	}
	if got := r.Right(); got != 100 {
		t.Errorf("Right() = %v, want 100", got)
	}
	if got := r.Top(); got != 20 {
		t.Errorf("Top() = %v, want 20", got)
	}
	if got := r.Bottom(); got != 50 {
		t.Errorf("Bottom() = %v, want 50", got)
	}
	if got := r.Size(); got.Width != 40 || got.Height != 30 {
		t.Errorf("Size() = %+v, want {40 30}", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"interior", Point{X: 15, Y: 15}, true},
		{"left-top edge", Point{X: 10, Y: 10}, true},
		{"right edge", Point{X: 30, Y: 15}, false},
		{"bottom edge", Point{X: 15, Y: 30}, false},
		{"outside", Point{X: 0, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestEnvelope(t *testing.T) {
	got, ok := Envelope(
		Rect{X: 10, Y: 20, Width: 5, Height: 5},
		Rect{X: 30, Y: 5, Width: 10, Height: 10},
	)
	if !ok {
		t.Fatal("Envelope returned ok=false for non-empty input")
	}
	want := Rect{X: 10, Y: 5, Width: 30, Height: 20}
	if got != want {
		t.Errorf("Envelope = %+v, want %+v", got, want)
	}

	if _, ok := Envelope(); ok {
		t.Error("Envelope() with no rects should report ok=false")
	}
}

func TestBasePosition(t *testing.T) {
	anchor := Rect{X: 100, Y: 100, Width: 50, Height: 20}
	floating := Size{Width: 30, Height: 10}

	tests := []struct {
		placement Placement
		want      Point
	}{
		{PlacementBottomStart, Point{X: 100, Y: 120}},
		{PlacementBottom, Point{X: 110, Y: 120}},
		{PlacementBottomEnd, Point{X: 120, Y: 120}},
		{PlacementTopStart, Point{X: 100, Y: 90}},
		{PlacementTop, Point{X: 110, Y: 90}},
		{PlacementTopEnd, Point{X: 120, Y: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.placement.String(), func(t *testing.T) {
			if got := basePosition(anchor, floating, tt.placement); got != tt.want {
				t.Errorf("basePosition = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOffsetShiftsAlongMainAxis(t *testing.T) {
	st := State{
		Anchor:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
		Floating:  Size{Width: 10, Height: 10},
		Placement: PlacementBottomStart,
		Pos:       Point{X: 0, Y: 10},
	}
	Offset(4).Run(&st)
	if st.Pos.Y != 14 {
		t.Errorf("bottom offset Pos.Y = %v, want 14", st.Pos.Y)
	}

	st = State{
		Placement: PlacementTopStart,
		Pos:       Point{X: 0, Y: -10},
	}
	Offset(4).Run(&st)
	if st.Pos.Y != -14 {
		t.Errorf("top offset Pos.Y = %v, want -14", st.Pos.Y)
	}
}

func TestFlipWhenOverflowingViewport(t *testing.T) {
	// Anchor near the bottom of a 100px-tall viewport: bottom placement
	// overflows, top side has room.
	st := State{
		Anchor:    Rect{X: 0, Y: 80, Width: 40, Height: 15},
		Floating:  Size{Width: 40, Height: 30},
		Viewport:  Rect{X: 0, Y: 0, Width: 200, Height: 100},
		Placement: PlacementBottomStart,
		Pos:       Point{X: 0, Y: 95},
	}
	Flip().Run(&st)

	if st.Placement != PlacementTopStart {
		t.Errorf("Placement = %v, want top-start", st.Placement)
	}
	if st.Pos.Y != 50 {
		t.Errorf("Pos.Y = %v, want 50", st.Pos.Y)
	}
}

func TestFlipKeepsPlacementWhenOppositeSideLacksRoom(t *testing.T) {
	// Tall element in a short viewport: overflows below, no room above.
	st := State{
		Anchor:    Rect{X: 0, Y: 40, Width: 40, Height: 15},
		Floating:  Size{Width: 40, Height: 90},
		Viewport:  Rect{X: 0, Y: 0, Width: 200, Height: 100},
		Placement: PlacementBottomStart,
		Pos:       Point{X: 0, Y: 55},
	}
	Flip().Run(&st)

	if st.Placement != PlacementBottomStart {
		t.Errorf("Placement = %v, want bottom-start (unflipped)", st.Placement)
	}
}

func TestStandardSolverResolvesWithMiddleware(t *testing.T) {
	solver := &StandardSolver{Viewport: Rect{Width: 800, Height: 600}}
	anchor := Rect{X: 100, Y: 100, Width: 60, Height: 20}

	var gotPos Point
	var gotErr error
	solver.ComputePosition(anchor, Size{Width: 40, Height: 30}, Options{
		Placement:  PlacementBottomStart,
		Middleware: []Middleware{Offset(6), Flip()},
	}, func(p Point, err error) {
		gotPos, gotErr = p, err
	})

	if gotErr != nil {
		t.Fatalf("ComputePosition error: %v", gotErr)
	}
	want := Point{X: 100, Y: 126}
	if gotPos != want {
		t.Errorf("position = %+v, want %+v", gotPos, want)
	}
}

func TestStandardSolverRejectsZeroExtent(t *testing.T) {
	solver := &StandardSolver{Viewport: Rect{Width: 800, Height: 600}}

	called := false
	solver.ComputePosition(Rect{Width: 10, Height: 10}, Size{}, Options{}, func(_ Point, err error) {
		called = true
		if err != ErrNoExtent {
			t.Errorf("err = %v, want ErrNoExtent", err)
		}
	})
	if !called {
		t.Error("done was not invoked on rejection")
	}
}

func TestStandardSolverClampsCrossAxis(t *testing.T) {
	solver := &StandardSolver{Viewport: Rect{Width: 100, Height: 100}}
	// End-aligned placement pushes X negative; clamp to viewport left.
	anchor := Rect{X: 0, Y: 10, Width: 10, Height: 10}

	var got Point
	solver.ComputePosition(anchor, Size{Width: 40, Height: 10}, Options{
		Placement: PlacementBottomEnd,
	}, func(p Point, err error) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = p
	})
	if got.X != 0 {
		t.Errorf("Pos.X = %v, want 0 (clamped)", got.X)
	}
}
