package tablehandle

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/dshills/hoverline/internal/element"
	"github.com/dshills/hoverline/internal/geometry"
	"github.com/dshills/hoverline/internal/sched"
	"github.com/dshills/hoverline/internal/view"
)

// Defaults, overridable through Options or live config.
const (
	DefaultBoundaryThreshold = 8.0
	DefaultThrottleInterval  = 20 * time.Millisecond
	DefaultHideDelay         = 200 * time.Millisecond

	// Fallback thickness when an element has never been measured.
	defaultLineThickness   = 2.0
	defaultHandleThickness = 16.0
)

// Options configures a Tracker. Zero values select the defaults.
type Options struct {
	// BoundaryThreshold is the pixel distance from a cell edge at which
	// boundary mode engages.
	BoundaryThreshold float64

	// ThrottleInterval is the pointer-move throttle window.
	ThrottleInterval time.Duration

	// HideDelay is the pointer-leave grace period before hiding.
	HideDelay time.Duration

	// Solver resolves insertion-line positions. Defaults to a
	// StandardSolver with no viewport constraint.
	Solver geometry.Solver

	// Logf receives non-fatal solver failures. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Tracker consumes pointer events over the document's table region and
// drives the indicator elements in the Refs bag.
type Tracker struct {
	mu      sync.Mutex
	refs    *Refs
	opts    Options
	throttl *sched.Throttler
	hider   *sched.Debouncer
	gen     uint64
	stopped bool
}

// NewTracker creates a tracker over the given refs bag.
func NewTracker(refs *Refs, opts Options) *Tracker {
	if opts.BoundaryThreshold <= 0 {
		opts.BoundaryThreshold = DefaultBoundaryThreshold
	}
	if opts.ThrottleInterval <= 0 {
		opts.ThrottleInterval = DefaultThrottleInterval
	}
	if opts.HideDelay <= 0 {
		opts.HideDelay = DefaultHideDelay
	}
	if opts.Solver == nil {
		opts.Solver = &geometry.StandardSolver{}
	}
	if opts.Logf == nil {
		opts.Logf = log.Printf
	}
	return &Tracker{
		refs:    refs,
		opts:    opts,
		throttl: sched.NewThrottler(opts.ThrottleInterval),
		hider:   sched.NewDebouncer(opts.HideDelay),
	}
}

// PointerMove handles a pointer-move event at screen point p. Processing
// is throttled; bursts within one window coalesce to the latest point.
// Any pending leave-hide is cancelled, so re-entering before the grace
// period elapses never hides the indicators.
func (t *Tracker) PointerMove(v view.View, p geometry.Point) {
	t.hider.Cancel()
	t.throttl.Call(func() {
		t.track(v, p)
	})
}

// PointerLeave schedules hiding all four indicators after the grace
// period. A pointer-move before it elapses cancels the hide.
func (t *Tracker) PointerLeave() {
	t.hider.Schedule(t.hideAll)
}

// Stop cancels all pending work. Subsequent events and in-flight solver
// resolutions become no-ops.
func (t *Tracker) Stop() {
	t.throttl.Cancel()
	t.hider.Cancel()

	t.mu.Lock()
	t.stopped = true
	t.gen++
	t.mu.Unlock()
}

// SetTuning applies new rate-limiting and threshold values, typically
// from a config reload. Zero values keep the current setting.
func (t *Tracker) SetTuning(threshold float64, throttle, hideDelay time.Duration) {
	t.mu.Lock()
	if threshold > 0 {
		t.opts.BoundaryThreshold = threshold
	}
	t.mu.Unlock()
	if throttle > 0 {
		t.throttl.SetInterval(throttle)
	}
	if hideDelay > 0 {
		t.hider.SetDelay(hideDelay)
	}
}

// proximity records which cell edges the pointer is near.
type proximity struct {
	left, right, top, bottom bool
}

func (p proximity) any() bool {
	return p.left || p.right || p.top || p.bottom
}

func nearEdges(p geometry.Point, cell geometry.Rect, threshold float64) proximity {
	return proximity{
		left:   math.Abs(p.X-cell.Left()) < threshold,
		right:  math.Abs(p.X-cell.Right()) < threshold,
		top:    math.Abs(p.Y-cell.Top()) < threshold,
		bottom: math.Abs(p.Y-cell.Bottom()) < threshold,
	}
}

// lineRequest is an insertion-line placement to resolve through the
// solver once the tracker's lock is released.
type lineRequest struct {
	el     element.Element
	anchor geometry.Rect
	size   geometry.Size
}

func (t *Tracker) track(v view.View, p geometry.Point) {
	var lines []lineRequest
	var gen uint64

	t.mu.Lock()
	func() {
		defer t.mu.Unlock()
		if t.stopped || v == nil || !v.Editable() {
			return
		}
		r := t.refs
		if r == nil || !r.ready() {
			return
		}
		idx, ok := v.CellAt(p)
		if !ok {
			return
		}
		regs, ok := v.CellRegions(idx)
		if !ok {
			return
		}

		near := nearEdges(p, regs.Cell, t.opts.BoundaryThreshold)

		// Reset contextual button groups before deciding the new state.
		if r.RowButtons != nil {
			r.RowButtons.SetVisible(false)
		}
		if r.ColButtons != nil {
			r.ColButtons.SetVisible(false)
		}

		if near.any() {
			t.gen++
			gen = t.gen
			lines = t.trackBoundary(idx, regs, near)
			return
		}
		t.trackWhole(idx, regs)
	}()

	// Resolve line positions outside the lock; the solver may answer
	// inline or from another goroutine.
	for _, lr := range lines {
		t.placeLine(lr, gen)
	}
}

// trackBoundary enters boundary mode and returns the line placements to
// resolve. Caller holds the lock.
func (t *Tracker) trackBoundary(idx view.CellIndex, regs view.Regions, near proximity) []lineRequest {
	r := t.refs
	r.RowHandle.SetVisible(false)
	r.ColHandle.SetVisible(false)
	r.VerticalLine.SetAttr(AttrDisplay, DisplayInsertTool)
	r.HorizontalLine.SetAttr(AttrDisplay, DisplayInsertTool)

	content := r.Content.Bounds()
	lineHover := view.NoCell
	var lines []lineRequest

	if near.left || near.right {
		thickness := r.VerticalLine.Bounds().Width
		if thickness <= 0 {
			thickness = defaultLineThickness
		}
		height := content.Size().Height

		var edgeX, shift float64
		if near.left {
			edgeX = regs.Cell.Left()
			shift = -thickness // flush outside the cell
			lineHover.Col = idx.Col
		} else {
			edgeX = regs.Cell.Right()
			lineHover.Col = idx.Col + 1
		}
		lines = append(lines, lineRequest{
			el:     r.VerticalLine,
			anchor: geometry.Rect{X: edgeX + shift, Y: content.Top()},
			size:   geometry.Size{Width: thickness, Height: height},
		})
	} else {
		r.VerticalLine.SetVisible(false)
	}

	// Rows cannot be inserted around the header row, so the horizontal
	// line stays hidden for row 0 regardless of proximity.
	if (near.top || near.bottom) && idx.Row != 0 {
		thickness := r.HorizontalLine.Bounds().Height
		if thickness <= 0 {
			thickness = defaultLineThickness
		}
		width := content.Size().Width

		var edgeY, shift float64
		if near.top {
			edgeY = regs.Cell.Top()
			shift = -thickness
			lineHover.Row = idx.Row
		} else {
			edgeY = regs.Cell.Bottom()
			lineHover.Row = idx.Row + 1
		}
		lines = append(lines, lineRequest{
			el:     r.HorizontalLine,
			anchor: geometry.Rect{X: content.Left(), Y: edgeY + shift},
			size:   geometry.Size{Width: width, Height: thickness},
		})
	} else {
		r.HorizontalLine.SetVisible(false)
	}

	r.LineHoverIndex = lineHover
	return lines
}

// trackWhole shows the whole row/column handles. Caller holds the lock.
func (t *Tracker) trackWhole(idx view.CellIndex, regs view.Regions) {
	r := t.refs

	r.LineHoverIndex = view.NoCell
	r.VerticalLine.SetVisible(false)
	r.HorizontalLine.SetVisible(false)
	r.VerticalLine.SetAttr(AttrDisplay, DisplayResizeHandle)
	r.HorizontalLine.SetAttr(AttrDisplay, DisplayResizeHandle)

	// Position before revealing: a visible handle always has a position
	// computed from the current event.
	rowThickness := r.RowHandle.Bounds().Width
	if rowThickness <= 0 {
		rowThickness = defaultHandleThickness
	}
	r.RowHandle.SetExtent(rowThickness, regs.Row.Size().Height)
	r.RowHandle.SetOffset(regs.Row.Left()-rowThickness, regs.Row.Top())
	r.RowHandle.SetVisible(true)

	colThickness := r.ColHandle.Bounds().Height
	if colThickness <= 0 {
		colThickness = defaultHandleThickness
	}
	r.ColHandle.SetExtent(regs.Col.Size().Width, colThickness)
	r.ColHandle.SetOffset(regs.Col.Left(), regs.Col.Top()-colThickness)
	r.ColHandle.SetVisible(true)

	r.HoverIndex = idx
}

// placeLine asks the solver for the line position and applies it when the
// resolution is still current. The line stays hidden until then.
func (t *Tracker) placeLine(lr lineRequest, gen uint64) {
	t.opts.Solver.ComputePosition(lr.anchor, lr.size, geometry.Options{
		Placement: geometry.PlacementBottomStart,
	}, func(pos geometry.Point, err error) {
		if err != nil {
			t.opts.Logf("tablehandle: line position: %v", err)
			return
		}
		t.applyLine(lr, pos, gen)
	})
}

func (t *Tracker) applyLine(lr lineRequest, pos geometry.Point, gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A later event or hide supersedes this resolution; applying it would
	// resurrect a stale indicator.
	if t.stopped || gen != t.gen {
		return
	}
	lr.el.SetExtent(lr.size.Width, lr.size.Height)
	lr.el.SetOffset(pos.X, pos.Y)
	lr.el.SetVisible(true)
}

// hideAll hides every indicator. Runs after the leave grace period.
func (t *Tracker) hideAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	r := t.refs
	if r == nil || !r.ready() {
		return
	}
	t.gen++
	r.RowHandle.SetVisible(false)
	r.ColHandle.SetVisible(false)
	r.VerticalLine.SetVisible(false)
	r.HorizontalLine.SetVisible(false)
}
