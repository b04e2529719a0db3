package popup

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/hoverline/internal/element"
	"github.com/dshills/hoverline/internal/geometry"
	"github.com/dshills/hoverline/internal/view"
)

// fakeView is a single-paragraph editor surface.
type fakeView struct {
	editable  bool
	focused   bool
	composing bool
	doc       string
	sel       view.Selection
	rects     []geometry.Rect
	kind      string
}

func newFakeView(doc string) *fakeView {
	return &fakeView{
		editable: true,
		focused:  true,
		doc:      doc,
		sel:      view.Selection{Ranges: []view.Range{{From: len(doc), To: len(doc)}}},
		rects:    []geometry.Rect{{X: 200, Y: 300, Width: 2, Height: 14}},
		kind:     "paragraph",
	}
}

func (f *fakeView) Editable() bool { return f.editable }

func (f *fakeView) Focused() bool { return f.focused }

func (f *fakeView) Composing() bool { return f.composing }

func (f *fakeView) State() view.State { return view.State{Doc: f.doc, Selection: f.sel} }

func (f *fakeView) SelectionRects() []geometry.Rect { return f.rects }

func (f *fakeView) ContentRect() geometry.Rect { return geometry.Rect{} }

func (f *fakeView) CellAt(geometry.Point) (view.CellIndex, bool) {
	return view.NoCell, false
}

func (f *fakeView) CellRegions(view.CellIndex) (view.Regions, bool) {
	return view.Regions{}, false
}

func (f *fakeView) AncestorBlock(m view.BlockMatcher) (view.Block, bool) {
	pos, ok := f.sel.Caret()
	if !ok {
		return nil, false
	}
	if pos > len(f.doc) {
		pos = len(f.doc)
	}
	blk := view.TextBlock{Kind: f.kind, Text: f.doc[:pos]}
	if m != nil && !m(blk) {
		return nil, false
	}
	return blk, true
}

// countingSolver wraps StandardSolver, counting calls and recording the
// last options seen.
type countingSolver struct {
	mu    sync.Mutex
	calls int
	last  geometry.Options
	inner geometry.StandardSolver
}

func (s *countingSolver) ComputePosition(anchor geometry.Rect, floating geometry.Size, opts geometry.Options, done func(geometry.Point, error)) {
	s.mu.Lock()
	s.calls++
	s.last = opts
	s.mu.Unlock()
	s.inner.ComputePosition(anchor, floating, opts, done)
}

func (s *countingSolver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

const testDebounce = 10 * time.Millisecond

// settle waits out the debounce quiet period.
func settle() {
	time.Sleep(5 * testDebounce)
}

func newTestProvider(t *testing.T, opts Options) *Provider {
	t.Helper()
	if opts.Element == nil {
		opts.Element = element.NewBase(120, 80)
	}
	if opts.Debounce == 0 {
		opts.Debounce = testDebounce
	}
	if opts.Logf == nil {
		opts.Logf = t.Logf
	}
	p, err := NewProvider(opts)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return p
}

func TestNewProviderRequiresElement(t *testing.T) {
	if _, err := NewProvider(Options{}); err != ErrNoElement {
		t.Errorf("err = %v, want ErrNoElement", err)
	}
}

func TestTrailingTriggerShowsPopup(t *testing.T) {
	el := element.NewBase(120, 80)
	p := newTestProvider(t, Options{Element: el})
	defer p.Destroy()

	p.Update(newFakeView("hello/"))
	settle()

	if !p.Visible() || !el.Visible() {
		t.Fatal("popup should be visible for trailing trigger")
	}
	// bottom-start + default 4px offset below the caret rect.
	b := el.Bounds()
	if b.X != 200 || b.Y != 318 {
		t.Errorf("popup offset = (%v, %v), want (200, 318)", b.X, b.Y)
	}
}

func TestDeletingTriggerHidesPopup(t *testing.T) {
	el := element.NewBase(120, 80)
	p := newTestProvider(t, Options{Element: el})
	defer p.Destroy()

	p.Update(newFakeView("hello/"))
	settle()
	if !p.Visible() {
		t.Fatal("popup should be visible for trailing trigger")
	}

	p.Update(newFakeView("hello"))
	settle()
	if p.Visible() || el.Visible() {
		t.Error("popup should hide when the trigger is deleted")
	}
}

func TestUnchangedStateSkipsEvaluation(t *testing.T) {
	solver := &countingSolver{}
	var shows atomic.Int32
	p := newTestProvider(t, Options{
		Solver: solver,
		OnShow: func() { shows.Add(1) },
	})
	defer p.Destroy()

	p.Update(newFakeView("hello/"))
	settle()
	p.Update(newFakeView("hello/"))
	settle()

	if got := solver.count(); got != 1 {
		t.Errorf("solver calls = %d, want 1 (second update skipped)", got)
	}
	if shows.Load() != 1 {
		t.Errorf("OnShow fired %d times, want 1", shows.Load())
	}
}

func TestComposingSkipsEvaluation(t *testing.T) {
	p := newTestProvider(t, Options{})
	defer p.Destroy()

	v := newFakeView("hello/")
	v.composing = true
	p.Update(v)
	settle()

	if p.Visible() {
		t.Error("mid-composition update must not change visibility")
	}
}

func TestDebounceCoalescesUpdates(t *testing.T) {
	solver := &countingSolver{}
	p := newTestProvider(t, Options{Solver: solver})
	defer p.Destroy()

	for i := 0; i < 5; i++ {
		p.Update(newFakeView(fmt.Sprintf("hello%d/", i)))
	}
	settle()

	if got := solver.count(); got != 1 {
		t.Errorf("solver calls = %d, want 1 (burst coalesced)", got)
	}
}

func TestFocusLossHidesOnNextUpdate(t *testing.T) {
	p := newTestProvider(t, Options{})
	defer p.Destroy()

	p.Update(newFakeView("hello/"))
	settle()
	if !p.Visible() {
		t.Fatal("popup should be visible before blur")
	}

	// Blur moves the selection as well, so the state differs.
	blurred := newFakeView("hello/")
	blurred.focused = false
	blurred.sel = view.Selection{Ranges: []view.Range{{From: 0, To: 0}}}
	p.Update(blurred)
	settle()

	if p.Visible() {
		t.Error("popup should hide after losing focus")
	}
}

func TestPopupKeepsShowingWhenItHoldsFocus(t *testing.T) {
	el := element.NewBase(120, 80)
	env := element.NewBasicEnvironment(&element.Group{})
	env.SetFocus(el)
	p := newTestProvider(t, Options{Element: el, Env: env})
	defer p.Destroy()

	v := newFakeView("hello/")
	v.focused = false // focus moved into the popup subtree
	p.Update(v)
	settle()

	if !p.Visible() {
		t.Error("popup holding focus should satisfy the focus precondition")
	}
}

func TestAttachHappensExactlyOnce(t *testing.T) {
	host := &element.Group{}
	el := element.NewBase(120, 80)
	p := newTestProvider(t, Options{Element: el, Host: host})
	defer p.Destroy()

	for i := 0; i < 4; i++ {
		p.Update(newFakeView(fmt.Sprintf("doc %d/", i)))
		settle()
	}

	if got := host.Len(); got != 1 {
		t.Errorf("host children = %d, want 1 (attach once per provider)", got)
	}
	if !host.Contains(el) {
		t.Error("element should be attached to the host")
	}
}

func TestAttachUsesEnvironmentDefaultHost(t *testing.T) {
	host := &element.Group{}
	env := element.NewBasicEnvironment(host)
	el := element.NewBase(120, 80)
	p := newTestProvider(t, Options{Element: el, Env: env})
	defer p.Destroy()

	p.Update(newFakeView("x/"))
	settle()

	if !host.Contains(el) {
		t.Error("element should attach to the environment's default host")
	}
}

func TestDestroyCancelsPendingEvaluation(t *testing.T) {
	host := &element.Group{}
	solver := &countingSolver{}
	el := element.NewBase(120, 80)
	p := newTestProvider(t, Options{Element: el, Host: host, Solver: solver})

	p.Update(newFakeView("hello/"))
	p.Destroy()
	settle()

	if el.Visible() {
		t.Error("destroyed provider must not show the element")
	}
	if solver.count() != 0 {
		t.Error("destroyed provider must not compute positions")
	}
	if host.Len() != 0 {
		t.Error("destroyed provider must not attach the element")
	}
}

func TestSolverRejectionLeavesStateUntouched(t *testing.T) {
	// Zero-extent element: StandardSolver rejects with ErrNoExtent.
	el := element.NewBase(0, 0)
	var logged atomic.Int32
	p := newTestProvider(t, Options{
		Element: el,
		Logf:    func(string, ...any) { logged.Add(1) },
	})
	defer p.Destroy()

	p.Update(newFakeView("hello/"))
	settle()

	if logged.Load() == 0 {
		t.Error("solver rejection should be logged")
	}
	// Visibility already transitioned; position stays at its prior value.
	if b := el.Bounds(); b.X != 0 || b.Y != 0 {
		t.Errorf("rejected solve must not move the element, got (%v, %v)", b.X, b.Y)
	}
}

func TestMultiRangeSelectionAnchorsToEnvelope(t *testing.T) {
	solver := &countingSolver{}
	el := element.NewBase(120, 80)
	p := newTestProvider(t, Options{
		Element: el,
		Solver:  solver,
		ShouldShow: func(view.View) bool {
			return true
		},
	})
	defer p.Destroy()

	v := newFakeView("hello/")
	v.rects = []geometry.Rect{
		{X: 300, Y: 100, Width: 2, Height: 14},
		{X: 180, Y: 140, Width: 2, Height: 14},
	}
	p.Update(v)
	settle()

	// Envelope spans (180,100)-(302,154); bottom-start + 4px offset.
	b := el.Bounds()
	if b.X != 180 || b.Y != 158 {
		t.Errorf("popup offset = (%v, %v), want (180, 158)", b.X, b.Y)
	}
}

func TestDefaultSolverOptions(t *testing.T) {
	solver := &countingSolver{}
	p := newTestProvider(t, Options{Solver: solver})
	defer p.Destroy()

	p.Update(newFakeView("hello/"))
	settle()

	solver.mu.Lock()
	defer solver.mu.Unlock()
	if solver.last.Placement != geometry.PlacementBottomStart {
		t.Errorf("placement = %v, want bottom-start", solver.last.Placement)
	}
	if len(solver.last.Middleware) != 2 {
		t.Errorf("middleware count = %d, want 2 (offset, flip)", len(solver.last.Middleware))
	}
}

func TestSolverOptionsOverrideWins(t *testing.T) {
	solver := &countingSolver{}
	p := newTestProvider(t, Options{
		Solver: solver,
		SolverOptions: &geometry.Options{
			Placement: geometry.PlacementTopEnd,
		},
	})
	defer p.Destroy()

	p.Update(newFakeView("hello/"))
	settle()

	solver.mu.Lock()
	defer solver.mu.Unlock()
	if solver.last.Placement != geometry.PlacementTopEnd {
		t.Errorf("placement = %v, want top-end (caller override)", solver.last.Placement)
	}
	if len(solver.last.Middleware) != 0 {
		t.Errorf("middleware count = %d, want 0 (full override)", len(solver.last.Middleware))
	}
}

func TestCustomTriggerSet(t *testing.T) {
	p := newTestProvider(t, Options{Triggers: "/@"})
	defer p.Destroy()

	p.Update(newFakeView("mention @"))
	settle()

	if !p.Visible() {
		t.Error("popup should show for any configured trigger character")
	}
}

func TestOnHideCallback(t *testing.T) {
	var hides atomic.Int32
	p := newTestProvider(t, Options{OnHide: func() { hides.Add(1) }})
	defer p.Destroy()

	p.Update(newFakeView("hello/"))
	settle()
	p.Update(newFakeView("hello"))
	settle()
	// Already hidden: a further non-matching update must not re-fire.
	p.Update(newFakeView("hel"))
	settle()

	if hides.Load() != 1 {
		t.Errorf("OnHide fired %d times, want 1", hides.Load())
	}
}

func TestContentPreconditions(t *testing.T) {
	p := newTestProvider(t, Options{})
	defer p.Destroy()

	base := newFakeView("hello/")
	if got, ok := p.Content(base, nil); !ok || got != "hello/" {
		t.Fatalf("Content = (%q, %v), want (\"hello/\", true)", got, ok)
	}

	tests := []struct {
		name   string
		mutate func(*fakeView)
	}{
		{"not editable", func(v *fakeView) { v.editable = false }},
		{"not focused", func(v *fakeView) { v.focused = false }},
		{"expanded selection", func(v *fakeView) {
			v.sel = view.Selection{Ranges: []view.Range{{From: 0, To: 5}}}
		}},
		{"non-matching block", func(v *fakeView) { v.kind = "code_block" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newFakeView("hello/")
			tt.mutate(v)
			if _, ok := p.Content(v, nil); ok {
				t.Error("Content should report ok=false")
			}
		})
	}
}

func TestContentWindowsTrailingText(t *testing.T) {
	p := newTestProvider(t, Options{TextWindow: 500})
	defer p.Destroy()

	long := strings.Repeat("a", 600) + "/"
	got, ok := p.Content(newFakeView(long), nil)
	if !ok {
		t.Fatal("Content should succeed")
	}
	if len(got) != 500 {
		t.Errorf("window length = %d, want 500", len(got))
	}
	if !strings.HasSuffix(got, "/") {
		t.Error("window should preserve the trailing trigger")
	}
}

func TestContentCustomMatcher(t *testing.T) {
	p := newTestProvider(t, Options{})
	defer p.Destroy()

	v := newFakeView("code/")
	v.kind = "code_block"
	match := func(b view.Block) bool { return b.Type() == "code_block" }
	if got, ok := p.Content(v, match); !ok || got != "code/" {
		t.Errorf("Content = (%q, %v), want (\"code/\", true)", got, ok)
	}
}
