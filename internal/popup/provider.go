package popup

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dshills/hoverline/internal/element"
	"github.com/dshills/hoverline/internal/geometry"
	"github.com/dshills/hoverline/internal/sched"
	"github.com/dshills/hoverline/internal/view"
)

// Defaults, overridable through Options or live config.
const (
	DefaultDebounce   = 200 * time.Millisecond
	DefaultTriggers   = "/"
	DefaultTextWindow = 500
	DefaultOffset     = 4.0
)

// Placeholder stands for non-text inline content in extracted text.
const Placeholder = '￼'

// ErrNoElement is returned when Options.Element is missing.
var ErrNoElement = errors.New("popup: options require an element")

// Options configures a Provider. Element is required; everything else has
// a documented default.
type Options struct {
	// Element is the popup element the provider manages.
	Element element.Element

	// Debounce is the quiet period before an update evaluates.
	Debounce time.Duration

	// ShouldShow overrides the visibility predicate. The default checks
	// focus, editability, a collapsed caret in a matching block, and a
	// trailing trigger character.
	ShouldShow func(v view.View) bool

	// Triggers is the set of characters that activate the popup.
	Triggers string

	// Offset is the pixel gap between the anchor and the popup.
	Offset float64

	// Middleware is appended after the built-in offset and flip.
	Middleware []geometry.Middleware

	// SolverOptions, when set, replaces the built-in placement and
	// middleware entirely.
	SolverOptions *geometry.Options

	// Solver resolves popup positions. Defaults to a StandardSolver.
	Solver geometry.Solver

	// Host is the container the element attaches to on first update.
	// Defaults to the environment's default host.
	Host element.Container

	// Env supplies focus and default-host capabilities. Required for the
	// default predicate's focus check unless ShouldShow is overridden.
	Env element.Environment

	// Match filters which ancestor blocks can trigger the popup.
	// Defaults to view.ParagraphLike.
	Match view.BlockMatcher

	// TextWindow caps the trailing text inspected for a trigger.
	TextWindow int

	// OnShow and OnHide observe visibility transitions.
	OnShow func()
	OnHide func()

	// Logf receives non-fatal solver failures. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Provider positions and toggles a popup element from editor state.
type Provider struct {
	mu        sync.Mutex
	opts      Options
	debounce  *sched.Debouncer
	attached  bool
	visible   bool
	hasPrev   bool
	prev      view.State
	gen       uint64
	destroyed bool
}

// NewProvider creates a provider for opts.Element.
func NewProvider(opts Options) (*Provider, error) {
	if opts.Element == nil {
		return nil, ErrNoElement
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Triggers == "" {
		opts.Triggers = DefaultTriggers
	}
	if opts.Offset == 0 {
		opts.Offset = DefaultOffset
	}
	if opts.Solver == nil {
		opts.Solver = &geometry.StandardSolver{}
	}
	if opts.Match == nil {
		opts.Match = view.ParagraphLike
	}
	if opts.TextWindow <= 0 {
		opts.TextWindow = DefaultTextWindow
	}
	if opts.Logf == nil {
		opts.Logf = log.Printf
	}
	return &Provider{
		opts:     opts,
		debounce: sched.NewDebouncer(opts.Debounce),
	}, nil
}

// Update schedules an evaluation of the provider against v after the
// quiet period. Rapid calls coalesce to one evaluation.
func (p *Provider) Update(v view.View) {
	p.debounce.Schedule(func() {
		p.evaluate(v)
	})
}

// Visible returns the current state.
func (p *Provider) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// Show makes the popup visible without repositioning it.
func (p *Provider) Show() {
	p.mu.Lock()
	changed := p.showLocked()
	cb := p.opts.OnShow
	p.mu.Unlock()
	if changed && cb != nil {
		cb()
	}
}

// Hide makes the popup invisible.
func (p *Provider) Hide() {
	p.mu.Lock()
	changed := p.hideLocked()
	cb := p.opts.OnHide
	p.mu.Unlock()
	if changed && cb != nil {
		cb()
	}
}

// Destroy cancels pending debounced work. It does not detach the element;
// teardown order belongs to the host.
func (p *Provider) Destroy() {
	p.debounce.Cancel()

	p.mu.Lock()
	p.destroyed = true
	p.gen++
	p.mu.Unlock()
}

// SetTuning applies new debounce, trigger, and offset values, typically
// from a config reload. Zero values keep the current setting.
func (p *Provider) SetTuning(debounce time.Duration, triggers string, offset float64, textWindow int) {
	if debounce > 0 {
		p.debounce.SetDelay(debounce)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if debounce > 0 {
		p.opts.Debounce = debounce
	}
	if triggers != "" {
		p.opts.Triggers = triggers
	}
	if offset != 0 {
		p.opts.Offset = offset
	}
	if textWindow > 0 {
		p.opts.TextWindow = textWindow
	}
}

// showLocked transitions to Visible; returns true when the state changed.
func (p *Provider) showLocked() bool {
	if p.destroyed || p.visible {
		return false
	}
	p.visible = true
	p.opts.Element.SetVisible(true)
	return true
}

// hideLocked transitions to Hidden; returns true when the state changed.
func (p *Provider) hideLocked() bool {
	if p.destroyed || !p.visible {
		return false
	}
	p.visible = false
	p.opts.Element.SetVisible(false)
	return true
}

// evaluate runs one debounced update cycle. The visibility predicate runs
// without the lock held so caller-supplied predicates may query the
// provider.
func (p *Provider) evaluate(v view.View) {
	if v == nil {
		return
	}

	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	p.attachLocked()

	// Mid-composition updates and unchanged state are skipped whole: no
	// visibility change, no recomputation.
	if v.Composing() {
		p.mu.Unlock()
		return
	}
	st := v.State()
	if p.hasPrev && st.Eq(p.prev) {
		p.mu.Unlock()
		return
	}
	p.prev = st
	p.hasPrev = true
	shouldShow := p.opts.ShouldShow
	p.mu.Unlock()

	if shouldShow == nil {
		shouldShow = p.defaultShouldShow
	}
	if !shouldShow(v) {
		p.Hide()
		return
	}
	p.Show()
	p.solve(v)
}

// attachLocked appends the element to the resolved host exactly once per
// provider instance, even if the host option changes afterwards.
func (p *Provider) attachLocked() {
	if p.attached {
		return
	}
	host := p.opts.Host
	if host == nil && p.opts.Env != nil {
		host = p.opts.Env.DefaultHost()
	}
	if host == nil {
		return
	}
	host.Append(p.opts.Element)
	p.attached = true
}

// solve initiates the position computation for the current selection.
// The resolution callback re-validates provider state before writing, so
// a stale resolution cannot move or resurrect the popup.
func (p *Provider) solve(v view.View) {
	anchor, ok := geometry.Envelope(v.SelectionRects()...)

	p.mu.Lock()
	if p.destroyed || !p.visible {
		p.mu.Unlock()
		return
	}
	if !ok {
		logf := p.opts.Logf
		p.mu.Unlock()
		logf("popup: no selection rects to anchor to")
		return
	}

	opts := geometry.Options{
		Placement: geometry.PlacementBottomStart,
		Middleware: append([]geometry.Middleware{
			geometry.Offset(p.opts.Offset),
			geometry.Flip(),
		}, p.opts.Middleware...),
	}
	if p.opts.SolverOptions != nil {
		opts = *p.opts.SolverOptions
	}

	p.gen++
	gen := p.gen
	floating := p.opts.Element.Bounds().Size()
	solver := p.opts.Solver
	logf := p.opts.Logf
	p.mu.Unlock()

	solver.ComputePosition(anchor, floating, opts, func(pos geometry.Point, err error) {
		if err != nil {
			logf("popup: position: %v", err)
			return
		}
		p.applyPosition(pos, gen)
	})
}

func (p *Provider) applyPosition(pos geometry.Point, gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// A later evaluation, hide, or destroy supersedes this resolution.
	if p.destroyed || gen != p.gen || !p.visible {
		return
	}
	p.opts.Element.SetOffset(pos.X, pos.Y)
}
