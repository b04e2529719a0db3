package element

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/hoverline/internal/geometry"
)

// Base is an in-memory Element implementation. Hosts embed it and render
// from its state after each update pass; tests use it directly.
type Base struct {
	mu      sync.Mutex
	id      string
	visible bool
	attrs   map[string]string
	x, y    float64
	width   float64
	height  float64
}

// NewBase creates an element with a unique identity and the given initial
// extent. The element starts hidden.
func NewBase(width, height float64) *Base {
	return &Base{
		id:     uuid.NewString(),
		attrs:  make(map[string]string),
		width:  width,
		height: height,
	}
}

// ID returns the element's identity.
func (b *Base) ID() string {
	return b.id
}

// SetVisible toggles visibility.
func (b *Base) SetVisible(visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = visible
}

// Visible returns the current visibility.
func (b *Base) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// SetAttr writes a state attribute.
func (b *Base) SetAttr(name, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attrs[name] = value
}

// Attr reads a state attribute.
func (b *Base) Attr(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attrs[name]
}

// SetOffset writes the screen position.
func (b *Base) SetOffset(x, y float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.x, b.y = x, y
}

// SetExtent writes the width and height.
func (b *Base) SetExtent(width, height float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

// Bounds returns the current screen rectangle.
func (b *Base) Bounds() geometry.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return geometry.Rect{X: b.x, Y: b.y, Width: b.width, Height: b.height}
}

// Group is a Container that records its children in attachment order.
type Group struct {
	mu       sync.Mutex
	children []Element
}

// Append attaches el to the group.
func (g *Group) Append(el Element) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.children = append(g.children, el)
}

// Len returns the number of attached children.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.children)
}

// Contains reports whether el is attached to the group.
func (g *Group) Contains(el Element) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.children {
		if c.ID() == el.ID() {
			return true
		}
	}
	return false
}

// BasicEnvironment is an Environment over explicit state. The demo binary
// and tests own one and mutate Focus as their notion of focus moves.
type BasicEnvironment struct {
	mu    sync.Mutex
	focus Element
	host  Container
}

// NewBasicEnvironment creates an environment with the given default host.
func NewBasicEnvironment(host Container) *BasicEnvironment {
	return &BasicEnvironment{host: host}
}

// SetFocus records which element currently holds input focus; nil clears.
func (e *BasicEnvironment) SetFocus(el Element) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focus = el
}

// FocusWithin reports whether el holds focus.
func (e *BasicEnvironment) FocusWithin(el Element) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus != nil && el != nil && e.focus.ID() == el.ID()
}

// DefaultHost returns the environment's attachment container.
func (e *BasicEnvironment) DefaultHost() Container {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.host
}

// Ensure the concrete types satisfy their interfaces.
var (
	_ Element     = (*Base)(nil)
	_ Container   = (*Group)(nil)
	_ Environment = (*BasicEnvironment)(nil)
)
