package element

import (
	"github.com/dshills/hoverline/internal/geometry"
)

// Element is a host-rendered visual element managed by an overlay
// subsystem. Implementations must be safe for writes from timer goroutines.
type Element interface {
	// ID returns a stable identifier for the element, used for log
	// correlation and focus checks.
	ID() string

	// SetVisible toggles the element's visibility.
	SetVisible(visible bool)

	// Visible returns the current visibility.
	Visible() bool

	// SetAttr writes a state attribute.
	SetAttr(name, value string)

	// Attr reads a state attribute; empty string when unset.
	Attr(name string) string

	// SetOffset writes the element's screen position in pixels.
	SetOffset(x, y float64)

	// SetExtent writes the element's width and height in pixels.
	SetExtent(width, height float64)

	// Bounds returns the element's current screen rectangle.
	Bounds() geometry.Rect
}

// Container is an attachment point for floating elements.
type Container interface {
	// Append attaches el to the container.
	Append(el Element)
}

// Environment supplies the ambient document capabilities the subsystems
// would otherwise reach for globally: the focused element and the default
// attachment host. Tests substitute a fake.
type Environment interface {
	// FocusWithin reports whether input focus currently lies on el or
	// inside its subtree.
	FocusWithin(el Element) bool

	// DefaultHost returns the container floating elements attach to when
	// the caller does not supply one. May be nil when the environment has
	// no document body equivalent.
	DefaultHost() Container
}
