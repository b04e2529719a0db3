// Package geometry provides the screen-space primitives and the floating
// position solver used by the overlay subsystems.
//
// All coordinates are pixel values in screen space with the origin at the
// top-left corner. Rectangles tolerate negative extents: the edge accessors
// normalize so that Left <= Right and Top <= Bottom always hold.
package geometry
