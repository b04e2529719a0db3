// Package tablehandle tracks pointer movement over a rendered table and
// drives the row/column handle and insertion-line indicator elements.
//
// The tracker distinguishes two modes per pointer event. Away from cell
// edges it shows the whole row and column handles for the hovered cell.
// Within the boundary threshold of an edge it hides the handles and shows
// an insertion line at that boundary instead, since the two affordances
// compete for the same screen space.
package tablehandle
