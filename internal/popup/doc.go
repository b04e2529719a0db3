// Package popup implements an anchor-triggered floating popup provider:
// a slash-menu style element shown when the caret's trailing text ends
// with a trigger character, positioned below the caret by the geometry
// solver.
//
// A Provider is a two-state machine, Hidden and Visible. Transitions are
// driven exclusively by Update, which is debounced so that rapid editor
// state changes coalesce into one evaluation per quiet period.
package popup
