// Package element abstracts the handful of operations the overlay
// subsystems perform on their indicator and popup elements: visibility,
// state attributes, pixel offsets, and extent writes. How an element is
// actually rendered is the host's concern.
package element
