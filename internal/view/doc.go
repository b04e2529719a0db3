// Package view defines the read-only editor surface the overlay subsystems
// consume. The document model, selection handling, and rendering live in
// the host editor; this package only names the queries the trackers need.
package view
