// Package sched provides the two rate-limiting disciplines used by the
// overlay subsystems: trailing-edge debouncing for keystroke-driven work
// and windowed throttling for pointer-driven work.
//
// Both types hold at most one pending invocation. Rescheduling replaces
// the pending function, so bursts coalesce to the most recent call, and
// Cancel prevents any pending invocation from firing. Timer callbacks are
// guarded by a sequence number so a stopped timer that already fired
// cannot run a stale invocation.
package sched
