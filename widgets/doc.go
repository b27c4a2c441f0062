// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (grids, padding, truncation)
//
// Not allowed here:
// - key handling, app state transitions, or data access
package widgets
