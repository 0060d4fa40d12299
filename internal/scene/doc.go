// Package scene turns generated fields into renderable scenes.
//
// A Scene is a grid of panels; each panel holds traces drawn in order. The
// composer checks that every render mode suits its field and that all traces
// of a panel share one projection, so renderers can trust what they receive.
// Composition is deterministic and never draws random numbers.
package scene
