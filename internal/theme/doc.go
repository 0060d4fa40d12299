// Package theme holds the color model shared by the scene composer and the
// renderers: parsed colors, color scales and the named presentation themes.
//
// Built-in themes and scales are read-only. Get and Default hand out copies,
// so a caller that wants different settings edits its copy and passes it on.
package theme
