// Package render turns scenes into files: an interactive plotly.js page,
// static PNG and SVG images drawn with gonum/plot, and a plain-text preview.
package render
