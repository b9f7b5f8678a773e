// Package radar implements the animated six-axis radar chart widget.
//
// The widget owns a drawing surface, an injected profile registry and an
// easing animation: every frame moves each displayed axis value 8% of the
// remaining distance toward the selected profile's value, snapping once the
// gap is within 0.005, and redraws the chart. Frames are requested from a
// host-ticked scheduler and stop being requested once every axis has
// converged.
//
// Compose computes every point of a frame as plain data and Render turns a
// composed frame into canvas operations, so the drawing routine can be tested
// by inspecting points instead of pixels.
package radar
