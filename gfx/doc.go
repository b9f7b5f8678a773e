// Package gfx provides the small software 2D stack the radar chart draws with.
//
// A Canvas rasterizes paths, circles and text into a Target. Coordinates are
// logical (CSS-like) pixels; the canvas transform maps them onto the backing
// target, which is how device pixel ratios are applied. Every drawing op first
// builds a coverage mask and then blends its color once, so translucent paths
// never double-blend where their segments meet.
//
// SVGCanvas accepts the same operations and emits vector output instead.
package gfx
