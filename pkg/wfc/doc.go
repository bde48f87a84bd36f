// Package wfc implements the Wave Function Collapse solver: a tile catalog
// with weights, a directional adjacency model, per-position cells that track
// allowed tiles and live enabler counts, an entropy-ordered frontier and the
// collapse/propagate loop that ties them together.
//
// The solver is generic over the position type. Geometry lives elsewhere and
// plugs in through Space. A Collapser makes no retry decisions; a
// contradiction ends the solve and callers decide whether to start over with
// different noise.
package wfc
