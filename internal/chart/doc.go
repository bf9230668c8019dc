// Package chart turns a sweep result into a renderer-neutral description.
//
// [Project] is a pure function of an [analysis.Result] and the live point;
// it never evaluates a correlation. Five kinds are supported:
//
//   - [Line]: one polyline per series, absent points break the line
//   - [Bar]: grouped bars, one group per grid point
//   - [Scatter]: unconnected markers
//   - [Polar]: angle by grid rank, radius shifted to be non-negative
//   - [Radar]: one polygon per sampled grid point plus the live polygon
//
// Polar and radar share one radial range across every series. The polar
// shift is recorded in [Description.Shift] so labels can be un-shifted with
// [Description.Unshift].
package chart
