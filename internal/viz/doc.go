// Package viz renders sweeps and evaluations for the terminal.
//
// Line charts go through asciigraph with absent points as gaps. Scatter,
// polar and radar charts are drawn on a Braille [Canvas]. [SweepTable] and
// [Readout] format results with lipgloss.
package viz
