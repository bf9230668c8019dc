package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/pvtlab/internal/pvt"
)

// DefaultPoints is the grid cardinality used when none is configured.
const DefaultPoints = 50

// MaxPoints bounds the grid size accepted from user input.
const MaxPoints = 10000

// BuildGrid returns count evenly spaced values from min to max inclusive.
func BuildGrid(min, max float64, count int) ([]float64, error) {
	if count < 2 {
		return nil, fmt.Errorf("%w: count %d < 2", pvt.ErrInvalidGrid, count)
	}
	if count > MaxPoints {
		return nil, fmt.Errorf("%w: count %d exceeds %d", pvt.ErrInvalidGrid, count, MaxPoints)
	}
	if !(min < max) {
		return nil, fmt.Errorf("%w: min %g not below max %g", pvt.ErrInvalidGrid, min, max)
	}
	return floats.Span(make([]float64, count), min, max), nil
}

// GridFor builds the grid over a parameter's declared range.
func GridFor(p pvt.ParameterSpec, count int) ([]float64, error) {
	g, err := BuildGrid(p.Min, p.Max, count)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
	}
	return g, nil
}

// Range is a sweep interval override.
type Range struct {
	Min float64
	Max float64
}

// ParseRange parses "min:max".
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("invalid range %q: expected min:max", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range min %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range max %q: %w", parts[1], err)
	}
	if !(lo < hi) {
		return Range{}, fmt.Errorf("%w: min %g not below max %g", pvt.ErrInvalidGrid, lo, hi)
	}
	return Range{Min: lo, Max: hi}, nil
}
