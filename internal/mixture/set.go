package mixture

import (
	"fmt"

	"github.com/san-kum/pvtlab/internal/pvt"
)

// Set is a resizable ordered collection of components. Shrinking drops the
// tail; growing appends default components, never earlier values.
type Set struct {
	items []Component
}

// NewSet returns a set of count default components.
func NewSet(count int) *Set {
	s := &Set{}
	s.Resize(count)
	return s
}

func (s *Set) Len() int { return len(s.items) }

// Resize truncates or extends the set to count, clamped to [1, MaxComponents].
func (s *Set) Resize(count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxComponents {
		count = MaxComponents
	}
	if count <= len(s.items) {
		s.items = s.items[:count:count]
		return
	}
	for len(s.items) < count {
		s.items = append(s.items, Component{Mass: DefaultMass, Density: DefaultDensity})
	}
}

// At returns component i (1-based).
func (s *Set) At(i int) (Component, bool) {
	if i < 1 || i > len(s.items) {
		return Component{}, false
	}
	return s.items[i-1], true
}

// Update replaces component i (1-based).
func (s *Set) Update(i int, c Component) error {
	if i < 1 || i > len(s.items) {
		return fmt.Errorf("component %d outside [1, %d]", i, len(s.items))
	}
	s.items[i-1] = c
	return nil
}

// SetParam applies a flat mass_i or dens_i value.
func (s *Set) SetParam(name string, v float64) error {
	var i int
	if _, err := fmt.Sscanf(name, "mass_%d", &i); err == nil {
		c, ok := s.At(i)
		if !ok {
			return fmt.Errorf("%w: %s", pvt.ErrUnknownParameter, name)
		}
		c.Mass = v
		return s.Update(i, c)
	}
	if _, err := fmt.Sscanf(name, "dens_%d", &i); err == nil {
		c, ok := s.At(i)
		if !ok {
			return fmt.Errorf("%w: %s", pvt.ErrUnknownParameter, name)
		}
		c.Density = v
		return s.Update(i, c)
	}
	return fmt.Errorf("%w: %s", pvt.ErrUnknownParameter, name)
}

// Expand flattens the current set.
func (s *Set) Expand() (Expansion, error) {
	return Expand(len(s.items), s.At)
}

// Components returns a copy of the current components.
func (s *Set) Components() []Component {
	out := make([]Component, len(s.items))
	copy(out, s.items)
	return out
}
