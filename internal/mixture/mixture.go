// Package mixture expands a variable number of (mass, density) components
// into the flat parameter set the sweep pipeline works with, and provides
// the mixture density correlation that consumes it.
package mixture

import (
	"fmt"
	"strconv"

	"github.com/san-kum/pvtlab/internal/pvt"
)

const (
	// MaxComponents is the largest component count the live analyzer offers.
	MaxComponents = 5

	DefaultMass    = 10.0
	DefaultDensity = 50.0

	CountParam = "C"
)

// MassKey returns the flat parameter name for component i (1-based).
func MassKey(i int) string { return "mass_" + strconv.Itoa(i) }

// DensityKey returns the flat parameter name for component i (1-based).
func DensityKey(i int) string { return "dens_" + strconv.Itoa(i) }

// Component is one (mass, density) pair.
type Component struct {
	Mass    float64
	Density float64
}

// Accessor returns component i (1-based); ok is false when the source holds
// no value for that index.
type Accessor func(i int) (Component, bool)

// Expansion is the flat view of a component set.
type Expansion struct {
	Count       int
	Params      pvt.Snapshot
	TotalMass   float64
	TotalVolume pvt.Value
	Density     pvt.Value
	// Failed lists 1-based components whose volume could not be computed.
	Failed []int
}

// Expand flattens count components read through at into mass_i/dens_i keys
// plus total_mass and total_volume. Indices the accessor does not know get
// the default component. A zero density leaves TotalVolume and Density absent.
func Expand(count int, at Accessor) (Expansion, error) {
	if count < 1 || count > MaxComponents {
		return Expansion{}, fmt.Errorf("component count %d outside [1, %d]: %w", count, MaxComponents, pvt.ErrDomainInvalid)
	}

	ex := Expansion{Count: count, Params: pvt.Snapshot{CountParam: float64(count)}}
	volume := 0.0
	for i := 1; i <= count; i++ {
		c, ok := Component{}, false
		if at != nil {
			c, ok = at(i)
		}
		if !ok {
			c = Component{Mass: DefaultMass, Density: DefaultDensity}
		}
		ex.Params[MassKey(i)] = c.Mass
		ex.Params[DensityKey(i)] = c.Density
		ex.TotalMass += c.Mass
		if c.Density == 0 {
			ex.Failed = append(ex.Failed, i)
			continue
		}
		volume += c.Mass / c.Density
	}

	ex.Params["total_mass"] = ex.TotalMass
	if len(ex.Failed) > 0 {
		return ex, nil
	}
	ex.TotalVolume = pvt.Some(volume)
	ex.Params["total_volume"] = volume
	if volume > 0 {
		ex.Density = pvt.Some(ex.TotalMass / volume)
	}
	return ex, nil
}

// Err reports the first failed component as a division by zero, or nil.
func (e Expansion) Err() error {
	if len(e.Failed) == 0 {
		return nil
	}
	i := e.Failed[0]
	return pvt.Fail(densityID, pvt.ErrDivisionByZero, DensityKey(i), 0)
}
