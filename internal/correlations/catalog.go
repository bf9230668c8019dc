package correlations

import (
	"fmt"

	"github.com/san-kum/pvtlab/internal/mixture"
	"github.com/san-kum/pvtlab/internal/monitoring"
	"github.com/san-kum/pvtlab/internal/pvt"
)

// Catalog maps correlation ids to factories and keeps menu order.
type Catalog struct {
	factories map[string]func() pvt.Correlation
	order     []string
}

// NewCatalog registers the sixteen correlations in menu order.
func NewCatalog() *Catalog {
	c := &Catalog{factories: make(map[string]func() pvt.Correlation)}

	c.Register(func() pvt.Correlation { return NewOilDensityBasic() })
	c.Register(func() pvt.Correlation { return NewOilDensityPressure() })
	c.Register(func() pvt.Correlation { return NewOilGravityAPI() })
	c.Register(func() pvt.Correlation { return mixture.NewDensity() })
	c.Register(func() pvt.Correlation { return NewStandingPb() })
	c.Register(func() pvt.Correlation { return NewLasaterPb() })
	c.Register(func() pvt.Correlation { return NewVasquezBeggsPb() })
	c.Register(func() pvt.Correlation { return NewStandingRs() })
	c.Register(func() pvt.Correlation { return NewLasaterRs() })
	c.Register(func() pvt.Correlation { return NewVasquezBeggsRs() })
	c.Register(func() pvt.Correlation { return NewStandingBo() })
	c.Register(func() pvt.Correlation { return NewVasquezBeggsBo() })
	c.Register(func() pvt.Correlation { return NewOilBo() })
	c.Register(func() pvt.Correlation { return NewVasquezBeggsCo() })
	c.Register(func() pvt.Correlation { return NewBeggsRobinsonMu() })
	c.Register(func() pvt.Correlation { return NewVasquezBeggsMu() })

	return c
}

// Register adds a factory under the id of the correlation it builds.
// A later registration with the same id replaces the earlier one.
func (c *Catalog) Register(fn func() pvt.Correlation) {
	id := fn().ID()
	if _, ok := c.factories[id]; !ok {
		c.order = append(c.order, id)
	}
	c.factories[id] = fn
}

func (c *Catalog) Get(id string) (pvt.Correlation, error) {
	fn, ok := c.factories[id]
	if !ok {
		monitoring.Logf("catalog: lookup miss for %q", id)
		return nil, fmt.Errorf("unknown correlation: %s: %w", id, pvt.ErrUnknownCorrelation)
	}
	return fn(), nil
}

// IDs returns the registered ids in menu order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

// List builds one instance of every registered correlation in menu order.
func (c *Catalog) List() []pvt.Correlation {
	out := make([]pvt.Correlation, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.factories[id]())
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }
