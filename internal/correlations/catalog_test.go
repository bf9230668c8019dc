package correlations

import (
	"errors"
	"testing"

	"github.com/san-kum/pvtlab/internal/pvt"
)

func TestCatalogOrder(t *testing.T) {
	cat := NewCatalog()
	if cat.Len() != 16 {
		t.Fatalf("expected 16 correlations, got %d", cat.Len())
	}

	ids := cat.IDs()
	if ids[0] != "oil-density-basic" || ids[3] != "mixture-density" || ids[15] != "vasquez-beggs-mu" {
		t.Errorf("unexpected order: %v", ids)
	}

	for i, c := range cat.List() {
		if c.ID() != ids[i] {
			t.Errorf("List()[%d] = %s, want %s", i, c.ID(), ids[i])
		}
	}
}

func TestCatalogUnknown(t *testing.T) {
	_, err := NewCatalog().Get("hall-yarborough")
	if !errors.Is(err, pvt.ErrUnknownCorrelation) {
		t.Errorf("expected ErrUnknownCorrelation, got %v", err)
	}
}

func TestCatalogRegisterReplaces(t *testing.T) {
	cat := NewCatalog()
	cat.Register(func() pvt.Correlation { return NewOilGravityAPI() })
	if cat.Len() != 16 {
		t.Errorf("re-registering must not grow the catalog, got %d", cat.Len())
	}
}
