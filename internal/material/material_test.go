package material

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chill/internal/thermal"
	"github.com/san-kum/chill/internal/units"
)

func TestLookup(t *testing.T) {
	p, ok := Lookup("aluminum")
	if !ok {
		t.Fatal("aluminum should be known")
	}
	if p.Density != 2700 || p.SpecificHeat != 900 {
		t.Errorf("unexpected aluminum properties: %+v", p)
	}

	// aliases and case folding
	for _, name := range []string{"Al", "ALUMINIUM", " aluminum "} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("expected %q to resolve", name)
		}
	}

	if _, ok := Lookup("unobtainium"); ok {
		t.Error("unknown material should not resolve")
	}
}

func TestCapacity(t *testing.T) {
	// 10 cm^3 of aluminum: 2700 * 1e-5 * 900 = 24.3 J/K
	c, err := Capacity("Al", 10*units.Cm3)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c-24.3) > 1e-9 {
		t.Errorf("expected 24.3 J/K, got %f", c)
	}
}

func TestCapacityInvalid(t *testing.T) {
	if _, err := Capacity("nope", 1); !errors.Is(err, thermal.ErrInvalidParameter) {
		t.Errorf("unknown material: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := Capacity("water", 0); !errors.Is(err, thermal.ErrInvalidParameter) {
		t.Errorf("zero volume: expected ErrInvalidParameter, got %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) < 5 {
		t.Fatalf("expected several materials, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted at %d: %s >= %s", i, names[i-1], names[i])
		}
	}
}
