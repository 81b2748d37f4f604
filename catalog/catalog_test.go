package catalog

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	satellite "github.com/joshuaferrara/go-satellite"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/signalsfoundry/astroconst/registry"
)

func buildCatalog(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := Build(context.Background())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return reg
}

func mustConstant(t *testing.T, reg *registry.Registry, ns, name string) float64 {
	t.Helper()
	v, err := reg.Constant(ns, name)
	if err != nil {
		t.Fatalf("Constant(%s.%s) error: %v", ns, name, err)
	}
	return v
}

func TestBuildDefinesEveryNamespace(t *testing.T) {
	reg := buildCatalog(t)

	if got := reg.Version(); got != Version {
		t.Fatalf("Version() = %q, want %q", got, Version)
	}

	want := map[string]registry.Provenance{
		NamespaceBase:    registry.ProvenanceLocal,
		NamespaceAlmanac: registry.ProvenanceStandard,
		NamespaceDerived: registry.ProvenanceDerived,
	}
	nss := reg.Namespaces()
	if len(nss) != len(want) {
		t.Fatalf("Namespaces() returned %d namespaces, want %d", len(nss), len(want))
	}
	for _, ns := range nss {
		if ns.Provenance != want[ns.Name] {
			t.Errorf("namespace %s provenance = %v, want %v", ns.Name, ns.Provenance, want[ns.Name])
		}
		names, err := reg.Names(ns.Name)
		if err != nil {
			t.Fatalf("Names(%s) error: %v", ns.Name, err)
		}
		if len(names) == 0 {
			t.Errorf("namespace %s is empty", ns.Name)
		}
	}

	names, _ := reg.Names(NamespaceDerived)
	if len(names) != len(derivedConstants) {
		t.Fatalf("derived namespace has %d constants, want %d", len(names), len(derivedConstants))
	}
}

func TestDerivedValuesMatchFormulas(t *testing.T) {
	reg := buildCatalog(t)

	names, err := reg.Names(NamespaceDerived)
	if err != nil {
		t.Fatalf("Names(derived) error: %v", err)
	}
	for _, name := range names {
		d, err := reg.Derivation(NamespaceDerived, name)
		if err != nil {
			t.Fatalf("Derivation(%s) error: %v", name, err)
		}
		in := make([]float64, len(d.Inputs))
		for i, ref := range d.Inputs {
			if in[i], err = reg.Value(ref); err != nil {
				t.Fatalf("%s: input %s error: %v", name, ref, err)
			}
		}
		want := d.Formula(in)
		got := mustConstant(t, reg, NamespaceDerived, name)
		if got != want {
			t.Errorf("derived.%s = %v, formula over stored inputs gives %v", name, got, want)
		}

		c, _ := reg.Lookup(NamespaceDerived, name)
		if !c.Derived || len(c.Inputs) != len(d.Inputs) {
			t.Errorf("derived.%s record = %+v, want Derived with %d inputs", name, c, len(d.Inputs))
		}
	}
}

func TestAngleConversionsAreReciprocal(t *testing.T) {
	reg := buildCatalog(t)

	pairs := [][2]string{
		{"d2r", "r2d"},
		{"h2r", "r2h"},
		{"as2r", "r2as"},
		{"am2r", "r2am"},
		{"as2d", "d2as"},
	}
	for _, p := range pairs {
		a := mustConstant(t, reg, NamespaceDerived, p[0])
		b := mustConstant(t, reg, NamespaceDerived, p[1])
		if !scalar.EqualWithinAbs(a*b, 1, 1e-12) {
			t.Errorf("%s * %s = %.17g, want 1", p[0], p[1], a*b)
		}
	}

	if got := mustConstant(t, reg, NamespaceDerived, "d2r"); got != math.Pi/180 {
		t.Errorf("d2r = %.17g, want pi/180", got)
	}
}

func TestObliquity(t *testing.T) {
	reg := buildCatalog(t)

	eps := mustConstant(t, reg, NamespaceAlmanac, "epsilon_j2000")
	if eps != 23.4392794 {
		t.Fatalf("almanac.epsilon_j2000 = %v, want 23.4392794", eps)
	}
	eps0 := mustConstant(t, reg, NamespaceDerived, "eps0")
	if !scalar.EqualWithinAbs(eps0, 23.4392794*math.Pi/180, 1e-9) {
		t.Errorf("derived.eps0 = %v, want %v", eps0, 23.4392794*math.Pi/180)
	}
}

func TestDayLengths(t *testing.T) {
	reg := buildCatalog(t)

	tests := []struct {
		name string
		want float64
		tol  float64
	}{
		{"day", 86400, 0},
		{"sidereal_day", 86164.0905, 1e-3},
		{"stellar_day", 86164.0989, 1e-3},
		{"julian_century", 3155760000, 0},
	}
	for _, tt := range tests {
		got := mustConstant(t, reg, NamespaceDerived, tt.name)
		if !scalar.EqualWithinAbs(got, tt.want, tt.tol) {
			t.Errorf("derived.%s = %.6f s, want %.6f", tt.name, got, tt.want)
		}
	}
}

func TestUnitsStayWithTheirNamespace(t *testing.T) {
	reg := buildCatalog(t)

	// base is cgs, almanac is SI. derived.au bridges the two.
	if c := mustConstant(t, reg, NamespaceBase, "c"); c != 2.99792458e10 {
		t.Errorf("base.c = %v, want 2.99792458e10 cm/s", c)
	}
	if c := mustConstant(t, reg, NamespaceAlmanac, "c"); c != 299792458 {
		t.Errorf("almanac.c = %v, want 299792458 m/s", c)
	}
	if au := mustConstant(t, reg, NamespaceAlmanac, "au"); au != 149597870700 {
		t.Errorf("almanac.au = %v, want 149597870700 m", au)
	}
	if au := mustConstant(t, reg, NamespaceDerived, "au"); au != 1.495978707e13 {
		t.Errorf("derived.au = %v, want 1.495978707e13 cm", au)
	}
}

func TestConsistencyAcrossSources(t *testing.T) {
	reg := buildCatalog(t)

	tests := []struct {
		name   string
		got    registry.Ref
		want   registry.Ref
		relTol float64
	}{
		{"light time", registry.Ref{Namespace: NamespaceDerived, Name: "light_time_au"}, registry.Ref{Namespace: NamespaceAlmanac, Name: "tau_a"}, 1e-9},
		{"earth mass", registry.Ref{Namespace: NamespaceBase, Name: "m_earth"}, registry.Ref{Namespace: NamespaceAlmanac, Name: "m_e"}, 1e-3},
	}
	scale := map[string]float64{"earth mass": 1e-3} // g -> kg

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Value(tt.got)
			if err != nil {
				t.Fatalf("Value(%s) error: %v", tt.got, err)
			}
			want, err := reg.Value(tt.want)
			if err != nil {
				t.Fatalf("Value(%s) error: %v", tt.want, err)
			}
			if s, ok := scale[tt.name]; ok {
				got *= s
			}
			if !scalar.EqualWithinRel(got, want, tt.relTol) {
				t.Errorf("%s = %v, %s = %v", tt.got, got, tt.want, want)
			}
		})
	}
}

func TestAgreesWithSGP4Library(t *testing.T) {
	reg := buildCatalog(t)

	jd2000 := mustConstant(t, reg, NamespaceBase, "jd2000")
	if got := satellite.JDay(2000, 1, 1, 12, 0, 0); got != jd2000 {
		t.Errorf("satellite.JDay(J2000) = %v, base.jd2000 = %v", got, jd2000)
	}

	d2r := mustConstant(t, reg, NamespaceDerived, "d2r")
	if !scalar.EqualWithinAbs(satellite.DEG2RAD, d2r, 1e-15) {
		t.Errorf("satellite.DEG2RAD = %v, derived.d2r = %v", satellite.DEG2RAD, d2r)
	}
}

func TestBuildIsBitIdentical(t *testing.T) {
	a := buildCatalog(t)
	b := buildCatalog(t)

	for _, ns := range a.Namespaces() {
		names, _ := a.Names(ns.Name)
		other, _ := b.Names(ns.Name)
		if strings.Join(names, ",") != strings.Join(other, ",") {
			t.Fatalf("namespace %s order differs between builds", ns.Name)
		}
		for _, name := range names {
			x := mustConstant(t, a, ns.Name, name)
			y := mustConstant(t, b, ns.Name, name)
			if math.Float64bits(x) != math.Float64bits(y) {
				t.Errorf("%s.%s differs between builds: %v vs %v", ns.Name, name, x, y)
			}
		}
	}
}

func TestBadAlmanacEntryAbortsBuild(t *testing.T) {
	broken := bytes.Replace(almanacYAML, []byte(`value: "23.4392794"`), []byte(`value: "23.43927.94"`), 1)
	if bytes.Equal(broken, almanacYAML) {
		t.Fatal("test fixture did not change the almanac table")
	}

	reg, err := build(context.Background(), broken)
	if !errors.Is(err, registry.ErrInvalidDefinition) {
		t.Fatalf("build error = %v, want ErrInvalidDefinition", err)
	}
	if reg != nil {
		t.Fatal("build returned a registry alongside an error")
	}
	if !strings.Contains(err.Error(), "epsilon_j2000") {
		t.Errorf("error %q does not name the failing entry", err)
	}
}

func TestEmptyAlmanacIsRejected(t *testing.T) {
	_, err := build(context.Background(), []byte("standard: nothing\n"))
	if !errors.Is(err, registry.ErrInvalidDefinition) {
		t.Fatalf("build error = %v, want ErrInvalidDefinition", err)
	}
}

func TestDefaultIsSharedAcrossGoroutines(t *testing.T) {
	const workers = 16
	regs := make([]*registry.Registry, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			regs[i], errs[i] = Default()
		}(i)
	}
	wg.Wait()

	for i := range regs {
		if errs[i] != nil {
			t.Fatalf("Default() error: %v", errs[i])
		}
		if regs[i] != regs[0] {
			t.Fatal("Default() returned different registries")
		}
	}
	if MustDefault() != regs[0] {
		t.Fatal("MustDefault() returned a different registry")
	}
}
