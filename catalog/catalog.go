// Package catalog assembles the astroconst registry: locally defined base
// constants, the Astronomical Almanac 2021 table, constants derived from both,
// and the label tables.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/signalsfoundry/astroconst/registry"
)

// Version identifies the catalog content. It changes whenever an upstream
// standard edition or a published value changes.
const Version = "aa2021+codata2018/1"

// Namespace names.
const (
	NamespaceBase    = "base"
	NamespaceAlmanac = "almanac"
	NamespaceDerived = "derived"
)

var namespaces = []registry.Namespace{
	{
		Name:       NamespaceBase,
		Provenance: registry.ProvenanceLocal,
		Citation:   "astroconst base constants (cgs)",
	},
	{
		Name:       NamespaceAlmanac,
		Provenance: registry.ProvenanceStandard,
		Citation:   "Astronomical Almanac 2021, Selected Astronomical Constants",
	},
	{
		Name:       NamespaceDerived,
		Provenance: registry.ProvenanceDerived,
		Citation:   "computed from base and almanac",
	},
}

// Build constructs a fresh registry. Every call evaluates the catalog again
// and yields bit-identical values.
func Build(ctx context.Context, opts ...registry.Option) (*registry.Registry, error) {
	return build(ctx, almanacYAML, opts...)
}

func build(ctx context.Context, almanac []byte, opts ...registry.Option) (*registry.Registry, error) {
	b := registry.NewBuilder(Version, opts...)
	for _, ns := range namespaces {
		if err := b.AddNamespace(ns); err != nil {
			return nil, err
		}
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"base", func() error { return defineBase(b) }},
		{"almanac", func() error { return defineAlmanac(b, almanac) }},
		{"derived", func() error { return defineDerived(b) }},
		{"labels", func() error { return addLabels(b) }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", step.name, err)
		}
	}
	return b.Build(ctx)
}

var (
	defaultOnce sync.Once
	defaultReg  *registry.Registry
	defaultErr  error
)

// Default returns the process-wide registry, building it on first use. The
// build runs exactly once even under concurrent callers; a failed build is
// reported to every caller.
func Default() (*registry.Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Build(context.Background())
	})
	return defaultReg, defaultErr
}

// MustDefault is Default for callers that cannot continue without constants.
func MustDefault() *registry.Registry {
	reg, err := Default()
	if err != nil {
		panic(fmt.Sprintf("astroconst: building default catalog: %v", err))
	}
	return reg
}
