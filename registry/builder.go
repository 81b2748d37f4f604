package registry

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/signalsfoundry/astroconst/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/signalsfoundry/astroconst/registry"

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used while building.
func WithLogger(log logging.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// Builder collects namespaces, primary constants, derivations and label
// families, then produces an immutable Registry. A Builder is single use and
// not safe for concurrent use.
type Builder struct {
	version string
	log     logging.Logger

	namespaces []Namespace
	nsIndex    map[string]int

	primaries []Constant
	defined   map[Ref]struct{}

	derivs []Derivation

	families []LabelFamily
	tables   map[string]string // table -> family

	sealed bool
}

// NewBuilder starts a registry whose content is identified by version.
func NewBuilder(version string, opts ...Option) *Builder {
	b := &Builder{
		version: version,
		log:     logging.Noop(),
		nsIndex: make(map[string]int),
		defined: make(map[Ref]struct{}),
		tables:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddNamespace declares a namespace. Names are unique.
func (b *Builder) AddNamespace(ns Namespace) error {
	if b.sealed {
		return fmt.Errorf("%w: namespace %q added after build", ErrImmutableConstant, ns.Name)
	}
	if ns.Name == "" || strings.Contains(ns.Name, ".") {
		return fmt.Errorf("%w: namespace name %q", ErrInvalidDefinition, ns.Name)
	}
	if _, exists := b.nsIndex[ns.Name]; exists {
		return fmt.Errorf("%w: namespace %q already declared", ErrImmutableConstant, ns.Name)
	}
	b.nsIndex[ns.Name] = len(b.namespaces)
	b.namespaces = append(b.namespaces, ns)
	return nil
}

// Define adds a primary constant to a local or standard namespace.
func (b *Builder) Define(c Constant) error {
	ref := c.Ref()
	if b.sealed {
		return fmt.Errorf("%w: %s defined after build", ErrImmutableConstant, ref)
	}
	ns, err := b.namespace(c.Namespace)
	if err != nil {
		return err
	}
	if ns.Provenance == ProvenanceDerived {
		return fmt.Errorf("%w: primary constant %s in derived namespace", ErrInvalidDefinition, ref)
	}
	if err := b.checkName(ref); err != nil {
		return err
	}
	if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
		return fmt.Errorf("%w: %s has non-finite value %v", ErrInvalidDefinition, ref, c.Value)
	}

	c.Derived = false
	c.Inputs = nil
	if c.Citation == "" {
		c.Citation = ns.Citation
	}
	b.defined[ref] = struct{}{}
	b.primaries = append(b.primaries, c)
	return nil
}

// Derive adds a constant computed from others. The target namespace must
// have ProvenanceDerived.
func (b *Builder) Derive(d Derivation) error {
	if b.sealed {
		return fmt.Errorf("%w: %s derived after build", ErrImmutableConstant, d.Target)
	}
	ns, err := b.namespace(d.Target.Namespace)
	if err != nil {
		return err
	}
	if ns.Provenance != ProvenanceDerived {
		return fmt.Errorf("%w: derivation %s targets %s namespace %q",
			ErrInvalidDefinition, d.Target, ns.Provenance, ns.Name)
	}
	if err := b.checkName(d.Target); err != nil {
		return err
	}
	if d.Formula == nil {
		return fmt.Errorf("%w: derivation %s has no formula", ErrInvalidDefinition, d.Target)
	}
	if len(d.Inputs) == 0 {
		return fmt.Errorf("%w: derivation %s has no inputs", ErrInvalidDefinition, d.Target)
	}

	d.Inputs = append([]Ref(nil), d.Inputs...)
	b.defined[d.Target] = struct{}{}
	b.derivs = append(b.derivs, d)
	return nil
}

// AddFamily validates and adds a label family. Table names are unique across
// all families.
func (b *Builder) AddFamily(f LabelFamily) error {
	if b.sealed {
		return fmt.Errorf("%w: label family %q added after build", ErrImmutableConstant, f.Name)
	}
	if err := f.validate(); err != nil {
		return err
	}
	for _, existing := range b.families {
		if existing.Name == f.Name {
			return fmt.Errorf("%w: label family %q already declared", ErrImmutableConstant, f.Name)
		}
	}

	seen := make(map[string]struct{}, len(f.Tables))
	for _, t := range f.Tables {
		if owner, exists := b.tables[t.Name]; exists {
			return fmt.Errorf("%w: table %q already declared by family %q", ErrImmutableConstant, t.Name, owner)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: table %q declared twice in family %q", ErrImmutableConstant, t.Name, f.Name)
		}
		seen[t.Name] = struct{}{}
	}

	owned := f
	owned.Tables = make([]LabelTable, len(f.Tables))
	for i, t := range f.Tables {
		owned.Tables[i] = LabelTable{Name: t.Name, Entries: append([]string(nil), t.Entries...)}
		b.tables[t.Name] = f.Name
	}
	b.families = append(b.families, owned)
	return nil
}

// Build evaluates every derivation once, in dependency order, and returns
// the sealed registry. Any error aborts the build; no partial registry is
// returned. The builder cannot be used afterwards.
func (b *Builder) Build(ctx context.Context) (*Registry, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "registry.Build")
	defer span.End()

	reg, err := b.build(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		b.log.Error(ctx, "registry build failed",
			logging.String("version", b.version),
			logging.Err(err),
		)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("registry.version", reg.version),
		attribute.Int("registry.constants", len(reg.constants)),
		attribute.Int("registry.derived", len(reg.derivations)),
		attribute.Int("registry.tables", len(reg.tables)),
	)
	b.log.Info(ctx, "registry built",
		logging.String("version", reg.version),
		logging.Int("namespaces", len(reg.namespaces)),
		logging.Int("constants", len(reg.constants)),
		logging.Int("derived", len(reg.derivations)),
		logging.Int("tables", len(reg.tables)),
	)
	return reg, nil
}

func (b *Builder) build(ctx context.Context) (*Registry, error) {
	if b.sealed {
		return nil, fmt.Errorf("%w: builder already used", ErrImmutableConstant)
	}
	b.sealed = true

	reg := newRegistry(b.version, b.namespaces)

	// Primary values first; derivations may read any of them.
	for _, c := range b.primaries {
		reg.insert(c)
	}

	for _, d := range b.derivs {
		for _, in := range d.Inputs {
			if _, ok := b.defined[in]; !ok {
				return nil, fmt.Errorf("%w: derivation %s reads undefined constant %s", ErrNotFound, d.Target, in)
			}
		}
	}

	order, err := evaluationOrder(b.derivs)
	if err != nil {
		return nil, err
	}

	evaluated := make([]string, 0, len(order))
	for _, i := range order {
		d := b.derivs[i]
		v, err := evaluate(d, reg.valueOf)
		if err != nil {
			return nil, err
		}
		reg.insert(Constant{
			Namespace:   d.Target.Namespace,
			Name:        d.Target.Name,
			Value:       v,
			Unit:        d.Unit,
			Description: d.Description,
			Derived:     true,
			Inputs:      d.Inputs,
		})
		reg.derivations[d.Target] = d
		evaluated = append(evaluated, d.Target.String())
	}
	b.log.Debug(ctx, "derived constants evaluated", logging.Any("order", evaluated))

	for i := range b.families {
		reg.addFamily(&b.families[i])
	}
	return reg, nil
}

func (b *Builder) namespace(name string) (Namespace, error) {
	i, ok := b.nsIndex[name]
	if !ok {
		return Namespace{}, fmt.Errorf("%w: namespace %q", ErrNotFound, name)
	}
	return b.namespaces[i], nil
}

func (b *Builder) checkName(ref Ref) error {
	if ref.Name == "" || strings.Contains(ref.Name, ".") {
		return fmt.Errorf("%w: constant name %q", ErrInvalidDefinition, ref.Name)
	}
	if _, exists := b.defined[ref]; exists {
		return fmt.Errorf("%w: %s already defined", ErrImmutableConstant, ref)
	}
	return nil
}
