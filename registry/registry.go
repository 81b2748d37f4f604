package registry

import (
	"fmt"
)

// Registry is an immutable catalog of namespaced constants and label tables.
// It is produced by Builder.Build and is safe for concurrent reads without
// locking because nothing mutates it afterwards.
type Registry struct {
	version string

	namespaces []Namespace
	nsIndex    map[string]int
	names      map[string][]string // namespace -> names in definition order

	constants   map[Ref]Constant
	derivations map[Ref]Derivation

	families    []*LabelFamily
	familyIndex map[string]int
	tables      map[string]*labelTable
	tableOrder  []string
}

func newRegistry(version string, namespaces []Namespace) *Registry {
	reg := &Registry{
		version:     version,
		namespaces:  append([]Namespace(nil), namespaces...),
		nsIndex:     make(map[string]int, len(namespaces)),
		names:       make(map[string][]string, len(namespaces)),
		constants:   make(map[Ref]Constant),
		derivations: make(map[Ref]Derivation),
		familyIndex: make(map[string]int),
		tables:      make(map[string]*labelTable),
	}
	for i, ns := range reg.namespaces {
		reg.nsIndex[ns.Name] = i
	}
	return reg
}

func (r *Registry) insert(c Constant) {
	ref := c.Ref()
	r.constants[ref] = c
	r.names[ref.Namespace] = append(r.names[ref.Namespace], ref.Name)
}

func (r *Registry) addFamily(f *LabelFamily) {
	r.familyIndex[f.Name] = len(r.families)
	r.families = append(r.families, f)
	for _, t := range f.Tables {
		r.tables[t.Name] = &labelTable{family: f, entries: t.Entries}
		r.tableOrder = append(r.tableOrder, t.Name)
	}
}

func (r *Registry) valueOf(ref Ref) (float64, error) {
	c, ok := r.constants[ref]
	if !ok {
		return 0, fmt.Errorf("%w: constant %s", ErrNotFound, ref)
	}
	return c.Value, nil
}

// Version identifies the content of the registry, so consumers can detect a
// change of upstream standard.
func (r *Registry) Version() string {
	return r.version
}

// Constant returns the value of namespace.name.
func (r *Registry) Constant(namespace, name string) (float64, error) {
	c, err := r.Lookup(namespace, name)
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}

// Value is Constant addressed by a Ref.
func (r *Registry) Value(ref Ref) (float64, error) {
	return r.Constant(ref.Namespace, ref.Name)
}

// Lookup returns the full record of namespace.name.
func (r *Registry) Lookup(namespace, name string) (Constant, error) {
	if _, ok := r.nsIndex[namespace]; !ok {
		return Constant{}, fmt.Errorf("%w: namespace %q", ErrNotFound, namespace)
	}
	c, ok := r.constants[Ref{Namespace: namespace, Name: name}]
	if !ok {
		return Constant{}, fmt.Errorf("%w: constant %q in namespace %q", ErrNotFound, name, namespace)
	}
	c.Inputs = append([]Ref(nil), c.Inputs...)
	return c, nil
}

// Derivation returns the formula that produced a derived constant.
func (r *Registry) Derivation(namespace, name string) (Derivation, error) {
	ref := Ref{Namespace: namespace, Name: name}
	d, ok := r.derivations[ref]
	if !ok {
		return Derivation{}, fmt.Errorf("%w: derivation %s", ErrNotFound, ref)
	}
	d.Inputs = append([]Ref(nil), d.Inputs...)
	return d, nil
}

// Names lists the constants of a namespace in definition order. Derived
// namespaces list their constants in evaluation order.
func (r *Registry) Names(namespace string) ([]string, error) {
	if _, ok := r.nsIndex[namespace]; !ok {
		return nil, fmt.Errorf("%w: namespace %q", ErrNotFound, namespace)
	}
	return append([]string(nil), r.names[namespace]...), nil
}

// Namespaces returns the declared namespaces in declaration order.
func (r *Registry) Namespaces() []Namespace {
	return append([]Namespace(nil), r.namespaces...)
}

// Namespace returns a single namespace by name.
func (r *Registry) Namespace(name string) (Namespace, error) {
	i, ok := r.nsIndex[name]
	if !ok {
		return Namespace{}, fmt.Errorf("%w: namespace %q", ErrNotFound, name)
	}
	return r.namespaces[i], nil
}

// Label returns entry index of the named table.
func (r *Registry) Label(table string, index int) (string, error) {
	t, ok := r.tables[table]
	if !ok {
		return "", fmt.Errorf("%w: label table %q", ErrNotFound, table)
	}
	return t.label(table, index)
}

// Table returns a copy of the named table, including dummy entries below the
// family's first index.
func (r *Registry) Table(table string) ([]string, error) {
	t, ok := r.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: label table %q", ErrNotFound, table)
	}
	return append([]string(nil), t.entries...), nil
}

// Tables lists the label table names in declaration order.
func (r *Registry) Tables() []string {
	return append([]string(nil), r.tableOrder...)
}

// Family returns a copy of the family that owns the named table or carries
// the given family name.
func (r *Registry) Family(name string) (LabelFamily, error) {
	if i, ok := r.familyIndex[name]; ok {
		return copyFamily(r.families[i]), nil
	}
	if t, ok := r.tables[name]; ok {
		return copyFamily(t.family), nil
	}
	return LabelFamily{}, fmt.Errorf("%w: label family %q", ErrNotFound, name)
}

// Families lists the label families in declaration order.
func (r *Registry) Families() []LabelFamily {
	out := make([]LabelFamily, 0, len(r.families))
	for _, f := range r.families {
		out = append(out, copyFamily(f))
	}
	return out
}

func copyFamily(f *LabelFamily) LabelFamily {
	out := *f
	out.Tables = make([]LabelTable, len(f.Tables))
	for i, t := range f.Tables {
		out.Tables[i] = LabelTable{Name: t.Name, Entries: append([]string(nil), t.Entries...)}
	}
	return out
}
