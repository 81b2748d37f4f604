package registry

import (
	"fmt"
	"strings"
)

// Provenance marks where the values of a namespace come from.
type Provenance int

const (
	// ProvenanceLocal marks constants defined by this module itself.
	ProvenanceLocal Provenance = iota
	// ProvenanceStandard marks constants transcribed from an external standard.
	ProvenanceStandard
	// ProvenanceDerived marks constants computed from other constants.
	ProvenanceDerived
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceLocal:
		return "local"
	case ProvenanceStandard:
		return "standard"
	case ProvenanceDerived:
		return "derived"
	default:
		return fmt.Sprintf("provenance(%d)", int(p))
	}
}

// Namespace partitions constants by provenance or unit system.
type Namespace struct {
	Name       string
	Provenance Provenance
	// Citation names the publication the namespace was transcribed from.
	Citation string
}

// Ref addresses a constant as namespace.name.
type Ref struct {
	Namespace string
	Name      string
}

func (r Ref) String() string {
	return r.Namespace + "." + r.Name
}

// ParseRef parses "namespace.name". The name itself may not contain a dot
// but everything before the first dot is the namespace.
func ParseRef(s string) (Ref, error) {
	ns, name, ok := strings.Cut(s, ".")
	if !ok || ns == "" || name == "" {
		return Ref{}, fmt.Errorf("%w: reference %q is not of the form namespace.name", ErrInvalidDefinition, s)
	}
	return Ref{Namespace: ns, Name: name}, nil
}

// MustRefs parses each reference and panics on a malformed one. It is meant
// for static derivation tables.
func MustRefs(refs ...string) []Ref {
	out := make([]Ref, 0, len(refs))
	for _, s := range refs {
		ref, err := ParseRef(s)
		if err != nil {
			panic(err)
		}
		out = append(out, ref)
	}
	return out
}

// Constant is a named immutable scalar.
type Constant struct {
	Namespace string
	Name      string
	Value     float64
	Unit      string
	// Uncertainty is the published one-sigma uncertainty in Unit, or 0 when
	// none is given.
	Uncertainty float64
	Citation    string
	Description string

	// Derived is set for values computed by a Derivation; Inputs then lists
	// its upstream constants.
	Derived bool
	Inputs  []Ref
}

// Ref returns the constant's address.
func (c Constant) Ref() Ref {
	return Ref{Namespace: c.Namespace, Name: c.Name}
}

// Derivation computes one constant from others. Formula receives the input
// values in the order of Inputs and is called exactly once per build.
type Derivation struct {
	Target      Ref
	Unit        string
	Description string
	Inputs      []Ref
	Formula     func(in []float64) float64
}
