package registry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// evaluationOrder returns the indices of derivs sorted so that every
// derivation comes after the derivations it reads from. Ties keep definition
// order, which makes the order identical across builds.
func evaluationOrder(derivs []Derivation) ([]int, error) {
	byRef := make(map[Ref]int64, len(derivs))
	for i, d := range derivs {
		byRef[d.Target] = int64(i)
	}

	g := simple.NewDirectedGraph()
	for i := range derivs {
		g.AddNode(simple.Node(int64(i)))
	}

	var selfRefs [][]Ref
	for i, d := range derivs {
		for _, in := range d.Inputs {
			from, ok := byRef[in]
			if !ok {
				continue
			}
			if from == int64(i) {
				// simple.DirectedGraph rejects self edges.
				selfRefs = append(selfRefs, []Ref{d.Target})
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(int64(i))))
		}
	}

	sorted, err := topo.SortStabilized(g, nil)
	if err != nil {
		var unorderable topo.Unorderable
		if !errors.As(err, &unorderable) {
			return nil, err
		}
		cycles := selfRefs
		for _, component := range unorderable {
			cycles = append(cycles, refsOf(derivs, component))
		}
		return nil, &CycleError{Cycles: cycles}
	}
	if len(selfRefs) > 0 {
		return nil, &CycleError{Cycles: selfRefs}
	}

	order := make([]int, 0, len(sorted))
	for _, n := range sorted {
		order = append(order, int(n.ID()))
	}
	return order, nil
}

func refsOf(derivs []Derivation, nodes []graph.Node) []Ref {
	refs := make([]Ref, 0, len(nodes))
	for _, n := range nodes {
		refs = append(refs, derivs[n.ID()].Target)
	}
	return refs
}

// evaluate runs one formula against already resolved inputs.
func evaluate(d Derivation, resolve func(Ref) (float64, error)) (float64, error) {
	args := make([]float64, len(d.Inputs))
	for i, in := range d.Inputs {
		v, err := resolve(in)
		if err != nil {
			return 0, fmt.Errorf("derive %s: input %s: %w", d.Target, in, err)
		}
		args[i] = v
	}
	v := d.Formula(args)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: derive %s produced %v", ErrInvalidDefinition, d.Target, v)
	}
	return v, nil
}
