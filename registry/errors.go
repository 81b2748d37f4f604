package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned for unknown namespaces, constants and tables.
	ErrNotFound = errors.New("not found")
	// ErrIndexOutOfRange is returned when a label index lies outside the
	// documented range of its table.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrImmutableConstant is returned for a second write to a name, or for
	// any write after the registry has been built.
	ErrImmutableConstant = errors.New("constant is immutable")
	// ErrCyclicDependency is returned when derived constants depend on each
	// other in a cycle.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrTableLengthMismatch is returned when a label table does not match the
	// arity declared by its family.
	ErrTableLengthMismatch = errors.New("table length mismatch")
	// ErrInvalidDefinition covers malformed entries: empty names, values that
	// fail to parse, non-finite results, derivations in a primary namespace.
	ErrInvalidDefinition = errors.New("invalid definition")
)

// CycleError lists the derived constants that form dependency cycles.
type CycleError struct {
	Cycles [][]Ref
}

func (e *CycleError) Error() string {
	parts := make([]string, 0, len(e.Cycles))
	for _, cycle := range e.Cycles {
		names := make([]string, 0, len(cycle))
		for _, ref := range cycle {
			names = append(names, ref.String())
		}
		parts = append(parts, "["+strings.Join(names, " ")+"]")
	}
	return fmt.Sprintf("%s: %s", ErrCyclicDependency, strings.Join(parts, ", "))
}

// Is reports whether target is ErrCyclicDependency.
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicDependency
}
