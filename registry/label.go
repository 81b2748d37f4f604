package registry

import "fmt"

// LabelTable is one variant of a label family, e.g. English weekday names or
// their two-letter abbreviations. Entries is indexed directly by the family's
// index convention; positions below the family's First index are dummies and
// must be empty.
type LabelTable struct {
	Name    string
	Entries []string
}

// LabelFamily groups index-aligned label tables that share the documented
// range First..Last.
type LabelFamily struct {
	Name        string
	Description string
	First       int
	Last        int
	Tables      []LabelTable
}

// Arity is the number of valid indices in the family.
func (f LabelFamily) Arity() int {
	return f.Last - f.First + 1
}

// validate checks the declared range and that every variant is index aligned
// with it.
func (f LabelFamily) validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: label family without a name", ErrInvalidDefinition)
	}
	if f.First < 0 || f.Last < f.First {
		return fmt.Errorf("%w: label family %q has range %d..%d", ErrInvalidDefinition, f.Name, f.First, f.Last)
	}
	if len(f.Tables) == 0 {
		return fmt.Errorf("%w: label family %q has no tables", ErrInvalidDefinition, f.Name)
	}

	want := f.Last + 1
	for _, t := range f.Tables {
		if t.Name == "" {
			return fmt.Errorf("%w: label family %q has an unnamed table", ErrInvalidDefinition, f.Name)
		}
		if len(t.Entries) != want {
			return fmt.Errorf("%w: table %q has %d entries, family %q needs %d (indices 0..%d)",
				ErrTableLengthMismatch, t.Name, len(t.Entries), f.Name, want, f.Last)
		}
		for i := 0; i < f.First; i++ {
			if t.Entries[i] != "" {
				return fmt.Errorf("%w: table %q has %q at dummy index %d", ErrTableLengthMismatch, t.Name, t.Entries[i], i)
			}
		}
		for i := f.First; i <= f.Last; i++ {
			if t.Entries[i] == "" {
				return fmt.Errorf("%w: table %q has an empty label at index %d", ErrInvalidDefinition, t.Name, i)
			}
		}
	}
	return nil
}

type labelTable struct {
	family  *LabelFamily
	entries []string
}

func (t *labelTable) label(name string, index int) (string, error) {
	if index < t.family.First || index > t.family.Last {
		return "", fmt.Errorf("%w: table %q index %d, valid range %d..%d",
			ErrIndexOutOfRange, name, index, t.family.First, t.family.Last)
	}
	return t.entries[index], nil
}
