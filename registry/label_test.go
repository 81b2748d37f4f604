package registry

import (
	"context"
	"errors"
	"testing"
)

func weekdayFamily() LabelFamily {
	return LabelFamily{
		Name:  "weekday",
		First: 0,
		Last:  6,
		Tables: []LabelTable{
			{Name: "weekday_en", Entries: []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}},
			{Name: "weekday_en_abbr2", Entries: []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}},
		},
	}
}

func quarterFamily() LabelFamily {
	return LabelFamily{
		Name:  "quarter",
		First: 1,
		Last:  4,
		Tables: []LabelTable{
			{Name: "quarter_en", Entries: []string{"", "Q1", "Q2", "Q3", "Q4"}},
		},
	}
}

func buildWithFamilies(t *testing.T, families ...LabelFamily) *Registry {
	t.Helper()
	b := NewBuilder("labels/1")
	for _, f := range families {
		if err := b.AddFamily(f); err != nil {
			t.Fatalf("AddFamily(%s) error: %v", f.Name, err)
		}
	}
	reg, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return reg
}

func TestLabelBoundaries(t *testing.T) {
	reg := buildWithFamilies(t, weekdayFamily(), quarterFamily())

	tests := []struct {
		table string
		index int
		want  string
		err   error
	}{
		{table: "weekday_en", index: 0, want: "Sunday"},
		{table: "weekday_en", index: 6, want: "Saturday"},
		{table: "weekday_en", index: 7, err: ErrIndexOutOfRange},
		{table: "weekday_en", index: -1, err: ErrIndexOutOfRange},
		{table: "weekday_en_abbr2", index: 3, want: "We"},
		{table: "quarter_en", index: 0, err: ErrIndexOutOfRange},
		{table: "quarter_en", index: 1, want: "Q1"},
		{table: "quarter_en", index: 4, want: "Q4"},
		{table: "quarter_en", index: 5, err: ErrIndexOutOfRange},
		{table: "missing", index: 0, err: ErrNotFound},
	}

	for _, tc := range tests {
		got, err := reg.Label(tc.table, tc.index)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("Label(%s, %d) error = %v, want %v", tc.table, tc.index, err, tc.err)
			}
			if got != "" {
				t.Fatalf("Label(%s, %d) = %q alongside error, want empty", tc.table, tc.index, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Label(%s, %d) error: %v", tc.table, tc.index, err)
		}
		if got != tc.want {
			t.Fatalf("Label(%s, %d) = %q, want %q", tc.table, tc.index, got, tc.want)
		}
	}
}

func TestAddFamilyRejectsMisalignedTables(t *testing.T) {
	tests := []struct {
		name string
		fam  LabelFamily
		want error
	}{
		{
			name: "short variant",
			fam: func() LabelFamily {
				f := weekdayFamily()
				f.Tables = append(f.Tables, LabelTable{Name: "weekday_short", Entries: []string{"S", "M", "T"}})
				return f
			}(),
			want: ErrTableLengthMismatch,
		},
		{
			name: "missing dummy entry",
			fam: LabelFamily{
				Name: "quarter", First: 1, Last: 4,
				Tables: []LabelTable{{Name: "quarter_en", Entries: []string{"Q1", "Q2", "Q3", "Q4"}}},
			},
			want: ErrTableLengthMismatch,
		},
		{
			name: "filled dummy entry",
			fam: LabelFamily{
				Name: "quarter", First: 1, Last: 4,
				Tables: []LabelTable{{Name: "quarter_en", Entries: []string{"Q0", "Q1", "Q2", "Q3", "Q4"}}},
			},
			want: ErrTableLengthMismatch,
		},
		{
			name: "empty label",
			fam: LabelFamily{
				Name: "pair", First: 0, Last: 1,
				Tables: []LabelTable{{Name: "pair_en", Entries: []string{"left", ""}}},
			},
			want: ErrInvalidDefinition,
		},
		{
			name: "inverted range",
			fam:  LabelFamily{Name: "bad", First: 3, Last: 1, Tables: []LabelTable{{Name: "bad_en"}}},
			want: ErrInvalidDefinition,
		},
		{
			name: "duplicate table in family",
			fam: LabelFamily{
				Name: "pair", First: 0, Last: 1,
				Tables: []LabelTable{
					{Name: "pair_en", Entries: []string{"left", "right"}},
					{Name: "pair_en", Entries: []string{"L", "R"}},
				},
			},
			want: ErrImmutableConstant,
		},
	}

	for _, tc := range tests {
		b := NewBuilder("labels/1")
		if err := b.AddFamily(tc.fam); !errors.Is(err, tc.want) {
			t.Fatalf("%s: AddFamily error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestAddFamilyRejectsTableFromAnotherFamily(t *testing.T) {
	b := NewBuilder("labels/1")
	if err := b.AddFamily(weekdayFamily()); err != nil {
		t.Fatalf("AddFamily error: %v", err)
	}
	clash := quarterFamily()
	clash.Tables[0].Name = "weekday_en"
	if err := b.AddFamily(clash); !errors.Is(err, ErrImmutableConstant) {
		t.Fatalf("AddFamily clash error = %v, want ErrImmutableConstant", err)
	}
}

func TestTablesAreCopied(t *testing.T) {
	fam := weekdayFamily()
	reg := buildWithFamilies(t, fam)

	// Mutating the caller's data after AddFamily must not leak in.
	fam.Tables[0].Entries[0] = "Caturday"
	if got, _ := reg.Label("weekday_en", 0); got != "Sunday" {
		t.Fatalf("Label after caller mutation = %q, want Sunday", got)
	}

	table, err := reg.Table("weekday_en")
	if err != nil {
		t.Fatalf("Table error: %v", err)
	}
	table[0] = "Caturday"
	if got, _ := reg.Label("weekday_en", 0); got != "Sunday" {
		t.Fatalf("Label after Table mutation = %q, want Sunday", got)
	}

	got, err := reg.Family("weekday_en_abbr2")
	if err != nil {
		t.Fatalf("Family by table error: %v", err)
	}
	if got.Name != "weekday" || got.Arity() != 7 {
		t.Fatalf("Family = %+v, want weekday with arity 7", got)
	}
	if names := reg.Tables(); len(names) != 2 || names[0] != "weekday_en" {
		t.Fatalf("Tables = %v", names)
	}
}
