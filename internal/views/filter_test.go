package views

import (
	"testing"

	"tally/internal/core"
)

func snapshot() []core.Expense {
	return []core.Expense{
		{ID: 1, Date: core.NewDate(2024, 1, 5), Amount: core.Money{Cents: 1000}, Category: "Food", Note: "Lunch out"},
		{ID: 2, Date: core.NewDate(2024, 1, 20), Amount: core.Money{Cents: 500}, Category: "Food"},
		{ID: 3, Date: core.NewDate(2024, 2, 1), Amount: core.Money{Cents: 2000}, Category: "Transport", Note: "cab to airport"},
		{ID: 4, Date: core.NewDate(2024, 3, 15), Amount: core.Money{Cents: 750}, Category: "Other", Note: "misc"},
	}
}

func ids(es []core.Expense) []int64 {
	out := make([]int64, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

func assertIDs(t *testing.T, got []core.Expense, want ...int64) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, g)
		}
	}
}

func TestEmptyFilterPassesAll(t *testing.T) {
	assertIDs(t, Apply(snapshot(), Filter{}), 1, 2, 3, 4)
}

func TestCategoryFilter(t *testing.T) {
	assertIDs(t, Apply(snapshot(), Filter{Categories: []string{"Food"}}), 1, 2)
	assertIDs(t, Apply(snapshot(), Filter{Categories: []string{"Food", "Other"}}), 1, 2, 4)
	// Unknown category simply matches nothing.
	assertIDs(t, Apply(snapshot(), Filter{Categories: []string{"Casino"}}))
}

func TestDateRangeFilter(t *testing.T) {
	f := Filter{From: core.NewDate(2024, 1, 5), To: core.NewDate(2024, 2, 1)}
	// Inclusive on both ends.
	assertIDs(t, Apply(snapshot(), f), 1, 2, 3)

	// Reversed range is skipped, not an error.
	rev := Filter{From: core.NewDate(2024, 2, 1), To: core.NewDate(2024, 1, 1)}
	assertIDs(t, Apply(snapshot(), rev), 1, 2, 3, 4)

	// Partially given range is skipped too.
	part := Filter{From: core.NewDate(2024, 2, 1)}
	assertIDs(t, Apply(snapshot(), part), 1, 2, 3, 4)
}

func TestNoteTextFilter(t *testing.T) {
	// Case-insensitive substring.
	assertIDs(t, Apply(snapshot(), Filter{NoteText: "LUNCH"}), 1)
	assertIDs(t, Apply(snapshot(), Filter{NoteText: "airport"}), 3)
	// Absent notes never match a non-empty term.
	assertIDs(t, Apply(snapshot(), Filter{NoteText: "a"}), 1, 3)
	// Whitespace-only term disables the filter.
	assertIDs(t, Apply(snapshot(), Filter{NoteText: "   "}), 1, 2, 3, 4)
}

func TestFiltersCompose(t *testing.T) {
	f := Filter{
		Categories: []string{"Food", "Transport"},
		From:       core.NewDate(2024, 1, 1),
		To:         core.NewDate(2024, 1, 31),
		NoteText:   "lunch",
	}
	assertIDs(t, Apply(snapshot(), f), 1)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := snapshot()
	_ = Apply(in, Filter{Categories: []string{"Food"}})
	assertIDs(t, in, 1, 2, 3, 4)
}
