// Package views derives filtered projections of a ledger snapshot. All
// functions are pure: they never touch the store and never mutate input.
package views

import (
	"strings"

	"tally/internal/core"
)

// Filter narrows a snapshot. Zero values disable each criterion: an empty
// category set passes everything, a malformed or partial date range is
// skipped, and a blank note term disables the text search.
type Filter struct {
	Categories []string
	From, To   core.Date
	NoteText   string
}

// Apply returns the rows matching every active criterion. Criteria compose
// by intersection and are order-insensitive.
func Apply(snapshot []core.Expense, f Filter) []core.Expense {
	categories := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		categories[c] = true
	}

	rangeActive := !f.From.IsZero() && !f.To.IsZero() && !f.From.After(f.To.Time)
	term := strings.ToLower(strings.TrimSpace(f.NoteText))

	out := make([]core.Expense, 0, len(snapshot))
	for _, e := range snapshot {
		if len(categories) > 0 && !categories[e.Category] {
			continue
		}
		if rangeActive && (e.Date.Before(f.From.Time) || e.Date.After(f.To.Time)) {
			continue
		}
		if term != "" {
			// Absent notes never match a non-empty term.
			if e.Note == "" || !strings.Contains(strings.ToLower(e.Note), term) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
