// Package csvio maps expense records to and from the CSV wire format:
// UTF-8, comma separated, header row "date,amount,category,note", dates as
// YYYY-MM-DD and amounts as plain two-decimal strings.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"tally/internal/core"
)

const (
	colDate     = "date"
	colAmount   = "amount"
	colCategory = "category"
	colNote     = "note"
)

// Export serializes records in input order. Absent notes become empty cells.
func Export(records []core.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{colDate, colAmount, colCategory, colNote}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range records {
		row := []string{e.Date.String(), e.Amount.String(), e.Category, e.Note}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Import parses raw CSV bytes into expense records. It never returns a Go
// error to the caller: failures come back as human-readable messages with
// zero records. A structural problem (unparseable table, missing mandatory
// column) short-circuits; a bad date or amount in any row aborts the whole
// batch so a partial set is never produced. The note column is optional and
// empty-ish values ("", "nan", "none", "null") normalize to absent.
func Import(data []byte) ([]core.Expense, []string) {
	r := csv.NewReader(bytes.NewReader(data))
	table, err := r.ReadAll()
	if err != nil {
		return nil, []string{fmt.Sprintf("could not parse CSV: %v", err)}
	}
	if len(table) == 0 {
		return nil, []string{"could not parse CSV: empty input"}
	}

	header := table[0]
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range []string{colDate, colAmount, colCategory} {
		if _, ok := idx[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, []string{fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", "))}
	}
	noteIdx, hasNote := idx[colNote]

	records := make([]core.Expense, 0, len(table)-1)
	for n, row := range table[1:] {
		line := n + 2 // 1-based, after the header

		date, err := core.ParseDate(row[idx[colDate]])
		if err != nil {
			return nil, []string{fmt.Sprintf("row %d: invalid date %q", line, row[idx[colDate]])}
		}
		amount, err := core.ParseMoney(row[idx[colAmount]])
		if err != nil {
			return nil, []string{fmt.Sprintf("row %d: invalid amount %q", line, row[idx[colAmount]])}
		}
		category := strings.TrimSpace(row[idx[colCategory]])
		if category == "" {
			return nil, []string{fmt.Sprintf("row %d: empty category", line)}
		}

		note := ""
		if hasNote {
			note = normalizeNote(row[noteIdx])
		}

		records = append(records, core.Expense{
			Date:     date,
			Amount:   amount,
			Category: category,
			Note:     note,
		})
	}

	return records, nil
}

func normalizeNote(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return ""
	}
	return s
}
