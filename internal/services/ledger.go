// Package services holds the ledger service: the single entry point the
// presentation layer calls for category and expense operations, including
// CSV import and export.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tally/internal/core"
	"tally/internal/csvio"
)

// Ports to the persisted store, defined on the consumer side so tests can
// substitute fakes.
type (
	CategoryStore interface {
		AddCategory(ctx context.Context, name string) (int64, error)
		ListCategories(ctx context.Context) ([]core.Category, error)
		CategoryExists(ctx context.Context, name string) (bool, error)
		CategoryInUse(ctx context.Context, name string) (bool, error)
		DeleteCategory(ctx context.Context, name string) error
	}

	ExpenseStore interface {
		AddExpense(ctx context.Context, e core.Expense) (int64, error)
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		ImportBatch(ctx context.Context, newCategories []string, expenses []core.Expense) error
	}

	Store interface {
		CategoryStore
		ExpenseStore
	}
)

// Ledger enforces the domain contract in front of the store: category
// uniqueness and deletion guards, expense validation, and the two-phase
// CSV import.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// AddCategory trims and registers a new category name.
func (l *Ledger) AddCategory(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: category name cannot be empty", core.ErrValidation)
	}

	exists, err := l.store.CategoryExists(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("check category: %w", err)
	}
	if exists {
		return 0, fmt.Errorf("category %q: %w", name, core.ErrDuplicate)
	}

	return l.store.AddCategory(ctx, name)
}

// Categories returns all registered categories, name ascending.
func (l *Ledger) Categories(ctx context.Context) ([]core.Category, error) {
	return l.store.ListCategories(ctx)
}

// CategoryInUse reports whether any expense references the category.
func (l *Ledger) CategoryInUse(ctx context.Context, name string) (bool, error) {
	return l.store.CategoryInUse(ctx, name)
}

// DeleteCategory removes a category that exists and is not referenced by
// any expense. Check-then-act is safe here: there is exactly one writer.
func (l *Ledger) DeleteCategory(ctx context.Context, name string) error {
	exists, err := l.store.CategoryExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return fmt.Errorf("category %q: %w", name, core.ErrNotFound)
	}

	inUse, err := l.store.CategoryInUse(ctx, name)
	if err != nil {
		return fmt.Errorf("check category usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("category %q is referenced by existing expenses: %w", name, core.ErrInUse)
	}

	return l.store.DeleteCategory(ctx, name)
}

// AddExpense validates and records a single expense. The category must
// already be registered even though the UI only offers registered names.
func (l *Ledger) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	known, err := l.store.CategoryExists(ctx, e.Category)
	if err != nil {
		return 0, fmt.Errorf("check category: %w", err)
	}
	if !known {
		return 0, fmt.Errorf("category %q: %w", e.Category, core.ErrUnknownCategory)
	}

	return l.store.AddExpense(ctx, e)
}

// Expenses returns the full ledger, most recent first.
func (l *Ledger) Expenses(ctx context.Context) ([]core.Expense, error) {
	return l.store.ListExpenses(ctx)
}

// ExportCSV serializes the current ledger in display order.
func (l *Ledger) ExportCSV(ctx context.Context) ([]byte, error) {
	expenses, err := l.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return csvio.Export(expenses)
}

// ImportCSV decodes and commits a CSV batch. Structural and per-value
// problems come back as messages with nothing imported; on success every
// row is committed together with any categories it introduced.
func (l *Ledger) ImportCSV(ctx context.Context, data []byte) (int, []string) {
	records, errs := csvio.Import(data)
	if len(errs) > 0 {
		slog.WarnContext(ctx, "CSV import rejected", "errors", errs)
		return 0, errs
	}
	if len(records) == 0 {
		return 0, nil
	}

	missing, err := l.missingCategories(ctx, records)
	if err != nil {
		return 0, []string{err.Error()}
	}

	if err := l.store.ImportBatch(ctx, missing, records); err != nil {
		return 0, []string{fmt.Sprintf("import failed: %v", err)}
	}

	slog.InfoContext(ctx, "CSV import committed",
		"rows", len(records),
		"new_categories", len(missing))

	return len(records), nil
}

// missingCategories returns the distinct category names referenced by the
// batch that are not yet registered, in first-seen order.
func (l *Ledger) missingCategories(ctx context.Context, records []core.Expense) ([]string, error) {
	cats, err := l.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	known := make(map[string]bool, len(cats))
	for _, c := range cats {
		known[c.Name] = true
	}

	var missing []string
	for _, r := range records {
		if !known[r.Category] {
			known[r.Category] = true
			missing = append(missing, r.Category)
		}
	}
	return missing, nil
}
