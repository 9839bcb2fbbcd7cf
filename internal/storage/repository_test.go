package storage

import (
	"context"
	"path/filepath"
	"testing"

	"tally/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSeededCategories(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 5 {
		t.Fatalf("expected 5 seeded categories, got %d", len(cats))
	}
	// Name ascending ordering.
	for i := 1; i < len(cats); i++ {
		if cats[i-1].Name >= cats[i].Name {
			t.Fatalf("categories not sorted: %q before %q", cats[i-1].Name, cats[i].Name)
		}
	}
}

func TestAddAndDeleteCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddCategory(ctx, "Travel")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	exists, err := repo.CategoryExists(ctx, "Travel")
	if err != nil || !exists {
		t.Fatalf("expected Travel to exist, got exists=%v err=%v", exists, err)
	}

	if err := repo.DeleteCategory(ctx, "Travel"); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	exists, err = repo.CategoryExists(ctx, "Travel")
	if err != nil || exists {
		t.Fatalf("expected Travel to be gone, got exists=%v err=%v", exists, err)
	}
}

func TestExpenseOrderingAndNoteNull(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.AddExpense(ctx, core.Expense{
		Date: core.NewDate(2024, 1, 5), Amount: core.Money{Cents: 1000}, Category: "Food",
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	second, err := repo.AddExpense(ctx, core.Expense{
		Date: core.NewDate(2024, 1, 5), Amount: core.Money{Cents: 500}, Category: "Food",
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, err := repo.AddExpense(ctx, core.Expense{
		Date: core.NewDate(2024, 2, 1), Amount: core.Money{Cents: 2000}, Category: "Transport", Note: "cab",
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	expenses, err := repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(expenses))
	}
	// Date desc, then id desc for the two same-day rows.
	if expenses[0].Date.String() != "2024-02-01" {
		t.Fatalf("expected newest date first, got %s", expenses[0].Date)
	}
	if expenses[1].ID != second || expenses[2].ID != first {
		t.Fatalf("same-day tie not broken by id desc: got %d, %d", expenses[1].ID, expenses[2].ID)
	}
	if expenses[1].Note != "" {
		t.Fatalf("expected absent note, got %q", expenses[1].Note)
	}
	if expenses[0].Note != "cab" {
		t.Fatalf("expected note round trip, got %q", expenses[0].Note)
	}
}

func TestCategoryInUse(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	inUse, err := repo.CategoryInUse(ctx, "Food")
	if err != nil || inUse {
		t.Fatalf("expected Food unused, got inUse=%v err=%v", inUse, err)
	}

	if _, err := repo.AddExpense(ctx, core.Expense{
		Date: core.NewDate(2024, 3, 1), Amount: core.Money{Cents: 100}, Category: "Food",
	}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	inUse, err = repo.CategoryInUse(ctx, "Food")
	if err != nil || !inUse {
		t.Fatalf("expected Food in use, got inUse=%v err=%v", inUse, err)
	}
}

func TestImportBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rows := []core.Expense{
		{Date: core.NewDate(2024, 1, 5), Amount: core.Money{Cents: 1000}, Category: "Gadgets"},
		{Date: core.NewDate(2024, 1, 6), Amount: core.Money{Cents: 2500}, Category: "Gadgets", Note: "cable"},
	}

	if err := repo.ImportBatch(ctx, []string{"Gadgets"}, rows); err != nil {
		t.Fatalf("import batch: %v", err)
	}
	// Importing the same file again must not duplicate the category.
	if err := repo.ImportBatch(ctx, []string{"Gadgets"}, rows); err != nil {
		t.Fatalf("second import batch: %v", err)
	}

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	n := 0
	for _, c := range cats {
		if c.Name == "Gadgets" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("expected exactly one Gadgets category, got %d", n)
	}

	expenses, err := repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 4 {
		t.Fatalf("expected 4 expenses after two imports, got %d", len(expenses))
	}
}
