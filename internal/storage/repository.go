package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// Repository persists categories and expenses in SQLite. Every method is a
// short-lived operation on the shared *sql.DB; the multi-statement import
// path runs inside a single transaction.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddCategory inserts a category and returns its identity.
func (r *Repository) AddCategory(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO category (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category insert id: %w", err)
	}

	slog.InfoContext(ctx, "Category saved", "id", id, "name", name)
	return id, nil
}

// ListCategories returns all categories ordered by name ascending.
func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM category ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// CategoryExists reports whether a category with the exact name is registered.
func (r *Repository) CategoryExists(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM category WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query category existence: %w", err)
	}
	return n > 0, nil
}

// CategoryInUse reports whether any expense references the category name.
func (r *Repository) CategoryInUse(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM expense WHERE category = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query category usage: %w", err)
	}
	return n > 0, nil
}

// DeleteCategory removes a category by name.
func (r *Repository) DeleteCategory(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM category WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	slog.InfoContext(ctx, "Category deleted", "name", name)
	return nil
}

// AddExpense inserts an expense and returns its identity. An empty note is
// persisted as NULL.
func (r *Repository) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expense (date, amount_cents, category, note) VALUES (?, ?, ?, ?)`,
		e.Date.String(), e.Amount.Cents, e.Category, noteValue(e.Note))
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"date", e.Date.String(),
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return id, nil
}

// ListExpenses returns every expense, most recent first: date descending,
// ties broken by identity descending.
func (r *Repository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, amount_cents, category, note
		 FROM expense ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ImportBatch commits an import in one transaction: first the missing
// categories, then every expense row. A failure anywhere rolls the whole
// batch back so a created category is never left without its rows.
func (r *Repository) ImportBatch(ctx context.Context, newCategories []string, expenses []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range newCategories {
		// OR IGNORE makes re-imports of the same file idempotent: the
		// unique index on name guarantees exactly one row per category.
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO category (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("import category %q: %w", name, err)
		}
	}

	for _, e := range expenses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expense (date, amount_cents, category, note) VALUES (?, ?, ?, ?)`,
			e.Date.String(), e.Amount.Cents, e.Category, noteValue(e.Note)); err != nil {
			return fmt.Errorf("import expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Import batch committed",
		"new_categories", len(newCategories),
		"expenses", len(expenses))

	return nil
}

func noteValue(note string) any {
	if note == "" {
		return nil
	}
	return note
}

func scanExpense(rows *sql.Rows) (core.Expense, error) {
	var (
		e       core.Expense
		dateStr string
		cents   int64
		note    sql.NullString
	)
	if err := rows.Scan(&e.ID, &dateStr, &cents, &e.Category, &note); err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	d, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	e.Date = d
	e.Amount = core.Money{Cents: cents}
	if note.Valid {
		e.Note = note.String
	}
	return e, nil
}
