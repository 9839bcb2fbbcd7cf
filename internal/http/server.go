// Package http exposes the expense ledger to the local UI as a JSON/CSV
// API. It is a thin, stateless layer: every handler reads or mutates
// through the ledger service and recomputes derived views per request.
package http

import (
	"context"
	"net/http"
	"time"

	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/middleware/trace"
)

// Ledger is the narrow interface the presentation layer consumes.
type Ledger interface {
	AddCategory(ctx context.Context, name string) (int64, error)
	Categories(ctx context.Context) ([]core.Category, error)
	DeleteCategory(ctx context.Context, name string) error
	AddExpense(ctx context.Context, e core.Expense) (int64, error)
	Expenses(ctx context.Context) ([]core.Expense, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	ImportCSV(ctx context.Context, data []byte) (int, []string)
}

type Server struct {
	http.Server
	ledger Ledger
	logger *applog.Logger

	// now is injected so KPI handlers are testable with a fixed day.
	now func() time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, ledger Ledger, logger *applog.Logger) *Server {
	s := &Server{
		ledger: ledger,
		logger: logger.WithComponent(applog.ComponentHTTP),
		now:    time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("POST /categories", s.handleAddCategory)
	mux.HandleFunc("DELETE /categories/{name}", s.handleDeleteCategory)

	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("POST /expenses", s.handleAddExpense)

	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("POST /import", s.handleImport)

	mux.HandleFunc("GET /summary/months", s.handleMonthSummary)
	mux.HandleFunc("GET /summary/categories", s.handleCategorySummary)
	mux.HandleFunc("GET /summary/kpis", s.handleKPIs)

	tracer := trace.NewMiddleware(logger, nil)
	s.Server = http.Server{
		Addr:    addr,
		Handler: tracer.Middleware(securityHeaders(mux)),
	}

	return s
}

// securityHeaders adds baseline response headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
