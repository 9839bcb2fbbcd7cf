package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/views"
)

type expenseDTO struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note,omitempty"`
}

func toExpenseDTO(e core.Expense) expenseDTO {
	return expenseDTO{
		ID:       e.ID,
		Date:     e.Date.String(),
		Amount:   e.Amount.String(),
		Category: e.Category,
		Note:     e.Note,
	}
}

// handleListExpenses returns the ledger in display order, narrowed by the
// optional query parameters: repeated "category", "from"/"to" dates, and a
// free-text "q" matched against notes. Malformed dates simply deactivate
// the range filter, mirroring the filter engine's contract.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ledger.Expenses(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List expenses failed", applog.FieldError, err)
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	f := views.Filter{
		Categories: q["category"],
		NoteText:   q.Get("q"),
	}
	if from, err := core.ParseDate(q.Get("from")); err == nil {
		f.From = from
	}
	if to, err := core.ParseDate(q.Get("to")); err == nil {
		f.To = to
	}

	filtered := views.Apply(snapshot, f)
	out := make([]expenseDTO, 0, len(filtered))
	for _, e := range filtered {
		out = append(out, toExpenseDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date     string `json:"date"`
		Amount   string `json:"amount"`
		Category string `json:"category"`
		Note     string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", core.ErrValidation))
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	e := core.Expense{
		Date:     date,
		Amount:   amount,
		Category: req.Category,
		Note:     req.Note,
	}
	id, err := s.ledger.AddExpense(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}
	e.ID = id

	s.logger.InfoContext(r.Context(), "Expense created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldDate, e.Date.String(),
		applog.FieldAmountCents, e.Amount.Cents,
		applog.FieldCategory, e.Category)

	writeJSON(w, http.StatusCreated, toExpenseDTO(e))
}
