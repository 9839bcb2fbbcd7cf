package http

import (
	"net/http"

	"tally/internal/analytics"
	"tally/internal/core"
	applog "tally/internal/log"
)

type monthTotalDTO struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

type categoryTotalDTO struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type kpiDTO struct {
	Total            string `json:"total_this_month"`
	TransactionCount int    `json:"transaction_count_this_month"`
	AvgDaily         string `json:"avg_daily_this_month"`
	TopCategory      string `json:"top_category_this_month"`
	LargestExpense   string `json:"largest_expense_this_month"`
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ledger.Expenses(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Month summary failed", applog.FieldError, err)
		writeError(w, err)
		return
	}

	totals := analytics.ByMonth(snapshot)
	out := make([]monthTotalDTO, 0, len(totals))
	for _, t := range totals {
		out = append(out, monthTotalDTO{Month: t.Month.String(), Total: t.Total.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ledger.Expenses(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Category summary failed", applog.FieldError, err)
		writeError(w, err)
		return
	}

	totals := analytics.ByCategory(snapshot)
	out := make([]categoryTotalDTO, 0, len(totals))
	for _, t := range totals {
		out = append(out, categoryTotalDTO{Category: t.Category, Total: t.Total.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ledger.Expenses(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "KPI summary failed", applog.FieldError, err)
		writeError(w, err)
		return
	}

	now := s.now()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	k := analytics.CurrentMonthKPIs(snapshot, today)

	writeJSON(w, http.StatusOK, kpiDTO{
		Total:            k.Total.String(),
		TransactionCount: k.TransactionCount,
		AvgDaily:         k.AvgDaily.String(),
		TopCategory:      k.TopCategory,
		LargestExpense:   k.LargestExpense,
	})
}
