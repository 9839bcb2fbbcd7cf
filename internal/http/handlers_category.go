package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tally/internal/core"
	applog "tally/internal/log"
)

type categoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.ledger.Categories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List categories failed", applog.FieldError, err)
		writeError(w, err)
		return
	}

	out := make([]categoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryDTO{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", core.ErrValidation))
		return
	}

	id, err := s.ledger.AddCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Category created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldCategory, req.Name)

	writeJSON(w, http.StatusCreated, categoryDTO{ID: id, Name: req.Name})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.ledger.DeleteCategory(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Category deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldCategory, name)

	w.WriteHeader(http.StatusNoContent)
}
