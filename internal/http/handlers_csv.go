package http

import (
	"io"
	"net/http"

	applog "tally/internal/log"
)

// maxImportBytes bounds an uploaded CSV file.
const maxImportBytes = 10 << 20 // 10MB

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.ledger.ExportCSV(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Export failed", applog.FieldError, err)
		writeError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Ledger exported",
		applog.FieldOperation, applog.OpExport,
		"bytes", len(data))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Import body read failed", applog.FieldError, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not read upload"})
		return
	}

	imported, importErrs := s.ledger.ImportCSV(r.Context(), data)
	if len(importErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "import rejected",
			Errors: importErrs,
		})
		return
	}

	s.logger.InfoContext(r.Context(), "Ledger imported",
		applog.FieldOperation, applog.OpImport,
		applog.FieldRowCount, imported)

	writeJSON(w, http.StatusOK, struct {
		Imported int `json:"imported"`
	}{Imported: imported})
}
