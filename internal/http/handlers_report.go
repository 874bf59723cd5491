package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"crediario/internal/core"
	"crediario/internal/export"
	"crediario/internal/log"
	"crediario/internal/report"
)

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Settings.Get())
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cfg, err := s.store.Settings.Update(r.Context(), req.patch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

type summaryResponse struct {
	report.Summary
	CollectionRate string `json:"collection_rate"`
}

// Report cache keys carry the calendar day of asOf: interest and overdue
// counts only move at midnight.
func summaryCacheKey(asOf time.Time) string {
	return "summary:" + asOf.Format(core.DateLayout)
}

func monthlyCacheKey(year, month int, asOf time.Time) string {
	return fmt.Sprintf("%04d-%02d:%s", year, month, asOf.Format(core.DateLayout))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	asOf := s.asOf()
	key := summaryCacheKey(asOf)
	sum, ok := s.summaryCache.Get(key)
	if !ok {
		sum = report.BuildSummary(
			s.store.Customers.List(),
			s.store.Transactions.List(),
			s.store.Expenses.List(),
			asOf,
		)
		s.summaryCache.Set(key, sum)
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:        sum,
		CollectionRate: sum.CollectionRate().StringFixed(2),
	})
}

// handleMonthly reports ?year=&month=, defaulting to the current month.
func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	asOf := s.asOf()
	year, month, err := parseYearMonth(r, asOf)
	if err != nil {
		writeError(w, r, err)
		return
	}
	key := monthlyCacheKey(year, month, asOf)
	m, ok := s.monthlyCache.Get(key)
	if !ok {
		m = report.BuildMonthly(
			s.store.Customers.List(),
			s.store.Transactions.List(),
			s.store.Expenses.List(),
			month, year, asOf,
		)
		s.monthlyCache.Set(key, m)
	}
	writeJSON(w, http.StatusOK, m)
}

// handleExport streams the report for ?year=&month= as a file download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	asOf := s.asOf()
	year, month, err := parseYearMonth(r, asOf)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil || !f.IsFile() {
		writeError(w, r, fmt.Errorf("%w: format must be json, pdf or xlsx", errBadRequest))
		return
	}

	snap := export.FromStore(s.store, year, month, asOf)
	var buf bytes.Buffer
	if err := export.Render(&buf, f, snap); err != nil {
		writeError(w, r, fmt.Errorf("render %s export: %w", f, err))
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Report exported",
		log.FieldOperation, log.OpExport,
		log.FieldFormat, string(f),
		log.FieldYear, year,
		log.FieldMonth, month)

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(year, month, f)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
