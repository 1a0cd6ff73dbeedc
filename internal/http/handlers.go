package http

import (
	"net/http"

	"cardledger/internal/engine"
	"cardledger/internal/services"
)

func (s *Server) handleMainPage(w http.ResponseWriter, r *http.Request) {
	ref, err := parseReference(r.URL.Query(), s.now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.serveReport(w, r, services.Request{Report: engine.ReportMainPage, Reference: ref})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	ref, err := parseReference(query, s.now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	category := sanitizeInput(query.Get("category"))
	if category == "" {
		category = s.category
	}
	s.serveReport(w, r, services.Request{Report: engine.ReportCategory, Reference: ref, Category: category})
}

func (s *Server) handleWeekday(w http.ResponseWriter, r *http.Request) {
	s.serveWindow(w, r, engine.ReportWeekday)
}

func (s *Server) handleWorkday(w http.ResponseWriter, r *http.Request) {
	s.serveWindow(w, r, engine.ReportWorkday)
}

func (s *Server) serveWindow(w http.ResponseWriter, r *http.Request, report string) {
	ref, err := parseReference(r.URL.Query(), s.now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.serveReport(w, r, services.Request{Report: report, Reference: ref})
}

func (s *Server) handleInvest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	unit, err := parsePositiveInt(query, "unit", s.roundingUnit, 0)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.serveReport(w, r, services.Request{
		Report:       engine.ReportInvestment,
		Month:        parseMonth(query, s.now()),
		RoundingUnit: unit,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, services.Request{Report: services.ReportSearch, Query: sanitizeInput(r.URL.Query().Get("q"))})
}

func (s *Server) handlePhones(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, services.Request{Report: services.ReportSearchPhones})
}

func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, services.Request{Report: services.ReportSearchTransfers})
}

func (s *Server) serveReport(w http.ResponseWriter, r *http.Request, req services.Request) {
	res, err := s.reports.Build(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Payload)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, r, http.StatusNotImplemented, "run history requires the sqlite backend")
		return
	}
	limit, err := parsePositiveInt(r.URL.Query(), "limit", defaultRunLimit, maxRunLimit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	runs, err := s.runs.RecentRuns(r.Context(), int(limit))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"requests":  s.tracer.GetMetrics(),
		"ratelimit": s.limiter.GetMetrics(),
		"security":  s.detector.GetMetrics(),
	})
}
