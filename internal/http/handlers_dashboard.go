package http

import (
	"encoding/json"
	"net/http"

	"folio/internal/log"
)

// handleDashboardPage renders the main dashboard page.
func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	s.render(w, r, "dashboard.html", nil)
}

// handleSummaryPartial renders the four summary metric cards.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	summary, err := s.service.GetSummary(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Summary error", log.FieldError, err)
		InternalServerError("Error loading portfolio summary").Write(w)
		return
	}

	gainClass := ""
	switch {
	case summary.TotalGainLoss.Cents > 0:
		gainClass = "metric-card__value--positive"
	case summary.TotalGainLoss.Cents < 0:
		gainClass = "metric-card__value--negative"
	}

	data := struct {
		HasAssets   bool
		AssetCount  int
		MarketValue string
		GainLoss    string
		GainClass   string
		CostBasis   string
		AvgCost     string
	}{
		HasAssets:   summary.AssetCount > 0,
		AssetCount:  summary.AssetCount,
		MarketValue: formatDollars(summary.TotalMarketValue.Cents),
		GainLoss:    formatSigned(summary.TotalGainLoss.Cents),
		GainClass:   gainClass,
		CostBasis:   formatDollars(summary.TotalCostBasis.Cents),
		AvgCost:     formatDollars(summary.AvgCostBasis.Cents),
	}

	s.render(w, r, "summary_cards", data)
}

// handleAllocationData returns the allocation breakdown as Chart.js-ready JSON.
func (s *Server) handleAllocationData(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	allocation, err := s.service.GetAllocation(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Allocation error", log.FieldError, err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to load allocation"})
		return
	}

	labels := make([]string, 0, len(allocation))
	values := make([]float64, 0, len(allocation))
	for _, a := range allocation {
		labels = append(labels, string(a.Class))
		values = append(values, float64(a.CostBasis.Cents)/100.0)
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(struct {
		Labels []string  `json:"labels"`
		Values []float64 `json:"values"`
	}{Labels: labels, Values: values})
}
