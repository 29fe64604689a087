package http

import (
	"net/http"

	"folio/internal/log"
)

// handleInsightsPage renders the Business Insights page.
func (s *Server) handleInsightsPage(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.render(w, r, "insights.html", nil)
}

// handleInsightsPartial renders the aggregate metrics partial.
func (s *Server) handleInsightsPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	insights, err := s.service.GetInsights(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Insights error", log.FieldError, err)
		InternalServerError("Error loading insights").Write(w)
		return
	}

	data := struct {
		HasAssets  bool
		AssetCount int
		TotalCost  string
		AvgCost    string
		MinShares  string
		MaxShares  string
	}{
		HasAssets:  insights.AssetCount > 0,
		AssetCount: insights.AssetCount,
		TotalCost:  formatDollars(insights.TotalCostBasis.Cents),
		AvgCost:    formatDollars(insights.AvgCostBasis.Cents),
		MinShares:  insights.MinShares.String(),
		MaxShares:  insights.MaxShares.String(),
	}

	s.render(w, r, "insights_stats", data)
}
