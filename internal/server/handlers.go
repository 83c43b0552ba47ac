package server

import (
	"encoding/json"
	"net/http"

	"campaign-monetization/internal/socialproof"
)

// writeJSON marshals v as JSON and writes it to the response with the given
// HTTP status code. If marshaling fails, it falls back to a plain 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError sends a JSON-formatted error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleOptimizePricing runs the pricing engine for a campaign.
// POST /api/pricing/optimize/{campaignID}
func (s *Server) handleOptimizePricing(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignID")
	if campaignID == "" {
		writeError(w, http.StatusBadRequest, "missing campaign id")
		return
	}
	writeJSON(w, http.StatusOK, s.pricing.OptimizePricing(r.Context(), campaignID))
}

// handleMonitorCompetitors benchmarks product URLs against the market.
// POST /api/pricing/competitors
func (s *Server) handleMonitorCompetitors(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductURLs []string `json:"product_urls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, s.pricing.MonitorCompetitors(r.Context(), body.ProductURLs))
}

// handleSurgePricing builds the surge schedule for a campaign.
// GET /api/pricing/surge/{campaignID}
func (s *Server) handleSurgePricing(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignID")
	if campaignID == "" {
		writeError(w, http.StatusBadRequest, "missing campaign id")
		return
	}
	writeJSON(w, http.StatusOK, s.pricing.OptimizeSurgePricing(r.Context(), campaignID))
}

// handleSocialProof returns the ranked widget list for a campaign.
// GET /api/proof/{campaignID}
func (s *Server) handleSocialProof(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignID")
	if campaignID == "" {
		writeError(w, http.StatusBadRequest, "missing campaign id")
		return
	}
	writeJSON(w, http.StatusOK, s.socialproof.GenerateSocialProof(r.Context(), campaignID))
}

// handleTrackEvent appends one proof event.
// POST /api/proof/events
func (s *Server) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	var in socialproof.TrackEventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result := s.socialproof.TrackEvent(r.Context(), in)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

// handleTrackClick appends one click event for a link.
// POST /api/clicks/{linkID}
func (s *Server) handleTrackClick(w http.ResponseWriter, r *http.Request) {
	linkID := r.PathValue("linkID")
	if linkID == "" {
		writeError(w, http.StatusBadRequest, "missing link id")
		return
	}
	result := s.socialproof.TrackClick(r.Context(), linkID)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

// handleTestimonials returns the testimonial feed for a campaign.
// GET /api/testimonials/{campaignID}
func (s *Server) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaignID")
	if campaignID == "" {
		writeError(w, http.StatusBadRequest, "missing campaign id")
		return
	}
	writeJSON(w, http.StatusOK, s.socialproof.GetTestimonials(r.Context(), campaignID))
}
