package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mentorhub/contextd/internal/core"
	"github.com/mentorhub/contextd/internal/service/relevance"
	"github.com/mentorhub/contextd/pkg/conv"
	"github.com/mentorhub/contextd/pkg/log"
)

func (s *Server) handleGetContext(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	block, err := s.builder.Build(r.Context(), tenantID)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Str("tenant", tenantID).Msg("context build failed")
		writeError(w, http.StatusInternalServerError, "context build failed")
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(conv.MarkdownToHTML([]byte(block))))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(block))
}

type addMemoryRequest struct {
	Type         string `json:"type"`
	Content      string `json:"content"`
	Subject      string `json:"subject"`
	AttributedTo string `json:"attributed_to"`
}

func (s *Server) handleAddMemory(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req addMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	id, err := s.memories.Save(r.Context(), core.MemoryRecord{
		TenantID:     tenantID,
		Type:         core.MemoryType(req.Type),
		Content:      req.Content,
		Subject:      req.Subject,
		AttributedTo: req.AttributedTo,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	id, err := strconv.ParseInt(chi.URLParam(r, "memoryID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid memory id")
		return
	}

	if err := s.memories.Delete(r.Context(), tenantID, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "memory not found")
			return
		}
		log.FromCtx(r.Context()).Error().Err(err).Str("tenant", tenantID).Msg("memory delete failed")
		writeError(w, http.StatusInternalServerError, "memory delete failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type scoreRequest struct {
	Category                  string   `json:"category"`
	TenantIndustry            string   `json:"tenant_industry"`
	PriorEngagementIDs        []string `json:"prior_engagement_ids"`
	PriorEngagementCategories []string `json:"prior_engagement_categories"`
	OrgUnit                   *string  `json:"org_unit"`
	Role                      string   `json:"role"`
	Relationship              string   `json:"relationship"`
}

type scoreResponse struct {
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Relevant  bool    `json:"relevant"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	score := s.scorer.Score(relevance.Input{
		Category:                  req.Category,
		TenantIndustry:            req.TenantIndustry,
		PriorEngagementIDs:        req.PriorEngagementIDs,
		PriorEngagementCategories: req.PriorEngagementCategories,
		OrgUnit:                   req.OrgUnit,
		Role:                      req.Role,
		Relationship:              core.Relationship(req.Relationship),
	})
	threshold := s.scorer.Threshold(req.Role)

	writeJSON(w, http.StatusOK, scoreResponse{
		Score:     score,
		Threshold: threshold,
		Relevant:  score >= threshold,
	})
}

func (s *Server) handleThreshold(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	writeJSON(w, http.StatusOK, map[string]any{
		"role":      role,
		"threshold": s.scorer.Threshold(role),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
