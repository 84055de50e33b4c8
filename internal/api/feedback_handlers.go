package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lexhours/lexhours/internal/types"
	"github.com/lexhours/lexhours/internal/validation"
)

type recordFeedbackRequest struct {
	SessionID string         `json:"sessionId"`
	UserInput string         `json:"userInput"`
	AIResult  map[string]any `json:"aiResult"`
}

type submitFeedbackRequest struct {
	SessionID   string         `json:"sessionId"`
	FinalResult map[string]any `json:"finalResult"`
	TimesheetID string         `json:"timesheetId"`
}

// RecordFeedback handles POST /api/feedback/record. It stores the model's
// suggestion for later comparison against what the user saves and returns
// the record's id.
func (h *Handler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	identity := MustIdentityFromContext(r.Context())

	var req recordFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("sessionId", req.SessionID))
	c.Add(validation.ValidateRequired("userInput", req.UserInput))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}
	if req.AIResult == nil {
		req.AIResult = map[string]any{}
	}

	id, err := h.store.RecordExtraction(r.Context(), &types.FeedbackRecord{
		UserID:    identity.UserID,
		SessionID: req.SessionID,
		UserInput: req.UserInput,
		AIResult:  req.AIResult,
	})
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "feedbackId": id})
}

// SubmitFeedback handles POST /api/feedback/submit. Finalizing an unknown
// session is a silent success so a lost record never blocks saving the entry.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req submitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if err := validation.ValidateRequired("sessionId", req.SessionID); err != nil {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", []validation.ValidationError{*err})
		return
	}
	if req.FinalResult == nil {
		req.FinalResult = map[string]any{}
	}

	if err := h.store.FinalizeExtraction(r.Context(), req.SessionID, req.FinalResult, req.TimesheetID); err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// FeedbackStatistics handles GET /api/feedback/statistics (admin only).
// Query params: startDate/endDate bound the summary, userId filters to one
// user, days sets the daily-trend window (default 30).
func (h *Handler) FeedbackStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var userID int64
	if raw := q.Get("userId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			WriteProblem(w, r, http.StatusBadRequest, "userId must be an integer")
			return
		}
		userID = parsed
	}

	days := 30
	if raw := q.Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteProblem(w, r, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	summary, err := h.store.AccuracySummary(r.Context(), q.Get("startDate"), q.Get("endDate"), userID)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	daily, err := h.store.DailyAccuracy(r.Context(), days)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"summary": summary,
		"daily":   daily,
	})
}

// RecentFeedback handles GET /api/feedback/recent (admin only).
func (h *Handler) RecentFeedback(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteProblem(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.store.RecentFeedback(r.Context(), limit)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "records": records})
}
