package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexhours/lexhours/internal/types"
	"github.com/lexhours/lexhours/internal/validation"
)

type createEntryRequest struct {
	Date  string         `json:"date"`
	Hours float64        `json:"hours"`
	Data  map[string]any `json:"data"`
}

type updateEntryRequest struct {
	Date  *string        `json:"date"`
	Hours *float64       `json:"hours"`
	Data  map[string]any `json:"data"`
}

type batchSubmitRequest struct {
	IDs []string `json:"ids"`
}

// ListEntries handles GET /api/timesheet/entries. It lists the caller's
// own entries, optionally bounded by startDate/endDate.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	identity := MustIdentityFromContext(r.Context())
	q := r.URL.Query()

	entries, err := h.store.EntriesByUser(r.Context(), identity.UserID, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entries": entries})
}

// CreateEntry handles POST /api/timesheet/entries.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	identity := MustIdentityFromContext(r.Context())

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateDate("date", req.Date))
	c.Add(validation.ValidateRange("hours", req.Hours, 0, 24))
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}
	if req.Data == nil {
		req.Data = map[string]any{}
	}

	entry, err := h.store.CreateEntry(r.Context(), &types.NewEntry{
		UserID:   identity.UserID,
		Username: identity.Username,
		Date:     req.Date,
		Hours:    req.Hours,
		Data:     req.Data,
	})
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "entry": entry})
}

// entryForCaller loads an entry and enforces ownership. Admins may access
// any entry.
func (h *Handler) entryForCaller(w http.ResponseWriter, r *http.Request) (*types.TimesheetEntry, bool) {
	identity := MustIdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	entry, err := h.store.EntryByID(r.Context(), id)
	if err != nil {
		MapStoreError(w, r, err)
		return nil, false
	}
	if entry.UserID != identity.UserID && !identity.IsAdmin() {
		WriteProblem(w, r, http.StatusForbidden, "Entry belongs to another user")
		return nil, false
	}
	return entry, true
}

// GetEntry handles GET /api/timesheet/entries/{id}.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.entryForCaller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entry": entry})
}

// UpdateEntry handles PUT /api/timesheet/entries/{id}. Submitted entries
// are immutable and yield 409.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.entryForCaller(w, r)
	if !ok {
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	if req.Date != nil {
		c.Add(validation.ValidateDate("date", *req.Date))
	}
	if req.Hours != nil {
		c.Add(validation.ValidateRange("hours", *req.Hours, 0, 24))
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}

	updated, err := h.store.UpdateEntry(r.Context(), entry.ID, &types.EntryUpdate{
		Date:  req.Date,
		Hours: req.Hours,
		Data:  req.Data,
	})
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entry": updated})
}

// DeleteEntry handles DELETE /api/timesheet/entries/{id}.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.entryForCaller(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteEntry(r.Context(), entry.ID); err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// SubmitEntry handles POST /api/timesheet/entries/{id}/submit.
func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	identity := MustIdentityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	n, err := h.store.SubmitEntries(r.Context(), identity.UserID, []string{id})
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "submitted": n})
}

// BatchSubmitEntries handles POST /api/timesheet/entries/batch-submit.
func (h *Handler) BatchSubmitEntries(w http.ResponseWriter, r *http.Request) {
	identity := MustIdentityFromContext(r.Context())

	var req batchSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}
	if len(req.IDs) == 0 {
		WriteProblem(w, r, http.StatusBadRequest, "ids must not be empty")
		return
	}

	n, err := h.store.SubmitEntries(r.Context(), identity.UserID, req.IDs)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "submitted": n})
}

// TimesheetStats handles GET /api/timesheet/stats.
func (h *Handler) TimesheetStats(w http.ResponseWriter, r *http.Request) {
	identity := MustIdentityFromContext(r.Context())
	q := r.URL.Query()

	stats, err := h.store.UserStats(r.Context(), identity.UserID, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

// TeamEntries handles GET /api/timesheet/team-entries. Admins see every
// center (optionally narrowed with ?center=); everyone else sees their own
// center only.
func (h *Handler) TeamEntries(w http.ResponseWriter, r *http.Request) {
	identity := MustIdentityFromContext(r.Context())
	q := r.URL.Query()

	center := q.Get("center")
	if !identity.IsAdmin() {
		user, err := h.store.UserByID(r.Context(), identity.UserID)
		if err != nil {
			MapStoreError(w, r, err)
			return
		}
		center = user.Center
	}

	entries, err := h.store.EntriesByCenter(r.Context(), center, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entries": entries})
}
