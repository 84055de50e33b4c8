package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexhours/lexhours/internal/store"
	"github.com/lexhours/lexhours/internal/types"
	"github.com/lexhours/lexhours/internal/validation"
)

// builtinTemplate is the fallback field schema when no template has been
// configured for a user's center.
var builtinTemplate = types.Template{
	Name: "通用工时模板",
	Fields: []types.FormField{
		{Key: "category", Label: "工作类别", Required: true},
		{Key: "hours", Label: "工时", Required: true},
		{Key: "description", Label: "工作描述"},
	},
}

// ListTemplates handles GET /api/templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.AllTemplates(r.Context())
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "templates": templates})
}

// UpsertTemplate handles POST /api/templates (admin only). Posting the same
// center/team pair again replaces the stored schema.
func (h *Handler) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl types.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("center", tpl.Center))
	c.Add(validation.ValidateRequired("name", tpl.Name))
	if len(tpl.Fields) == 0 {
		c.Add(&validation.ValidationError{Field: "fields", Message: "is required"})
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}

	if err := h.store.UpsertTemplate(r.Context(), &tpl); err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// TemplateByCenter handles GET /api/templates/{center}. It returns the
// center-wide default template.
func (h *Handler) TemplateByCenter(w http.ResponseWriter, r *http.Request) {
	center := chi.URLParam(r, "center")

	tpl, err := h.store.TemplateFor(r.Context(), center, "")
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "template": tpl})
}

// MyTemplate handles GET /api/my-template. Resolution order: the caller's
// team template, then the center default, then the built-in schema.
func (h *Handler) MyTemplate(w http.ResponseWriter, r *http.Request) {
	identity := MustIdentityFromContext(r.Context())

	user, err := h.store.UserByID(r.Context(), identity.UserID)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	tpl, err := h.store.TemplateFor(r.Context(), user.Center, user.Team)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			MapStoreError(w, r, err)
			return
		}
		fallback := builtinTemplate
		fallback.Center = user.Center
		tpl = &fallback
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "template": tpl})
}
