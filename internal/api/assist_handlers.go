package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lexhours/lexhours/internal/extract"
	"github.com/lexhours/lexhours/internal/types"
	"github.com/lexhours/lexhours/internal/validation"
)

// AssistParse handles POST /api/assist/parse. It runs the extraction
// pipeline against the free-text message and the caller's field schema.
// Upstream failures are reported as success:false with a user-facing
// message; an unparseable model answer is still a success response with
// the parseError flag set.
func (h *Handler) AssistParse(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	var c validation.Collector
	c.Add(validation.ValidateRequired("message", req.Message))
	if len(req.Fields) == 0 {
		c.Add(&validation.ValidationError{Field: "fields", Message: "is required"})
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
		return
	}

	if !h.assistConfigured {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success": false,
			"error":   "AI助手未配置，请联系管理员",
		})
		return
	}

	result, err := h.extractor.Extract(r.Context(), req)
	if err != nil {
		h.writeAssistError(w, r, err)
		return
	}

	resp := map[string]any{"success": true, "data": result.Fields}
	if result.ParseError {
		resp["raw"] = result.Raw
		resp["parseError"] = true
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeAssistError(w http.ResponseWriter, r *http.Request, err error) {
	var transportErr *extract.TransportError
	switch {
	case errors.Is(err, extract.ErrTimeout):
		slog.Warn("assist timeout", "path", r.URL.Path)
		writeJSON(w, http.StatusGatewayTimeout, map[string]any{
			"success": false,
			"error":   "AI服务响应超时，请稍后重试",
		})
	case errors.As(err, &transportErr):
		slog.Error("assist transport failure", "error", transportErr.Err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"error":   "AI服务暂时不可用，请稍后重试",
		})
	case errors.Is(err, extract.ErrUpstreamFormat):
		slog.Error("assist upstream format failure", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success": false,
			"error":   "AI服务返回异常，请稍后重试",
		})
	default:
		slog.Error("assist failure", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "解析失败，请稍后重试",
		})
	}
}

// AssistConfig handles GET /api/assist/config. It reports whether the
// assistant backend is configured without exposing any credentials.
func (h *Handler) AssistConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"configured": h.assistConfigured,
		"model":      h.extractor.ModelName(),
	})
}
