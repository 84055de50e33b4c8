// Package extract implements the AI-assisted field extraction pipeline:
// center routing, prompt construction, the single completion round trip,
// and the defensive post-filtering of the model's answer.
package extract

import (
	"context"

	"github.com/lexhours/lexhours/internal/taxonomy"
	"github.com/lexhours/lexhours/internal/types"
)

// Completer defines the interface contract for completion backends.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	ModelName() string
}

// Extractor runs the full pipeline for one request.
type Extractor struct {
	client Completer
}

// NewExtractor creates an Extractor backed by the given completion client.
func NewExtractor(client Completer) *Extractor {
	return &Extractor{client: client}
}

// ModelName reports the backing model, for the health endpoint.
func (e *Extractor) ModelName() string {
	return e.client.ModelName()
}

// Extract resolves the center, builds the prompt, performs the completion
// call, parses and sanitizes the answer. Upstream failures surface as the
// typed errors from errors.go; an unparseable model answer is reported as a
// ParseError result, not an error.
func (e *Extractor) Extract(ctx context.Context, req types.ExtractRequest) (*types.ExtractResult, error) {
	fieldsText := DescribeFields(req.Fields)
	center := taxonomy.Resolve(taxonomy.Center(req.Center), req.TeamName, req.Message, fieldsText)
	system := BuildSystemPrompt(center, fieldsText, req.Message)

	content, err := e.client.Complete(ctx, system, req.Message)
	if err != nil {
		return nil, err
	}

	fields, ok := ParseModelJSON(content)
	if !ok {
		return &types.ExtractResult{Fields: map[string]any{}, Raw: content, ParseError: true}, nil
	}

	Sanitize(fields, req.Message)
	return &types.ExtractResult{Fields: fields, Raw: content}, nil
}
