package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lexhours/lexhours/internal/types"
)

// UpsertTemplate inserts or replaces the field schema for a (center, team)
// pair. An empty team is the center-wide default template.
func (s *SQLiteStore) UpsertTemplate(ctx context.Context, tpl *types.Template) error {
	fieldsJSON, err := json.Marshal(tpl.Fields)
	if err != nil {
		return fmt.Errorf("marshal template fields: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO templates (center, team, name, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(center, team) DO UPDATE SET
			name = excluded.name,
			fields = excluded.fields,
			updated_at = excluded.updated_at
	`, tpl.Center, tpl.Team, tpl.Name, string(fieldsJSON), now, now)
	if err != nil {
		return fmt.Errorf("upsert template: %w", err)
	}

	return nil
}

// TemplateFor resolves the template for a user: the team-specific schema
// if one exists, otherwise the center-wide default.
func (s *SQLiteStore) TemplateFor(ctx context.Context, center, team string) (*types.Template, error) {
	if team != "" {
		tpl, err := s.templateByKey(ctx, center, team)
		if err == nil {
			return tpl, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return s.templateByKey(ctx, center, "")
}

func (s *SQLiteStore) templateByKey(ctx context.Context, center, team string) (*types.Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, center, team, name, fields, created_at, updated_at
		FROM templates
		WHERE center = ? AND team = ?
	`, center, team)

	tpl, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tpl, nil
}

// AllTemplates lists every stored template, grouped by center.
func (s *SQLiteStore) AllTemplates(ctx context.Context) ([]*types.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, center, team, name, fields, created_at, updated_at
		FROM templates
		ORDER BY center, team
	`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	templates := []*types.Template{}
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	return templates, nil
}

func scanTemplate(scanner interface{ Scan(...any) error }) (*types.Template, error) {
	var tpl types.Template
	var fieldsJSON string
	var createdAt, updatedAt string

	err := scanner.Scan(&tpl.ID, &tpl.Center, &tpl.Team, &tpl.Name, &fieldsJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fieldsJSON), &tpl.Fields); err != nil {
		return nil, fmt.Errorf("parse template fields: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		tpl.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		tpl.UpdatedAt = t
	}

	return &tpl, nil
}
