package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lexhours/lexhours/internal/types"
)

// RecordExtraction stores the model's suggestion for one assist session so
// it can later be compared against what the user actually saved. It returns
// the id of the new record.
func (s *SQLiteStore) RecordExtraction(ctx context.Context, rec *types.FeedbackRecord) (int64, error) {
	aiJSON, err := json.Marshal(rec.AIResult)
	if err != nil {
		return 0, fmt.Errorf("marshal ai result: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_feedback (user_id, session_id, user_input, ai_result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.UserID, rec.SessionID, rec.UserInput, string(aiJSON), now)
	if err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("feedback id: %w", err)
	}

	return id, nil
}

// FinalizeExtraction scores the most recent record for sessionID against the
// values the user finally saved. Unknown sessions are ignored; finalizing
// twice rescores and overwrites. The description field is free text and is
// excluded from the comparison.
func (s *SQLiteStore) FinalizeExtraction(ctx context.Context, sessionID string, finalResult map[string]any, timesheetID string) error {
	var recordID int64
	var aiJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, ai_result FROM ai_feedback
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, sessionID).Scan(&recordID, &aiJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}

	var aiResult map[string]any
	if err := json.Unmarshal([]byte(aiJSON), &aiResult); err != nil {
		return fmt.Errorf("parse ai result: %w", err)
	}

	total, matched := scoreResult(aiResult, finalResult)
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(matched) / float64(total) * 100
	}

	finalJSON, err := json.Marshal(finalResult)
	if err != nil {
		return fmt.Errorf("marshal final result: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		UPDATE ai_feedback
		SET final_result = ?, timesheet_id = ?, total_fields = ?, matched_fields = ?, accuracy = ?, finalized_at = ?
		WHERE id = ?
	`, string(finalJSON), timesheetID, total, matched, accuracy, now, recordID)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}

	return nil
}

// scoreResult counts the comparable fields the model suggested and how many
// survived into the final values unchanged.
func scoreResult(aiResult, finalResult map[string]any) (total, matched int) {
	for key, aiVal := range aiResult {
		if key == "description" {
			continue
		}
		total++
		if valuesMatch(aiVal, finalResult[key]) {
			matched++
		}
	}
	return total, matched
}

// valuesMatch compares a suggested value with a final one. Numbers match
// within 0.01 to absorb float round trips; everything else by trimmed
// string form.
func valuesMatch(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return math.Abs(af-bf) <= 0.01
	}
	return strings.TrimSpace(fmt.Sprintf("%v", a)) == strings.TrimSpace(fmt.Sprintf("%v", b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AccuracySummary aggregates finalized sessions. The from/to bounds are
// inclusive YYYY-MM-DD dates compared against the finalize day; empty means
// unbounded. userID 0 means all users.
func (s *SQLiteStore) AccuracySummary(ctx context.Context, from, to string, userID int64) (*types.AccuracySummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(accuracy), 0),
		       COALESCE(SUM(total_fields), 0),
		       COALESCE(SUM(matched_fields), 0),
		       COALESCE(SUM(CASE WHEN accuracy >= 80 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN accuracy >= 50 AND accuracy < 80 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN accuracy < 50 THEN 1 ELSE 0 END), 0)
		FROM ai_feedback
		WHERE finalized_at IS NOT NULL`
	args := []any{}
	if from != "" {
		query += " AND date(finalized_at) >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND date(finalized_at) <= ?"
		args = append(args, to)
	}
	if userID != 0 {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	summary := &types.AccuracySummary{}
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalSessions, &summary.AvgAccuracy, &summary.TotalFields,
		&summary.MatchedFields, &summary.HighCount, &summary.MediumCount, &summary.LowCount)
	if err != nil {
		return nil, fmt.Errorf("aggregate feedback: %w", err)
	}

	summary.AvgAccuracy = math.Round(summary.AvgAccuracy*10) / 10
	return summary, nil
}

// DailyAccuracy returns the per-day accuracy trend for the last days days,
// newest day first. Days with no finalized sessions are omitted.
func (s *SQLiteStore) DailyAccuracy(ctx context.Context, days int) ([]*types.DailyAccuracy, error) {
	query := `
		SELECT date(finalized_at), COUNT(*), COALESCE(AVG(accuracy), 0)
		FROM ai_feedback
		WHERE finalized_at IS NOT NULL`
	args := []any{}
	if days > 0 {
		query += " AND date(finalized_at) >= ?"
		args = append(args, time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02"))
	}
	query += `
		GROUP BY date(finalized_at)
		ORDER BY date(finalized_at) DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily accuracy: %w", err)
	}
	defer rows.Close()

	trend := []*types.DailyAccuracy{}
	for rows.Next() {
		day := &types.DailyAccuracy{}
		if err := rows.Scan(&day.Date, &day.TotalSessions, &day.AvgAccuracy); err != nil {
			return nil, fmt.Errorf("scan daily accuracy: %w", err)
		}
		day.AvgAccuracy = math.Round(day.AvgAccuracy*10) / 10
		trend = append(trend, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily accuracy: %w", err)
	}

	return trend, nil
}

// RecentFeedback lists the latest finalized feedback records joined with the
// submitting user's profile, newest first. Records still waiting on their
// final values are not included.
func (s *SQLiteStore) RecentFeedback(ctx context.Context, limit int) ([]*types.FeedbackRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.user_id, u.username, u.real_name, f.session_id, f.user_input,
		       f.ai_result, f.final_result, f.timesheet_id,
		       f.total_fields, f.matched_fields, f.accuracy, f.created_at, f.finalized_at
		FROM ai_feedback f
		JOIN users u ON u.id = f.user_id
		WHERE f.finalized_at IS NOT NULL
		ORDER BY f.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	records := []*types.FeedbackRecord{}
	for rows.Next() {
		rec, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}

	return records, nil
}

func scanFeedback(scanner interface{ Scan(...any) error }) (*types.FeedbackRecord, error) {
	var rec types.FeedbackRecord
	var aiJSON string
	var finalJSON, timesheetID sql.NullString
	var totalFields, matchedFields sql.NullInt64
	var accuracy sql.NullFloat64
	var createdAt string
	var finalizedAt sql.NullString

	err := scanner.Scan(&rec.ID, &rec.UserID, &rec.Username, &rec.RealName,
		&rec.SessionID, &rec.UserInput, &aiJSON, &finalJSON, &timesheetID,
		&totalFields, &matchedFields, &accuracy, &createdAt, &finalizedAt)
	if err != nil {
		return nil, fmt.Errorf("scan feedback: %w", err)
	}

	if err := json.Unmarshal([]byte(aiJSON), &rec.AIResult); err != nil {
		return nil, fmt.Errorf("parse ai result: %w", err)
	}
	if finalJSON.Valid && finalJSON.String != "" {
		if err := json.Unmarshal([]byte(finalJSON.String), &rec.FinalResult); err != nil {
			return nil, fmt.Errorf("parse final result: %w", err)
		}
	}
	if timesheetID.Valid {
		rec.TimesheetID = timesheetID.String
	}
	rec.TotalFields = int(totalFields.Int64)
	rec.MatchedFields = int(matchedFields.Int64)
	rec.Accuracy = accuracy.Float64

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	if finalizedAt.Valid {
		if t, err := time.Parse(time.RFC3339, finalizedAt.String); err == nil {
			rec.FinalizedAt = &t
		}
	}

	return &rec, nil
}
