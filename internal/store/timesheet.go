package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lexhours/lexhours/internal/types"
	"github.com/oklog/ulid/v2"
)

const entryColumns = `e.id, e.user_id, e.username, e.entry_date, e.hours, e.status, e.data,
       u.real_name, u.team, u.center, e.created_at, e.updated_at, e.submitted_at`

// CreateEntry inserts a new draft timesheet entry.
func (s *SQLiteStore) CreateEntry(ctx context.Context, e *types.NewEntry) (*types.TimesheetEntry, error) {
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	id := e.ID
	if id == "" {
		id = ulid.Make().String()
	}
	status := e.Status
	if status == "" {
		status = types.EntryStatusDraft
	}

	dataJSON, err := json.Marshal(e.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal entry data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO timesheet_entries (id, user_id, username, entry_date, hours, status, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, e.UserID, e.Username, e.Date, e.Hours, status, string(dataJSON), nowStr, nowStr)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	return s.EntryByID(ctx, id)
}

// EntryByID retrieves a single entry joined with its owner's profile.
func (s *SQLiteStore) EntryByID(ctx context.Context, id string) (*types.TimesheetEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM timesheet_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.id = ?
	`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// EntriesByUser lists a user's entries, newest date first. The from/to
// bounds are inclusive YYYY-MM-DD strings; empty means unbounded.
func (s *SQLiteStore) EntriesByUser(ctx context.Context, userID int64, from, to string) ([]*types.TimesheetEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM timesheet_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.user_id = ?`
	args := []any{userID}
	query, args = appendDateRange(query, args, from, to)
	query += " ORDER BY e.entry_date DESC, e.created_at DESC"

	return s.queryEntries(ctx, query, args)
}

// EntriesByCenter lists all entries whose owner belongs to the given center.
// An empty center means no center filter.
func (s *SQLiteStore) EntriesByCenter(ctx context.Context, center string, from, to string) ([]*types.TimesheetEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM timesheet_entries e
		JOIN users u ON u.id = e.user_id
		WHERE 1=1`
	args := []any{}
	if center != "" {
		query += " AND u.center = ?"
		args = append(args, center)
	}
	query, args = appendDateRange(query, args, from, to)
	query += " ORDER BY e.entry_date DESC, e.created_at DESC"

	return s.queryEntries(ctx, query, args)
}

func appendDateRange(query string, args []any, from, to string) (string, []any) {
	if from != "" {
		query += " AND e.entry_date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND e.entry_date <= ?"
		args = append(args, to)
	}
	return query, args
}

func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args []any) ([]*types.TimesheetEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []*types.TimesheetEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// UpdateEntry applies the non-nil fields of upd to a draft entry.
// Submitted entries are immutable.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, id string, upd *types.EntryUpdate) (*types.TimesheetEntry, error) {
	current, err := s.EntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == types.EntryStatusSubmitted {
		return nil, ErrEntrySubmitted
	}

	date := current.Date
	if upd.Date != nil {
		date = *upd.Date
	}
	hours := current.Hours
	if upd.Hours != nil {
		hours = *upd.Hours
	}
	data := current.Data
	if upd.Data != nil {
		data = upd.Data
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal entry data: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		UPDATE timesheet_entries
		SET entry_date = ?, hours = ?, data = ?, updated_at = ?
		WHERE id = ?
	`, date, hours, string(dataJSON), now, id)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	return s.EntryByID(ctx, id)
}

// DeleteEntry removes a draft entry. Submitted entries cannot be deleted.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) error {
	current, err := s.EntryByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == types.EntryStatusSubmitted {
		return ErrEntrySubmitted
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM timesheet_entries WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// SubmitEntries marks the given draft entries as submitted, restricted to
// the owning user. It returns how many entries changed state; already
// submitted or foreign IDs are skipped silently.
func (s *SQLiteStore) SubmitEntries(ctx context.Context, userID int64, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, 0, len(ids)+3)
	now := time.Now().UTC().Format(time.RFC3339)
	args = append(args, types.EntryStatusSubmitted, now, now)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, userID, types.EntryStatusDraft)

	res, err := s.db.ExecContext(ctx, `
		UPDATE timesheet_entries
		SET status = ?, submitted_at = ?, updated_at = ?
		WHERE id IN (`+placeholders+`) AND user_id = ? AND status = ?
	`, args...)
	if err != nil {
		return 0, fmt.Errorf("submit entries: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}

// UserStats computes the per-user dashboard counters. The from/to window
// bounds the total entry count; the hour sums use fixed calendar windows
// relative to today.
func (s *SQLiteStore) UserStats(ctx context.Context, userID int64, from, to string) (*types.UserStats, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	weekStart := now.AddDate(0, 0, -int((now.Weekday()+6)%7)).Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")

	stats := &types.UserStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN entry_date = ? THEN hours ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN entry_date >= ? THEN hours ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN entry_date >= ? THEN hours ELSE 0 END), 0)
		FROM timesheet_entries
		WHERE user_id = ?
	`, today, weekStart, monthStart, userID).Scan(&stats.TodayHours, &stats.WeekHours, &stats.MonthHours)
	if err != nil {
		return nil, fmt.Errorf("sum hours: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM timesheet_entries e WHERE e.user_id = ?"
	args := []any{userID}
	countQuery, args = appendDateRange(countQuery, args, from, to)
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&stats.TotalEntries); err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	return stats, nil
}

// scanEntry scans a joined entry row, handling JSON data and timestamps.
func scanEntry(scanner interface{ Scan(...any) error }) (*types.TimesheetEntry, error) {
	var e types.TimesheetEntry
	var dataJSON string
	var createdAt, updatedAt string
	var submittedAt sql.NullString

	err := scanner.Scan(&e.ID, &e.UserID, &e.Username, &e.Date, &e.Hours, &e.Status,
		&dataJSON, &e.RealName, &e.Team, &e.Center, &createdAt, &updatedAt, &submittedAt)
	if err != nil {
		return nil, err
	}

	if dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), &e.Data); err != nil {
			return nil, fmt.Errorf("parse entry data: %w", err)
		}
	}
	if e.Data == nil {
		e.Data = map[string]any{}
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		e.UpdatedAt = t
	}
	if submittedAt.Valid {
		if t, err := time.Parse(time.RFC3339, submittedAt.String); err == nil {
			e.SubmittedAt = &t
		}
	}

	return &e, nil
}
