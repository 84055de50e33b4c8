package store

import (
	"context"

	"github.com/lexhours/lexhours/internal/types"
)

// Store is the persistence contract the HTTP layer and workers depend on.
// The only implementation is SQLiteStore; the interface exists so handlers
// can be tested against an in-memory fake.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, u *types.NewUser) (*types.User, error)
	UserByUsername(ctx context.Context, username string) (*types.User, error)
	UserByID(ctx context.Context, id int64) (*types.User, error)

	// Timesheet entries.
	CreateEntry(ctx context.Context, e *types.NewEntry) (*types.TimesheetEntry, error)
	EntryByID(ctx context.Context, id string) (*types.TimesheetEntry, error)
	EntriesByUser(ctx context.Context, userID int64, from, to string) ([]*types.TimesheetEntry, error)
	EntriesByCenter(ctx context.Context, center string, from, to string) ([]*types.TimesheetEntry, error)
	UpdateEntry(ctx context.Context, id string, upd *types.EntryUpdate) (*types.TimesheetEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	SubmitEntries(ctx context.Context, userID int64, ids []string) (int, error)
	UserStats(ctx context.Context, userID int64, from, to string) (*types.UserStats, error)

	// Form templates.
	UpsertTemplate(ctx context.Context, tpl *types.Template) error
	TemplateFor(ctx context.Context, center, team string) (*types.Template, error)
	AllTemplates(ctx context.Context) ([]*types.Template, error)

	// Extraction feedback.
	RecordExtraction(ctx context.Context, rec *types.FeedbackRecord) (int64, error)
	FinalizeExtraction(ctx context.Context, sessionID string, finalResult map[string]any, timesheetID string) error
	AccuracySummary(ctx context.Context, from, to string, userID int64) (*types.AccuracySummary, error)
	DailyAccuracy(ctx context.Context, days int) ([]*types.DailyAccuracy, error)
	RecentFeedback(ctx context.Context, limit int) ([]*types.FeedbackRecord, error)

	// Maintenance.
	Stats(ctx context.Context) (*types.StoreStats, error)
	BackupTo(ctx context.Context, path string) error
	Close() error
}
