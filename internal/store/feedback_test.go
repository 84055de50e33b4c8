package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lexhours/lexhours/internal/types"
)

func recordSession(t *testing.T, db *SQLiteStore, userID int64, sessionID string, aiResult map[string]any) int64 {
	t.Helper()
	id, err := db.RecordExtraction(context.Background(), &types.FeedbackRecord{
		UserID:    userID,
		SessionID: sessionID,
		UserInput: "昨天开了两个半小时的项目评审会",
		AIResult:  aiResult,
	})
	if err != nil {
		t.Fatal(err)
	}
	if id <= 0 {
		t.Fatalf("Expected a positive record id, got %d", id)
	}
	return id
}

func sessionRecord(t *testing.T, db *SQLiteStore, sessionID string) *types.FeedbackRecord {
	t.Helper()
	records, err := db.RecentFeedback(context.Background(), 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range records {
		if rec.SessionID == sessionID {
			return rec
		}
	}
	t.Fatalf("session %s not found", sessionID)
	return nil
}

func TestFeedback_FinalizeScoring(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.user", "投资一组", "invest")

	recordSession(t, db, u.ID, "sess-1", map[string]any{
		"project":     "尽职调查",
		"taskType":    "meeting",
		"hours":       2.5,
		"team":        "投资一组",
		"description": "模型自由发挥的描述",
	})

	err := db.FinalizeExtraction(ctx, "sess-1", map[string]any{
		"project":     "尽职调查",
		"taskType":    "meeting",
		"hours":       2.51,
		"team":        "并购组",
		"description": "用户改写的描述",
	}, "ts-001")
	if err != nil {
		t.Fatal(err)
	}

	rec := sessionRecord(t, db, "sess-1")
	if rec.TotalFields != 4 {
		t.Errorf("Expected 4 comparable fields, got %d", rec.TotalFields)
	}
	if rec.MatchedFields != 3 {
		t.Errorf("Expected 3 matched fields, got %d", rec.MatchedFields)
	}
	if rec.Accuracy != 75.0 {
		t.Errorf("Expected accuracy 75.0, got %v", rec.Accuracy)
	}
	if rec.TimesheetID != "ts-001" {
		t.Errorf("Expected timesheet id ts-001, got %q", rec.TimesheetID)
	}
	if rec.FinalizedAt == nil {
		t.Error("Expected FinalizedAt to be set")
	}
}

func TestFeedback_Finalize_StringTrimming(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.trim", "t", "biz")

	recordSession(t, db, u.ID, "sess-trim", map[string]any{"project": " 合同审阅 "})
	if err := db.FinalizeExtraction(ctx, "sess-trim", map[string]any{"project": "合同审阅"}, ""); err != nil {
		t.Fatal(err)
	}

	rec := sessionRecord(t, db, "sess-trim")
	if rec.MatchedFields != 1 || rec.Accuracy != 100.0 {
		t.Errorf("Expected whitespace-insensitive match, got matched=%d accuracy=%v", rec.MatchedFields, rec.Accuracy)
	}
}

func TestFeedback_Finalize_NoComparableFields(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.empty", "t", "biz")

	recordSession(t, db, u.ID, "sess-empty", map[string]any{"description": "只有描述"})
	if err := db.FinalizeExtraction(ctx, "sess-empty", map[string]any{"description": "别的描述"}, ""); err != nil {
		t.Fatal(err)
	}

	rec := sessionRecord(t, db, "sess-empty")
	if rec.TotalFields != 0 {
		t.Errorf("Expected 0 comparable fields, got %d", rec.TotalFields)
	}
	if rec.Accuracy != 0 {
		t.Errorf("Expected accuracy 0 with no comparable fields, got %v", rec.Accuracy)
	}
}

func TestFeedback_Finalize_UnknownSession(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	if err := db.FinalizeExtraction(ctx, "never-recorded", map[string]any{"hours": 1.0}, ""); err != nil {
		t.Errorf("Expected unknown session to be a no-op, got %v", err)
	}
}

func TestFeedback_Finalize_LatestRecordWins(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.latest", "t", "corp")

	recordSession(t, db, u.ID, "sess-dup", map[string]any{"hours": 1.0})
	latestID := recordSession(t, db, u.ID, "sess-dup", map[string]any{"hours": 2.0})

	if err := db.FinalizeExtraction(ctx, "sess-dup", map[string]any{"hours": 2.0}, ""); err != nil {
		t.Fatal(err)
	}

	records, err := db.RecentFeedback(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	// The later record got scored; the earlier one stayed open and is not
	// listed.
	if len(records) != 1 {
		t.Fatalf("Expected 1 finalized record, got %d", len(records))
	}
	if records[0].ID != latestID {
		t.Errorf("Expected record %d to be scored, got %d", latestID, records[0].ID)
	}
	if records[0].FinalizedAt == nil || records[0].Accuracy != 100.0 {
		t.Errorf("Expected latest record finalized at 100%%, got %+v", records[0])
	}
}

func TestFeedback_Finalize_Rescore(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.rescore", "t", "corp")

	recordSession(t, db, u.ID, "sess-re", map[string]any{"project": "a", "hours": 2.0})
	if err := db.FinalizeExtraction(ctx, "sess-re", map[string]any{"project": "b", "hours": 3.0}, ""); err != nil {
		t.Fatal(err)
	}
	if err := db.FinalizeExtraction(ctx, "sess-re", map[string]any{"project": "a", "hours": 2.0}, ""); err != nil {
		t.Fatal(err)
	}

	rec := sessionRecord(t, db, "sess-re")
	if rec.Accuracy != 100.0 {
		t.Errorf("Expected rescore to overwrite, got %v", rec.Accuracy)
	}
}

func TestFeedback_AccuracySummary(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.sum", "t", "invest")

	// One finalized session per bucket: 100%, 75%, 0%
	recordSession(t, db, u.ID, "s-high", map[string]any{"a": "1"})
	if err := db.FinalizeExtraction(ctx, "s-high", map[string]any{"a": "1"}, ""); err != nil {
		t.Fatal(err)
	}

	recordSession(t, db, u.ID, "s-med", map[string]any{"a": "1", "b": "2", "c": "3", "d": "4"})
	if err := db.FinalizeExtraction(ctx, "s-med", map[string]any{"a": "1", "b": "2", "c": "3", "d": "x"}, ""); err != nil {
		t.Fatal(err)
	}

	recordSession(t, db, u.ID, "s-low", map[string]any{"a": "1"})
	if err := db.FinalizeExtraction(ctx, "s-low", map[string]any{"a": "2"}, ""); err != nil {
		t.Fatal(err)
	}

	// Recorded but never finalized records are excluded from the aggregate.
	recordSession(t, db, u.ID, "s-open", map[string]any{"a": "1"})

	summary, err := db.AccuracySummary(ctx, "", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalSessions != 3 {
		t.Errorf("Expected 3 finalized sessions, got %d", summary.TotalSessions)
	}
	if summary.HighCount != 1 || summary.MediumCount != 1 || summary.LowCount != 1 {
		t.Errorf("Unexpected buckets: %+v", summary)
	}
	if summary.AvgAccuracy != 58.3 {
		t.Errorf("Expected avg accuracy 58.3, got %v", summary.AvgAccuracy)
	}
	if summary.TotalFields != 6 || summary.MatchedFields != 4 {
		t.Errorf("Unexpected field totals: %+v", summary)
	}
}

func TestFeedback_AccuracySummary_Empty(t *testing.T) {
	db := newTestStore(t)

	summary, err := db.AccuracySummary(context.Background(), "", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalSessions != 0 || summary.AvgAccuracy != 0 {
		t.Errorf("Expected zeroed summary, got %+v", summary)
	}
}

func TestFeedback_AccuracySummary_Filters(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u1 := createTestUser(t, db, "fb.filter1", "t", "invest")
	u2 := createTestUser(t, db, "fb.filter2", "t", "biz")

	recordSession(t, db, u1.ID, "s-u1", map[string]any{"a": "1"})
	if err := db.FinalizeExtraction(ctx, "s-u1", map[string]any{"a": "1"}, ""); err != nil {
		t.Fatal(err)
	}
	recordSession(t, db, u2.ID, "s-u2", map[string]any{"a": "1"})
	if err := db.FinalizeExtraction(ctx, "s-u2", map[string]any{"a": "2"}, ""); err != nil {
		t.Fatal(err)
	}

	byUser, err := db.AccuracySummary(ctx, "", "", u1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if byUser.TotalSessions != 1 || byUser.AvgAccuracy != 100.0 {
		t.Errorf("Expected only u1's session, got %+v", byUser)
	}

	today := time.Now().UTC().Format("2006-01-02")
	inRange, err := db.AccuracySummary(ctx, today, today, 0)
	if err != nil {
		t.Fatal(err)
	}
	if inRange.TotalSessions != 2 {
		t.Errorf("Expected both sessions today, got %+v", inRange)
	}

	outOfRange, err := db.AccuracySummary(ctx, "2000-01-01", "2000-01-02", 0)
	if err != nil {
		t.Fatal(err)
	}
	if outOfRange.TotalSessions != 0 {
		t.Errorf("Expected empty range, got %+v", outOfRange)
	}
}

func TestFeedback_DailyAccuracy(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.daily", "t", "biz")

	recordSession(t, db, u.ID, "s-day", map[string]any{"a": "1"})
	if err := db.FinalizeExtraction(ctx, "s-day", map[string]any{"a": "1"}, ""); err != nil {
		t.Fatal(err)
	}

	trend, err := db.DailyAccuracy(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(trend) != 1 {
		t.Fatalf("Expected 1 day in trend, got %d", len(trend))
	}
	today := time.Now().UTC().Format("2006-01-02")
	if trend[0].Date != today {
		t.Errorf("Expected date %s, got %s", today, trend[0].Date)
	}
	if trend[0].TotalSessions != 1 || trend[0].AvgAccuracy != 100.0 {
		t.Errorf("Unexpected trend row: %+v", trend[0])
	}
}

func TestFeedback_DailyAccuracy_Window(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.window", "t", "biz")

	recordSession(t, db, u.ID, "s-old", map[string]any{"a": "1"})
	if err := db.FinalizeExtraction(ctx, "s-old", map[string]any{"a": "1"}, ""); err != nil {
		t.Fatal(err)
	}

	// Backdate the session ten days so the window boundary is observable.
	backdated := time.Now().UTC().AddDate(0, 0, -10).Format(time.RFC3339)
	if _, err := db.db.ExecContext(ctx, "UPDATE ai_feedback SET finalized_at = ?", backdated); err != nil {
		t.Fatal(err)
	}

	monthly, err := db.DailyAccuracy(ctx, 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(monthly) != 1 {
		t.Errorf("Expected the session inside a 30-day window, got %d rows", len(monthly))
	}

	weekly, err := db.DailyAccuracy(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(weekly) != 0 {
		t.Errorf("Expected the session outside a 7-day window, got %d rows", len(weekly))
	}
}

func TestFeedback_RecentFeedback_Limit(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.recent", "t", "invest")

	for i := 0; i < 5; i++ {
		sessionID := fmt.Sprintf("s-recent-%d", i)
		recordSession(t, db, u.ID, sessionID, map[string]any{"a": "1"})
		if err := db.FinalizeExtraction(ctx, sessionID, map[string]any{"a": "1"}, ""); err != nil {
			t.Fatal(err)
		}
	}

	records, err := db.RecentFeedback(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}
	if records[0].SessionID != "s-recent-4" {
		t.Errorf("Expected newest session first, got %s", records[0].SessionID)
	}
	if records[0].Username != "fb.recent" || records[0].RealName == "" {
		t.Error("Expected joined user profile on records")
	}
}

func TestFeedback_RecentFeedback_FinalizedOnly(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, db, "fb.pending", "t", "biz")

	recordSession(t, db, u.ID, "s-pending", map[string]any{"a": "1"})
	recordSession(t, db, u.ID, "s-done", map[string]any{"a": "1"})
	if err := db.FinalizeExtraction(ctx, "s-done", map[string]any{"a": "1"}, ""); err != nil {
		t.Fatal(err)
	}

	records, err := db.RecentFeedback(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected only the finalized record, got %d", len(records))
	}
	if records[0].SessionID != "s-done" || records[0].FinalizedAt == nil {
		t.Errorf("Expected the finalized s-done record, got %+v", records[0])
	}
}
