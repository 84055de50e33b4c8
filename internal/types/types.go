package types

import (
	"encoding/json"
	"time"
)

// FieldOption is one selectable value in a form field's option tree.
// Children express category→task and tag→key-task hierarchies; a child's
// value is only meaningful in the context of its parent.
type FieldOption struct {
	Value    string        `json:"value"`
	Label    string        `json:"label"`
	Children []FieldOption `json:"children,omitempty"`
}

// FormField describes one entry-form field a center's template exposes.
type FormField struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Required bool          `json:"required"`
	Options  []FieldOption `json:"options,omitempty"`
}

// ExtractRequest is a single auto-fill request. Center and TeamName are
// optional routing hints; when absent the center is inferred from the text.
type ExtractRequest struct {
	Message  string      `json:"message"`
	Fields   []FormField `json:"fields"`
	Center   string      `json:"center,omitempty"`
	TeamName string      `json:"teamName,omitempty"`
}

// ExtractResult is the subset of field values the pipeline believes the
// message supports. Absent keys mean "the user did not state this", never
// a null placeholder. Raw preserves the upstream text for diagnostics;
// ParseError marks a model answer that was not parseable JSON.
type ExtractResult struct {
	Fields     map[string]any `json:"data"`
	Raw        string         `json:"raw,omitempty"`
	ParseError bool           `json:"parseError,omitempty"`
}

// MarshalJSON ensures a nil field map marshals as {} not null.
func (r ExtractResult) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		r.Fields = map[string]any{}
	}
	type Alias ExtractResult
	return json.Marshal(Alias(r))
}

// User is an account row. PasswordHash never crosses the API boundary.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RealName     string    `json:"realName"`
	Email        string    `json:"email,omitempty"`
	Team         string    `json:"team"`
	Center       string    `json:"center"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser is the input for creating an account.
type NewUser struct {
	Username     string
	PasswordHash string
	RealName     string
	Email        string
	Team         string
	Center       string
	Role         string
}

// Entry statuses.
const (
	EntryStatusDraft     = "draft"
	EntryStatusSubmitted = "submitted"
)

// TimesheetEntry is one work-hour record. Data carries the flexible
// template-driven field values.
type TimesheetEntry struct {
	ID          string         `json:"id"`
	UserID      int64          `json:"userId"`
	Username    string         `json:"username"`
	Date        string         `json:"date"`
	Hours       float64        `json:"hours"`
	Status      string         `json:"status"`
	Data        map[string]any `json:"data"`
	RealName    string         `json:"realName,omitempty"`
	Team        string         `json:"team,omitempty"`
	Center      string         `json:"center,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	SubmittedAt *time.Time     `json:"submittedAt,omitempty"`
}

// NewEntry is the input for creating a timesheet entry.
type NewEntry struct {
	ID       string
	UserID   int64
	Username string
	Date     string
	Hours    float64
	Status   string
	Data     map[string]any
}

// EntryUpdate carries the mutable entry fields; nil means "leave unchanged".
type EntryUpdate struct {
	Date  *string
	Hours *float64
	Data  map[string]any
}

// UserStats are the per-user dashboard counters.
type UserStats struct {
	TodayHours   float64 `json:"todayHours"`
	WeekHours    float64 `json:"weekHours"`
	MonthHours   float64 `json:"monthHours"`
	TotalEntries int     `json:"totalEntries"`
}

// Template is a per-center (optionally per-team) field schema.
type Template struct {
	ID        int64       `json:"id,omitempty"`
	Center    string      `json:"center"`
	Team      string      `json:"team,omitempty"`
	Name      string      `json:"name"`
	Fields    []FormField `json:"fields"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt,omitempty"`
}

// FeedbackRecord ties one extraction session to the model's suggestion and,
// once finalized, the user's corrected values and match counters.
type FeedbackRecord struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"userId"`
	Username      string         `json:"username,omitempty"`
	RealName      string         `json:"realName,omitempty"`
	SessionID     string         `json:"sessionId"`
	UserInput     string         `json:"userInput"`
	AIResult      map[string]any `json:"aiResult"`
	FinalResult   map[string]any `json:"finalResult,omitempty"`
	TimesheetID   string         `json:"timesheetId,omitempty"`
	TotalFields   int            `json:"totalFields"`
	MatchedFields int            `json:"matchedFields"`
	Accuracy      float64        `json:"accuracy"`
	CreatedAt     time.Time      `json:"createdAt"`
	FinalizedAt   *time.Time     `json:"finalizedAt,omitempty"`
}

// AccuracySummary is a read-only aggregate over finalized feedback records.
// Buckets: high >=80%, medium 50-79%, low <50%.
type AccuracySummary struct {
	TotalSessions int     `json:"totalSessions"`
	AvgAccuracy   float64 `json:"avgAccuracy"`
	TotalFields   int     `json:"totalFields"`
	MatchedFields int     `json:"matchedFields"`
	HighCount     int     `json:"highCount"`
	MediumCount   int     `json:"mediumCount"`
	LowCount      int     `json:"lowCount"`
}

// DailyAccuracy is one day's slice of the accuracy trend.
type DailyAccuracy struct {
	Date          string  `json:"date"`
	TotalSessions int     `json:"totalSessions"`
	AvgAccuracy   float64 `json:"avgAccuracy"`
}

// StoreStats holds aggregate store statistics for the health endpoint.
type StoreStats struct {
	UserCount     int64 `json:"userCount"`
	EntryCount    int64 `json:"entryCount"`
	FeedbackCount int64 `json:"feedbackCount"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Model      string `json:"model"`
	UserCount  int64  `json:"userCount"`
	EntryCount int64  `json:"entryCount"`
}
