// Package task holds the task model and the store that owns the task
// list and its persistence round-trips.
package task

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Priority is one of low, medium, high. The zero value is invalid;
// Normalize maps it to medium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting: high=3, medium=2, low=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// DateLayout is the calendar-date wire format for due dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. It marshals as
// "YYYY-MM-DD" so the stored form stays byte-stable across round-trips.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("due date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// Task is the sole persistent entity. ID is assigned at creation and
// never changes; Due is nil when the task has no deadline.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Due         *Date     `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input carries the user-editable fields for Add and Edit. Missing
// optional fields are normalized to their defaults by the store.
type Input struct {
	Title       string
	Description string
	Due         *Date
	Priority    Priority
	Category    string
}

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

// newID returns an id unique within the store's lifetime: a ULID is a
// millisecond timestamp plus random entropy, which also keeps ids
// sortable by creation time.
func newID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), ulid.Monotonic(randReader{}, 0)).String()
}
