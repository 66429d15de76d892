package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the textual format of created_at and completed_at.
const TimeLayout = time.RFC3339Nano

// Priority represents the importance level of a task.
type Priority int

const (
	Low Priority = iota
	Medium
	High
)

// Priorities lists every priority in ascending order.
var Priorities = []Priority{Low, Medium, High}

// String returns the string representation of Priority
func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// Token returns the command-line spelling of the priority.
func (p Priority) Token() string {
	switch p {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return ""
	}
}

// ParsePriority maps a case-sensitive command-line token to a Priority.
func ParsePriority(token string) (Priority, error) {
	for _, p := range Priorities {
		if p.Token() == token {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid priority %q (possible values: low, medium, high)", token)
}

// MarshalJSON encodes the priority as its tagged name.
func (p Priority) MarshalJSON() ([]byte, error) {
	switch p {
	case Low, Medium, High:
		return json.Marshal(p.String())
	default:
		return nil, fmt.Errorf("unknown priority %d", int(p))
	}
}

// UnmarshalJSON accepts only "Low", "Medium" or "High".
func (p *Priority) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("priority must be a string: %w", err)
	}
	for _, candidate := range Priorities {
		if candidate.String() == name {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown priority %q", name)
}

// Task represents a to-do task.
type Task struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	CreatedAt   string   `json:"created_at"`             // Set once by Add
	CompletedAt string   `json:"completed_at,omitempty"` // Set the first time the task is completed
}

// MarkComplete marks the task as completed. The completion time is only
// recorded on the first call.
func (t *Task) MarkComplete(now time.Time) {
	if t.Completed {
		return
	}
	t.Completed = true
	t.CompletedAt = now.Format(TimeLayout)
}

// CompletedOn returns the time shown for a completed task. Documents written
// before completed_at existed fall back to created_at.
func (t *Task) CompletedOn() (time.Time, bool) {
	for _, raw := range []string{t.CompletedAt, t.CreatedAt} {
		if raw == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
