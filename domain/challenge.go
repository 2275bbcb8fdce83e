package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date representation used for start dates and
// progress records. No time component; the resolver picks the timezone.
const DateLayout = "2006-01-02"

// Status is the lifecycle state of a challenge.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// TaskCategory groups daily tasks by the area of life they belong to.
type TaskCategory string

const (
	CategoryHealth     TaskCategory = "health"
	CategoryWork       TaskCategory = "work"
	CategoryLearning   TaskCategory = "learning"
	CategoryReflection TaskCategory = "reflection"
	CategoryCustom     TaskCategory = "custom"
)

// TaskPriority orders tasks within a day.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a recurring daily action template owned by its parent challenge.
// The Completed flag is legacy; per-day completion lives in DailyProgress.
type Task struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Category          TaskCategory `json:"category"`
	Completed         bool         `json:"completed"`
	Time              string       `json:"time"`
	Description       string       `json:"description,omitempty"`
	Priority          TaskPriority `json:"priority"`
	EstimatedDuration int          `json:"estimatedDuration"`
}

// Challenge is a user-defined, time-boxed habit program.
// CurrentDay and Status are persisted as a cache of resolver output; the
// lifecycle manager recomputes them and never trusts stale storage beyond
// change detection.
type Challenge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate,omitempty"`
	CurrentDay  int       `json:"currentDay"`
	TotalDays   int       `json:"totalDays"`
	Status      Status    `json:"status"`
	Rules       []string  `json:"rules"`
	Tasks       []Task    `json:"tasks"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Task returns the embedded task with the given id, or nil.
func (c *Challenge) Task(taskID string) *Task {
	if c == nil {
		return nil
	}
	for i := range c.Tasks {
		if c.Tasks[i].ID == taskID {
			return &c.Tasks[i]
		}
	}
	return nil
}

// IsFinished reports whether the challenge no longer accepts progress.
func (c *Challenge) IsFinished() bool {
	return c != nil && c.Status == StatusCompleted
}

// Validate checks the fields a challenge must carry before it is persisted.
func (c *Challenge) Validate() error {
	if c == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(c.Name) == "" {
		return NewError(ErrCodeInvalid, "challenge name is required")
	}
	if c.TotalDays < 1 {
		return NewError(ErrCodeInvalid, "totalDays must be a positive integer")
	}
	if _, err := time.Parse(DateLayout, c.StartDate); err != nil {
		return WrapError(ErrCodeInvalid, "startDate must be formatted as YYYY-MM-DD", err)
	}
	for i := range c.Tasks {
		if err := c.Tasks[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a task's template fields.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(t.Name) == "" {
		return NewError(ErrCodeInvalid, "task name is required")
	}
	switch t.Category {
	case CategoryHealth, CategoryWork, CategoryLearning, CategoryReflection, CategoryCustom:
	default:
		return NewError(ErrCodeInvalid, "unknown task category")
	}
	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return NewError(ErrCodeInvalid, "unknown task priority")
	}
	if t.Time != "" {
		if _, err := time.Parse("15:04", t.Time); err != nil {
			return WrapError(ErrCodeInvalid, "task time must be formatted as HH:MM", err)
		}
	}
	if t.EstimatedDuration <= 0 {
		return NewError(ErrCodeInvalid, "estimatedDuration must be positive minutes")
	}
	return nil
}
