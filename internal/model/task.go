package model

import "time"

// Priority is the urgency label shown next to a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status is the completion state of a single task row.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// RecurringType selects the fixed step between occurrences of a series.
type RecurringType string

const (
	RecurNone    RecurringType = ""
	RecurDaily   RecurringType = "daily"
	RecurWeekly  RecurringType = "weekly"
	RecurMonthly RecurringType = "monthly"
	RecurYearly  RecurringType = "yearly"
)

// Task represents one dated item; recurring definitions are materialized
// as one Task row per occurrence sharing a SeriesID.
type Task struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Title          string `gorm:"not null"`
	Description    string
	Date           string `gorm:"not null;index"` // YYYY-MM-DD
	Time           string // HH:MM or empty
	Priority       Priority
	Category       string
	IsRecurring    bool          `gorm:"default:false"`
	RecurringType  RecurringType `gorm:"column:recurring_type"`
	SeriesID       string        `gorm:"index"`
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Notes          string
	AttachmentPath string
}

func (Task) TableName() string { return "tasks" }

// IsCompleted reports whether the row has been checked off.
func (t Task) IsCompleted() bool { return t.Status == StatusCompleted }
