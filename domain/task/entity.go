package task

import "time"

// Task is a user-entered item with a text label and a start/end time window.
type Task struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	Alerted   bool      `gorm:"not null;default:false" json:"alerted"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Overdue reports whether the task's end time has passed at now and the task
// is still open. It is derived on every read and never persisted.
func (t Task) Overdue(now time.Time) bool {
	return now.After(t.EndTime) && !t.Completed
}

// NeedsAlert reports whether an overdue warning has yet to be shown for the task.
func (t Task) NeedsAlert(now time.Time) bool {
	return t.Overdue(now) && !t.Alerted
}
