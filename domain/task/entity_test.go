package task

import (
	"errors"
	"testing"
	"time"
)

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		task      Task
		wantDue   bool
		wantAlert bool
	}{
		{
			name:      "end in the past, open",
			task:      Task{EndTime: now.Add(-time.Minute)},
			wantDue:   true,
			wantAlert: true,
		},
		{
			name:      "end in the past, already alerted",
			task:      Task{EndTime: now.Add(-time.Minute), Alerted: true},
			wantDue:   true,
			wantAlert: false,
		},
		{
			name:    "end in the past, completed",
			task:    Task{EndTime: now.Add(-time.Minute), Completed: true},
			wantDue: false,
		},
		{
			name:    "end exactly now",
			task:    Task{EndTime: now},
			wantDue: false,
		},
		{
			name:    "end in the future",
			task:    Task{EndTime: now.Add(time.Hour)},
			wantDue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.wantDue {
				t.Errorf("Overdue() = %v, want %v", got, tt.wantDue)
			}
			if got := tt.task.NeedsAlert(now); got != tt.wantAlert {
				t.Errorf("NeedsAlert() = %v, want %v", got, tt.wantAlert)
			}
		})
	}
}

func TestTask_OverdueClearsOnCompletion(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	task := Task{EndTime: now.Add(-time.Hour)}

	if !task.Overdue(now) {
		t.Fatal("expected task to be overdue")
	}

	end := task.EndTime
	task.Completed = true
	if task.Overdue(now) {
		t.Error("expected completed task not to be overdue")
	}
	if !task.EndTime.Equal(end) {
		t.Error("end time must not change on completion")
	}
}

func TestValidate(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		text    string
		end     time.Time
		wantErr error
	}{
		{name: "valid", text: "Write report", end: start.Add(time.Hour)},
		{name: "empty text", text: "", end: start.Add(time.Hour), wantErr: ErrEmptyText},
		{name: "blank text", text: "   ", end: start.Add(time.Hour), wantErr: ErrEmptyText},
		{name: "end equals start", text: "x", end: start, wantErr: ErrEndNotAfterStart},
		{name: "end before start", text: "x", end: start.Add(-time.Minute), wantErr: ErrEndNotAfterStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.text, start, tt.end)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !IsValidation(err) {
				t.Errorf("expected a ValidationError, got %T", err)
			}
		})
	}
}
