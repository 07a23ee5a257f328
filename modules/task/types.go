package task

import (
	"context"
	"time"

	domain "github.com/example/task-tracker/domain/task"
)

// AddTaskRequest is the request for adding a task.
type AddTaskRequest struct {
	Text      string    `json:"text"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response for listing tasks. A storage failure is
// reported in Error alongside an empty list rather than as a failed call.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
	Error string         `json:"error,omitempty"`
}

// TaskIDRequest identifies a single task for complete, mark-alerted and delete.
type TaskIDRequest struct {
	TaskID uint `json:"task_id"`
}

// MutationResponse reports whether a mutation changed stored state.
type MutationResponse struct {
	TaskID  uint `json:"task_id"`
	Changed bool `json:"changed"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Completed bool      `json:"completed"`
	Alerted   bool      `json:"alerted"`
}

// Domain converts the response back into the domain entity.
func (r TaskResponse) Domain() domain.Task {
	return domain.Task{
		ID:        r.ID,
		Text:      r.Text,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Completed: r.Completed,
		Alerted:   r.Alerted,
	}
}

// TaskPort defines the task operations available to dependent modules.
type TaskPort interface {
	AddTask(ctx context.Context, req *AddTaskRequest) (*TaskResponse, error)
	ListTasks(ctx context.Context) (*ListTasksResponse, error)
	CompleteTask(ctx context.Context, taskID uint) error
	MarkAlerted(ctx context.Context, taskID uint) (bool, error)
	DeleteTask(ctx context.Context, taskID uint) error
}
