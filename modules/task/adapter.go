package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a TaskPort backed by the task module's services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// AddTask persists a new task via the add-task service.
func (a *taskAdapter) AddTask(ctx context.Context, req *AddTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"add-task",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("add-task service call failed: %w", err)
	}
	return &resp, nil
}

// ListTasks lists all tasks in start-time order via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) (*ListTasksResponse, error) {
	req := ListTasksRequest{}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-tasks",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks service call failed: %w", err)
	}
	return &resp, nil
}

// CompleteTask marks a task as completed via the complete-task service.
func (a *taskAdapter) CompleteTask(ctx context.Context, taskID uint) error {
	_, err := a.mutate(ctx, "complete-task", taskID)
	return err
}

// MarkAlerted claims the overdue warning for a task via the mark-alerted
// service. It reports true only to the caller that flipped the flag.
func (a *taskAdapter) MarkAlerted(ctx context.Context, taskID uint) (bool, error) {
	return a.mutate(ctx, "mark-alerted", taskID)
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID uint) error {
	_, err := a.mutate(ctx, "delete-task", taskID)
	return err
}

func (a *taskAdapter) mutate(ctx context.Context, service string, taskID uint) (bool, error) {
	req := TaskIDRequest{TaskID: taskID}
	var resp MutationResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return false, fmt.Errorf("%s service call failed: %w", service, err)
	}
	return resp.Changed, nil
}
