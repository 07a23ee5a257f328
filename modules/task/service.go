package task

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
)

// addTask handles the add-task service request.
func (m *TaskModule) addTask(ctx context.Context, req AddTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	created, err := m.store.Add(ctx, req.Text, req.StartTime, req.EndTime)
	if err != nil {
		return TaskResponse{}, err
	}
	log.Printf("[task] Added task %d: %s", created.ID, req)

	m.publish(func(bus mono.EventBus) error {
		return events.TaskAddedV1.Publish(bus, events.TaskAddedEvent{
			TaskID:    created.ID,
			Text:      created.Text,
			StartTime: created.StartTime,
			EndTime:   created.EndTime,
		}, nil)
	}, "TaskAdded", created.ID)

	return toTaskResponse(*created), nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.store.List(ctx)
	if err != nil {
		log.Printf("[task] Warning: %v", err)
		// Return response, not error, so the caller can still render
		return ListTasksResponse{Tasks: []TaskResponse{}, Error: err.Error()}, nil
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(t))
	}
	return response, nil
}

// completeTask handles the complete-task service request.
func (m *TaskModule) completeTask(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (MutationResponse, error) {
	changed, err := m.store.SetCompleted(ctx, req.TaskID)
	if err != nil {
		return MutationResponse{TaskID: req.TaskID}, err
	}

	if changed {
		m.publish(func(bus mono.EventBus) error {
			return events.TaskCompletedV1.Publish(bus, events.TaskCompletedEvent{
				TaskID:      req.TaskID,
				CompletedAt: time.Now(),
			}, nil)
		}, "TaskCompleted", req.TaskID)
	}

	return MutationResponse{TaskID: req.TaskID, Changed: changed}, nil
}

// markAlerted handles the mark-alerted service request.
func (m *TaskModule) markAlerted(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (MutationResponse, error) {
	changed, err := m.store.MarkAlerted(ctx, req.TaskID)
	if err != nil {
		return MutationResponse{TaskID: req.TaskID}, err
	}

	if changed {
		m.publish(func(bus mono.EventBus) error {
			return events.TaskOverdueV1.Publish(bus, events.TaskOverdueEvent{
				TaskID:    req.TaskID,
				AlertedAt: time.Now(),
			}, nil)
		}, "TaskOverdue", req.TaskID)
	}

	return MutationResponse{TaskID: req.TaskID, Changed: changed}, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (MutationResponse, error) {
	removed, err := m.store.Delete(ctx, req.TaskID)
	if err != nil {
		return MutationResponse{TaskID: req.TaskID}, err
	}

	if removed {
		m.publish(func(bus mono.EventBus) error {
			return events.TaskDeletedV1.Publish(bus, events.TaskDeletedEvent{
				TaskID:    req.TaskID,
				DeletedAt: time.Now(),
			}, nil)
		}, "TaskDeleted", req.TaskID)
	}

	return MutationResponse{TaskID: req.TaskID, Changed: removed}, nil
}

// publish emits an event if a bus is wired. Event publishing is best-effort.
func (m *TaskModule) publish(send func(mono.EventBus) error, name string, taskID uint) {
	if m.eventBus == nil {
		return
	}
	if err := send(m.eventBus); err != nil {
		log.Printf("[task] Warning: failed to publish %s event for task %d: %v", name, taskID, err)
	}
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Text:      t.Text,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Completed: t.Completed,
		Alerted:   t.Alerted,
	}
}

// String renders the request for log lines.
func (r AddTaskRequest) String() string {
	return fmt.Sprintf("%q [%s - %s]", r.Text, r.StartTime.Format(time.RFC3339), r.EndTime.Format(time.RFC3339))
}
