package task

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	domain "github.com/example/task-tracker/domain/task"
)

func newTestModule(t *testing.T) *TaskModule {
	t.Helper()
	return &TaskModule{store: setupTestStore(t)}
}

func TestService_AddAndList(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	resp, err := m.addTask(ctx, AddTaskRequest{Text: "Write report", StartTime: at(9, 0), EndTime: at(10, 0)}, nil)
	if err != nil {
		t.Fatalf("addTask() error = %v", err)
	}
	if resp.ID == 0 || resp.Completed || resp.Alerted {
		t.Errorf("unexpected response %+v", resp)
	}

	list, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if list.Total != 1 || len(list.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %+v", list)
	}
	if list.Error != "" {
		t.Errorf("expected no error, got %q", list.Error)
	}
}

func TestService_AddValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	_, err := m.addTask(ctx, AddTaskRequest{Text: "", StartTime: at(9, 0), EndTime: at(10, 0)}, nil)
	if !errors.Is(err, domain.ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	_, err = m.addTask(ctx, AddTaskRequest{Text: "x", StartTime: at(10, 0), EndTime: at(9, 0)}, nil)
	if !errors.Is(err, domain.ErrEndNotAfterStart) {
		t.Errorf("expected ErrEndNotAfterStart, got %v", err)
	}
}

func TestService_Mutations(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	created, err := m.addTask(ctx, AddTaskRequest{Text: "Pay bill", StartTime: at(9, 0), EndTime: at(10, 0)}, nil)
	if err != nil {
		t.Fatalf("addTask() error = %v", err)
	}
	req := TaskIDRequest{TaskID: created.ID}

	tests := []struct {
		name    string
		call    func() (MutationResponse, error)
		changed bool
	}{
		{name: "complete", call: func() (MutationResponse, error) { return m.completeTask(ctx, req, nil) }, changed: true},
		{name: "complete again", call: func() (MutationResponse, error) { return m.completeTask(ctx, req, nil) }, changed: false},
		{name: "mark alerted", call: func() (MutationResponse, error) { return m.markAlerted(ctx, req, nil) }, changed: true},
		{name: "mark alerted again", call: func() (MutationResponse, error) { return m.markAlerted(ctx, req, nil) }, changed: false},
		{name: "delete", call: func() (MutationResponse, error) { return m.deleteTask(ctx, req, nil) }, changed: true},
		{name: "delete again", call: func() (MutationResponse, error) { return m.deleteTask(ctx, req, nil) }, changed: false},
	}

	for _, tt := range tests {
		resp, err := tt.call()
		if err != nil {
			t.Fatalf("%s: error = %v", tt.name, err)
		}
		if resp.Changed != tt.changed {
			t.Errorf("%s: changed = %v, want %v", tt.name, resp.Changed, tt.changed)
		}
		if resp.TaskID != created.ID {
			t.Errorf("%s: task id = %d, want %d", tt.name, resp.TaskID, created.ID)
		}
	}
}

func TestService_ListReportsStorageFailure(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)
	m.store.Close()

	list, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	if err != nil {
		t.Fatalf("listTasks() should not fail the call, got %v", err)
	}
	if list.Error == "" {
		t.Error("expected a displayable error")
	}
	if list.Tasks == nil || len(list.Tasks) != 0 {
		t.Errorf("expected empty task list, got %#v", list.Tasks)
	}
}

func TestModule_Lifecycle(t *testing.T) {
	ctx := context.Background()
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "lifecycle.db"))

	m := NewModule()
	if got := m.Health(ctx); got.Healthy {
		t.Error("expected unhealthy before Start")
	}

	for i := 0; i < 2; i++ {
		if err := m.Start(ctx); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if got := m.Health(ctx); !got.Healthy {
			t.Errorf("expected healthy after Start, got %q", got.Message)
		}
		if err := m.Stop(ctx); err != nil {
			t.Fatalf("Stop() error = %v", err)
		}
	}

	if err := m.Stop(ctx); err != nil {
		t.Errorf("Stop() on stopped module error = %v", err)
	}
}
