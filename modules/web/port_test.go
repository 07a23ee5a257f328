package web

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/task-tracker/modules/notification"
	"github.com/example/task-tracker/modules/task"
)

// memoryTaskPort is an in-memory TaskPort for handler and render tests.
type memoryTaskPort struct {
	mu      sync.Mutex
	nextID  uint
	tasks   []task.TaskResponse
	listErr error

	addCalls    int
	alertCalls  []uint
	addFunc     func(req *task.AddTaskRequest) error
	completeErr error
	alertErr    error
	// listHook runs after the snapshot is taken, before ListTasks returns.
	listHook func()
}

var _ task.TaskPort = (*memoryTaskPort)(nil)

func newMemoryTaskPort(tasks ...task.TaskResponse) *memoryTaskPort {
	p := &memoryTaskPort{}
	for _, t := range tasks {
		if t.ID > p.nextID {
			p.nextID = t.ID
		}
		p.tasks = append(p.tasks, t)
	}
	return p
}

func (p *memoryTaskPort) AddTask(_ context.Context, req *task.AddTaskRequest) (*task.TaskResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addCalls++
	if p.addFunc != nil {
		if err := p.addFunc(req); err != nil {
			return nil, err
		}
	}
	p.nextID++
	t := task.TaskResponse{ID: p.nextID, Text: req.Text, StartTime: req.StartTime, EndTime: req.EndTime}
	p.tasks = append(p.tasks, t)
	return &t, nil
}

func (p *memoryTaskPort) ListTasks(_ context.Context) (*task.ListTasksResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listErr != nil {
		return &task.ListTasksResponse{Tasks: []task.TaskResponse{}, Error: p.listErr.Error()}, nil
	}
	out := make([]task.TaskResponse, len(p.tasks))
	copy(out, p.tasks)
	if p.listHook != nil {
		p.mu.Unlock()
		p.listHook()
		p.mu.Lock()
	}
	return &task.ListTasksResponse{Tasks: out, Total: len(out)}, nil
}

func (p *memoryTaskPort) CompleteTask(_ context.Context, taskID uint) error {
	if p.completeErr != nil {
		return p.completeErr
	}
	return p.update(taskID, func(t *task.TaskResponse) { t.Completed = true })
}

func (p *memoryTaskPort) MarkAlerted(_ context.Context, taskID uint) (bool, error) {
	p.mu.Lock()
	p.alertCalls = append(p.alertCalls, taskID)
	p.mu.Unlock()
	if p.alertErr != nil {
		return false, p.alertErr
	}
	changed := false
	err := p.update(taskID, func(t *task.TaskResponse) {
		changed = !t.Alerted
		t.Alerted = true
	})
	return changed, err
}

func (p *memoryTaskPort) DeleteTask(_ context.Context, taskID uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.tasks {
		if p.tasks[i].ID == taskID {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (p *memoryTaskPort) update(taskID uint, fn func(*task.TaskResponse)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.tasks {
		if p.tasks[i].ID == taskID {
			fn(&p.tasks[i])
			return nil
		}
	}
	return nil
}

// stubActivityPort returns fixed activity entries.
type stubActivityPort struct {
	entries []notification.NotificationLog
	err     error
	limit   int
}

var _ notification.ActivityPort = (*stubActivityPort)(nil)

func (s *stubActivityPort) RecentActivity(_ context.Context, limit int) ([]notification.NotificationLog, error) {
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

var errBoom = errors.New("boom")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}
