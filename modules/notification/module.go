package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// NotificationLog represents a logged notification.
type NotificationLog struct {
	ID        string    `json:"id"`
	TaskID    uint      `json:"task_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule records task activity as it happens.
// It subscribes to task events using the EventConsumerModule interface.
type NotificationModule struct {
	notifications []NotificationLog
	mu            sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)
var _ mono.ServiceProviderModule = (*NotificationModule)(nil)

func NewModule() *NotificationModule {
	return &NotificationModule{
		notifications: make([]NotificationLog, 0),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskAddedV1, m.handleTaskAdded, m); err != nil {
		return fmt.Errorf("failed to register TaskAdded consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskOverdueV1, m.handleTaskOverdue, m); err != nil {
		return fmt.Errorf("failed to register TaskOverdue consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskAdded, TaskCompleted, TaskDeleted, TaskOverdue")
	return nil
}

// RegisterServices exposes the activity log to other modules.
func (m *NotificationModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent-activity", json.Unmarshal, json.Marshal, m.recentActivity,
	); err != nil {
		return fmt.Errorf("failed to register recent-activity service: %w", err)
	}
	log.Printf("[notification] Registered services: recent-activity")
	return nil
}

func (m *NotificationModule) recentActivity(_ context.Context, req RecentActivityRequest, _ *mono.Msg) (RecentActivityResponse, error) {
	entries := m.Recent(req.Limit)
	return RecentActivityResponse{Entries: entries}, nil
}

func (m *NotificationModule) handleTaskAdded(_ context.Context, event events.TaskAddedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task added: %d - %s", event.TaskID, event.Text)
	m.logNotification(event.TaskID, "task_added", fmt.Sprintf("Task '%s' added, due %s", event.Text, event.EndTime.Format(time.Kitchen)))
	return nil
}

func (m *NotificationModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task completed: %d", event.TaskID)
	m.logNotification(event.TaskID, "task_completed", fmt.Sprintf("Task %d completed!", event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task deleted: %d", event.TaskID)
	m.logNotification(event.TaskID, "task_deleted", fmt.Sprintf("Task %d deleted", event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskOverdue(_ context.Context, event events.TaskOverdueEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task overdue: %d", event.TaskID)
	m.logNotification(event.TaskID, "task_overdue", fmt.Sprintf("Task %d is overdue", event.TaskID))
	return nil
}

func (m *NotificationModule) logNotification(taskID uint, notificationType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications = append(m.notifications, NotificationLog{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Type:      notificationType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// GetNotifications returns a copy of every notification recorded so far.
func (m *NotificationModule) GetNotifications() []NotificationLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]NotificationLog, len(m.notifications))
	copy(result, m.notifications)
	return result
}

// Recent returns up to limit notifications, newest first. A limit of zero
// or less returns all of them.
func (m *NotificationModule) Recent(limit int) []NotificationLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.notifications)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]NotificationLog, 0, n)
	for i := len(m.notifications) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, m.notifications[i])
	}
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Printf("[notification] Module stopped - %d notifications recorded", len(m.GetNotifications()))
	return nil
}
