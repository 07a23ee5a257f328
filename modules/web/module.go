package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/task-tracker/modules/notification"
	"github.com/example/task-tracker/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// WebModule serves the task form and list over HTTP.
// It calls into the task module via the TaskPort interface.
type WebModule struct {
	app             *fiber.App
	taskAdapter     task.TaskPort
	activityAdapter notification.ActivityPort
	addr            string
}

// Compile-time interface checks.
var _ mono.Module = (*WebModule)(nil)
var _ mono.DependentModule = (*WebModule)(nil)
var _ mono.HealthCheckableModule = (*WebModule)(nil)

// NewModule creates a new WebModule.
func NewModule() *WebModule {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	return &WebModule{addr: addr}
}

// Name returns the module name.
func (m *WebModule) Name() string {
	return "web"
}

// Dependencies returns the list of module dependencies.
func (m *WebModule) Dependencies() []string {
	return []string{"task", "notification"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *WebModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.taskAdapter = task.NewTaskAdapter(container)
	case "notification":
		m.activityAdapter = notification.NewActivityAdapter(container)
	}
}

// Start builds the Fiber app and starts listening.
func (m *WebModule) Start(ctx context.Context) error {
	if m.taskAdapter == nil {
		return fmt.Errorf("taskAdapter dependency not set")
	}

	renderer := NewRenderer(m.taskAdapter, time.Now, time.Local).WithActivity(m.activityAdapter)
	app, err := NewApp(m.taskAdapter, renderer,
		logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}),
	)
	if err != nil {
		return err
	}
	app.Get("/health", m.healthHandler)
	m.app = app

	// Start server in goroutine with error channel for startup failures
	errChan := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-time.After(100 * time.Millisecond):
		log.Printf("[web] HTTP server started on %s", m.addr)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop shuts down the Fiber HTTP server, waiting for in-flight requests.
func (m *WebModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[web] Shutting down HTTP server...")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

// Health returns the health status of the module.
func (m *WebModule) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "HTTP server not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr": m.addr,
		},
	}
}

// healthHandler handles GET /health. It reports unhealthy when the task
// list cannot be loaded.
func (m *WebModule) healthHandler(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.ListTasks(c.UserContext())
	if err == nil && resp.Error != "" {
		err = errors.New(resp.Error)
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"module": "web",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"module": "web",
		"tasks":  resp.Total,
	})
}

// NewApp builds the Fiber application with middleware and page routes.
// Extra middleware runs after panic recovery and before the routes.
func NewApp(tasks task.TaskPort, renderer *Renderer, middleware ...fiber.Handler) (*fiber.App, error) {
	sessions, err := newSessionStore()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	app.Use(recover.New())
	for _, mw := range middleware {
		app.Use(mw)
	}

	NewHandlers(tasks, renderer, sessions).Register(app)
	return app, nil
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[web] HTTP error %d: %v", code, err)
	}

	return c.Status(code).SendString(message)
}
