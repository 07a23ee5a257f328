package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-tracker/modules/notification"
	"github.com/example/task-tracker/modules/task"
	"github.com/example/task-tracker/modules/web"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies
	app.Register(notification.NewModule()) // Event consumer (subscribes to task events)
	app.Register(task.NewModule())         // Task store and services, emits events
	app.Register(web.NewModule())          // HTML form and list (depends on task)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Pages (http://localhost%s):", addr)
	log.Println("  GET    /                      - Task form and list")
	log.Println("  POST   /tasks                 - Add a task")
	log.Println("  POST   /tasks/:id/complete    - Mark a task completed")
	log.Println("  POST   /tasks/:id/delete      - Delete a task")
	log.Println("  GET    /health                - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
