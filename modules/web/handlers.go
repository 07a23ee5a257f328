package web

import (
	"errors"
	"log"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/task"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Handlers serves the task pages.
type Handlers struct {
	tasks    task.TaskPort
	renderer *Renderer
	sessions *session.Store
}

// NewHandlers creates the page handlers.
func NewHandlers(tasks task.TaskPort, renderer *Renderer, sessions *session.Store) *Handlers {
	return &Handlers{
		tasks:    tasks,
		renderer: renderer,
		sessions: sessions,
	}
}

// Register configures all page routes on app.
func (h *Handlers) Register(app *fiber.App) {
	app.Get("/", h.index)

	tasks := app.Group("/tasks")
	tasks.Post("/", h.addTask)
	tasks.Post("/:id/complete", h.completeTask)
	tasks.Post("/:id/delete", h.deleteTask)
}

// index handles GET /.
func (h *Handlers) index(c *fiber.Ctx) error {
	page := h.renderer.Cycle(c.UserContext())
	if msg, ok := popFlash(c, h.sessions); ok {
		page.Messages = append([]Message{msg}, page.Messages...)
	}
	page.Form = DefaultForm(h.renderer.Now())
	return renderPage(c, fiber.StatusOK, page)
}

// addTask handles POST /tasks.
func (h *Handlers) addTask(c *fiber.Ctx) error {
	var form FormValues
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form body")
	}

	sub, err := ParseSubmission(form, h.renderer.loc)
	if err != nil {
		page := h.renderer.Cycle(c.UserContext())
		page.Messages = append([]Message{validationMessage(err)}, page.Messages...)
		page.Form = form
		return renderPage(c, fiber.StatusUnprocessableEntity, page)
	}

	_, err = h.tasks.AddTask(c.UserContext(), &task.AddTaskRequest{
		Text:      sub.Text,
		StartTime: sub.Start,
		EndTime:   sub.End,
	})
	if err != nil {
		log.Printf("[web] Failed to add task: %v", err)
		return h.redirectWith(c, Message{Kind: KindError, Text: "Could not add task: " + err.Error()})
	}
	return h.redirectWith(c, Message{Kind: KindSuccess, Text: "✅ Task added!"})
}

// completeTask handles POST /tasks/:id/complete.
func (h *Handlers) completeTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	if err := h.tasks.CompleteTask(c.UserContext(), id); err != nil {
		log.Printf("[web] Failed to complete task %d: %v", id, err)
		return h.redirectWith(c, Message{Kind: KindError, Text: "Could not complete task: " + err.Error()})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// deleteTask handles POST /tasks/:id/delete.
func (h *Handlers) deleteTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	if err := h.tasks.DeleteTask(c.UserContext(), id); err != nil {
		log.Printf("[web] Failed to delete task %d: %v", id, err)
		return h.redirectWith(c, Message{Kind: KindError, Text: "Could not delete task: " + err.Error()})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *Handlers) redirectWith(c *fiber.Ctx, msg Message) error {
	if err := setFlash(c, h.sessions, msg); err != nil {
		log.Printf("[web] Failed to store flash message: %v", err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func taskID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid task ID")
	}
	return uint(id), nil
}

// validationMessage maps a rejected submission to the message shown to the user.
func validationMessage(err error) Message {
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		return Message{Kind: KindWarning, Text: "⚠️ Please enter a task."}
	case errors.Is(err, domain.ErrEndNotAfterStart):
		return Message{Kind: KindError, Text: "❌ End time must be after start time."}
	case errors.Is(err, domain.ErrMalformedTime):
		return Message{Kind: KindError, Text: "❌ Please enter a valid date and time."}
	default:
		return Message{Kind: KindError, Text: err.Error()}
	}
}
