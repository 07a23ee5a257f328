package web

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/task-tracker/modules/notification"
	"github.com/example/task-tracker/modules/task"
)

// activityLimit is how many recent activity entries the page shows.
const activityLimit = 5

// Label styles for the task list.
const (
	colorDefault = "black"
	colorOverdue = "red"
	colorMuted   = "gray"

	decorationNone   = "none"
	decorationStrike = "line-through"
)

// Message kinds shown above the form.
const (
	KindSuccess = "success"
	KindWarning = "warning"
	KindError   = "error"
)

// Message is an inline status line.
type Message struct {
	Kind string
	Text string
}

// Item is one task as displayed in the list.
type Item struct {
	ID          uint
	Text        string
	Window      string
	Color       string
	Decoration  string
	Completed   bool
	Overdue     bool
	NeedsAlert  bool
	CanComplete bool
}

// Board is the derived, display-ready view of the task list at one instant.
type Board struct {
	Items  []Item
	Alerts []Item
}

// BuildBoard derives display state for tasks at now. It has no side effects.
func BuildBoard(tasks []task.TaskResponse, now time.Time, loc *time.Location) Board {
	board := Board{Items: make([]Item, 0, len(tasks))}

	for _, t := range tasks {
		d := t.Domain()
		overdue := d.Overdue(now)

		item := Item{
			ID:          t.ID,
			Text:        t.Text,
			Window:      formatWindow(t.StartTime.In(loc), t.EndTime.In(loc)),
			Color:       colorDefault,
			Decoration:  decorationNone,
			Completed:   t.Completed,
			Overdue:     overdue,
			NeedsAlert:  d.NeedsAlert(now),
			CanComplete: !t.Completed,
		}
		switch {
		case t.Completed:
			item.Color = colorMuted
			item.Decoration = decorationStrike
		case overdue:
			item.Color = colorOverdue
		}

		board.Items = append(board.Items, item)
		if item.NeedsAlert {
			board.Alerts = append(board.Alerts, item)
		}
	}
	return board
}

// formatWindow renders "Jan 02, 09:00 AM → 10:00 AM".
func formatWindow(start, end time.Time) string {
	return start.Format("Jan 02, 03:04 PM") + " → " + end.Format("03:04 PM")
}

// ActivityEntry is one line of the recent activity list.
type ActivityEntry struct {
	Time    string
	Message string
}

// Page is everything one render of the index needs.
type Page struct {
	Board
	Messages []Message
	Warnings []string
	Activity []ActivityEntry
	Form     FormValues
	Empty    bool
}

// Renderer runs render cycles against the task services.
type Renderer struct {
	tasks    task.TaskPort
	activity notification.ActivityPort
	now      func() time.Time
	loc      *time.Location
}

// NewRenderer creates a Renderer. A nil now defaults to time.Now and a nil
// loc to time.Local.
func NewRenderer(tasks task.TaskPort, now func() time.Time, loc *time.Location) *Renderer {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{tasks: tasks, now: now, loc: loc}
}

// WithActivity makes each cycle include the recent activity list.
func (r *Renderer) WithActivity(activity notification.ActivityPort) *Renderer {
	r.activity = activity
	return r
}

// Now returns the renderer's current time in its display location.
func (r *Renderer) Now() time.Time {
	return r.now().In(r.loc)
}

// Cycle fetches the task list, derives display state with a single captured
// now, and shows each pending overdue warning once by marking it alerted.
// Overlapping cycles race on the mark; only the winner shows the warning.
func (r *Renderer) Cycle(ctx context.Context) Page {
	now := r.now()
	page := Page{}

	var tasks []task.TaskResponse
	resp, err := r.tasks.ListTasks(ctx)
	switch {
	case err != nil:
		log.Printf("[web] Failed to list tasks: %v", err)
		page.Messages = append(page.Messages, Message{Kind: KindError, Text: "Could not load tasks: " + err.Error()})
	case resp.Error != "":
		page.Messages = append(page.Messages, Message{Kind: KindError, Text: "Could not load tasks: " + resp.Error})
	default:
		tasks = resp.Tasks
	}

	page.Board = BuildBoard(tasks, now, r.loc)
	page.Empty = len(page.Items) == 0

	// A warning is shown by the cycle that flips the alerted flag. When the
	// flag cannot be written the warning is still shown and will repeat.
	for _, alert := range page.Alerts {
		claimed, err := r.tasks.MarkAlerted(ctx, alert.ID)
		if err != nil {
			log.Printf("[web] Failed to mark task %d alerted: %v", alert.ID, err)
			page.Messages = append(page.Messages, Message{Kind: KindError, Text: fmt.Sprintf("Could not record alert for task %d", alert.ID)})
		} else if !claimed {
			continue
		}
		page.Warnings = append(page.Warnings, fmt.Sprintf("⚠️ Task '%s' is overdue!", alert.Text))
	}

	page.Activity = r.recentActivity(ctx)

	return page
}

// recentActivity is best-effort; a failure leaves the list empty.
func (r *Renderer) recentActivity(ctx context.Context) []ActivityEntry {
	if r.activity == nil {
		return nil
	}
	entries, err := r.activity.RecentActivity(ctx, activityLimit)
	if err != nil {
		log.Printf("[web] Failed to load recent activity: %v", err)
		return nil
	}
	out := make([]ActivityEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityEntry{
			Time:    e.Timestamp.In(r.loc).Format("03:04 PM"),
			Message: e.Message,
		})
	}
	return out
}
