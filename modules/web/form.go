package web

import (
	"strings"
	"time"

	domain "github.com/example/task-tracker/domain/task"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// FormValues holds the raw add-task form fields.
type FormValues struct {
	Text      string `form:"text"`
	StartDate string `form:"start_date"`
	StartTime string `form:"start_time"`
	EndDate   string `form:"end_date"`
	EndTime   string `form:"end_time"`
}

// DefaultForm pre-fills the form: start now, end one hour later on the start date.
func DefaultForm(now time.Time) FormValues {
	return FormValues{
		StartDate: now.Format(dateLayout),
		StartTime: now.Format(clockLayout),
		EndDate:   now.Format(dateLayout),
		EndTime:   now.Add(time.Hour).Format(clockLayout),
	}
}

// Submission is a parsed, validated add-task request.
type Submission struct {
	Text  string
	Start time.Time
	End   time.Time
}

// ParseSubmission parses the form in loc and validates it. Errors are
// *domain.ValidationError.
func ParseSubmission(form FormValues, loc *time.Location) (Submission, error) {
	text := strings.TrimSpace(form.Text)
	if text == "" {
		return Submission{}, &domain.ValidationError{Field: "text", Err: domain.ErrEmptyText}
	}

	start, err := parseDateTime(form.StartDate, form.StartTime, loc)
	if err != nil {
		return Submission{}, &domain.ValidationError{Field: "start_time", Err: domain.ErrMalformedTime}
	}
	end, err := parseDateTime(form.EndDate, form.EndTime, loc)
	if err != nil {
		return Submission{}, &domain.ValidationError{Field: "end_time", Err: domain.ErrMalformedTime}
	}

	if err := domain.Validate(text, start, end); err != nil {
		return Submission{}, err
	}
	return Submission{Text: text, Start: start, End: end}, nil
}

// parseDateTime accepts HH:MM and HH:MM:SS clock values.
func parseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if len(clock) > len(clockLayout) {
		clock = clock[:len(clockLayout)]
	}
	return time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, loc)
}
