package notification

import "context"

// RecentActivityRequest asks for the newest activity entries.
type RecentActivityRequest struct {
	Limit int `json:"limit"`
}

// RecentActivityResponse lists activity entries, newest first.
type RecentActivityResponse struct {
	Entries []NotificationLog `json:"entries"`
}

// ActivityPort defines the activity queries available to dependent modules.
type ActivityPort interface {
	RecentActivity(ctx context.Context, limit int) ([]NotificationLog, error)
}
