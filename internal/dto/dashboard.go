package dto

// DashboardSummary backs the admin and coordinator statistics tiles.
type DashboardSummary struct {
	Students      int            `json:"students"`
	Events        int            `json:"events"`
	Registrations int            `json:"registrations"`
	Activity      []ActivityItem `json:"activity"`
}

// ActivityItem is one entry of the recent registrations feed.
type ActivityItem struct {
	RegistrationID int64  `json:"registration_id"`
	UserID         int64  `json:"user_id"`
	UserName       string `json:"user_name"`
	EventID        int64  `json:"event_id"`
	EventTitle     string `json:"event_title"`
	AvatarURL      string `json:"avatar_url"`
}
