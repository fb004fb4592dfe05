package domain

import "github.com/noah-isme/college-events-api/internal/models"

var (
	admin       = models.User{ID: 1, Name: "Main Admin", Email: "admin@college.edu", Role: models.RoleAdmin}
	coordinator = models.User{ID: 2, Name: "Dance Club Head", Email: "club@college.edu", Role: models.RoleCoordinator}
	student     = models.User{ID: 3, Name: "John Doe", Email: "stu@college.edu", Role: models.RoleStudent}
)

// seedState mirrors the built-in seed: one pending and two approved events,
// two registrations for the student.
func seedState() models.AppState {
	return models.AppState{
		Users: []models.User{admin, coordinator, student},
		Events: []models.Event{
			{ID: 1, Title: "Annual Tech Fest", Description: "Biggest hackathon and exhibition of the year.", Date: models.MustParseEventDate("2026-1-15"), Status: models.EventStatusApproved},
			{ID: 2, Title: "Cultural Night", Description: "Music, dance and drama performances.", Date: models.MustParseEventDate("2026-1-20"), Status: models.EventStatusPending},
			{ID: 3, Title: "Sports Meet", Description: "Inter-college athletic competitions.", Date: models.MustParseEventDate("2026-1-05"), Status: models.EventStatusApproved},
		},
		Registrations: []models.Registration{
			{ID: 1, UserID: 3, EventID: 1},
			{ID: 2, UserID: 3, EventID: 3},
		},
		CurrentUserID: admin.ID,
		Cursor:        models.CalendarCursor{Month: 0, Year: 2026},
	}
}

func eventIDs(events []models.Event) []int64 {
	ids := make([]int64, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	return ids
}
