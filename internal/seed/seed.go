// Package seed provides the initial users, events and registrations the API starts with.
package seed

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/college-events-api/internal/models"
)

// File is the on-disk seed document.
type File struct {
	Users         []UserSeed         `yaml:"users"`
	Events        []EventSeed        `yaml:"events"`
	Registrations []RegistrationSeed `yaml:"registrations"`
}

// UserSeed carries a plaintext password that is hashed on load.
type UserSeed struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// EventSeed is an event as written in the seed file. Date accepts padded or unpadded days.
type EventSeed struct {
	ID          int64  `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	ImageURL    string `yaml:"image_url"`
	Status      string `yaml:"status"`
}

// RegistrationSeed links a seeded user to a seeded event.
type RegistrationSeed struct {
	ID      int64 `yaml:"id"`
	UserID  int64 `yaml:"user_id"`
	EventID int64 `yaml:"event_id"`
}

// Options tune how a seed becomes state.
type Options struct {
	BcryptCost int
	Now        time.Time
}

// Default returns the built-in campus data.
func Default() File {
	return File{
		Users: []UserSeed{
			{ID: 1, Name: "Main Admin", Email: "admin@college.edu", Password: "admin123", Role: "admin"},
			{ID: 2, Name: "Dance Club Head", Email: "club@college.edu", Password: "club123", Role: "coordinator"},
			{ID: 3, Name: "John Doe", Email: "stu@college.edu", Password: "stu123", Role: "student"},
		},
		Events: []EventSeed{
			{
				ID:          1,
				Title:       "Annual Tech Fest",
				Description: "Biggest hackathon and exhibition of the year.",
				Date:        "2026-1-15",
				Status:      "approved",
				ImageURL:    "https://images.unsplash.com/photo-1504384308090-c894fdcc538d?auto=format&fit=crop&q=80&w=1000",
			},
			{
				ID:          2,
				Title:       "Cultural Night",
				Description: "Music, dance and drama performances.",
				Date:        "2026-1-20",
				Status:      "pending",
				ImageURL:    "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?auto=format&fit=crop&q=80&w=1000",
			},
			{
				ID:          3,
				Title:       "Sports Meet",
				Description: "Inter-college athletic competitions.",
				Date:        "2026-1-05",
				Status:      "approved",
				ImageURL:    "https://images.unsplash.com/photo-1461896704190-3213c9ad81cd?auto=format&fit=crop&q=80&w=1000",
			},
		},
		Registrations: []RegistrationSeed{
			{ID: 1, UserID: 3, EventID: 1},
			{ID: 2, UserID: 3, EventID: 3},
		},
	}
}

// LoadFile reads a YAML seed document.
func LoadFile(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("parse seed file: %w", err)
	}
	return f, nil
}

// Load builds state from path, or from the built-in data when path is empty.
func Load(path string, opts Options) (models.AppState, error) {
	f := Default()
	if strings.TrimSpace(path) != "" {
		var err error
		if f, err = LoadFile(path); err != nil {
			return models.AppState{}, err
		}
	}
	return Build(f, opts)
}

// Build validates the document and turns it into the initial state. The first
// user becomes the session user and the calendar opens on the month of opts.Now.
func Build(f File, opts Options) (models.AppState, error) {
	if len(f.Users) == 0 {
		return models.AppState{}, fmt.Errorf("seed: at least one user is required")
	}
	cost := opts.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	state := models.AppState{
		Users:         make([]models.User, 0, len(f.Users)),
		Events:        make([]models.Event, 0, len(f.Events)),
		Registrations: make([]models.Registration, 0, len(f.Registrations)),
		CurrentUserID: f.Users[0].ID,
		Cursor:        models.CalendarCursor{Month: int(now.Month()) - 1, Year: now.Year()},
	}

	users := map[int64]struct{}{}
	for _, u := range f.Users {
		if _, dup := users[u.ID]; dup {
			return models.AppState{}, fmt.Errorf("seed: duplicate user id %d", u.ID)
		}
		users[u.ID] = struct{}{}
		role, ok := models.ParseRole(u.Role)
		if !ok {
			return models.AppState{}, fmt.Errorf("seed: user %d has unknown role %q", u.ID, u.Role)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return models.AppState{}, fmt.Errorf("seed: hash password for user %d: %w", u.ID, err)
		}
		state.Users = append(state.Users, models.User{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         role,
			AvatarSeed:   u.Name,
		})
	}

	events := map[int64]struct{}{}
	for _, e := range f.Events {
		if _, dup := events[e.ID]; dup {
			return models.AppState{}, fmt.Errorf("seed: duplicate event id %d", e.ID)
		}
		events[e.ID] = struct{}{}
		date, err := models.ParseEventDate(e.Date)
		if err != nil {
			return models.AppState{}, fmt.Errorf("seed: event %d: %w", e.ID, err)
		}
		status := models.EventStatus(strings.ToLower(strings.TrimSpace(e.Status)))
		if status != models.EventStatusPending && !status.Decided() {
			return models.AppState{}, fmt.Errorf("seed: event %d has unknown status %q", e.ID, e.Status)
		}
		state.Events = append(state.Events, models.Event{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Date:        date,
			ImageURL:    e.ImageURL,
			Status:      status,
		})
	}

	regs := map[int64]struct{}{}
	for _, r := range f.Registrations {
		if _, dup := regs[r.ID]; dup {
			return models.AppState{}, fmt.Errorf("seed: duplicate registration id %d", r.ID)
		}
		regs[r.ID] = struct{}{}
		if _, ok := users[r.UserID]; !ok {
			return models.AppState{}, fmt.Errorf("seed: registration %d references unknown user %d", r.ID, r.UserID)
		}
		if _, ok := events[r.EventID]; !ok {
			return models.AppState{}, fmt.Errorf("seed: registration %d references unknown event %d", r.ID, r.EventID)
		}
		state.Registrations = append(state.Registrations, models.Registration{ID: r.ID, UserID: r.UserID, EventID: r.EventID})
	}

	return state, nil
}
