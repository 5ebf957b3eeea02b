// Package content holds the public site entities: portfolio projects, offered
// services, and contact-form messages. It is plain CRUD over the store; the
// interesting invariants live in identity/session/auth.
package content

import (
	"context"
	"errors"
	"time"
)

// Project is a portfolio entry shown on the home and portfolio pages.
type Project struct {
	ID           string
	Title        string
	Description  string
	Technologies string
	ImageURL     string
	ProjectURL   string
	GithubURL    string
	Featured     bool
	CreatedAt    time.Time
}

// Service is an offered service shown on the home and services pages.
type Service struct {
	ID          string
	Title       string
	Description string
	Icon        string
	PriceRange  string
	Featured    bool
}

// Message is a contact-form submission.
type Message struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	Budget    string
	Body      string
	CreatedAt time.Time
	Read      bool
}

// Stats feeds the admin dashboard header.
type Stats struct {
	Projects       int
	Services       int
	UnreadMessages int
}

// ErrNotFound is returned for a missing message ID.
var ErrNotFound = errors.New("not found")

// Store is the content persistence boundary.
type Store interface {
	ListProjects(ctx context.Context) ([]Project, error)
	FeaturedProjects(ctx context.Context, limit int) ([]Project, error)

	ListServices(ctx context.Context) ([]Service, error)
	FeaturedServices(ctx context.Context) ([]Service, error)

	// CreateMessage persists a contact submission and returns it with ID and
	// CreatedAt filled in.
	CreateMessage(ctx context.Context, m Message) (Message, error)
	// ListMessages returns messages newest first.
	ListMessages(ctx context.Context) ([]Message, error)
	MarkMessageRead(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error

	Stats(ctx context.Context) (Stats, error)

	// Seed inserts the starter projects and services iff the store holds none.
	Seed(ctx context.Context, now time.Time) error
}
