package entity

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a read-only catalog entry fetched per session by the mini-app.
// DurationDays of 0 with IsLifetime set means the plan never expires.
type Plan struct {
	Id           uuid.UUID
	Name         string
	Slug         string
	Price        float64
	Currency     string
	DurationDays int
	IsLifetime   bool
	Features     []string
	IsActive     bool
	SortOrder    int
	CreatedAt    time.Time
}
