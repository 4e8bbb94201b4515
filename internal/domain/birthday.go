package domain

import (
	"context"
	"time"
)

// BirthdayWindow is the input of one birthday-list computation.
type BirthdayWindow struct {
	ReferenceDate time.Time
	LookaheadDays int
	Limit         int
}

// BirthdayOccurrence is a user's birthday placed in a concrete year.
type BirthdayOccurrence struct {
	User User
	Date time.Time
}

type BirthdayUsecase interface {
	// Upcoming returns at most Limit users whose birthday is within
	// LookaheadDays of today, nearest first.
	Upcoming(ctx context.Context) ([]User, error)
	// Occurrences lists every known birthday in the current and the next
	// year, in date order.
	Occurrences(ctx context.Context) ([]BirthdayOccurrence, error)
	Window() BirthdayWindow
}

// BirthdayCache stores computed birthday lists. Implementations may be no-ops.
//
// Get reports the cache generation it looked in; Set must be given that
// generation. Invalidate starts a new generation, so a list computed before
// an invalidation is never served after it.
type BirthdayCache interface {
	Get(ctx context.Context, w BirthdayWindow) (users []User, gen int64, hit bool, err error)
	Set(ctx context.Context, w BirthdayWindow, gen int64, users []User) error
	Invalidate(ctx context.Context) error
}
