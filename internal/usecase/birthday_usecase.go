package usecase

import (
	"context"
	"sort"
	"time"

	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/calendar"
	"corp-social-backend/pkg/clock"
	"corp-social-backend/pkg/logger"
)

// FindUpcomingBirthdays returns at most limit users whose birthday (month and
// day) lies 0..lookahead days after ref on the cyclic 366-day calendar.
// Results are ordered by that distance, then by user ID. Users without a
// birthday are skipped. The result is never nil.
func FindUpcomingBirthdays(users []domain.User, ref time.Time, lookahead, limit int) []domain.User {
	result := []domain.User{}
	if lookahead < 0 || limit <= 0 {
		return result
	}

	type ranked struct {
		user     domain.User
		distance int
	}

	from := calendar.FromDate(ref)
	matches := make([]ranked, 0, len(users))
	for _, u := range users {
		if u.BirthdayDate == nil {
			continue
		}
		md := calendar.FromDate(*u.BirthdayDate)
		if !md.Valid() {
			continue
		}
		if d := calendar.Distance(from, md); d <= lookahead {
			matches = append(matches, ranked{user: u, distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].user.ID < matches[j].user.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	for _, m := range matches {
		result = append(result, m.user)
	}
	return result
}

type birthdayUsecase struct {
	userRepo  domain.UserRepository
	cache     domain.BirthdayCache
	clock     clock.Clock
	lookahead int
	limit     int
}

func NewBirthdayUsecase(userRepo domain.UserRepository, cache domain.BirthdayCache, clk clock.Clock, lookahead, limit int) domain.BirthdayUsecase {
	return &birthdayUsecase{
		userRepo:  userRepo,
		cache:     cache,
		clock:     clk,
		lookahead: lookahead,
		limit:     limit,
	}
}

// Window anchors the computation on today's UTC date.
func (u *birthdayUsecase) Window() domain.BirthdayWindow {
	y, m, d := u.clock.Now().UTC().Date()
	return domain.BirthdayWindow{
		ReferenceDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		LookaheadDays: u.lookahead,
		Limit:         u.limit,
	}
}

func (u *birthdayUsecase) Upcoming(ctx context.Context) ([]domain.User, error) {
	w := u.Window()

	cached, gen, ok, err := u.cache.Get(ctx, w)
	if err != nil {
		logger.Log.Warn("Birthday cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	days := calendar.Window(calendar.FromDate(w.ReferenceDate), w.LookaheadDays)
	candidates, err := u.userRepo.FetchByBirthdays(ctx, days)
	if err != nil {
		return nil, err
	}

	users := FindUpcomingBirthdays(candidates, w.ReferenceDate, w.LookaheadDays, w.Limit)
	if err := u.cache.Set(ctx, w, gen, users); err != nil {
		logger.Log.Warn("Birthday cache write failed", "error", err)
	}
	return users, nil
}

func (u *birthdayUsecase) Occurrences(ctx context.Context) ([]domain.BirthdayOccurrence, error) {
	ref := u.Window().ReferenceDate
	allDays := calendar.Window(calendar.MonthDay{Month: time.January, Day: 1}, calendar.DaysInCycle-1)
	users, err := u.userRepo.FetchByBirthdays(ctx, allDays)
	if err != nil {
		return nil, err
	}

	occurrences := make([]domain.BirthdayOccurrence, 0, 2*len(users))
	for _, year := range []int{ref.Year(), ref.Year() + 1} {
		for _, user := range users {
			if user.BirthdayDate == nil {
				continue
			}
			md := calendar.FromDate(*user.BirthdayDate)
			occurrences = append(occurrences, domain.BirthdayOccurrence{User: user, Date: md.In(year, time.UTC)})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		if !occurrences[i].Date.Equal(occurrences[j].Date) {
			return occurrences[i].Date.Before(occurrences[j].Date)
		}
		return occurrences[i].User.ID < occurrences[j].User.ID
	})
	return occurrences, nil
}
