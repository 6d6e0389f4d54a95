// Package streak tracks consecutive days of use.
package streak

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/smartprep/internal/store"
)

// Persisted preference keys.
const (
	KeyStreak     = "smartprep_streak"
	KeyLastActive = "smartprep_last_active"
)

// DateLayout formats the last-active day, e.g. "Mon Jan 02 2006".
const DateLayout = "Mon Jan 02 2006"

// State is the streak as of session start.
type State struct {
	Count      int
	LastActive string
	Updated    bool
}

// Tracker derives the streak from the persisted (count, last active) pair.
type Tracker struct {
	Prefs store.PreferenceRepo
	Clock func() time.Time
}

// New returns a Tracker on the wall clock.
func New(prefs store.PreferenceRepo) *Tracker {
	return &Tracker{Prefs: prefs, Clock: time.Now}
}

// Init reads the stored pair, applies today's visit and persists the
// result when it changed. Call once per session.
func (t *Tracker) Init(ctx context.Context) (State, error) {
	rawCount, _, err := t.Prefs.Get(ctx, KeyStreak)
	if err != nil {
		return State{}, err
	}
	last, _, err := t.Prefs.Get(ctx, KeyLastActive)
	if err != nil {
		return State{}, err
	}
	count, _ := strconv.Atoi(rawCount)

	today := t.Clock()
	next, changed := Advance(count, last, today)
	st := State{Count: next, LastActive: last}
	if !changed {
		return st, nil
	}

	st.LastActive = today.Format(DateLayout)
	st.Updated = true
	if err := t.Prefs.Set(ctx, KeyStreak, strconv.Itoa(next)); err != nil {
		return st, fmt.Errorf("save streak: %w", err)
	}
	if err := t.Prefs.Set(ctx, KeyLastActive, st.LastActive); err != nil {
		return st, fmt.Errorf("save last active: %w", err)
	}
	return st, nil
}

// Reset clears the stored pair.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.Prefs.Delete(ctx, KeyStreak, KeyLastActive)
}

// Advance applies a visit on today to a streak last active on lastActive.
// It reports whether anything changed. A same-day visit or a stored date in
// the future leaves the streak alone; an unparseable date starts over.
func Advance(count int, lastActive string, today time.Time) (int, bool) {
	todayStr := today.Format(DateLayout)
	if lastActive == todayStr {
		return count, false
	}
	if lastActive == "" {
		return 1, true
	}

	prev, err := time.ParseInLocation(DateLayout, lastActive, today.Location())
	if err != nil {
		return 1, true
	}

	switch diff := DaysBetween(prev, today); {
	case diff == 1:
		return count + 1, true
	case diff > 1:
		return 1, true
	default:
		return count, false
	}
}

// DaysBetween counts calendar days from a to b, ignoring the time of day.
// Dates are compared at UTC noon so DST shifts cannot round a day away.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	an := time.Date(ay, am, ad, 12, 0, 0, 0, time.UTC)
	bn := time.Date(by, bm, bd, 12, 0, 0, 0, time.UTC)
	return int(bn.Sub(an).Hours() / 24)
}

// NextMilestone returns the next streak length worth celebrating.
func NextMilestone(current int) int {
	for _, m := range []int{3, 7, 14, 30} {
		if m > current {
			return m
		}
	}
	// Beyond a month, every 30 days.
	return ((current / 30) + 1) * 30
}
