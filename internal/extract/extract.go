// Package extract turns raw visible-text lines from the rendered schedule
// page into fixture records.
//
// The pipeline runs in three steps over one materialized line sequence:
// locate candidate fixture windows anchored on date lines, disambiguate the
// opponent name inside each window, then assemble deduplicated future-only
// fixtures. Every step skips silently on a pattern miss; the worst outcome
// of a run is an empty list, never an error.
package extract

import (
	"time"

	"lokofixtures/internal/fixture"
	"lokofixtures/internal/textrole"
)

// Extractor holds the immutable configuration of one extraction run. Safe
// for reuse across line sequences.
type Extractor struct {
	roles *textrole.Classifier
	club  string
	venue string
	loc   *time.Location
	side  SideStrategy
	now   func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSideStrategy replaces the default home/away inference rule.
func WithSideStrategy(s SideStrategy) Option {
	return func(e *Extractor) { e.side = s }
}

// WithNow fixes the extractor's notion of the current instant. Used by tests
// to make the future-only filter and year rollover deterministic.
func WithNow(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New creates an Extractor. club is the display name used in titles, venue
// the home ground attached to home fixtures, loc the zone kickoff times are
// resolved in.
func New(roles *textrole.Classifier, club, venue string, loc *time.Location, opts ...Option) *Extractor {
	e := &Extractor{
		roles: roles,
		club:  club,
		venue: venue,
		loc:   loc,
		side:  PositionalSide{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fixtures extracts all future fixtures from the line sequence. The result
// is deduplicated on the (title, start) key: each match keeps the slot of
// its first detection and the values of its last.
func (e *Extractor) Fixtures(lines []string) []*fixture.Fixture {
	now := e.now()

	slot := make(map[string]int)
	var out []*fixture.Fixture

	for _, win := range e.locateWindows(lines) {
		opponent := e.pickOpponent(win.Candidates)
		if opponent == "" {
			continue
		}

		start := e.resolveStart(win, now)
		if !start.After(now) {
			continue
		}

		f := fixture.New(e.club, opponent, e.side.IsHome(win, opponent), start, e.venue)
		f.Competition = win.Competition
		f.Round = win.Round

		if i, seen := slot[f.Key()]; seen {
			out[i] = f
		} else {
			slot[f.Key()] = len(out)
			out = append(out, f)
		}
	}
	return out
}

// resolveStart turns the window's bare day.month and hour:minute into a
// concrete timestamp. The page never prints a year: assume the current one,
// except that a January date seen in December belongs to next year's half of
// the season.
func (e *Extractor) resolveStart(win *Window, now time.Time) time.Time {
	year := now.Year()
	if win.Month == 1 && now.Month() == time.December {
		year++
	}
	return time.Date(year, time.Month(win.Month), win.Day, win.Hour, win.Minute, 0, 0, e.loc)
}
