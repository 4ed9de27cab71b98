// Package fixture defines the match record produced by the extraction
// pipeline and the derived keys used for deduplication and for joining
// fixtures to ticket offers.
package fixture

import (
	"fmt"
	"strings"
	"time"
)

// Duration is the assumed length of a match. The schedule page publishes no
// end time, so every fixture ends exactly this long after kickoff.
const Duration = 2 * time.Hour

// Separator joins the two sides in a fixture title. Downstream consumers
// match on the exact em-dash, so this must never change silently.
const Separator = " — "

// Fixture is one scheduled match for the tracked club. It is created once by
// the assembler and never mutated afterwards, except for the one-time
// TicketURL attachment done by the correlator.
type Fixture struct {
	Title       string `json:"title"`
	IsHome      bool   `json:"isHome"`
	StartISO    string `json:"startISO"`
	EndISO      string `json:"endISO"`
	Location    string `json:"location"`
	Competition string `json:"competition,omitempty"`
	Round       string `json:"round,omitempty"`
	TicketURL   string `json:"ticketUrl,omitempty"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// New builds a fixture for the tracked club against opponent, starting at
// start. venue is used as the location for home fixtures; away fixtures have
// no venue data in the source and keep an empty location.
func New(club, opponent string, isHome bool, start time.Time, venue string) *Fixture {
	title := club + Separator + opponent
	location := venue
	if !isHome {
		title = opponent + Separator + club
		location = ""
	}
	end := start.Add(Duration)
	return &Fixture{
		Title:    title,
		IsHome:   isHome,
		Start:    start,
		End:      end,
		StartISO: start.Format(time.RFC3339),
		EndISO:   end.Format(time.RFC3339),
		Location: location,
	}
}

// Key is the deduplication key: two fixtures with the same title and start
// are the same match, however many windows detected it.
func (f *Fixture) Key() string {
	return f.Title + "|" + f.StartISO
}

// Opponent recovers the opponent's side of the title for the given club
// display name.
func (f *Fixture) Opponent(club string) string {
	if f.IsHome {
		return strings.TrimPrefix(f.Title, club+Separator)
	}
	return strings.TrimSuffix(f.Title, Separator+club)
}

// TicketKey derives the exact-match join key used against the ticket index:
// "home:MM-DD HH:MM <lowercased opponent>". Only meaningful for home
// fixtures; ticket data never exists for away matches.
func (f *Fixture) TicketKey(club string) string {
	return fmt.Sprintf("home:%02d-%02d %02d:%02d %s",
		int(f.Start.Month()), f.Start.Day(),
		f.Start.Hour(), f.Start.Minute(),
		strings.ToLower(f.Opponent(club)))
}
