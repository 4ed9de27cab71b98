package extract

import (
	"reflect"
	"testing"
	"time"
)

// scheduleLines mimics the visible text of one rendered fixture card.
func scheduleLines() []string {
	return []string{
		"МАРТ",
		"СБ 15.03",
		"19:00",
		"МИР РПЛ, 5-й тур",
		"Локомотив",
		"VS",
		"Спартак",
		"Купить билеты",
	}
}

func TestFixturesHomeCard(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	e := newExtractor(t, now)

	fixtures := e.Fixtures(scheduleLines())
	if len(fixtures) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(fixtures))
	}

	f := fixtures[0]
	if f.Title != "Локомотив — Спартак" {
		t.Errorf("title = %q, expected %q", f.Title, "Локомотив — Спартак")
	}
	if !f.IsHome {
		t.Error("expected home fixture: club line precedes the versus marker")
	}
	want := time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC)
	if !f.Start.Equal(want) {
		t.Errorf("start = %v, expected %v", f.Start, want)
	}
	if !f.End.Equal(want.Add(2 * time.Hour)) {
		t.Errorf("end = %v, expected start + 2h", f.End)
	}
	if f.Location != "РЖД Арена, Москва" {
		t.Errorf("location = %q, expected home venue", f.Location)
	}
	if f.Competition != "МИР РПЛ" || f.Round != "5-й тур" {
		t.Errorf("competition/round = %q/%q, expected %q/%q",
			f.Competition, f.Round, "МИР РПЛ", "5-й тур")
	}
}

func TestFixturesAwayCard(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	e := newExtractor(t, now)

	lines := []string{
		"ВС 22.03 16:30",
		"Спартак",
		"VS",
		"Локомотив",
	}
	fixtures := e.Fixtures(lines)
	if len(fixtures) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(fixtures))
	}

	f := fixtures[0]
	if f.Title != "Спартак — Локомотив" {
		t.Errorf("title = %q, expected %q", f.Title, "Спартак — Локомотив")
	}
	if f.IsHome {
		t.Error("expected away fixture: club line follows the versus marker")
	}
	if f.Location != "" {
		t.Errorf("location = %q, expected empty for away fixture", f.Location)
	}
}

func TestFixturesWithoutVersusMarker(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	e := newExtractor(t, now)

	// Opponent below the club line: read as a home card.
	home := e.Fixtures([]string{
		"15.03",
		"19:00",
		"Локомотив",
		"Ростов",
	})
	if len(home) != 1 || !home[0].IsHome {
		t.Fatalf("expected one home fixture, got %+v", home)
	}

	// Opponent well above the club line: read as an away card.
	away := e.Fixtures([]string{
		"15.03",
		"19:00",
		"Ростов",
		"реклама",
		"билеты",
		"турнирная таблица",
		"Локомотив",
	})
	if len(away) != 1 || away[0].IsHome {
		t.Fatalf("expected one away fixture, got %+v", away)
	}
}

func TestFixturesYearRollover(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "january date seen in december rolls to next year",
			now:      time.Date(2026, time.December, 20, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2027, time.January, 15, 19, 0, 0, 0, time.UTC),
		},
		{
			name:     "january date seen in november stays in the current year",
			now:      time.Date(2026, time.November, 20, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2026, time.January, 15, 19, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newExtractor(t, tt.now)
			fixtures := e.Fixtures([]string{
				"15.01",
				"19:00",
				"Локомотив",
				"VS",
				"Спартак",
			})
			if tt.expected.Before(tt.now) {
				// The current-year resolution is in the past, so the
				// future-only filter must reject it.
				if len(fixtures) != 0 {
					t.Fatalf("expected past fixture to be dropped, got %d", len(fixtures))
				}
				return
			}
			if len(fixtures) != 1 {
				t.Fatalf("expected 1 fixture, got %d", len(fixtures))
			}
			if !fixtures[0].Start.Equal(tt.expected) {
				t.Errorf("start = %v, expected %v", fixtures[0].Start, tt.expected)
			}
		})
	}
}

func TestFixturesFutureOnly(t *testing.T) {
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	e := newExtractor(t, now)

	// 15.03 is already behind now; 25.03 is ahead.
	lines := append(scheduleLines(),
		"ВТ 25.03",
		"20:15",
		"Локомотив",
		"VS",
		"Зенит",
	)
	fixtures := e.Fixtures(lines)
	if len(fixtures) != 1 {
		t.Fatalf("expected only the future fixture, got %d", len(fixtures))
	}
	if fixtures[0].Title != "Локомотив — Зенит" {
		t.Errorf("surviving fixture = %q, expected the future one", fixtures[0].Title)
	}
	for _, f := range fixtures {
		if !f.Start.After(now) {
			t.Errorf("fixture %q starts at %v, not after now", f.Title, f.Start)
		}
	}
}

func TestFixturesDeduplicateOverlappingWindows(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	e := newExtractor(t, now)

	// Two date lines within one window span, both resolving to the same
	// match, collapse into a single record.
	lines := []string{
		"СБ 15.03",
		"19:00 15.03",
		"Локомотив",
		"VS",
		"Спартак",
	}
	fixtures := e.Fixtures(lines)
	if len(fixtures) != 1 {
		t.Fatalf("expected duplicate windows to collapse, got %d fixtures", len(fixtures))
	}

	seen := make(map[string]bool)
	for _, f := range fixtures {
		if seen[f.Key()] {
			t.Errorf("duplicate key %q in output", f.Key())
		}
		seen[f.Key()] = true
	}
}

func TestFixturesIdempotent(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	e := newExtractor(t, now)

	first := e.Fixtures(scheduleLines())
	second := e.Fixtures(scheduleLines())
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output across runs over the same lines")
	}
}

func TestFixturesSkipsBrokenCards(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	e := newExtractor(t, now)

	tests := []struct {
		name  string
		lines []string
	}{
		{"no time near the date", []string{"15.03", "Локомотив", "VS", "Спартак"}},
		{"no club in the window", []string{"15.03", "19:00", "Спартак", "VS", "Зенит"}},
		{"no opponent survives", []string{"15.03", "19:00", "Локомотив", "VS", "2:1"}},
		{"empty input", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Fixtures(tt.lines); len(got) != 0 {
				t.Errorf("expected no fixtures, got %d", len(got))
			}
		})
	}
}
