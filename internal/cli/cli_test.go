package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"lokofixtures/internal/config"
	"lokofixtures/internal/feed"
	"lokofixtures/internal/fixture"
	"lokofixtures/internal/textrole"
	"lokofixtures/internal/tickets"
)

func testDeps(t *testing.T) (*config.Config, *textrole.Classifier, *time.Location) {
	t.Helper()
	cfg := config.Default()
	roles, err := textrole.New(cfg.Vocabulary())
	if err != nil {
		t.Fatalf("building classifiers: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}
	return cfg, roles, loc
}

func fixedNow(loc *time.Location) func() time.Time {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, loc)
	return func() time.Time { return now }
}

func TestBuildFeedCorrelatesTickets(t *testing.T) {
	cfg, roles, loc := testDeps(t)

	lines := []string{
		"СБ 15.03",
		"19:00",
		"МИР РПЛ, 5-й тур",
		"Локомотив",
		"VS",
		"Спартак",
	}
	blocks := []tickets.Block{
		{
			Href:      "https://www.fclm.ru/tickets/123",
			BlockText: "Локомотив — Спартак\n15.03\n19:00\nКупить билеты",
		},
	}

	payload, err := buildFeed(cfg, roles, loc, lines, blocks, fixedNow(loc))
	if err != nil {
		t.Fatalf("buildFeed failed: %v", err)
	}
	if payload.Count != 1 {
		t.Fatalf("expected 1 fixture, got %d", payload.Count)
	}

	f := payload.Fixtures[0]
	if f.Title != "Локомотив — Спартак" {
		t.Errorf("title = %q", f.Title)
	}
	if f.TicketURL != "https://www.fclm.ru/tickets/123" {
		t.Errorf("ticket URL = %q, expected the offer link", f.TicketURL)
	}
	if f.Competition != "МИР РПЛ" || f.Round != "5-й тур" {
		t.Errorf("competition/round = %q/%q", f.Competition, f.Round)
	}
}

func TestBuildFeedFallsBackToTicketBlocks(t *testing.T) {
	cfg, roles, loc := testDeps(t)

	blocks := []tickets.Block{
		{
			Href:      "https://www.fclm.ru/tickets/123",
			BlockText: "СБ 15.03\n19:00\nЛокомотив\nVS\nСпартак\nКупить билеты",
		},
	}

	payload, err := buildFeed(cfg, roles, loc, nil, blocks, fixedNow(loc))
	if err != nil {
		t.Fatalf("buildFeed failed: %v", err)
	}
	if payload.Count != 1 {
		t.Fatalf("expected 1 fixture from the fallback pass, got %d", payload.Count)
	}

	f := payload.Fixtures[0]
	if !f.IsHome {
		t.Error("fallback fixtures must be home fixtures")
	}
	if f.TicketURL != "https://www.fclm.ru/tickets/123" {
		t.Errorf("ticket URL = %q, expected the offer link", f.TicketURL)
	}
}

func TestBuildFeedEmptyInputs(t *testing.T) {
	cfg, roles, loc := testDeps(t)

	payload, err := buildFeed(cfg, roles, loc, nil, nil, fixedNow(loc))
	if err != nil {
		t.Fatalf("buildFeed failed: %v", err)
	}
	if payload.Count != 0 {
		t.Errorf("expected empty feed, got %d fixtures", payload.Count)
	}
	if payload.Fixtures == nil {
		t.Error("fixtures must be an empty slice, not nil")
	}
}

func TestWriteSummaryText(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, time.March, 15, 19, 0, 0, 0, loc)
	f := fixture.New("Локомотив", "Спартак", true, start, "РЖД Арена, Москва")
	f.TicketURL = "https://www.fclm.ru/tickets/123"
	payload := feed.Build([]*fixture.Fixture{f}, start.AddDate(0, 0, -14))

	var buf bytes.Buffer
	if err := WriteSummary(&buf, payload, FormatText); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	out := buf.String()
	for _, part := range []string{
		"Локомотив — Спартак (home)",
		"Venue: РЖД Арена, Москва",
		"Tickets: https://www.fclm.ru/tickets/123",
		"Total: 1 fixtures",
	} {
		if !strings.Contains(out, part) {
			t.Errorf("summary missing %q:\n%s", part, out)
		}
	}
}

func TestWriteSummaryTextEmpty(t *testing.T) {
	payload := feed.Build(nil, time.Now())

	var buf bytes.Buffer
	if err := WriteSummary(&buf, payload, FormatText); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No upcoming fixtures found.") {
		t.Errorf("unexpected empty summary: %q", buf.String())
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	start := time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC)
	f := fixture.New("Локомотив", "Спартак", true, start, "РЖД Арена, Москва")
	payload := feed.Build([]*fixture.Fixture{f}, start.AddDate(0, 0, -14))

	var buf bytes.Buffer
	if err := WriteSummary(&buf, payload, FormatJSON); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	var got feed.Payload
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if got.Count != 1 || got.Fixtures[0].Title != "Локомотив — Спартак" {
		t.Errorf("decoded summary = %+v", &got)
	}
}

func TestWriteSummaryUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, feed.Build(nil, time.Now()), OutputFormat("xml")); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
