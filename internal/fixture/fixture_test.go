package fixture

import (
	"testing"
	"time"
)

func TestNewHomeFixture(t *testing.T) {
	start := time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC)
	f := New("Локомотив", "Спартак", true, start, "РЖД Арена, Москва")

	if f.Title != "Локомотив — Спартак" {
		t.Errorf("title = %q, expected %q", f.Title, "Локомотив — Спартак")
	}
	if !f.IsHome {
		t.Error("expected IsHome")
	}
	if f.Location != "РЖД Арена, Москва" {
		t.Errorf("location = %q, expected home venue", f.Location)
	}
	if f.StartISO != "2026-03-15T19:00:00Z" {
		t.Errorf("startISO = %q, expected %q", f.StartISO, "2026-03-15T19:00:00Z")
	}
	if f.EndISO != "2026-03-15T21:00:00Z" {
		t.Errorf("endISO = %q, expected start + 2h", f.EndISO)
	}
}

func TestNewAwayFixture(t *testing.T) {
	start := time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC)
	f := New("Локомотив", "Спартак", false, start, "РЖД Арена, Москва")

	if f.Title != "Спартак — Локомотив" {
		t.Errorf("title = %q, expected %q", f.Title, "Спартак — Локомотив")
	}
	if f.IsHome {
		t.Error("expected away fixture")
	}
	if f.Location != "" {
		t.Errorf("location = %q, expected empty for away fixture", f.Location)
	}
}

func TestKey(t *testing.T) {
	start := time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC)
	a := New("Локомотив", "Спартак", true, start, "")
	b := New("Локомотив", "Спартак", true, start, "")
	c := New("Локомотив", "Зенит", true, start, "")

	if a.Key() != b.Key() {
		t.Error("expected identical fixtures to share a key")
	}
	if a.Key() == c.Key() {
		t.Error("expected different opponents to produce different keys")
	}
}

func TestOpponent(t *testing.T) {
	start := time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC)

	home := New("Локомотив", "Спартак", true, start, "")
	if got := home.Opponent("Локомотив"); got != "Спартак" {
		t.Errorf("home opponent = %q, expected %q", got, "Спартак")
	}

	away := New("Локомотив", "Спартак", false, start, "")
	if got := away.Opponent("Локомотив"); got != "Спартак" {
		t.Errorf("away opponent = %q, expected %q", got, "Спартак")
	}
}

func TestTicketKey(t *testing.T) {
	start := time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC)
	f := New("Локомотив", "Спартак", true, start, "")

	want := "home:03-15 19:00 спартак"
	if got := f.TicketKey("Локомотив"); got != want {
		t.Errorf("TicketKey = %q, expected %q", got, want)
	}
}
