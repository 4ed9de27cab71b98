package feed

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"lokofixtures/internal/fixture"
)

func sampleFixtures() []*fixture.Fixture {
	start := time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC)
	home := fixture.New("Локомотив", "Спартак", true, start, "РЖД Арена, Москва")
	home.Competition = "МИР РПЛ"
	home.Round = "5-й тур"
	away := fixture.New("Локомотив", "Зенит", false, start.AddDate(0, 0, 7), "")
	return []*fixture.Fixture{home, away}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	p := Build(sampleFixtures(), now)
	if p.GeneratedAt != "2026-03-01T12:00:00Z" {
		t.Errorf("generatedAt = %q, expected run timestamp", p.GeneratedAt)
	}
	if p.Count != 2 {
		t.Errorf("count = %d, expected 2", p.Count)
	}

	empty := Build(nil, now)
	if empty.Count != 0 || empty.Fixtures == nil {
		t.Error("expected empty payload to carry an empty fixtures array, not null")
	}
}

func TestWriteShape(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	p := Build(sampleFixtures(), now)

	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"generatedAt", "count", "fixtures"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected top-level key %q", key)
		}
	}

	out := buf.String()
	if !strings.Contains(out, `"title": "Локомотив — Спартак"`) {
		t.Error("expected indented fixture title in output")
	}
	// Optional fields are omitted entirely, not serialized as empty strings.
	if strings.Contains(out, `"ticketUrl"`) {
		t.Error("expected absent ticketUrl to be omitted")
	}
	if strings.Contains(out, `"competition": ""`) {
		t.Error("expected absent competition to be omitted")
	}
}

func TestReadRehydratesTimestamps(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	p := Build(sampleFixtures(), now)

	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Count != p.Count || len(got.Fixtures) != len(p.Fixtures) {
		t.Fatalf("round trip changed counts: %d vs %d", got.Count, p.Count)
	}
	for i, f := range got.Fixtures {
		if !f.Start.Equal(p.Fixtures[i].Start) {
			t.Errorf("fixture %d start = %v, expected %v", i, f.Start, p.Fixtures[i].Start)
		}
		if f.Key() != p.Fixtures[i].Key() {
			t.Errorf("fixture %d key changed across round trip", i)
		}
	}
}

func TestDiff(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	fixtures := sampleFixtures()

	prev := Build(fixtures[:1], now)
	cur := Build(fixtures, now)

	fresh := Diff(prev, cur)
	if len(fresh) != 1 {
		t.Fatalf("expected 1 new fixture, got %d", len(fresh))
	}
	if fresh[0].Title != "Зенит — Локомотив" {
		t.Errorf("new fixture = %q, expected the away match", fresh[0].Title)
	}

	if got := Diff(nil, cur); len(got) != 2 {
		t.Errorf("expected everything new against a nil previous feed, got %d", len(got))
	}
	if got := Diff(cur, cur); len(got) != 0 {
		t.Errorf("expected no new fixtures against an identical feed, got %d", len(got))
	}
}
