// Package feed builds and serializes the external JSON payload and diffs
// feeds across runs for the announce command.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"lokofixtures/internal/fixture"
)

// Payload is the document handed to downstream consumers.
type Payload struct {
	GeneratedAt string             `json:"generatedAt"`
	Count       int                `json:"count"`
	Fixtures    []*fixture.Fixture `json:"fixtures"`
}

// Build wraps the fixture list into a payload stamped with the run time.
func Build(fixtures []*fixture.Fixture, now time.Time) *Payload {
	if fixtures == nil {
		fixtures = []*fixture.Fixture{}
	}
	return &Payload{
		GeneratedAt: now.Format(time.RFC3339),
		Count:       len(fixtures),
		Fixtures:    fixtures,
	}
}

// Write serializes the payload with two-space indentation.
func (p *Payload) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	return nil
}

// Read parses a previously written payload and rehydrates the timestamp
// fields from their ISO form.
func Read(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	for _, f := range p.Fixtures {
		if t, err := time.Parse(time.RFC3339, f.StartISO); err == nil {
			f.Start = t
		}
		if t, err := time.Parse(time.RFC3339, f.EndISO); err == nil {
			f.End = t
		}
	}
	return &p, nil
}

// Diff returns the fixtures of cur whose (title, startISO) key is absent
// from prev. A nil prev means everything in cur is new.
func Diff(prev, cur *Payload) []*fixture.Fixture {
	seen := make(map[string]bool)
	if prev != nil {
		for _, f := range prev.Fixtures {
			seen[f.Key()] = true
		}
	}
	var fresh []*fixture.Fixture
	for _, f := range cur.Fixtures {
		if !seen[f.Key()] {
			fresh = append(fresh, f)
		}
	}
	return fresh
}
