// Package render retrieves the visible text of the schedule and tickets
// pages. The primary implementation drives headless Chrome, because the club
// site assembles both pages with scripts; a static HTTP fallback covers
// environments without a browser.
//
// The extraction core never fetches anything itself: it consumes the line
// and block sequences produced here.
package render

import (
	"context"
	"strings"

	"lokofixtures/internal/tickets"
)

// Source supplies the two raw inputs of an extraction run. Implementations
// try their configured candidate URLs in order and report which one was
// used; an empty result with a nil error means no candidate produced usable
// content.
type Source interface {
	ScheduleLines(ctx context.Context) (lines []string, usedURL string, err error)
	TicketBlocks(ctx context.Context) (blocks []tickets.Block, usedURL string, err error)
}

// SplitLines turns a page's visible text into trimmed, non-empty lines in
// document order.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
