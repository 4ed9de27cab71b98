package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"lokofixtures/internal/feed"
)

// OutputFormat specifies the summary format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteSummary writes a run summary in the specified format. The JSON form
// is the feed payload itself; the text form is a human-readable digest.
func WriteSummary(w io.Writer, p *feed.Payload, format OutputFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatText:
		return writeText(w, p)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeText(w io.Writer, p *feed.Payload) error {
	if p.Count == 0 {
		fmt.Fprintln(w, "No upcoming fixtures found.")
		return nil
	}

	for _, f := range p.Fixtures {
		side := "away"
		if f.IsHome {
			side = "home"
		}
		fmt.Fprintf(w, "%s (%s)\n", f.Title, side)
		fmt.Fprintf(w, "  Start: %s\n", f.StartISO)
		if f.Location != "" {
			fmt.Fprintf(w, "  Venue: %s\n", f.Location)
		}
		if f.Competition != "" {
			if f.Round != "" {
				fmt.Fprintf(w, "  Competition: %s (%s)\n", f.Competition, f.Round)
			} else {
				fmt.Fprintf(w, "  Competition: %s\n", f.Competition)
			}
		}
		if f.TicketURL != "" {
			fmt.Fprintf(w, "  Tickets: %s\n", f.TicketURL)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d fixtures\n", p.Count)
	return nil
}
