// Package tickets indexes "buy tickets" link blocks from the tickets page
// and correlates them with extracted home fixtures.
//
// The join is deliberately an exact string match on a derived key, not a
// fuzzy one: a ticket offer either describes exactly the same opponent, date
// and time as a fixture, or it is ignored.
package tickets

import (
	"fmt"
	"regexp"
	"strings"

	"lokofixtures/internal/fixture"
)

// Block is the free text surrounding one buy-tickets link, paired with the
// link target. Blocks are transient: they feed the index and are not kept.
type Block struct {
	Href      string `json:"href"`
	BlockText string `json:"blockText"`
}

var (
	dateRe  = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\b`)
	timeRe  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Indexer builds the ticket key -> URL index for one tracked club.
type Indexer struct {
	opponent *regexp.Regexp
}

// NewIndexer compiles the opponent pattern for the given club name variants.
// A block is parseable when it reads "<Club> <sep> <opponent>" with one of
// the separators vs, em-dash, hyphen or colon.
func NewIndexer(clubNames []string) (*Indexer, error) {
	quoted := make([]string, 0, len(clubNames))
	for _, n := range clubNames {
		quoted = append(quoted, regexp.QuoteMeta(n))
	}
	re, err := regexp.Compile(`(?i)(?:` + strings.Join(quoted, "|") + `)\s*(?:vs|—|-|:)\s*([A-Za-zА-Яа-яёЁ0-9.\- ]+)`)
	if err != nil {
		return nil, fmt.Errorf("compiling opponent pattern: %w", err)
	}
	return &Indexer{opponent: re}, nil
}

// Index parses all blocks into a key -> URL mapping. Blocks missing any of
// opponent, date or time do not describe a concrete fixture offer and are
// dropped. Later blocks overwrite earlier ones on key collision.
func (ix *Indexer) Index(blocks []Block) map[string]string {
	index := make(map[string]string)
	for _, b := range blocks {
		oppM := ix.opponent.FindStringSubmatch(b.BlockText)
		dateM := dateRe.FindStringSubmatch(b.BlockText)
		timeM := timeRe.FindStringSubmatch(b.BlockText)
		if oppM == nil || dateM == nil || timeM == nil {
			continue
		}

		opp := oppM[1]
		// The capture is greedy and may swallow a trailing "15.03 19" from
		// single-line blocks; the date and time are keyed separately.
		if loc := dateRe.FindStringIndex(opp); loc != nil {
			opp = opp[:loc[0]]
		}
		opp = strings.ToLower(spaceRe.ReplaceAllString(strings.TrimSpace(opp), " "))
		if opp == "" {
			continue
		}
		key := fmt.Sprintf("home:%s-%s %s:%s %s",
			pad2(dateM[2]), pad2(dateM[1]), pad2(timeM[1]), pad2(timeM[2]), opp)
		index[key] = b.Href
	}
	return index
}

// Correlate attaches purchase URLs to home fixtures whose derived ticket key
// is present in the index. Away fixtures are never correlated, and a missing
// key is not an error: the field simply stays unset.
func Correlate(fixtures []*fixture.Fixture, index map[string]string, club string) {
	for _, f := range fixtures {
		if !f.IsHome {
			continue
		}
		if url, ok := index[f.TicketKey(club)]; ok {
			f.TicketURL = url
		}
	}
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
