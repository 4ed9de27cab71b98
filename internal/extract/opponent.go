package extract

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Opponent name length bounds. Anything shorter is stray punctuation or an
// abbreviation artifact; anything longer is a sentence fragment.
const (
	minOpponentLen = 2
	maxOpponentLen = 40
)

// pickOpponent chooses the most plausible opponent name from the candidate
// lines surrounding the club-name line. It drops every line matching a
// non-opponent role, then prefers short capitalized entries: club names in
// rendered text are short capitalized proper nouns, while the sentence
// fragments that survive the role filters tend to be longer and lowercased.
// Returns "" when nothing survives; the caller must then skip the window.
func (e *Extractor) pickOpponent(candidates []string) string {
	cleaned := make([]string, 0, len(candidates))
	for _, raw := range candidates {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		c := e.roles
		if c.IsClub(s) || c.IsScore(s) || c.HasDate(s) || c.HasTime(s) || c.IsWeekday(s) ||
			c.IsMonth(s) || c.IsVersus(s) || c.IsTournament(s) || c.IsNoise(s) {
			continue
		}
		if !c.HasLetter(s) {
			continue
		}
		if n := utf8.RuneCountInString(s); n < minOpponentLen || n > maxOpponentLen {
			continue
		}
		cleaned = append(cleaned, s)
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		ci, cj := e.roles.StartsUpper(cleaned[i]), e.roles.StartsUpper(cleaned[j])
		if ci != cj {
			return ci
		}
		return utf8.RuneCountInString(cleaned[i]) < utf8.RuneCountInString(cleaned[j])
	})

	if len(cleaned) == 0 {
		return ""
	}
	return cleaned[0]
}
