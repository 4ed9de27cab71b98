// Package textrole labels single lines of rendered page text by semantic
// role: date-bearing, time-bearing, club name, score, weekday or month label,
// versus marker, tournament label, noise.
//
// The schedule page exposes no stable markup, only visible text, so every
// downstream decision is made from these per-line predicates. All of them are
// pure functions over one string and treat the empty string as a non-match.
// Callers combine roles with explicit boolean composition; a line may carry
// zero, one, or several roles at once.
package textrole

import (
	"fmt"
	"regexp"
	"strings"
)

// Classifier answers role queries for single lines. Build one with New and
// share it freely; it is immutable after construction.
type Classifier struct {
	club    *regexp.Regexp
	score   *regexp.Regexp
	time    *regexp.Regexp
	timeCap *regexp.Regexp
	date    *regexp.Regexp
	dateCap *regexp.Regexp
	weekday *regexp.Regexp
	month   *regexp.Regexp
	versus  *regexp.Regexp
	compet  *regexp.Regexp
	rounds  []*regexp.Regexp
	noise   *regexp.Regexp
	letter  *regexp.Regexp
	upper   *regexp.Regexp
}

// New compiles a Classifier from the given vocabulary.
func New(v Vocabulary) (*Classifier, error) {
	c := &Classifier{
		score:   regexp.MustCompile(`^\s*\d+\s*[:\-]\s*\d+\s*$`),
		time:    regexp.MustCompile(`\b\d{1,2}:\d{2}\b`),
		timeCap: regexp.MustCompile(`(\d{1,2}):(\d{2})`),
		date:    regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\b`),
		dateCap: regexp.MustCompile(`(\d{1,2})\.(\d{1,2})`),
		letter:  regexp.MustCompile(`[A-Za-zА-Яа-яЁё]`),
		upper:   regexp.MustCompile(`^[A-ZА-ЯЁ]`),
	}

	var err error
	if c.club, err = substringAlt(v.ClubNames); err != nil {
		return nil, fmt.Errorf("compiling club pattern: %w", err)
	}
	if c.noise, err = substringAlt(v.Noise); err != nil {
		return nil, fmt.Errorf("compiling noise pattern: %w", err)
	}
	if c.compet, err = substringAlt(v.Competitions); err != nil {
		return nil, fmt.Errorf("compiling competition pattern: %w", err)
	}
	if c.weekday, err = labelAlt(v.Weekdays); err != nil {
		return nil, fmt.Errorf("compiling weekday pattern: %w", err)
	}
	if c.month, err = labelAlt(v.Months); err != nil {
		return nil, fmt.Errorf("compiling month pattern: %w", err)
	}
	if c.versus, err = wholeLineAlt(v.VersusTokens); err != nil {
		return nil, fmt.Errorf("compiling versus pattern: %w", err)
	}
	for _, p := range v.RoundPatterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("compiling round pattern %q: %w", p, err)
		}
		c.rounds = append(c.rounds, re)
	}
	return c, nil
}

// MustNew is New for known-good vocabularies, panicking on a bad pattern.
func MustNew(v Vocabulary) *Classifier {
	c, err := New(v)
	if err != nil {
		panic(err)
	}
	return c
}

// substringAlt compiles a case-insensitive substring alternation.
func substringAlt(words []string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)(?:` + quoteJoin(words) + `)`)
}

// labelAlt compiles a case-insensitive alternation that must stand apart
// from surrounding letters. Go's \b only knows ASCII word characters, so the
// boundary is spelled out as "not a letter" to keep Cyrillic labels matching.
func labelAlt(words []string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)(?:^|[^\p{L}])(?:` + quoteJoin(words) + `)(?:$|[^\p{L}])`)
}

// wholeLineAlt compiles a case-insensitive whole-line alternation.
func wholeLineAlt(words []string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)^\s*(?:` + quoteJoin(words) + `)\s*$`)
}

func quoteJoin(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		// Alternation that can never match, so an empty vocabulary list
		// simply disables the role.
		return `\x00never\x00`
	}
	return strings.Join(quoted, "|")
}

// IsClub reports whether the line mentions the tracked club.
func (c *Classifier) IsClub(line string) bool { return c.club.MatchString(line) }

// IsScore reports whether the entire line is a numeric score like "2:1".
func (c *Classifier) IsScore(line string) bool { return c.score.MatchString(line) }

// HasTime reports whether the line contains an H:MM or HH:MM pair.
func (c *Classifier) HasTime(line string) bool { return c.time.MatchString(line) }

// HasDate reports whether the line contains a D.M or DD.MM pair.
func (c *Classifier) HasDate(line string) bool { return c.date.MatchString(line) }

// IsWeekday reports whether the line carries a weekday label.
func (c *Classifier) IsWeekday(line string) bool { return c.weekday.MatchString(line) }

// IsMonth reports whether the line carries a month label.
func (c *Classifier) IsMonth(line string) bool { return c.month.MatchString(line) }

// IsVersus reports whether the entire line is a versus marker.
func (c *Classifier) IsVersus(line string) bool { return c.versus.MatchString(line) }

// IsNoise reports whether the line is page chrome.
func (c *Classifier) IsNoise(line string) bool { return c.noise.MatchString(line) }

// IsTournament reports whether the line names a competition or a round.
func (c *Classifier) IsTournament(line string) bool {
	if c.compet.MatchString(line) {
		return true
	}
	for _, re := range c.rounds {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// HasLetter reports whether the line contains at least one Latin or Cyrillic
// letter.
func (c *Classifier) HasLetter(line string) bool { return c.letter.MatchString(line) }

// StartsUpper reports whether the line starts with an uppercase Latin or
// Cyrillic letter.
func (c *Classifier) StartsUpper(line string) bool { return c.upper.MatchString(line) }

// Date extracts the first day.month pair from the line.
func (c *Classifier) Date(line string) (day, month int, ok bool) {
	m := c.dateCap.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	return atoi(m[1]), atoi(m[2]), true
}

// Time extracts the first hour:minute pair from the text.
func (c *Classifier) Time(text string) (hour, minute int, ok bool) {
	m := c.timeCap.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	return atoi(m[1]), atoi(m[2]), true
}

// SplitCompetition separates a tournament line into the competition name and
// the round marker, either of which may come back empty. "МИР РПЛ, 5-й тур"
// yields ("МИР РПЛ", "5-й тур").
func (c *Classifier) SplitCompetition(line string) (competition, round string) {
	rest := strings.TrimSpace(line)
	for _, re := range c.rounds {
		if loc := re.FindStringIndex(rest); loc != nil {
			round = rest[loc[0]:loc[1]]
			rest = rest[:loc[0]] + rest[loc[1]:]
			break
		}
	}
	competition = strings.Trim(rest, " \t,.—–-:;")
	return competition, round
}

// atoi parses a digits-only string already matched by \d+. Leading zeroes
// are fine ("03" -> 3).
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
