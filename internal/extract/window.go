package extract

import "strings"

// Window search bounds, in lines. A fixture card on the rendered page spans
// at most windowSpan lines below its date line; the versus marker and the
// opponent candidates sit within a few lines of the club name.
const (
	windowSpan     = 18
	versusReach    = 4
	candidateReach = 4
	timeLookahead  = 3
)

// Window is one candidate fixture card located in the line sequence: a date
// line, a paired time, the club-name line, an optional versus marker, the
// opponent candidate lines, and an optional tournament line.
type Window struct {
	Day, Month   int
	Hour, Minute int

	// ClubIdx is the absolute index of the club-name line; VersusIdx is the
	// absolute index of the versus-marker line, or -1 when none was found.
	ClubIdx   int
	VersusIdx int

	// Candidates holds the 4 lines preceding and 4 following the club-name
	// line, in document order. Out-of-range slots are empty strings.
	Candidates []string

	Competition string
	Round       string
}

// locateWindows scans the whole line sequence for fixture cards. Windows may
// overlap when two date lines sit close together; each is processed
// independently and duplicates collapse later on the (title, start) key.
func (e *Extractor) locateWindows(lines []string) []*Window {
	var out []*Window
	for i, line := range lines {
		if !e.roles.HasDate(line) {
			continue
		}
		day, month, _ := e.roles.Date(line)

		// The kickoff time is usually a line or two below the date.
		lookahead := lines[i:min(i+timeLookahead, len(lines))]
		hour, minute, ok := e.roles.Time(strings.Join(lookahead, " "))
		if !ok {
			continue
		}

		end := min(i+windowSpan, len(lines))

		clubIdx := -1
		for j := i; j < end; j++ {
			if e.roles.IsClub(lines[j]) {
				clubIdx = j
				break
			}
		}
		if clubIdx == -1 {
			continue
		}

		versusIdx := -1
		for j := clubIdx - versusReach; j <= clubIdx+versusReach; j++ {
			if j >= i && j < end && e.roles.IsVersus(lines[j]) {
				versusIdx = j
				break
			}
		}

		candidates := make([]string, 0, 2*candidateReach)
		for j := clubIdx - candidateReach; j <= clubIdx+candidateReach; j++ {
			if j == clubIdx {
				continue
			}
			if j >= 0 && j < len(lines) {
				candidates = append(candidates, lines[j])
			} else {
				candidates = append(candidates, "")
			}
		}

		win := &Window{
			Day: day, Month: month,
			Hour: hour, Minute: minute,
			ClubIdx:    clubIdx,
			VersusIdx:  versusIdx,
			Candidates: candidates,
		}

		for j := i; j < end; j++ {
			if e.roles.IsTournament(lines[j]) && !e.roles.IsNoise(lines[j]) {
				win.Competition, win.Round = e.roles.SplitCompetition(lines[j])
				break
			}
		}

		out = append(out, win)
	}
	return out
}
