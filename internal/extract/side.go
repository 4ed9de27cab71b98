package extract

import "strings"

// SideStrategy decides whether the tracked club is the home side of a
// located fixture window. The rule applied when no versus marker exists is a
// positional guess with no ground truth in the page text, so it lives behind
// this interface where a better heuristic (or a manual-override list) can
// replace it without touching the assembler.
type SideStrategy interface {
	// IsHome receives the located window and the chosen opponent line.
	IsHome(win *Window, opponent string) bool
}

// PositionalSide is the default strategy.
//
// With a versus marker the card reads "<home> VS <away>", so the club is
// home exactly when its line precedes the marker. Without one, an opponent
// sitting well above the club line (the first three preceding candidate
// slots) usually means the card lists the opponent first, i.e. an away
// match; anything else is taken as home.
type PositionalSide struct{}

// IsHome implements SideStrategy.
func (PositionalSide) IsHome(win *Window, opponent string) bool {
	if win.VersusIdx >= 0 {
		return win.ClubIdx < win.VersusIdx
	}
	for i, cand := range win.Candidates {
		if strings.TrimSpace(cand) == opponent {
			return i >= 3
		}
	}
	return true
}
