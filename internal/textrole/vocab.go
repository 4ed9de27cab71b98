package textrole

// Vocabulary holds the word lists the classifiers are built from. The lists
// are plain data so the same logic can run against another club or another
// language pair without code changes.
type Vocabulary struct {
	// ClubNames are the tracked club's name variants, matched
	// case-insensitively as substrings ("Локомотив", "Lokomotiv").
	ClubNames []string

	// Weekdays and Months are standalone labels the schedule page inserts
	// between fixtures, in both site languages.
	Weekdays []string
	Months   []string

	// VersusTokens are the whole-line markers separating the two sides of a
	// fixture card ("vs").
	VersusTokens []string

	// Competitions are keywords that mark a line as naming a tournament.
	Competitions []string

	// RoundPatterns are regular expressions matching round/matchday markers.
	// Each must capture the round number in group 1.
	RoundPatterns []string

	// Noise are substrings marking page chrome that can never be part of a
	// fixture (navigation, galleries, purchase prompts).
	Noise []string
}

// DefaultVocabulary returns the vocabulary for fclm.ru, which renders its
// schedule in Russian with an English mirror.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ClubNames: []string{"локомотив", "lokomotiv"},
		Weekdays: []string{
			"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN",
			"ПН", "ВТ", "СР", "ЧТ", "ПТ", "СБ", "ВС",
		},
		Months: []string{
			"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
			"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
			"ЯНВАРЬ", "ФЕВРАЛЬ", "МАРТ", "АПРЕЛЬ", "МАЙ", "ИЮНЬ",
			"ИЮЛЬ", "АВГУСТ", "СЕНТЯБРЬ", "ОКТЯБРЬ", "НОЯБРЬ", "ДЕКАБРЬ",
		},
		VersusTokens: []string{"vs"},
		Competitions: []string{
			"РПЛ", "Премьер-лига", "Premier League",
			"Кубок", "Cup", "Суперкубок", "Supercup",
			"Лига", "League",
		},
		RoundPatterns: []string{
			`(\d+)-й тур`,
			`тур (\d+)`,
			`Round (\d+)`,
			`Matchday (\d+)`,
		},
		Noise: []string{
			"match center", "friendlies", "турнир", "table", "video",
			"photo", "tickets", "купить", "билеты", "реклама", "результаты",
		},
	}
}
