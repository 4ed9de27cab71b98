// Package config loads the runtime configuration from YAML, falling back to
// built-in defaults for fclm.ru so a plain invocation needs no config file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"lokofixtures/internal/textrole"
)

type Config struct {
	Club  ClubConfig  `yaml:"club"`
	Pages PagesConfig `yaml:"pages"`
	Fetch FetchConfig `yaml:"fetch"`
	Vocab VocabConfig `yaml:"vocab"`
}

// ClubConfig identifies the tracked club.
type ClubConfig struct {
	// Name is the display name used in fixture titles.
	Name string `yaml:"name"`
	// Aliases are the name variants matched in page text, usually the name
	// plus its transliteration.
	Aliases []string `yaml:"aliases"`
	// Venue is the home ground attached to home fixtures.
	Venue string `yaml:"venue"`
	// Timezone is the IANA zone kickoff times are resolved in.
	Timezone string `yaml:"timezone"`
}

// PagesConfig lists the source pages. Schedule URLs are tried in order until
// one yields usable lines.
type PagesConfig struct {
	ScheduleURLs []string `yaml:"schedule_urls"`
	TicketsURLs  []string `yaml:"tickets_urls"`
}

// FetchConfig bounds the page-fetch retry loop.
type FetchConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	Attempts int           `yaml:"attempts"`
	Backoff  time.Duration `yaml:"backoff"`
	// SettleDelay is how long to let a loaded page run scripts before
	// reading its text.
	SettleDelay time.Duration `yaml:"settle_delay"`
	UserAgent   string        `yaml:"user_agent"`
}

// VocabConfig overrides individual classifier word lists. Empty lists keep
// the defaults.
type VocabConfig struct {
	Weekdays      []string `yaml:"weekdays"`
	Months        []string `yaml:"months"`
	VersusTokens  []string `yaml:"versus_tokens"`
	Competitions  []string `yaml:"competitions"`
	RoundPatterns []string `yaml:"round_patterns"`
	Noise         []string `yaml:"noise"`
	TicketWords   []string `yaml:"ticket_words"`
}

// Default returns the built-in fclm.ru configuration.
func Default() *Config {
	return &Config{
		Club: ClubConfig{
			Name:     "Локомотив",
			Aliases:  []string{"локомотив", "lokomotiv"},
			Venue:    "РЖД Арена, Москва",
			Timezone: "Europe/Moscow",
		},
		Pages: PagesConfig{
			ScheduleURLs: []string{
				"https://www.fclm.ru/schedule/",
				"https://www.fclm.ru/en/schedule/",
				"https://www.fclm.ru/schedule/?print=Y",
				"https://www.fclm.ru/en/schedule/?print=Y",
			},
			TicketsURLs: []string{
				"https://www.fclm.ru/tickets/",
				"https://www.fclm.ru/en/tickets/schedule/",
			},
		},
		Fetch: FetchConfig{
			Timeout:     120 * time.Second,
			Attempts:    3,
			Backoff:     2 * time.Second,
			SettleDelay: 1500 * time.Millisecond,
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome Safari",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Club.Name == "" {
		return fmt.Errorf("club.name must not be empty")
	}
	if len(c.Club.Aliases) == 0 {
		return fmt.Errorf("club.aliases must not be empty")
	}
	if len(c.Pages.ScheduleURLs) == 0 {
		return fmt.Errorf("pages.schedule_urls must not be empty")
	}
	if c.Fetch.Attempts < 1 {
		return fmt.Errorf("fetch.attempts must be at least 1")
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Club.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Club.Timezone, err)
	}
	return loc, nil
}

// Vocabulary merges the vocab overrides into the default vocabulary and
// injects the club aliases.
func (c *Config) Vocabulary() textrole.Vocabulary {
	v := textrole.DefaultVocabulary()
	v.ClubNames = c.Club.Aliases
	if len(c.Vocab.Weekdays) > 0 {
		v.Weekdays = c.Vocab.Weekdays
	}
	if len(c.Vocab.Months) > 0 {
		v.Months = c.Vocab.Months
	}
	if len(c.Vocab.VersusTokens) > 0 {
		v.VersusTokens = c.Vocab.VersusTokens
	}
	if len(c.Vocab.Competitions) > 0 {
		v.Competitions = c.Vocab.Competitions
	}
	if len(c.Vocab.RoundPatterns) > 0 {
		v.RoundPatterns = c.Vocab.RoundPatterns
	}
	if len(c.Vocab.Noise) > 0 {
		v.Noise = c.Vocab.Noise
	}
	return v
}

// TicketWords are the link texts that mark a buy-tickets link.
func (c *Config) TicketWords() []string {
	if len(c.Vocab.TicketWords) > 0 {
		return c.Vocab.TicketWords
	}
	return []string{"купить билеты", "купить", "билеты", "buy tickets", "tickets"}
}
