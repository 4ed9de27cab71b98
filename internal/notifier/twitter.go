package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"lokofixtures/internal/fixture"
)

// TwitterNotifier posts fixtures to Twitter.
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier from environment variables:
// TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN,
// TWITTER_ACCESS_SECRET.
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Notify posts one tweet per fixture, pausing between posts to stay under
// the rate limit.
func (n *TwitterNotifier) Notify(fixtures []*fixture.Fixture) error {
	for i, f := range fixtures {
		post := formatPost(f)

		_, _, err := n.client.Statuses.Update(post, nil)
		if err != nil {
			return fmt.Errorf("posting announcement for %s: %w", f.Title, err)
		}

		if i < len(fixtures)-1 {
			time.Sleep(2 * time.Second)
		}
	}
	return nil
}

// formatPost renders one fixture announcement.
func formatPost(f *fixture.Fixture) string {
	post := "⚽ " + f.Title + "\n"
	post += "🗓 " + f.Start.Format("02.01.2006 15:04") + "\n"

	if f.Location != "" {
		post += "📍 " + f.Location + "\n"
	}
	if f.Competition != "" {
		line := f.Competition
		if f.Round != "" {
			line += ", " + f.Round
		}
		post += "🏆 " + line + "\n"
	}
	if f.TicketURL != "" {
		post += "🎟 " + f.TicketURL + "\n"
	}

	// Twitter counts runes, limit 280
	runes := []rune(post)
	if len(runes) > 280 {
		post = string(runes[:277]) + "..."
	}
	return post
}
