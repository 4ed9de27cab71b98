package notifier

import (
	"fmt"

	"lokofixtures/internal/fixture"
)

// DryRunNotifier prints what would be posted without posting.
type DryRunNotifier struct{}

// NewDryRunNotifier creates a dry-run notifier.
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the posts that would be made.
func (n *DryRunNotifier) Notify(fixtures []*fixture.Fixture) error {
	for i, f := range fixtures {
		post := formatPost(f)
		fmt.Printf("--- Post %d/%d ---\n", i+1, len(fixtures))
		fmt.Println(post)
	}
	return nil
}
