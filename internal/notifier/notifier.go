// Package notifier posts announcements for newly published fixtures.
package notifier

import (
	"lokofixtures/internal/fixture"
)

// Notifier posts an announcement per fixture.
type Notifier interface {
	Notify(fixtures []*fixture.Fixture) error
}
