// Command loko-announce posts fixtures that appeared in the feed since the
// last announced snapshot.
package main

import (
	"flag"
	"fmt"
	"os"

	"lokofixtures/internal/feed"
	"lokofixtures/internal/fixture"
	"lokofixtures/internal/notifier"
	"lokofixtures/internal/storage"
)

var (
	feedPath = flag.String("feed", "fixtures.json", "Path to the fixtures feed")
	dataDir  = flag.String("data-dir", ".", "Directory holding the announced snapshot")
	homeOnly = flag.Bool("home-only", false, "Announce only home fixtures")
	maxPosts = flag.Int("max-posts", 10, "Maximum number of posts per run")
	dryRun   = flag.Bool("dry-run", false, "Print posts without posting")
)

func main() {
	flag.Parse()

	current, err := storage.ReadFeed(*feedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading feed: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	previous, err := store.LoadSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		os.Exit(1)
	}

	fresh := feed.Diff(previous, current)
	if *homeOnly {
		home := make([]*fixture.Fixture, 0, len(fresh))
		for _, f := range fresh {
			if f.IsHome {
				home = append(home, f)
			}
		}
		fresh = home
	}
	if len(fresh) > *maxPosts {
		fresh = fresh[:*maxPosts]
	}

	if len(fresh) == 0 {
		fmt.Println("No new fixtures to announce")
		os.Exit(0)
	}

	var n notifier.Notifier
	if *dryRun {
		n = notifier.NewDryRunNotifier()
	} else {
		n, err = notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing notifier: %v\n", err)
			os.Exit(1)
		}
	}

	if err := n.Notify(fresh); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting announcements: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		if err := store.SaveSnapshot(current); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving snapshot: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Announced %d fixtures\n", len(fresh))
}
