// Package storage handles the on-disk artifacts of a run: the fixtures feed,
// the announce snapshot, and the debug dumps of the scraped page text.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lokofixtures/internal/feed"
	"lokofixtures/internal/tickets"
)

const (
	snapshotFile      = "announced.json"
	scheduleDebugFile = "debug-schedule.txt"
	ticketsDebugFile  = "debug-tickets.txt"
	maxScheduleDebug  = 80
	maxTicketsDebug   = 20
)

// Storage writes artifacts into one data directory.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if needed.
// A leading ~/ is expanded to the home directory.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Storage{dataDir: dataDir}, nil
}

// WriteFeed serializes the payload to path. The path is independent of the
// data directory so the feed can land wherever the consumer expects it.
func (s *Storage) WriteFeed(path string, p *feed.Payload) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating feed file: %w", err)
	}
	defer f.Close()
	if err := p.Write(f); err != nil {
		return err
	}
	return nil
}

// ReadFeed loads a feed payload from path.
func ReadFeed(path string) (*feed.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed file: %w", err)
	}
	defer f.Close()
	return feed.Read(f)
}

// LoadSnapshot loads the last announced feed. A missing snapshot returns
// (nil, nil): everything counts as new on the first run.
func (s *Storage) LoadSnapshot() (*feed.Payload, error) {
	path := filepath.Join(s.dataDir, snapshotFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()
	p, err := feed.Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return p, nil
}

// SaveSnapshot records the feed that has been announced.
func (s *Storage) SaveSnapshot(p *feed.Payload) error {
	return s.WriteFeed(filepath.Join(s.dataDir, snapshotFile), p)
}

// WriteScheduleDebug dumps the accepted schedule URL and a prefix of its
// lines, or the full candidate list when nothing was found.
func (s *Storage) WriteScheduleDebug(usedURL string, lines, candidates []string) error {
	var b strings.Builder
	if len(lines) == 0 {
		fmt.Fprintf(&b, "NO LINES FOUND from:\n%s\n", strings.Join(candidates, "\n"))
	} else {
		n := min(len(lines), maxScheduleDebug)
		fmt.Fprintf(&b, "USED: %s\n---\n%s\n", usedURL, strings.Join(lines[:n], "\n"))
	}
	return s.writeDebug(scheduleDebugFile, b.String())
}

// WriteTicketsDebug dumps the accepted tickets URL and a prefix of the block
// texts, or the full candidate list when nothing was found.
func (s *Storage) WriteTicketsDebug(usedURL string, blocks []tickets.Block, candidates []string) error {
	var b strings.Builder
	if len(blocks) == 0 {
		fmt.Fprintf(&b, "NO TICKETS FOUND from:\n%s\n", strings.Join(candidates, "\n"))
	} else {
		texts := make([]string, 0, maxTicketsDebug)
		for _, blk := range blocks[:min(len(blocks), maxTicketsDebug)] {
			texts = append(texts, blk.BlockText)
		}
		fmt.Fprintf(&b, "USED: %s\n---\n%s\n", usedURL, strings.Join(texts, "\n---\n"))
	}
	return s.writeDebug(ticketsDebugFile, b.String())
}

func (s *Storage) writeDebug(name, content string) error {
	path := filepath.Join(s.dataDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
