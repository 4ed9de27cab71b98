// Package cli wires the extraction pipeline into the loko-fixtures command.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lokofixtures/internal/config"
	"lokofixtures/internal/extract"
	"lokofixtures/internal/feed"
	"lokofixtures/internal/logger"
	"lokofixtures/internal/render"
	"lokofixtures/internal/storage"
	"lokofixtures/internal/textrole"
	"lokofixtures/internal/tickets"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagOutput    string
	flagDataDir   string
	flagFormat    string
	flagNoBrowser bool
	flagVerbose   bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loko-fixtures",
		Short: "Extract the club's upcoming fixtures into a JSON feed",
		Long: `Extracts the club's upcoming match schedule and ticket links from the
rendered club website and writes a normalized JSON feed. An empty fixture
list is a legitimate (if degraded) result, not an error.`,
		RunE:          runExtract,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config (built-in defaults when empty)")
	cmd.Flags().StringVar(&flagOutput, "output", "fixtures.json", "Path of the JSON feed to write")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", ".", "Directory for debug artifacts and snapshots")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().BoolVar(&flagNoBrowser, "no-browser", false, "Fetch pages over plain HTTP instead of headless Chrome")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func runExtract(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	roles, err := textrole.New(cfg.Vocabulary())
	if err != nil {
		return fmt.Errorf("building classifiers: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	var src render.Source
	if flagNoBrowser {
		src = render.NewStatic(cfg, roles)
	} else {
		src = render.NewBrowser(cfg, roles)
	}

	payload, err := runOnce(cmd.Context(), cfg, roles, loc, src, store, time.Now)
	if err != nil {
		return err
	}

	if err := store.WriteFeed(flagOutput, payload); err != nil {
		return err
	}
	logger.Info("feed written", logger.Fields{
		"path":  flagOutput,
		"count": payload.Count,
	})

	return WriteSummary(os.Stdout, payload, format)
}

// runOnce performs one extraction run: fetch both pages, extract fixtures,
// fall back to the ticket blocks when the schedule yields nothing, then
// correlate ticket links.
func runOnce(ctx context.Context, cfg *config.Config, roles *textrole.Classifier,
	loc *time.Location, src render.Source, store *storage.Storage,
	now func() time.Time) (*feed.Payload, error) {

	lines, scheduleURL, err := src.ScheduleLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}
	logger.Info("schedule page read", logger.Fields{
		"url":   scheduleURL,
		"lines": len(lines),
	})

	blocks, ticketsURL, err := src.TicketBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tickets: %w", err)
	}
	logger.Info("tickets page read", logger.Fields{
		"url":    ticketsURL,
		"blocks": len(blocks),
	})

	if store != nil {
		if err := store.WriteScheduleDebug(scheduleURL, lines, cfg.Pages.ScheduleURLs); err != nil {
			logger.Warn("schedule debug dump failed", logger.Fields{"error": err.Error()})
		}
		if err := store.WriteTicketsDebug(ticketsURL, blocks, cfg.Pages.TicketsURLs); err != nil {
			logger.Warn("tickets debug dump failed", logger.Fields{"error": err.Error()})
		}
	}

	payload, err := buildFeed(cfg, roles, loc, lines, blocks, now)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// buildFeed is the pure part of a run: line sequences and ticket blocks in,
// payload out.
func buildFeed(cfg *config.Config, roles *textrole.Classifier, loc *time.Location,
	lines []string, blocks []tickets.Block, now func() time.Time) (*feed.Payload, error) {

	ex := extract.New(roles, cfg.Club.Name, cfg.Club.Venue, loc, extract.WithNow(now))

	fixtures := ex.Fixtures(lines)

	// Degraded-source fallback: when the schedule page yields nothing but
	// ticket offers exist, the offers themselves describe the home slate.
	if len(fixtures) == 0 && len(blocks) > 0 {
		texts := make([]string, 0, len(blocks))
		for _, b := range blocks {
			texts = append(texts, render.SplitLines(b.BlockText)...)
		}
		for _, f := range ex.Fixtures(texts) {
			if f.IsHome {
				fixtures = append(fixtures, f)
			}
		}
		logger.Warn("schedule source empty, extracted from ticket blocks", logger.Fields{
			"fixtures": len(fixtures),
		})
	}

	indexer, err := tickets.NewIndexer(cfg.Club.Aliases)
	if err != nil {
		return nil, fmt.Errorf("building ticket indexer: %w", err)
	}
	tickets.Correlate(fixtures, indexer.Index(blocks), cfg.Club.Name)

	return feed.Build(fixtures, now()), nil
}
