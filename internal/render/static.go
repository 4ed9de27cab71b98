package render

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"lokofixtures/internal/config"
	"lokofixtures/internal/logger"
	"lokofixtures/internal/textrole"
	"lokofixtures/internal/tickets"
)

// Static fetches the pages over plain HTTP and extracts their text without a
// browser. Script-inserted content is invisible to it, so it is only a
// fallback for hosts without Chrome; against a server-rendered page it
// produces the same line and block sequences as the Browser source.
type Static struct {
	cfg    *config.Config
	roles  *textrole.Classifier
	client *http.Client
}

// NewStatic creates a plain-HTTP Source.
func NewStatic(cfg *config.Config, roles *textrole.Classifier) *Static {
	return &Static{
		cfg:   cfg,
		roles: roles,
		client: &http.Client{
			Timeout: cfg.Fetch.Timeout,
		},
	}
}

// ScheduleLines tries each schedule URL until one yields at least one line
// carrying both a date and the club name.
func (s *Static) ScheduleLines(ctx context.Context) ([]string, string, error) {
	for _, u := range s.cfg.Pages.ScheduleURLs {
		doc, err := s.fetch(ctx, u)
		if err != nil {
			logger.Warn("schedule fetch failed", logger.Fields{"url": u, "error": err.Error()})
			continue
		}
		lines := SplitLines(doc.Find("body").Text())
		if countAnchors(s.roles, lines) > 0 {
			return lines, u, nil
		}
	}
	return nil, "", nil
}

// TicketBlocks tries each tickets URL until one yields buy-tickets links.
func (s *Static) TicketBlocks(ctx context.Context) ([]tickets.Block, string, error) {
	for _, u := range s.cfg.Pages.TicketsURLs {
		doc, err := s.fetch(ctx, u)
		if err != nil {
			logger.Warn("tickets fetch failed", logger.Fields{"url": u, "error": err.Error()})
			continue
		}
		blocks := s.collectBlocks(doc, u)
		if len(blocks) > 0 {
			return blocks, u, nil
		}
	}
	return nil, "", nil
}

// fetch GETs the URL with bounded retry and parses the response body.
func (s *Static) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.cfg.Fetch.Backoff

	var doc *goquery.Document
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", s.cfg.Fetch.UserAgent)
		req.Header.Set("Accept-Language", "ru,en;q=0.9")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("parsing HTML: %w", err))
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, uint64(s.cfg.Fetch.Attempts-1))); err != nil {
		return nil, err
	}
	return doc, nil
}

// collectBlocks mirrors the browser-side collection: every link whose text
// matches a buy-tickets keyword, paired with the text of the nearest
// ancestor longer than 40 chars within 6 levels.
func (s *Static) collectBlocks(doc *goquery.Document, pageURL string) []tickets.Block {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var blocks []tickets.Block
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if !s.matchesTicketWord(text) {
			return
		}
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		node := a
		for j := 0; j < 6; j++ {
			parent := node.Parent()
			if parent.Length() == 0 {
				break
			}
			node = parent
			if len(strings.TrimSpace(node.Text())) > 40 {
				break
			}
		}
		blockText := strings.TrimSpace(node.Text())
		if blockText == "" {
			blockText = text
		}

		blocks = append(blocks, tickets.Block{
			Href:      base.ResolveReference(ref).String(),
			BlockText: blockText,
		})
	})
	return blocks
}

func (s *Static) matchesTicketWord(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range s.cfg.TicketWords() {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
