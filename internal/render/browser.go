package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chromedp/chromedp"

	"lokofixtures/internal/config"
	"lokofixtures/internal/logger"
	"lokofixtures/internal/textrole"
	"lokofixtures/internal/tickets"
)

// renderWait bounds the poll for schedule text to materialize after load.
const renderWait = 20 * time.Second

// Browser renders pages in headless Chrome and reads their visible text,
// the way a site visitor's browser would produce it.
type Browser struct {
	cfg   *config.Config
	roles *textrole.Classifier
}

// NewBrowser creates a chromedp-backed Source.
func NewBrowser(cfg *config.Config, roles *textrole.Classifier) *Browser {
	return &Browser{cfg: cfg, roles: roles}
}

// ScheduleLines tries each schedule URL until one renders at least one line
// carrying both a date and the club name.
func (b *Browser) ScheduleLines(ctx context.Context) ([]string, string, error) {
	allocCtx, cancel := b.allocator(ctx)
	defer cancel()

	for _, url := range b.cfg.Pages.ScheduleURLs {
		lines, err := b.schedulePage(allocCtx, url)
		if err != nil {
			logger.Warn("schedule page failed", logger.Fields{"url": url, "error": err.Error()})
			continue
		}
		if countAnchors(b.roles, lines) > 0 {
			return lines, url, nil
		}
		logger.Debug("schedule page had no fixture anchors", logger.Fields{
			"url":   url,
			"lines": len(lines),
		})
	}
	return nil, "", nil
}

// TicketBlocks tries each tickets URL until one yields buy-tickets links.
func (b *Browser) TicketBlocks(ctx context.Context) ([]tickets.Block, string, error) {
	allocCtx, cancel := b.allocator(ctx)
	defer cancel()

	for _, url := range b.cfg.Pages.TicketsURLs {
		blocks, err := b.ticketsPage(allocCtx, url)
		if err != nil {
			logger.Warn("tickets page failed", logger.Fields{"url": url, "error": err.Error()})
			continue
		}
		if len(blocks) > 0 {
			return blocks, url, nil
		}
	}
	return nil, "", nil
}

func (b *Browser) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("accept-lang", "ru,en;q=0.9"),
		chromedp.UserAgent(b.cfg.Fetch.UserAgent),
	)
	return chromedp.NewExecAllocator(ctx, opts...)
}

// schedulePage loads one schedule URL in a fresh tab and returns its visible
// text lines.
func (b *Browser) schedulePage(allocCtx context.Context, url string) ([]string, error) {
	tab, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := b.navigate(tab, url); err != nil {
		return nil, err
	}

	_ = chromedp.Run(tab,
		chromedp.Evaluate(acceptCookiesJS, nil),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(1200*time.Millisecond),
	)

	// The schedule widget fills in after load; give it a bounded chance to
	// show a date next to the club name, then read whatever is there.
	_ = chromedp.Run(tab,
		chromedp.Poll(b.anchorPollJS(), nil, chromedp.WithPollingTimeout(renderWait)),
	)

	var text string
	if err := chromedp.Run(tab, chromedp.Evaluate(`document.body.innerText || ''`, &text)); err != nil {
		return nil, fmt.Errorf("reading page text: %w", err)
	}
	return SplitLines(text), nil
}

// ticketsPage loads one tickets URL and collects buy-tickets link contexts.
func (b *Browser) ticketsPage(allocCtx context.Context, url string) ([]tickets.Block, error) {
	tab, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := b.navigate(tab, url); err != nil {
		return nil, err
	}

	_ = chromedp.Run(tab,
		chromedp.Evaluate(acceptCookiesJS, nil),
		chromedp.Sleep(500*time.Millisecond),
	)

	var blocks []tickets.Block
	if err := chromedp.Run(tab, chromedp.Evaluate(b.ticketBlocksJS(), &blocks)); err != nil {
		return nil, fmt.Errorf("collecting ticket blocks: %w", err)
	}
	return blocks, nil
}

// navigate loads the URL with bounded retry and exponential backoff, then
// lets the page settle.
func (b *Browser) navigate(tab context.Context, url string) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = b.cfg.Fetch.Backoff

	op := func() error {
		tctx, cancel := context.WithTimeout(tab, b.cfg.Fetch.Timeout)
		defer cancel()
		return chromedp.Run(tctx, chromedp.Navigate(url))
	}
	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, uint64(b.cfg.Fetch.Attempts-1))); err != nil {
		return fmt.Errorf("loading %s: %w", url, err)
	}
	return chromedp.Run(tab, chromedp.Sleep(b.cfg.Fetch.SettleDelay))
}

// anchorPollJS is the truthy-when-ready expression for the schedule page: a
// date shape and the club name are both present in the body text.
func (b *Browser) anchorPollJS() string {
	return fmt.Sprintf(
		`/\d{1,2}\.\d{1,2}/.test(document.body.innerText || '') && new RegExp(%q, "i").test(document.body.innerText || '')`,
		strings.Join(b.cfg.Club.Aliases, "|"))
}

// ticketBlocksJS collects every link whose text matches a buy-tickets
// keyword, paired with the text of the nearest ancestor block of substance
// (more than 40 chars, at most 6 levels up).
func (b *Browser) ticketBlocksJS() string {
	return fmt.Sprintf(`(() => {
		const out = [];
		const words = new RegExp(%q, "i");
		for (const a of document.querySelectorAll("a")) {
			const txt = (a.innerText || "").trim();
			if (!words.test(txt)) continue;
			let node = a;
			for (let j = 0; j < 6 && node.parentElement; j++) {
				node = node.parentElement;
				if ((node.innerText || "").trim().length > 40) break;
			}
			out.push({ href: a.href, blockText: ((node && node.innerText) || a.innerText || "").trim() });
		}
		return out;
	})()`, strings.Join(b.cfg.TicketWords(), "|"))
}

// acceptCookiesJS clicks the first consent button, if the banner is up.
const acceptCookiesJS = `(() => {
	const texts = ["Согласен", "Принять", "Accept"];
	const btn = [...document.querySelectorAll('button, [role="button"], .btn, .button')]
		.find(b => texts.some(t => (b.innerText || "").includes(t)));
	if (btn) btn.click();
})()`

// countAnchors counts lines carrying both a date and the club name. One such
// line is enough to accept a schedule page.
func countAnchors(roles *textrole.Classifier, lines []string) int {
	n := 0
	for _, l := range lines {
		if roles.HasDate(l) && roles.IsClub(l) {
			n++
		}
	}
	return n
}
