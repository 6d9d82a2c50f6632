// Package crawler fetches a website's root page, discovers same-origin
// sub-pages worth redesigning, and extracts structured content from each.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/lab007/redesigner-api/internal/extractor"
	"github.com/lab007/redesigner-api/internal/protection"
)

// Page is one fetched and extracted page.
type Page struct {
	URL     string                 `json:"url"`
	Nav     bool                   `json:"nav"`
	Content *extractor.PageContent `json:"content"`
}

// LinkStats carries advisory link-health numbers gathered during a crawl.
type LinkStats struct {
	Internal int `json:"internal"`
	External int `json:"external"`
	Checked  int `json:"checked"`
	Broken   int `json:"broken"`
	Skipped  int `json:"skipped"`
}

// Result is the outcome of a full crawl.
type Result struct {
	Pages []Page    `json:"pages"`
	Stats LinkStats `json:"stats"`
}

// Options configures crawl behavior.
type Options struct {
	// MaxPages bounds the total pages fetched, root included.
	MaxPages int

	// Delay is the pause between sequential page fetches.
	Delay time.Duration

	// FetchTimeout bounds each individual request.
	FetchTimeout time.Duration

	// LinkCheckLimit bounds how many external links get a HEAD probe.
	LinkCheckLimit int
}

// Crawler discovers and fetches pages from a single site.
type Crawler struct {
	opts     Options
	detector *protection.Detector
	logger   *slog.Logger
}

// New creates a crawler.
func New(opts Options, logger *slog.Logger) *Crawler {
	if opts.MaxPages < 1 {
		opts.MaxPages = 1
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	return &Crawler{opts: opts, detector: protection.NewDetector(), logger: logger}
}

// candidate is a discovered same-origin link, in document order.
type candidate struct {
	url   string
	depth int
	nav   bool
}

// Crawl fetches baseURL, discovers internal links on it, and fetches up to
// maxPages pages in total. A root fetch failure fails the crawl; sub-page
// failures are recorded in the stats and skipped. maxPages <= 0 falls back
// to the configured default.
func (c *Crawler) Crawl(ctx context.Context, baseURL string, maxPages int) (*Result, error) {
	if maxPages <= 0 || maxPages > c.opts.MaxPages {
		maxPages = c.opts.MaxPages
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	fetcher := c.newFetcher()

	rootBody, err := fetcher.fetch(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", baseURL, err)
	}
	if det := c.detector.Detect(string(rootBody)); det.Detected {
		return nil, fmt.Errorf("cannot redesign %s: %s", baseURL, det.Description)
	}

	result := &Result{}
	rootContent := extractor.Extract(string(rootBody), baseURL)
	result.Pages = append(result.Pages, Page{URL: baseURL, Nav: true, Content: rootContent})

	candidates, external := c.discoverLinks(string(rootBody), base, &result.Stats)
	selected := selectCandidates(candidates, maxPages-1)

	for _, cand := range selected {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if c.opts.Delay > 0 {
			time.Sleep(c.opts.Delay)
		}

		body, err := fetcher.fetch(cand.url)
		if err != nil {
			c.logger.Warn("sub-page fetch failed, skipping", "url", cand.url, "error", err)
			result.Stats.Skipped++
			continue
		}
		if det := c.detector.Detect(string(body)); det.Detected {
			c.logger.Warn("sub-page unusable, skipping", "url", cand.url, "signal", det.Signal)
			result.Stats.Skipped++
			continue
		}
		result.Pages = append(result.Pages, Page{
			URL:     cand.url,
			Nav:     cand.nav,
			Content: extractor.Extract(string(body), cand.url),
		})
	}

	c.checkExternalLinks(ctx, external, &result.Stats)

	c.logger.Debug("crawl completed",
		"base_url", baseURL,
		"pages", len(result.Pages),
		"internal_links", result.Stats.Internal,
		"external_links", result.Stats.External,
		"broken_links", result.Stats.Broken,
	)

	return result, nil
}

// discoverLinks enumerates anchors on the root page, keeping same-origin
// content pages that pass the depth policy. External links are returned
// separately for health checking.
func (c *Crawler) discoverLinks(rootHTML string, base *url.URL, stats *LinkStats) ([]candidate, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rootHTML))
	if err != nil {
		return nil, nil
	}

	seen := map[string]bool{normalizeURL(base): true}
	seenParents := map[string]bool{}
	var candidates []candidate
	var external []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "javascript:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)

		if resolved.Host != base.Host {
			stats.External++
			external = append(external, resolved.String())
			return
		}
		stats.Internal++

		if isStaticAsset(resolved.Path) || isNonContentPath(resolved.Path) {
			return
		}

		key := normalizeURL(resolved)
		if seen[key] {
			return
		}

		depth := pathDepth(resolved.Path)
		switch {
		case depth <= 1:
			// Always eligible
		case depth == 2:
			// One link per distinct parent segment, first one wins
			parent := parentSegment(resolved.Path)
			if seenParents[parent] {
				return
			}
			seenParents[parent] = true
		default:
			return
		}

		seen[key] = true
		candidates = append(candidates, candidate{
			url:   resolved.String(),
			depth: depth,
			nav:   isNavAnchor(s),
		})
	})

	return candidates, external
}

// isNavAnchor reports whether an anchor sits inside a nav-like container or
// carries nav/menu-like classes itself.
func isNavAnchor(s *goquery.Selection) bool {
	if s.Closest("nav, header, .nav, .navbar, .navigation, .menu").Length() > 0 {
		return true
	}
	classes, _ := s.Attr("class")
	lower := strings.ToLower(classes)
	return strings.Contains(lower, "nav") || strings.Contains(lower, "menu")
}

// selectCandidates keeps at most limit candidates, preferring navigation
// links and preserving document order within each group.
func selectCandidates(candidates []candidate, limit int) []candidate {
	if limit <= 0 {
		return nil
	}
	if len(candidates) <= limit {
		return candidates
	}

	selected := make([]candidate, 0, limit)
	for _, cand := range candidates {
		if cand.nav && len(selected) < limit {
			selected = append(selected, cand)
		}
	}
	for _, cand := range candidates {
		if !cand.nav && len(selected) < limit {
			selected = append(selected, cand)
		}
	}
	return selected
}

// checkExternalLinks issues HEAD probes against a bounded number of external
// links. Results are advisory only.
func (c *Crawler) checkExternalLinks(ctx context.Context, links []string, stats *LinkStats) {
	limit := c.opts.LinkCheckLimit
	if limit <= 0 || len(links) == 0 {
		return
	}
	if len(links) > limit {
		links = links[:limit]
	}

	probe := colly.NewCollector()
	probe.SetRequestTimeout(c.opts.FetchTimeout)

	var broken int
	probe.OnError(func(_ *colly.Response, _ error) {
		broken++
	})

	for _, link := range links {
		select {
		case <-ctx.Done():
			return
		default:
		}
		stats.Checked++
		// Transport and HTTP failures surface through OnError; counting the
		// returned error as well would tally every dead link twice.
		_ = probe.Head(link)
	}
	probe.Wait()

	stats.Broken = broken
}

// fetcher wraps a colly collector for sequential synchronous fetches.
type fetcher struct {
	collector *colly.Collector
	lastBody  []byte
	lastErr   error
}

func (c *Crawler) newFetcher() *fetcher {
	f := &fetcher{}
	f.collector = colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (compatible; redesigner-bot/1.0)"),
	)
	f.collector.SetRequestTimeout(c.opts.FetchTimeout)
	f.collector.OnResponse(func(r *colly.Response) {
		f.lastBody = r.Body
	})
	f.collector.OnError(func(_ *colly.Response, err error) {
		f.lastErr = err
	})
	return f
}

// fetch visits url synchronously and returns the response body.
func (f *fetcher) fetch(url string) ([]byte, error) {
	f.lastBody = nil
	f.lastErr = nil

	if err := f.collector.Visit(url); err != nil {
		return nil, err
	}
	f.collector.Wait()

	if f.lastErr != nil {
		return nil, f.lastErr
	}
	return f.lastBody, nil
}
