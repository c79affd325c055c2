package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// runHTML fetches one or more listing pages and harvests anchors matching
// the descriptor's selector and keywords.
func (h *Harvester) runHTML(ctx context.Context, config *Config) ([]Candidate, error) {
	timeout := time.Duration(config.Timeout) * time.Second

	pages := config.Pagination.Pages
	if pages < 1 {
		pages = 1
	}

	var candidates []Candidate
	for page := 1; page <= pages; page++ {
		pageURL := config.URL
		if page > 1 {
			pageURL = appendPageParam(config.URL, config.Pagination.Param, page)
		}

		data, err := h.fetcher.Run(ctx, pageURL, timeout, config.Charset)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			// Later pages are best-effort; keep what the earlier pages gave
			slog.Warn("Pagination fetch failed", "source", config.Name, "page", page, "error", err)
			break
		}

		parsed, err := parseListPage(data, config)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, parsed...)

		if len(candidates) >= config.List.Limit {
			break
		}
	}

	if len(candidates) > config.List.Limit {
		candidates = candidates[:config.List.Limit]
	}
	return candidates, nil
}

// parseListPage extracts candidates from a listing document. Anchors with
// no text or href are skipped; when keywords are configured the anchor
// text must contain one of them.
func parseListPage(data []byte, config *Config) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base := config.List.BaseURL
	if base == "" {
		base = config.URL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	var candidates []Candidate
	doc.Find(config.List.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		href, ok := sel.Attr("href")
		if text == "" || !ok || href == "" || strings.HasPrefix(href, "javascript:") {
			return true
		}

		if len(config.List.Keywords) > 0 && !anchorMatches(text, config.List.Keywords) {
			return true
		}

		resolved, err := baseURL.Parse(href)
		if err != nil {
			return true
		}

		candidates = append(candidates, Candidate{
			Title: text,
			URL:   resolved.String(),
		})
		return len(candidates) < config.List.Limit
	})

	return candidates, nil
}

func anchorMatches(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func appendPageParam(raw, param string, page int) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := u.Query()
	query.Set(param, fmt.Sprintf("%d", page))
	u.RawQuery = query.Encode()
	return u.String()
}
