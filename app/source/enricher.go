package source

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"contestcomb/app/catalog"
	"contestcomb/app/extract"
)

// Enricher performs the optional detail-page pass: items that came off a
// list page with no reward figure or deadline get a secondary fetch, and
// the extractors run again over the page's main content. Requests are
// rate-limited by an inter-request delay and capped per source.
type Enricher struct {
	fetcher *Fetcher
	bonus   *extract.BonusExtractor
	dates   *extract.DateExtractor
	titles  *extract.TitleValidator
}

func NewEnricher(fetcher *Fetcher, bonus *extract.BonusExtractor, dates *extract.DateExtractor, titles *extract.TitleValidator) *Enricher {
	return &Enricher{fetcher: fetcher, bonus: bonus, dates: dates, titles: titles}
}

// Run enriches items in place and returns the slice. Fetch or parse
// failures on a detail page are logged and skipped; enrichment never
// discards what the list pass already extracted.
func (e *Enricher) Run(ctx context.Context, config *Config, items []catalog.Item, now time.Time) []catalog.Item {
	if !config.Detail.Enabled {
		return items
	}

	timeout := time.Duration(config.Timeout) * time.Second
	delay := time.Duration(config.Detail.DelayMs) * time.Millisecond

	fetched := 0
	for i := range items {
		if fetched >= config.Detail.Limit {
			break
		}
		if items[i].BonusAmount > 0 && items[i].Deadline != "" {
			continue
		}

		if fetched > 0 {
			time.Sleep(delay)
		}
		fetched++

		data, err := e.fetcher.Run(ctx, items[i].SourceURL, timeout, config.Charset)
		if err != nil {
			slog.Warn("Detail fetch failed",
				"source", config.Name, "url", items[i].SourceURL, "error", err)
			continue
		}

		e.apply(&items[i], data, items[i].SourceURL, config, now)
	}

	return items
}

func (e *Enricher) apply(item *catalog.Item, data []byte, pageURL string, config *Config, now time.Time) {
	text, heading := e.extractContent(data, pageURL, config.Detail.Selector)
	if text == "" {
		return
	}

	// Detail-page <h1> beats list-page anchor text when it validates
	if heading != "" {
		if clean, ok := e.titles.Run(heading); ok {
			item.Title = clean
		}
	}

	if item.BonusAmount == 0 {
		bonus := e.bonus.RunAll(text)
		if bonus.Amount > 0 {
			item.BonusAmount = bonus.Amount
			item.BonusText = bonus.Text
		}
		if bonus.PoolAmount > 0 {
			item.BonusPoolAmount = bonus.PoolAmount
			item.BonusPoolText = bonus.PoolText
		}
	}

	if item.Deadline == "" {
		start, deadline := e.dates.Run(text, now)
		if deadline != "" {
			item.Deadline = deadline
		}
		if start != "" && item.StartDate == "" {
			item.StartDate = start
		}
	}
}

// extractContent pulls the main text out of a detail page, preferring
// readability's article extraction and falling back to the configured
// selector's text.
func (e *Enricher) extractContent(data []byte, pageURL, selector string) (text, heading string) {
	if base, err := url.Parse(pageURL); err == nil {
		article, err := readability.FromReader(bytes.NewReader(data), base)
		if err == nil && strings.TrimSpace(article.TextContent) != "" {
			return article.TextContent, strings.TrimSpace(article.Title)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", ""
	}

	heading = strings.TrimSpace(doc.Find("h1").First().Text())
	if selector != "" {
		text = strings.TrimSpace(doc.Find(selector).Text())
	}
	if text == "" {
		text = strings.TrimSpace(doc.Find("body").Text())
	}
	return text, heading
}
