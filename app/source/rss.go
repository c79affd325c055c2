package source

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// parseRSS harvests candidates from an RSS/Atom announcement feed.
// Deadlines are rarely structural in feeds; they are recovered later by
// text extraction over title and summary.
func parseRSS(data []byte) ([]Candidate, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:   item.Title,
			URL:     item.Link,
			Summary: item.Description,
		})
	}

	return candidates, nil
}
