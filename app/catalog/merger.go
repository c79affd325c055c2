package catalog

import (
	"sort"
	"time"
)

// Retention windows for pruning ended items, in days.
const (
	retentionDays          = 30
	whitelistRetentionDays = 90
)

// Merger reconciles newly fetched items with the persisted catalog.
// Identity is the canonical source URL; re-observing a URL upgrades the
// existing record field by field instead of duplicating it.
type Merger struct{}

func NewMerger() *Merger {
	return &Merger{}
}

// Run merges fetched items into the existing set. Existing order is
// preserved; genuinely new items are appended in fetch order. Merging the
// same fetched set twice yields the same result.
func (m *Merger) Run(existing, fetched []Item) []Item {
	merged := make([]Item, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, item := range merged {
		index[item.SourceURL] = i
	}

	for _, item := range fetched {
		if pos, ok := index[item.SourceURL]; ok {
			merged[pos] = mergeItem(merged[pos], item)
		} else {
			index[item.SourceURL] = len(merged)
			merged = append(merged, item)
		}
	}

	return merged
}

// mergeItem overwrites only the fields that are informative on the new
// side, so a richer later fetch upgrades a sparse record without
// regressing fields it did not observe.
func mergeItem(old, incoming Item) Item {
	out := old

	if incoming.Title != "" {
		out.Title = incoming.Title
	}
	if incoming.BonusAmount > 0 {
		out.BonusAmount = incoming.BonusAmount
		out.BonusText = incoming.BonusText
	}
	if incoming.BonusPoolAmount > 0 {
		out.BonusPoolAmount = incoming.BonusPoolAmount
		out.BonusPoolText = incoming.BonusPoolText
	}
	if incoming.Deadline != "" {
		out.Deadline = incoming.Deadline
	}
	if incoming.StartDate != "" {
		out.StartDate = incoming.StartDate
	}
	if incoming.Status != "" && incoming.Status != StatusUnknown {
		out.Status = incoming.Status
	}
	if len(incoming.Category) > 0 {
		out.Category = incoming.Category
	}
	if len(incoming.Tags) > 0 {
		out.Tags = incoming.Tags
	}
	if incoming.SourceName != "" {
		out.SourceName = incoming.SourceName
	}
	if incoming.Summary != "" {
		out.Summary = incoming.Summary
	}

	out.CreatedAt = earliestTimestamp(old.CreatedAt, incoming.CreatedAt)

	return out
}

func earliestTimestamp(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil {
		return b
	}
	if errB != nil || !tb.Before(ta) {
		return a
	}
	return b
}

// Prune drops ended items whose deadline fell out of the retention
// window. Whitelisted competitions are kept longer.
func Prune(items []Item, now time.Time) []Item {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Status != StatusEnded {
			kept = append(kept, item)
			continue
		}

		deadline, ok := ParseDay(item.Deadline, now.Location())
		if !ok {
			kept = append(kept, item)
			continue
		}

		retention := retentionDays
		if item.IsWhitelist {
			retention = whitelistRetentionDays
		}
		if now.Sub(deadline) <= time.Duration(retention)*24*time.Hour {
			kept = append(kept, item)
		}
	}
	return kept
}

// Sort orders items for presentation: quality score descending, then
// closer deadlines first (absent deadlines last), then newest first.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.QualityScore != b.QualityScore {
			return a.QualityScore > b.QualityScore
		}
		if a.Deadline != b.Deadline {
			if a.Deadline == "" {
				return false
			}
			if b.Deadline == "" {
				return true
			}
			return a.Deadline < b.Deadline
		}
		return a.CreatedAt > b.CreatedAt
	})
}
