package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"contestcomb/app/catalog"
	"contestcomb/app/source"
)

// SourceResult is the per-source outcome: items on success, a recorded
// error otherwise. Failures never abort the run; sources are independent
// and unreliable.
type SourceResult struct {
	Source  string
	Items   []catalog.Item
	Err     error
	Fetched int
	Dropped int
}

// Stats summarizes a run for logging and the dry-run preview.
type Stats struct {
	Sources   []SourceResult
	Fetched   int
	Harvested int
	Failed    int
	Merged    int
	Pruned    int
	Final     int
	UpdatedAt string
}

type Runner struct {
	sources   []*source.Config
	harvester *source.Harvester
	enricher  *source.Enricher
	builder   *Builder
	rebuilder *Rebuilder
	merger    *catalog.Merger
	store     *catalog.Store
}

func NewRunner(sources []*source.Config, harvester *source.Harvester, enricher *source.Enricher,
	builder *Builder, rebuilder *Rebuilder, merger *catalog.Merger, store *catalog.Store) *Runner {
	return &Runner{
		sources:   sources,
		harvester: harvester,
		enricher:  enricher,
		builder:   builder,
		rebuilder: rebuilder,
		merger:    merger,
		store:     store,
	}
}

// Run executes the full pipeline once: load catalog, rebuild it under the
// current rules, harvest every enabled source, enrich, merge, rebuild
// again, prune, order and persist. With dryRun set, the result is printed
// instead of written.
func (r *Runner) Run(ctx context.Context, dryRun bool) (*Stats, error) {
	now := time.Now()
	stats := &Stats{}

	existing, err := r.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	slog.Info("Catalog loaded", "items", len(existing.Items), "updated_at", existing.UpdatedAt)

	existingItems := r.rebuilder.Run(existing.Items, now)

	var harvested []catalog.Item
	for _, src := range r.sources {
		if !src.Enabled {
			slog.Debug("Source disabled, skipping", "source", src.Name)
			continue
		}

		result := r.processSource(ctx, src, now)
		stats.Sources = append(stats.Sources, result)
		stats.Fetched += result.Fetched

		if result.Err != nil {
			stats.Failed++
			slog.Error("Source failed", "source", src.Name, "error", result.Err)
			continue
		}

		harvested = append(harvested, result.Items...)
		slog.Info("Source processed",
			"source", src.Name,
			"fetched", result.Fetched,
			"kept", len(result.Items),
			"dropped", result.Dropped)
	}
	stats.Harvested = len(harvested)

	merged := r.merger.Run(existingItems, harvested)
	stats.Merged = len(merged)

	final := r.rebuilder.Run(merged, now)
	final = catalog.Prune(final, now)
	stats.Pruned = stats.Merged - len(final)
	catalog.Sort(final)
	stats.Final = len(final)

	result := &catalog.Catalog{
		Version:   existing.Version,
		UpdatedAt: now.UTC().Format("2006-01-02T15:04:05Z"),
		Items:     final,
	}
	stats.UpdatedAt = result.UpdatedAt

	if stats.Final == 0 {
		slog.Warn("Catalog is empty after run")
	}

	slog.Info("Run completed",
		"sources", len(stats.Sources),
		"failed", stats.Failed,
		"fetched", stats.Fetched,
		"harvested", stats.Harvested,
		"pruned", stats.Pruned,
		"items", stats.Final)

	if dryRun {
		if err := printPreview(result); err != nil {
			return stats, err
		}
		return stats, nil
	}

	if err := r.store.Save(result); err != nil {
		return stats, err
	}

	return stats, nil
}

// processSource wraps a single source's fetch, build and enrichment.
// Everything that can go wrong here stays here.
func (r *Runner) processSource(ctx context.Context, src *source.Config, now time.Time) SourceResult {
	result := SourceResult{Source: src.Name}

	candidates, err := r.harvester.Run(ctx, src)
	if err != nil {
		result.Err = err
		return result
	}
	result.Fetched = len(candidates)

	// One source can repeat a URL across pages; last observation wins
	seen := make(map[string]int)
	var items []catalog.Item
	for _, candidate := range candidates {
		item, ok := r.builder.Run(candidate, src, now)
		if !ok {
			result.Dropped++
			continue
		}
		if pos, dup := seen[item.SourceURL]; dup {
			items[pos] = item
			continue
		}
		seen[item.SourceURL] = len(items)
		items = append(items, item)
	}

	result.Items = r.enricher.Run(ctx, src, items, now)
	return result
}

func printPreview(result *catalog.Catalog) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	if _, err := os.Stdout.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to print preview: %w", err)
	}
	return nil
}

// Validate enforces the CI-mode catalog invariants: a non-empty item set,
// a parseable timestamp and a minimum sanity floor on the item count.
func Validate(stats *Stats, minItems int) error {
	if stats.Final == 0 {
		return fmt.Errorf("catalog is empty after run")
	}
	if stats.UpdatedAt == "" {
		return fmt.Errorf("catalog timestamp is empty")
	}
	if _, err := time.Parse("2006-01-02T15:04:05Z", stats.UpdatedAt); err != nil {
		return fmt.Errorf("catalog timestamp is malformed: %w", err)
	}
	if stats.Final < minItems {
		return fmt.Errorf("catalog has %d items, below the %d floor", stats.Final, minItems)
	}
	return nil
}
