package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"contestcomb/app/catalog"
	"contestcomb/app/cfg"
	"contestcomb/app/classify"
	"contestcomb/app/extract"
	"contestcomb/app/pipeline"
	"contestcomb/app/rank"
	"contestcomb/app/source"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Contest Comb", "version", appCfg.Version, "dry_run", appCfg.DryRun, "ci", appCfg.CI)

	rules, err := classify.LoadRules(appCfg.RulesPath)
	if err != nil {
		slog.Error("Failed to load classification rules", "path", appCfg.RulesPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Classification rules loaded",
		"whitelist", len(rules.Whitelist), "official_domains", len(rules.OfficialDomains))

	sources, err := source.NewLoader(appCfg.SourcesDir).LoadAll()
	if err != nil {
		slog.Error("Failed to load source configurations", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Source configurations loaded", "sources", len(sources))

	titles := extract.NewTitleValidator()
	bonus := extract.NewBonusExtractor()
	dates := extract.NewDateExtractor()
	classifier := classify.NewClassifier(rules)
	ranker := rank.NewRanker(rules)

	fetcher := source.NewFetcher(&http.Client{}, appCfg.UserAgent)
	harvester := source.NewHarvester(fetcher)
	enricher := source.NewEnricher(fetcher, bonus, dates, titles)

	runner := pipeline.NewRunner(
		sources,
		harvester,
		enricher,
		pipeline.NewBuilder(titles, bonus, dates, classifier, ranker),
		pipeline.NewRebuilder(titles, classifier, ranker),
		catalog.NewMerger(),
		catalog.NewStore(appCfg.CatalogPath),
	)

	stats, err := runner.Run(context.Background(), appCfg.DryRun)
	if err != nil {
		slog.Error("Pipeline run failed", "error", err)
		os.Exit(1)
	}

	if appCfg.CI {
		if err := pipeline.Validate(stats, appCfg.MinItems); err != nil {
			slog.Error("Catalog validation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Catalog validation passed", "items", stats.Final)
	}
}
