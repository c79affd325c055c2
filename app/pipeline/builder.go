package pipeline

import (
	"time"

	"contestcomb/app/catalog"
	"contestcomb/app/classify"
	"contestcomb/app/extract"
	"contestcomb/app/rank"
	"contestcomb/app/source"
)

// Builder turns a harvested candidate into a catalog item: title
// validation, field extraction, identity, status, classification and
// ranking. Candidates that fail validation or match no recognized
// category are dropped.
type Builder struct {
	titles     *extract.TitleValidator
	bonus      *extract.BonusExtractor
	dates      *extract.DateExtractor
	classifier *classify.Classifier
	ranker     *rank.Ranker
}

func NewBuilder(titles *extract.TitleValidator, bonus *extract.BonusExtractor, dates *extract.DateExtractor, classifier *classify.Classifier, ranker *rank.Ranker) *Builder {
	return &Builder{
		titles:     titles,
		bonus:      bonus,
		dates:      dates,
		classifier: classifier,
		ranker:     ranker,
	}
}

func (b *Builder) Run(candidate source.Candidate, config *source.Config, now time.Time) (catalog.Item, bool) {
	title, ok := b.titles.Run(candidate.Title)
	if !ok {
		return catalog.Item{}, false
	}

	canonical := catalog.CanonicalURL(candidate.URL)
	if canonical == "" {
		return catalog.Item{}, false
	}

	item := catalog.Item{
		ID:         catalog.ItemID(canonical),
		Title:      title,
		SourceName: config.Name,
		SourceURL:  canonical,
		Summary:    candidate.Summary,
		StartDate:  candidate.StartDate,
		Deadline:   candidate.Deadline,
		CreatedAt:  now.UTC().Format(time.RFC3339),
	}

	text := title + " " + candidate.Summary
	bonus := b.bonus.RunAll(text)
	item.BonusAmount = bonus.Amount
	if bonus.Amount > 0 {
		item.BonusText = bonus.Text
	} else {
		item.BonusText = "-"
	}
	item.BonusPoolAmount = bonus.PoolAmount
	item.BonusPoolText = bonus.PoolText

	if item.Deadline == "" {
		start, deadline := b.dates.Run(text, now)
		item.Deadline = deadline
		if item.StartDate == "" {
			item.StartDate = start
		}
	}

	item.Status = catalog.ResolveStatus(item.StartDate, item.Deadline, now)

	categories, tags := b.classifier.Run(item)
	item.Category = classify.Collapse(categories)
	item.Tags = tags

	// A fixed source category stands in when keywords recognize nothing.
	// Overrides outside the vocabulary are ignored, never stored.
	if len(item.Category) == 0 && classify.IsRecognized(config.Category) {
		item.Category = []string{config.Category}
	}
	if len(item.Category) == 0 {
		return catalog.Item{}, false
	}

	result := b.ranker.Run(item, now)
	item.QualityScore = result.Score
	item.RankReasons = result.Reasons
	item.IsWhitelist = result.IsWhitelist
	item.Level = result.Level

	return item, true
}
