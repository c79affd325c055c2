package pipeline

import (
	"time"

	"contestcomb/app/catalog"
	"contestcomb/app/classify"
	"contestcomb/app/extract"
	"contestcomb/app/rank"
)

// Rebuilder re-derives everything rule-driven on already-cataloged items:
// title validity, status, classification and score. Validation and
// scoring rules evolve, so previously accepted records must be able to
// fall out of the catalog under the newer rules. Runs before merge and
// again before persistence.
type Rebuilder struct {
	titles     *extract.TitleValidator
	classifier *classify.Classifier
	ranker     *rank.Ranker
}

func NewRebuilder(titles *extract.TitleValidator, classifier *classify.Classifier, ranker *rank.Ranker) *Rebuilder {
	return &Rebuilder{titles: titles, classifier: classifier, ranker: ranker}
}

func (r *Rebuilder) Run(items []catalog.Item, now time.Time) []catalog.Item {
	rebuilt := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		title, ok := r.titles.Run(item.Title)
		if !ok {
			continue
		}
		item.Title = title

		item.Status = catalog.ResolveStatus(item.StartDate, item.Deadline, now)

		categories, tags := r.classifier.Run(item)
		if collapsed := classify.Collapse(categories); len(collapsed) > 0 {
			item.Category = collapsed
		} else if len(item.Category) != 1 || !classify.IsRecognized(item.Category[0]) {
			// A stored category (typically a source override) survives a
			// keyword miss only when it is still in the vocabulary
			continue
		}
		item.Tags = tags

		result := r.ranker.Run(item, now)
		item.QualityScore = result.Score
		item.RankReasons = result.Reasons
		item.IsWhitelist = result.IsWhitelist
		item.Level = result.Level

		rebuilt = append(rebuilt, item)
	}
	return rebuilt
}
