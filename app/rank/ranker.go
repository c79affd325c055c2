package rank

import (
	"math"
	"strings"
	"time"

	"contestcomb/app/catalog"
	"contestcomb/app/classify"
)

const maxReasons = 3

// Signal weights. The score is additive over independent signals; tiers
// within a signal are monotone so a larger reward or a closer still-open
// deadline never lowers the score.
const (
	nationalBonus = 10

	statusActiveBonus       = 30
	statusUpcomingSoonBonus = 20
	statusUpcomingBonus     = 10
	statusUnknownBonus      = 3
	statusEndedPenalty      = -50

	upcomingSoonDays = 14

	officialDomainBonus = 20
	aggregatorBonus     = 8

	categoryBonus = 5

	defaultWhitelistWeight = 30
)

// Result is the ranking output attached to an item on every run.
type Result struct {
	Score       int
	Reasons     []string
	IsWhitelist bool
	Level       string
}

type Ranker struct {
	rules classify.Rules
}

func NewRanker(rules classify.Rules) *Ranker {
	return &Ranker{rules: rules}
}

// Run computes the quality score and the fired-signal reasons for an
// item. The score drives ordering; reasons are display-only and truncated
// to the top three.
func (r *Ranker) Run(item catalog.Item, now time.Time) Result {
	text := strings.ToLower(item.Title + " " + item.Summary + " " + item.SourceName)
	url := strings.ToLower(item.SourceURL)

	result := Result{Level: "Unknown"}
	var reasons []string

	// Whitelist membership: first matching rule only
	for _, rule := range r.rules.Whitelist {
		if !rule.Match(text) {
			continue
		}
		weight := rule.Weight
		if weight == 0 {
			weight = defaultWhitelistWeight
		}
		result.Score += weight
		result.IsWhitelist = true
		result.Level = rule.Level
		reasons = append(reasons, "白名单:"+rule.Pattern)
		if rule.Level == classify.LevelNational {
			result.Score += nationalBonus
		}
		break
	}

	// Source authority
	if matched := firstSubstring(url, r.rules.OfficialDomains); matched != "" {
		result.Score += officialDomainBonus
		reasons = append(reasons, "官方来源")
	} else if matched := firstSubstring(url, r.rules.Aggregators); matched != "" {
		result.Score += aggregatorBonus
	}

	// Reward size
	if bonusScore, reason := rewardScore(item.BonusAmount); bonusScore > 0 {
		result.Score += bonusScore
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	// Lifecycle urgency
	result.Score += r.statusScore(item, now, &reasons)

	// Recognized category
	for _, category := range item.Category {
		if classify.IsRecognized(category) {
			result.Score += categoryBonus
			break
		}
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	result.Reasons = reasons

	return result
}

func (r *Ranker) statusScore(item catalog.Item, now time.Time, reasons *[]string) int {
	switch item.Status {
	case catalog.StatusOpen, catalog.StatusOngoing:
		score := statusActiveBonus
		if days, ok := daysUntil(item.Deadline, now); ok {
			switch {
			case days <= 3:
				score += 15
				*reasons = append(*reasons, "即将截止")
			case days <= 7:
				score += 10
				*reasons = append(*reasons, "临近截止")
			case days <= 30:
				score += 5
			}
		}
		return score
	case catalog.StatusUpcoming:
		if days, ok := daysUntil(item.StartDate, now); ok && days <= upcomingSoonDays {
			*reasons = append(*reasons, "即将开始")
			return statusUpcomingSoonBonus
		}
		return statusUpcomingBonus
	case catalog.StatusEnded:
		return statusEndedPenalty
	default:
		return statusUnknownBonus
	}
}

// rewardScore tiers by amount threshold, with a log-scaled floor below
// the lowest tier so small rewards still register without dominating.
func rewardScore(amount int64) (int, string) {
	switch {
	case amount >= 100000:
		return 25, "高奖金"
	case amount >= 50000:
		return 18, "奖金丰厚"
	case amount >= 10000:
		return 12, ""
	case amount >= 5000:
		return 7, ""
	case amount > 0:
		score := int(math.Log10(float64(amount))) + 1
		if score > 5 {
			score = 5
		}
		return score, ""
	}
	return 0, ""
}

func daysUntil(day string, now time.Time) (int, bool) {
	target, ok := catalog.ParseDay(day, now.Location())
	if !ok {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(target.Sub(today) / (24 * time.Hour)), true
}

func firstSubstring(s string, candidates []string) string {
	for _, c := range candidates {
		if c != "" && strings.Contains(s, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}
