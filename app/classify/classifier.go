package classify

import (
	"strings"

	"contestcomb/app/catalog"
)

// The fixed category vocabulary, in collapse-priority order.
const (
	CategoryCoding           = "编程"
	CategoryModeling         = "数学建模"
	CategoryAIData           = "AI数据"
	CategoryEntrepreneurship = "创新创业"
)

var categoryPriority = []string{
	CategoryCoding,
	CategoryModeling,
	CategoryAIData,
	CategoryEntrepreneurship,
}

var categoryKeywords = map[string][]string{
	CategoryCoding: {
		"icpc", "acm", "ccpc", "程序设计", "蓝桥杯", "codeforces", "atcoder",
		"操作系统", "编译", "nscscc", "龙芯杯", "编程", "算法", "hackathon", "leetcode",
	},
	CategoryModeling: {
		"数学建模", "建模", "mcm", "icm", "美赛", "国赛", "华为杯",
		"统计建模", "cumcm", "comap", "mathorcup",
	},
	CategoryAIData: {
		"算法", "数据", "ai", "人工智能", "机器学习", "深度学习", "aiops",
		"天池", "kaggle", "drivendata", "大模型", "cv", "nlp", "llm",
	},
	CategoryEntrepreneurship: {
		"挑战杯", "互联网+", "创新创业", "创业", "商业计划书", "路演",
		"独角兽", "创青春", "business plan",
	},
}

// Descriptive tags from simple keyword presence, checked in a fixed order
// so tag output is deterministic.
var attributeTags = []struct {
	tag      string
	keywords []string
}{
	{"高校", []string{"高校", "大学"}},
	{"团队赛", []string{"团队"}},
	{"本科生", []string{"本科"}},
	{"研究生", []string{"研究生"}},
	{"开源", []string{"开源"}},
	{"证书", []string{"证书"}},
}

// Classifier assigns items to the category vocabulary and generates
// descriptive tags, consulting the externally supplied rule list for
// level tags.
type Classifier struct {
	rules Rules
}

func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Run returns the full set of matched categories (in priority order) and
// the tags. Callers collapse categories to one at the output boundary via
// Collapse; the multi-match set is kept so that policy can change without
// re-deriving matches.
func (c *Classifier) Run(item catalog.Item) (categories, tags []string) {
	text := strings.ToLower(item.Title + " " + item.Summary + " " + item.SourceName)

	for _, category := range categoryPriority {
		if containsAny(text, categoryKeywords[category]) {
			categories = append(categories, category)
		}
	}

	for _, rule := range c.rules.Whitelist {
		if !rule.Match(text) {
			continue
		}
		switch rule.Level {
		case LevelNational:
			tags = appendUnique(tags, "国家级")
		case LevelInternational:
			tags = appendUnique(tags, "国际级")
		}
	}

	for _, attr := range attributeTags {
		if containsAny(text, attr.keywords) {
			tags = append(tags, attr.tag)
		}
	}

	if item.BonusAmount > 0 {
		tags = append(tags, "有奖金")
	}

	return categories, tags
}

// Collapse reduces a multi-match category set to the single highest
// priority category. The set is already in priority order.
func Collapse(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	return categories[:1]
}

// IsRecognized reports whether a category belongs to the fixed vocabulary.
func IsRecognized(category string) bool {
	for _, known := range categoryPriority {
		if category == known {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
