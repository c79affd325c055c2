package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Reference currency is CNY. Foreign amounts are converted at a fixed rate.
const usdToCny = 7.2

// Amounts below this with no reward keyword anywhere nearby are noise
// (years and issue numbers picked up as currency).
const minBareAmount = 100

// contextWindow is the number of bytes inspected around a monetary
// mention when classifying it in RunAll.
const contextWindow = 60

// precedingWindow is how far back a context phrase may sit from its
// number in first-match mode (e.g. "总奖金高达10万元").
const precedingWindow = 30

// Bonus is the extraction result: the best per-winner figure and, when a
// source states both, the distinct total-pool figure.
type Bonus struct {
	Amount     int64
	Text       string
	PoolAmount int64
	PoolText   string
}

// Context phrase buckets, in rule priority order.
var (
	poolKeywords = []string{"总奖金", "奖金池", "总奖池", "奖金总额", "prize pool", "total prize"}

	singleKeywords = []string{"特等奖", "一等奖", "冠军", "最高奖", "first prize", "champion", "grand prize"}

	rewardKeywords = []string{"奖金", "奖励", "奖品", "bonus", "prize", "award", "reward"}
)

// mention: optional currency prefix, a number (arabic with separators or
// Chinese numerals), optional unit suffix. A match with neither prefix
// nor suffix is not monetary and is skipped.
var mentionRe = regexp.MustCompile(`(?i)([¥￥$]|usd|rmb)?\s*([0-9][0-9,，]*(?:\.[0-9]+)?|[零一二两三四五六七八九十百千万]+)\s*(万元|万|元|块钱|块|人民币|美元|美金|rmb|usd|dollars?)?`)

type mention struct {
	amount int64
	text   string
	start  int
	end    int
}

type BonusExtractor struct{}

func NewBonusExtractor() *BonusExtractor {
	return &BonusExtractor{}
}

// Run is the first-match mode: pool phrasing, then top-prize phrasing,
// then generic currency-prefixed numbers. A phrase must precede its
// number closely; the first mention satisfying a rule wins. Returns
// (0, "-") on a miss.
func (e *BonusExtractor) Run(text string) Bonus {
	// Scan the folded string: case folding can change byte length, so
	// mention offsets are only valid against the string they were found in
	lower := strings.ToLower(text)
	mentions := e.scan(lower)

	for _, keywords := range [][]string{poolKeywords, singleKeywords} {
		for _, m := range mentions {
			if containsAny(precedingOf(lower, m.start), keywords) {
				return Bonus{Amount: m.amount, Text: m.text}
			}
		}
	}

	for _, m := range mentions {
		if m.amount >= minBareAmount || containsAny(windowOf(lower, m.start, m.end), rewardKeywords) {
			return Bonus{Amount: m.amount, Text: m.text}
		}
	}

	return Bonus{Text: "-"}
}

// RunAll is the context-window mode: every monetary mention in the text
// is classified by its surrounding characters into pool, single-prize or
// other, and the maximum qualifying value of each bucket is kept. This is
// the pipeline's primary mode since a source may state both a pool and a
// per-winner amount.
func (e *BonusExtractor) RunAll(text string) Bonus {
	lower := strings.ToLower(text)

	var pool, single, other mention
	for _, m := range e.scan(lower) {
		window := windowOf(lower, m.start, m.end)
		inWindowStart := m.start - windowStart(m.start)
		inWindowEnd := inWindowStart + (m.end - m.start)

		poolDist := nearestKeyword(window, inWindowStart, inWindowEnd, poolKeywords)
		singleDist := nearestKeyword(window, inWindowStart, inWindowEnd, singleKeywords)

		switch {
		// When both phrasings occur in the window, the closer one names
		// this number
		case poolDist <= singleDist && poolDist != math.MaxInt:
			if m.amount > pool.amount {
				pool = m
			}
		case singleDist != math.MaxInt:
			if m.amount > single.amount {
				single = m
			}
		case containsAny(window, rewardKeywords) || m.amount >= minBareAmount:
			if m.amount > other.amount {
				other = m
			}
		}
	}

	result := Bonus{Text: "-"}
	switch {
	case single.amount > 0:
		result.Amount, result.Text = single.amount, single.text
		if pool.amount > 0 {
			result.PoolAmount, result.PoolText = pool.amount, pool.text
		}
	case pool.amount > 0:
		result.Amount, result.Text = pool.amount, pool.text
	case other.amount > 0:
		result.Amount, result.Text = other.amount, other.text
	}

	return result
}

func (e *BonusExtractor) scan(lower string) []mention {
	var mentions []mention
	for _, idx := range mentionRe.FindAllStringSubmatchIndex(lower, -1) {
		prefix := group(lower, idx, 1)
		number := group(lower, idx, 2)
		unit := group(lower, idx, 3)
		if prefix == "" && unit == "" {
			continue
		}

		value := parseNumber(number)
		if value <= 0 {
			continue
		}

		amount := int64(math.Round(value * unitScale(unit, prefix)))
		if amount <= 0 {
			continue
		}

		mentions = append(mentions, mention{
			amount: amount,
			text:   strings.TrimSpace(lower[idx[0]:idx[1]]),
			start:  idx[0],
			end:    idx[1],
		})
	}
	return mentions
}

func unitScale(unit, prefix string) float64 {
	switch strings.ToLower(unit) {
	case "万", "万元":
		return 10000
	case "美元", "美金", "usd", "dollar", "dollars":
		return usdToCny
	case "元", "块", "块钱", "人民币", "rmb":
		return 1
	}
	switch strings.ToLower(prefix) {
	case "$", "usd":
		return usdToCny
	}
	return 1
}

func parseNumber(s string) float64 {
	s = strings.NewReplacer(",", "", "，", "").Replace(s)
	if s == "" {
		return 0
	}
	if s[0] >= '0' && s[0] <= '9' {
		value, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return value
	}
	return float64(chineseNumeral(s))
}

var cnDigits = map[rune]int64{
	'零': 0, '一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

var cnUnits = map[rune]int64{'十': 10, '百': 100, '千': 1000}

// chineseNumeral interprets spelled-out numerals positionally by place
// value, e.g. 十万 -> 100000, 两万五千 -> 25000.
func chineseNumeral(s string) int64 {
	var total, section, digit int64
	for _, r := range s {
		if d, ok := cnDigits[r]; ok {
			digit = d
			continue
		}
		if u, ok := cnUnits[r]; ok {
			if digit == 0 {
				digit = 1
			}
			section += digit * u
			digit = 0
			continue
		}
		if r == '万' {
			section += digit
			if section == 0 {
				section = 1
			}
			total += section * 10000
			section, digit = 0, 0
		}
	}
	return total + section + digit
}

// nearestKeyword returns the byte distance from the mention span to the
// closest occurrence of any keyword inside the window, or math.MaxInt
// when none occurs.
func nearestKeyword(window string, mentionStart, mentionEnd int, keywords []string) int {
	best := math.MaxInt
	for _, k := range keywords {
		offset := 0
		for {
			pos := strings.Index(window[offset:], k)
			if pos < 0 {
				break
			}
			pos += offset

			var dist int
			switch {
			case pos+len(k) <= mentionStart:
				dist = mentionStart - (pos + len(k))
			case pos >= mentionEnd:
				dist = pos - mentionEnd
			default:
				dist = 0
			}
			if dist < best {
				best = dist
			}
			offset = pos + len(k)
		}
	}
	return best
}

func windowStart(start int) int {
	from := start - contextWindow
	if from < 0 {
		from = 0
	}
	return from
}

func windowOf(lower string, start, end int) string {
	to := end + contextWindow
	if to > len(lower) {
		to = len(lower)
	}
	return lower[windowStart(start):to]
}

func precedingOf(lower string, start int) string {
	from := start - precedingWindow
	if from < 0 {
		from = 0
	}
	return lower[from:start]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func group(text string, idx []int, n int) string {
	if idx[2*n] < 0 {
		return ""
	}
	return text[idx[2*n]:idx[2*n+1]]
}
