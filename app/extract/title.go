package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minTitleRunes = 4

// Boilerplate a listing page leaks into anchor text: registration
// numbers, footer phrases, navigation labels.
var boilerplateRes = []*regexp.Regexp{
	regexp.MustCompile(`icp备\s*\d*号?`),
	regexp.MustCompile(`网安备`),
	regexp.MustCompile(`版权所有|copyright|all rights reserved`),
	regexp.MustCompile(`联系我们|contact us`),
	regexp.MustCompile(`隐私政策|privacy policy`),
	regexp.MustCompile(`powered by`),
	regexp.MustCompile(`友情链接|网站地图`),
}

// Strings made of nothing but dates, numbers and punctuation.
var dateNoiseRe = regexp.MustCompile(`^[\d\s年月日时分秒号期届第.\-/~～至到:：,，。、;；()（）\[\]【】]+$`)

var noticeLabels = []string{"通知", "公告", "启事", "notice", "announcement"}

var contestKeywords = []string{
	"竞赛", "大赛", "比赛", "挑战赛", "锦标赛", "邀请赛", "杯",
	"contest", "competition", "cup", "challenge", "olympiad", "hackathon",
}

// TitleValidator accepts or rejects candidate titles. Validation runs
// independently at harvest, catalog rebuild and final merge, since rules
// evolve and stale entries must be re-filterable.
type TitleValidator struct{}

func NewTitleValidator() *TitleValidator {
	return &TitleValidator{}
}

// Run collapses whitespace, then applies the rejection rules. The cleaned
// title is returned together with the verdict.
func (v *TitleValidator) Run(raw string) (string, bool) {
	title := strings.Join(strings.Fields(raw), " ")
	if title == "" {
		return "", false
	}

	lower := strings.ToLower(title)
	for _, re := range boilerplateRes {
		if re.MatchString(lower) {
			return title, false
		}
	}

	if dateNoiseRe.MatchString(title) {
		return title, false
	}

	if utf8.RuneCountInString(title) < minTitleRunes {
		return title, false
	}

	// A bare notice label is not a contest announcement unless something
	// in the title says otherwise.
	if containsAny(lower, noticeLabels) && !containsAny(lower, contestKeywords) {
		return title, false
	}

	return title, true
}
