package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Absolute dates: dot-, dash-, slash- or CJK-separated year/month/day.
const absDatePattern = `(20\d{2})\s*[年./\-]\s*(\d{1,2})\s*[月./\-]\s*(\d{1,2})\s*日?`

var (
	absDateRe = regexp.MustCompile(absDatePattern)
	rangeRe   = regexp.MustCompile(absDatePattern + `\s*(?:至|到|~|～|—|–|\-)\s*` + absDatePattern)
	// "N days until deadline" relative phrasing
	relDeadlineRe = regexp.MustCompile(`(?:还有|仅剩|剩余|倒计时)\s*(\d{1,3})\s*天|(\d{1,3})\s*天后截止`)
)

// DateExtractor pulls start dates and deadlines out of announcement prose.
type DateExtractor struct{}

func NewDateExtractor() *DateExtractor {
	return &DateExtractor{}
}

// Run extracts (startDate, deadline) as zero-padded YYYY-MM-DD strings.
// A date range wins: its end is the deadline and its start the start
// date. Otherwise the last absolute date in the text is taken as the
// deadline, since deadlines are conventionally stated last. Relative
// "N days left" phrasing resolves against now.
func (e *DateExtractor) Run(text string, now time.Time) (startDate, deadline string) {
	if m := rangeRe.FindStringSubmatch(text); m != nil {
		start, okStart := formatDay(m[1], m[2], m[3])
		end, okEnd := formatDay(m[4], m[5], m[6])
		if okStart && okEnd {
			return start, end
		}
	}

	matches := absDateRe.FindAllStringSubmatch(text, -1)
	if len(matches) > 0 {
		last := matches[len(matches)-1]
		if day, ok := formatDay(last[1], last[2], last[3]); ok {
			return "", day
		}
	}

	if m := relDeadlineRe.FindStringSubmatch(text); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		days, err := strconv.Atoi(digits)
		if err == nil {
			return "", now.AddDate(0, 0, days).Format("2006-01-02")
		}
	}

	return "", ""
}

func formatDay(year, month, day string) (string, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}
