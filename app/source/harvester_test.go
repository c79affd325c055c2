package source

import (
	"strconv"
	"testing"
	"time"
)

var harvestNow = time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC)

func TestParseCodeforces(t *testing.T) {
	data := []byte(`{
		"status": "OK",
		"result": [
			{"id": 2000, "name": "Codeforces Round 1000", "phase": "BEFORE", "startTimeSeconds": 1750000000},
			{"id": 1999, "name": "Finished Round", "phase": "FINISHED", "startTimeSeconds": 1700000000}
		]
	}`)

	candidates, err := parseCodeforces(data)
	if err != nil {
		t.Fatalf("parseCodeforces failed: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate (phase BEFORE only), got %d", len(candidates))
	}

	c := candidates[0]
	if c.Title != "Codeforces Round 1000" {
		t.Errorf("Unexpected title: %q", c.Title)
	}
	if c.URL != "https://codeforces.com/contests/2000" {
		t.Errorf("Unexpected URL: %q", c.URL)
	}
	if c.StartDate == "" || c.Deadline == "" {
		t.Errorf("Expected structural dates, got (%q, %q)", c.StartDate, c.Deadline)
	}
}

func TestParseCodeforces_BadStatus(t *testing.T) {
	if _, err := parseCodeforces([]byte(`{"status": "FAILED"}`)); err == nil {
		t.Errorf("Expected an error for a non-OK API status")
	}
}

func TestParseAtcoder_FutureOnly(t *testing.T) {
	future := harvestNow.Add(48 * time.Hour).Unix()
	past := harvestNow.Add(-48 * time.Hour).Unix()
	data := []byte(`[
		{"id": "abc400", "title": "AtCoder Beginner Contest 400", "start_epoch_second": ` + itoa(future) + `},
		{"id": "abc100", "title": "Old Contest", "start_epoch_second": ` + itoa(past) + `}
	]`)

	candidates, err := parseAtcoder(data, harvestNow)
	if err != nil {
		t.Fatalf("parseAtcoder failed: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 future contest, got %d", len(candidates))
	}
	if candidates[0].URL != "https://atcoder.jp/contests/abc400" {
		t.Errorf("Unexpected URL: %q", candidates[0].URL)
	}
}

func TestParseListPage(t *testing.T) {
	html := `<html><body>
		<ul class="news">
			<li><a href="/notice/2025-contest.html">关于举办2025年数学建模竞赛的通知</a></li>
			<li><a href="/notice/holiday.html">放假安排</a></li>
			<li><a href="http://other.example.org/race">程序设计大赛公告</a></li>
			<li><a href="javascript:void(0)">竞赛通知</a></li>
			<li><a href="/notice/empty.html"></a></li>
		</ul>
	</body></html>`

	config := &Config{
		URL: "https://www.example.edu.cn/news/",
		List: ListConfig{
			Selector: "ul.news a",
			Keywords: []string{"通知", "公告"},
			Limit:    30,
		},
	}

	candidates, err := parseListPage([]byte(html), config)
	if err != nil {
		t.Fatalf("parseListPage failed: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].URL != "https://www.example.edu.cn/notice/2025-contest.html" {
		t.Errorf("Relative href not resolved: %q", candidates[0].URL)
	}
	if candidates[1].URL != "http://other.example.org/race" {
		t.Errorf("Absolute href should be kept: %q", candidates[1].URL)
	}
}

func TestParseListPage_Limit(t *testing.T) {
	html := `<div>
		<a href="/a1">竞赛通知一</a>
		<a href="/a2">竞赛通知二</a>
		<a href="/a3">竞赛通知三</a>
	</div>`

	config := &Config{
		URL:  "https://example.com/",
		List: ListConfig{Selector: "a", Limit: 2},
	}

	candidates, err := parseListPage([]byte(html), config)
	if err != nil {
		t.Fatalf("parseListPage failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("Expected the limit to cap results at 2, got %d", len(candidates))
	}
}

func TestParseRSS(t *testing.T) {
	feed := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>竞赛信息</title>
    <item>
      <title>全国大学生智能汽车竞赛报名</title>
      <link>https://example.com/contest/42</link>
      <description>总奖金10万元，报名截止2025年4月30日</description>
    </item>
    <item>
      <title>No link item</title>
    </item>
  </channel>
</rss>`

	candidates, err := parseRSS([]byte(feed))
	if err != nil {
		t.Fatalf("parseRSS failed: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate with a link, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Title != "全国大学生智能汽车竞赛报名" {
		t.Errorf("Unexpected title: %q", c.Title)
	}
	if c.Summary == "" {
		t.Errorf("Expected the description to carry over as summary")
	}
}

func TestAppendPageParam(t *testing.T) {
	result := appendPageParam("https://example.com/list?cat=1", "page", 3)
	if result != "https://example.com/list?cat=1&page=3" {
		t.Errorf("Unexpected paginated URL: %q", result)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
