package extract

import (
	"testing"
	"time"
)

var extractNow = time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC)

func TestDateExtractor_AbsoluteForms(t *testing.T) {
	extractor := NewDateExtractor()

	tests := []struct {
		text     string
		deadline string
	}{
		{"报名截止时间：2025年3月21日", "2025-03-21"},
		{"报名截止：2025.4.30", "2025-04-30"},
		{"deadline: 2025-05-01", "2025-05-01"},
		{"截止 2025/6/15", "2025-06-15"},
	}

	for _, test := range tests {
		_, deadline := extractor.Run(test.text, extractNow)
		if deadline != test.deadline {
			t.Errorf("Run(%q): expected deadline %q, got %q", test.text, test.deadline, deadline)
		}
	}
}

func TestDateExtractor_RangeYieldsStartAndDeadline(t *testing.T) {
	extractor := NewDateExtractor()

	start, deadline := extractor.Run("报名时间：2025年3月1日至2025年4月15日", extractNow)
	if start != "2025-03-01" {
		t.Errorf("Expected start 2025-03-01, got %q", start)
	}
	if deadline != "2025-04-15" {
		t.Errorf("Expected deadline 2025-04-15, got %q", deadline)
	}
}

func TestDateExtractor_RangeWithDashSeparator(t *testing.T) {
	extractor := NewDateExtractor()

	start, deadline := extractor.Run("Registration: 2025-03-01 - 2025-04-15", extractNow)
	if start != "2025-03-01" || deadline != "2025-04-15" {
		t.Errorf("Expected (2025-03-01, 2025-04-15), got (%q, %q)", start, deadline)
	}
}

func TestDateExtractor_LastDateWinsWithoutRange(t *testing.T) {
	extractor := NewDateExtractor()

	// Deadlines are conventionally stated last in announcement prose
	_, deadline := extractor.Run("大赛于2025年3月1日启动。报名截止日期为2025年4月20日。", extractNow)
	if deadline != "2025-04-20" {
		t.Errorf("Expected last date 2025-04-20, got %q", deadline)
	}
}

func TestDateExtractor_RelativeDays(t *testing.T) {
	extractor := NewDateExtractor()

	tests := []string{
		"距报名截止还有5天",
		"报名仅剩5天",
		"5天后截止",
	}

	expected := "2025-03-26"
	for _, text := range tests {
		_, deadline := extractor.Run(text, extractNow)
		if deadline != expected {
			t.Errorf("Run(%q): expected %q, got %q", text, expected, deadline)
		}
	}
}

func TestDateExtractor_NoDates(t *testing.T) {
	extractor := NewDateExtractor()

	start, deadline := extractor.Run("关于举办程序设计竞赛的说明", extractNow)
	if start != "" || deadline != "" {
		t.Errorf("Expected empty dates, got (%q, %q)", start, deadline)
	}
}

func TestDateExtractor_ImplausibleDayRejected(t *testing.T) {
	extractor := NewDateExtractor()

	_, deadline := extractor.Run("编号 2025-13-99 的文件", extractNow)
	if deadline != "" {
		t.Errorf("Expected no deadline from an implausible date, got %q", deadline)
	}
}
