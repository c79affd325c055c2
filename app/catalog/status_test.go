package catalog

import (
	"testing"
	"time"
)

var statusNow = time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC)

func TestResolveStatus_DeadlineTodayIsNotEnded(t *testing.T) {
	status := ResolveStatus("", "2025-03-21", statusNow)
	if status == StatusEnded {
		t.Errorf("Deadline today should not be ended")
	}
	if status != StatusOpen {
		t.Errorf("Expected open, got %s", status)
	}
}

func TestResolveStatus_DeadlineYesterdayIsEnded(t *testing.T) {
	status := ResolveStatus("", "2025-03-20", statusNow)
	if status != StatusEnded {
		t.Errorf("Expected ended, got %s", status)
	}
}

func TestResolveStatus_FutureStartOnlyIsUpcoming(t *testing.T) {
	status := ResolveStatus("2025-04-01", "", statusNow)
	if status != StatusUpcoming {
		t.Errorf("Expected upcoming, got %s", status)
	}
}

func TestResolveStatus_WithinRangeIsOngoing(t *testing.T) {
	status := ResolveStatus("2025-03-01", "2025-04-01", statusNow)
	if status != StatusOngoing {
		t.Errorf("Expected ongoing, got %s", status)
	}

	// Range boundaries are inclusive
	if s := ResolveStatus("2025-03-21", "2025-04-01", statusNow); s != StatusOngoing {
		t.Errorf("Start today with deadline ahead should be ongoing, got %s", s)
	}
	if s := ResolveStatus("2025-03-01", "2025-03-21", statusNow); s != StatusOngoing {
		t.Errorf("Deadline today with start behind should be ongoing, got %s", s)
	}
}

func TestResolveStatus_NoDatesIsUnknown(t *testing.T) {
	if status := ResolveStatus("", "", statusNow); status != StatusUnknown {
		t.Errorf("Expected unknown, got %s", status)
	}
}

func TestResolveStatus_MalformedDatesTreatedAsAbsent(t *testing.T) {
	if status := ResolveStatus("soon", "TBA", statusNow); status != StatusUnknown {
		t.Errorf("Malformed dates should yield unknown, got %s", status)
	}

	// A malformed start must not mask a usable deadline
	if status := ResolveStatus("??", "2025-04-01", statusNow); status != StatusOpen {
		t.Errorf("Expected open, got %s", status)
	}
}

func TestResolveStatus_EndedWinsOverStart(t *testing.T) {
	// Rule order: ended is checked first
	if status := ResolveStatus("2025-01-01", "2025-02-01", statusNow); status != StatusEnded {
		t.Errorf("Expected ended, got %s", status)
	}
}
