package quiz

import (
	"testing"
	"time"

	"github.com/rkcl/league-api/internal/league"
)

// 2026-03-15 is a Sunday. The window below is Sunday 20:00–20:15 IST,
// which is 14:30–14:45 UTC.
var sundayWindow = &league.WeeklyWindow{DayOfWeek: 0, Start: "20:00", End: "20:15"}

func TestWindowActiveInside(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 35, 0, 0, time.UTC)
	st := WindowStatus(sundayWindow, now)

	if !st.Active {
		t.Fatal("expected active inside the window")
	}
	if st.NextOpenAt != "2026-03-15T14:30:00Z" || st.ClosesAt != "2026-03-15T14:45:00Z" {
		t.Errorf("window = %s .. %s", st.NextOpenAt, st.ClosesAt)
	}
}

func TestWindowHalfOpenEnd(t *testing.T) {
	// Exactly at the end instant the window has closed.
	now := time.Date(2026, 3, 15, 14, 45, 0, 0, time.UTC)
	st := WindowStatus(sundayWindow, now)

	if st.Active {
		t.Fatal("expected inactive at the end boundary")
	}
	// Past the end, the projection points at next Sunday.
	if st.NextOpenAt != "2026-03-22T14:30:00Z" {
		t.Errorf("nextOpenAt = %s", st.NextOpenAt)
	}
}

func TestWindowStartBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	if st := WindowStatus(sundayWindow, now); !st.Active {
		t.Error("expected active at the start instant")
	}
}

func TestWindowBeforeStartSameDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	st := WindowStatus(sundayWindow, now)

	if st.Active {
		t.Fatal("expected inactive before start")
	}
	if st.NextOpenAt != "2026-03-15T14:30:00Z" || st.ClosesAt != "2026-03-15T14:45:00Z" {
		t.Errorf("window = %s .. %s", st.NextOpenAt, st.ClosesAt)
	}
}

func TestWindowProjectsToNextWeekday(t *testing.T) {
	// Saturday: next Sunday is tomorrow.
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	st := WindowStatus(sundayWindow, now)

	if st.Active {
		t.Fatal("expected inactive on Saturday")
	}
	if st.NextOpenAt != "2026-03-15T14:30:00Z" {
		t.Errorf("nextOpenAt = %s", st.NextOpenAt)
	}
}

func TestWindowCrossesISTDateBoundary(t *testing.T) {
	// 2026-03-15 19:30 UTC is already Monday 01:00 in IST, so the
	// Sunday window must project a week ahead, not to "tomorrow".
	now := time.Date(2026, 3, 15, 19, 30, 0, 0, time.UTC)
	st := WindowStatus(sundayWindow, now)

	if st.Active {
		t.Fatal("expected inactive on IST Monday")
	}
	if st.NextOpenAt != "2026-03-22T14:30:00Z" {
		t.Errorf("nextOpenAt = %s", st.NextOpenAt)
	}
}

func TestWindowIdempotentForSameInstant(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 40, 0, 0, time.UTC)
	a := WindowStatus(sundayWindow, now)
	b := WindowStatus(sundayWindow, now)
	if a != b {
		t.Errorf("repeated computation differs: %+v vs %+v", a, b)
	}
}

func TestNoWindowAlwaysActive(t *testing.T) {
	st := WindowStatus(nil, time.Date(2026, 3, 11, 3, 0, 0, 0, time.UTC))
	if !st.Active {
		t.Error("expected quizzes without a window to be always active")
	}
	if st.NextOpenAt != "" || st.ClosesAt != "" {
		t.Errorf("expected no projection, got %+v", st)
	}
}

func TestWindowDefaultsForMalformedClock(t *testing.T) {
	ww := &league.WeeklyWindow{DayOfWeek: 0, Start: "bogus", End: ""}
	// Defaults are 20:00–20:15 IST, same as the explicit window above.
	now := time.Date(2026, 3, 15, 14, 35, 0, 0, time.UTC)
	if st := WindowStatus(ww, now); !st.Active {
		t.Error("expected defaults to apply for malformed clock strings")
	}
}

func TestAnswersWindowGate(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before window on quiz day", time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC), false},
		{"during window", time.Date(2026, 3, 15, 14, 40, 0, 0, time.UTC), false},
		{"after window on quiz day", time.Date(2026, 3, 15, 14, 45, 0, 0, time.UTC), true},
		{"different day", time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		if got := windowClosedForToday(sundayWindow, tc.now); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}

	if !windowClosedForToday(nil, time.Now()) {
		t.Error("no window: answers always available")
	}
}
