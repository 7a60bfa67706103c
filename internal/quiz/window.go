package quiz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rkcl/league-api/internal/league"
)

// All weekly windows are expressed in Indian Standard Time regardless of
// where the server runs.
var ist = time.FixedZone("IST", 5*3600+30*60)

// Status is the computed play-window state attached to quiz responses.
type Status struct {
	Active     bool   `json:"active"`
	NextOpenAt string `json:"nextOpenAt,omitempty"`
	ClosesAt   string `json:"closesAt,omitempty"`
}

// WindowStatus projects the weekly window onto now. The window is
// half-open: active iff the IST weekday matches and start <= wall clock
// < end. When the current (or remaining) window today has not closed yet
// the reported instants are today's; otherwise they are the next
// occurrence of the configured weekday. A quiz without a window is
// always active.
func WindowStatus(ww *league.WeeklyWindow, now time.Time) Status {
	if ww == nil {
		return Status{Active: true}
	}

	sh, sm := parseClock(ww.Start, 20, 0)
	eh, em := parseClock(ww.End, 20, 15)

	local := now.In(ist)
	y, m, d := local.Date()
	start := time.Date(y, m, d, sh, sm, 0, 0, ist)
	end := time.Date(y, m, d, eh, em, 0, 0, ist)

	target := time.Weekday(ww.DayOfWeek)
	today := local.Weekday() == target
	active := today && !now.Before(start) && now.Before(end)

	if !today || !now.Before(end) {
		// Project forward to the next occurrence of the target weekday.
		delta := (int(target) - int(local.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		start = start.AddDate(0, 0, delta)
		end = end.AddDate(0, 0, delta)
	}

	return Status{
		Active:     active,
		NextOpenAt: start.UTC().Format(time.RFC3339),
		ClosesAt:   end.UTC().Format(time.RFC3339),
	}
}

// windowClosedForToday reports whether answers may be published: false
// only on the quiz day while the window has not finished yet.
func windowClosedForToday(ww *league.WeeklyWindow, now time.Time) bool {
	if ww == nil {
		return true
	}
	eh, em := parseClock(ww.End, 20, 15)

	local := now.In(ist)
	if local.Weekday() != time.Weekday(ww.DayOfWeek) {
		return true
	}
	y, m, d := local.Date()
	end := time.Date(y, m, d, eh, em, 0, 0, ist)
	return !now.Before(end)
}

// parseClock parses "HH:MM", falling back to the given defaults on any
// malformed value.
func parseClock(s string, defH, defM int) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return defH, defM
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return defH, defM
	}
	return h, m
}

// ActiveKey is the KV key of the per-quiz activation override flag.
func ActiveKey(id string) string {
	return fmt.Sprintf("quiz:%s:active", id)
}
