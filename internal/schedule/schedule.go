// Package schedule decides when a habit is due and which calendar window a
// monthly target is measured over. Everything here is a pure function of its
// inputs; persistence and rendering stay in the handlers.
package schedule

import (
	"strings"
	"time"

	"github.com/jrabinat-art/agenda/internal/models"
)

// DayFormat is the canonical date layout used in habit log rows.
const DayFormat = "2006-01-02"

// DueOn reports whether a habit with the given schedule should be offered for
// logging on day. The weekdays mask is a Monday-first comma list like
// "1,0,1,0,1,0,0"; it only matters for the weekdays schedule.
//
// A missing or malformed mask and an unknown schedule type both mean "not
// due" rather than an error.
func DueOn(scheduleType, weekdays string, day time.Time) bool {
	switch scheduleType {
	case models.ScheduleDaily:
		return true
	case models.ScheduleMonthly:
		// monthly habits are surfaced every day so the user can log
		// incremental progress toward the monthly target
		return true
	case models.ScheduleWeekdays:
		mask := strings.Split(weekdays, ",")
		if len(mask) != 7 {
			return false
		}
		idx := mondayIndex(day.Weekday())
		return strings.TrimSpace(mask[idx]) == "1"
	default:
		return false
	}
}

// MonthRange returns the first and last calendar day of day's month, at
// midnight in day's location. The last day is computed as the first day of
// the next month minus one day, which handles December rollover and leap
// February without special cases.
func MonthRange(day time.Time) (first, last time.Time) {
	first = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	last = first.AddDate(0, 1, -1)
	return first, last
}

// mondayIndex maps Go's Sunday-based weekday to the Monday-first mask index.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
