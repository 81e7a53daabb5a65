// Package recur is the recurrence engine behind payment reminders: a pure
// successor function over calendar dates, a horizon-bounded projector, and
// the per-occurrence exception overlay. Everything here is stateless; "now"
// is always an explicit argument.
package recur

import (
	"fmt"
	"sort"
	"time"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
)

// Next returns the occurrence date immediately following date under rule.
// The result is always strictly after date. The rule must have passed
// ValidateRule and must not be KindOnce — a once series has no successor,
// and callers are required to special-case it; calling Next with one is a
// programmer error.
func Next(date time.Time, rule model.RecurrenceRule) time.Time {
	d := dateutil.Date(date)

	switch rule.Kind {
	case model.KindDaily, model.KindCustom:
		// Custom rules carry their interval in days.
		return d.AddDate(0, 0, rule.Interval)
	case model.KindWeekly:
		if len(rule.DaysOfWeek) == 0 {
			return d.AddDate(0, 0, 7*rule.Interval)
		}
		return nextWeekday(d, rule.DaysOfWeek, rule.Interval)
	case model.KindMonthly:
		return dateutil.AddMonthsClamped(d, rule.Interval)
	case model.KindYearly:
		return dateutil.AddYearsClamped(d, rule.Interval)
	case model.KindOnce:
		panic("recur: Next called on a once rule")
	default:
		panic(fmt.Sprintf("recur: unknown rule kind %q", rule.Kind))
	}
}

// nextWeekday advances to the smallest weekday in days strictly after d's
// weekday within the same week, or to the first listed weekday of the week
// interval weeks ahead. Weeks are anchored on Sunday (weekday 0).
func nextWeekday(d time.Time, days []int, interval int) time.Time {
	sorted := append([]int(nil), days...)
	sort.Ints(sorted)

	cur := int(d.Weekday())
	for _, wd := range sorted {
		if wd > cur {
			return d.AddDate(0, 0, wd-cur)
		}
	}

	weekStart := d.AddDate(0, 0, -cur)
	return weekStart.AddDate(0, 0, 7*interval+sorted[0])
}
