// Package timeline shapes projected occurrences for display: per-occurrence
// status classification and grouping into a bounded window of calendar-month
// buckets.
package timeline

import (
	"time"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
)

// thisWeekDays is the forward window, in days after today, shown as
// "this week".
const thisWeekDays = 7

// Classify assigns exactly one status to an occurrence. Precedence: a paid
// materialized occurrence is Paid; any non-materialized occurrence is
// Projected (a projection is never itself payable until materialized);
// everything else is classified by calendar date against now.
func Classify(occ model.Occurrence, now time.Time) model.Status {
	if occ.Materialized && occ.Paid {
		return model.StatusPaid
	}
	if !occ.Materialized {
		return model.StatusProjected
	}

	days := dateutil.DaysBetween(now, occ.ScheduledDate)
	switch {
	case days < 0:
		return model.StatusOverdue
	case days == 0:
		return model.StatusToday
	case days <= thisWeekDays:
		return model.StatusThisWeek
	default:
		return model.StatusUpcoming
	}
}

// CountOverdue counts the occurrences that classify as overdue, so any
// banner built on it always agrees with a listing filtered by Classify.
func CountOverdue(occs []model.Occurrence, now time.Time) int {
	count := 0
	for _, occ := range occs {
		if Classify(occ, now) == model.StatusOverdue {
			count++
		}
	}
	return count
}
