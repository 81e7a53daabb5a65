package recur

import (
	"time"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
)

// Project computes the future occurrence dates of a series within a
// look-ahead horizon of horizonMonths calendar months from now. The anchor
// itself is never reproduced; only dates strictly after now's calendar date
// are emitted. Once rules project nothing.
func Project(s model.Series, now time.Time, horizonMonths int) []time.Time {
	return ProjectUntil(s, now, dateutil.AddMonthsClamped(now, horizonMonths))
}

// ProjectUntil is Project with an explicit horizon date (exclusive). The
// horizon bound is enforced before emission, so the result is finite for
// every rule/end-condition combination.
func ProjectUntil(s model.Series, now, horizon time.Time) []time.Time {
	if s.Rule.Kind == model.KindOnce {
		return nil
	}
	if s.Rule.Interval < 1 {
		// Invalid rule; Next would not be strictly increasing. The defect
		// belongs to whoever constructed the rule, not the read path.
		return nil
	}

	today := dateutil.Date(now)
	horizon = dateutil.Date(horizon)

	var out []time.Time
	cur := dateutil.Date(s.AnchorDate)
	for n := 1; ; n++ {
		cur = Next(cur, s.Rule)
		// The anchor counts as occurrence 0, so After(k) allows at most
		// k generated dates.
		if s.Rule.End.Kind == model.EndAfter && n > s.Rule.End.Count {
			break
		}
		if s.Rule.End.Kind == model.EndOn && cur.After(dateutil.Date(s.Rule.End.Date)) {
			break
		}
		if !cur.Before(horizon) {
			break
		}
		if cur.After(today) {
			out = append(out, cur)
		}
	}
	return out
}

// IsOccurrenceDate reports whether date lands on an occurrence the rule
// actually generates: the anchor itself, or some projected successor within
// the series' end condition.
func IsOccurrenceDate(s model.Series, date time.Time) bool {
	d := dateutil.Date(date)
	cur := dateutil.Date(s.AnchorDate)
	if cur.Equal(d) {
		return true
	}
	if s.Rule.Kind == model.KindOnce || s.Rule.Interval < 1 || d.Before(cur) {
		return false
	}

	for n := 1; ; n++ {
		cur = Next(cur, s.Rule)
		if s.Rule.End.Kind == model.EndAfter && n > s.Rule.End.Count {
			return false
		}
		if s.Rule.End.Kind == model.EndOn && cur.After(dateutil.Date(s.Rule.End.Date)) {
			return false
		}
		if cur.Equal(d) {
			return true
		}
		if cur.After(d) {
			return false
		}
	}
}
