package timeline

import (
	"sort"
	"time"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
)

// GroupByMonth buckets occurrences into one bucket per calendar month from
// monthsBack before now's month through monthsAhead after it, inclusive.
// Empty months are kept so the timeline scrolls over a stable window.
// Occurrences are assigned by ScheduledDate (post-exception) and sorted
// ascending within each bucket; occurrences outside the window are dropped.
func GroupByMonth(occs []model.Occurrence, now time.Time, monthsBack, monthsAhead int) []model.MonthBucket {
	currentMonth := dateutil.StartOfMonth(now)
	start := dateutil.AddMonthsClamped(currentMonth, -monthsBack)

	total := monthsBack + monthsAhead + 1
	buckets := make([]model.MonthBucket, 0, total)
	index := make(map[string]int, total)

	for i := 0; i < total; i++ {
		m := dateutil.AddMonthsClamped(start, i)
		index[monthKey(m)] = len(buckets)
		buckets = append(buckets, model.MonthBucket{
			Year:         m.Year(),
			Month:        m.Month(),
			CurrentMonth: m.Equal(currentMonth),
			PastMonth:    m.Before(currentMonth),
		})
	}

	for _, occ := range occs {
		i, ok := index[monthKey(occ.ScheduledDate)]
		if !ok {
			continue
		}
		buckets[i].Occurrences = append(buckets[i].Occurrences, occ)
	}

	for i := range buckets {
		occs := buckets[i].Occurrences
		sort.SliceStable(occs, func(a, b int) bool {
			return occs[a].ScheduledDate.Before(occs[b].ScheduledDate)
		})
	}

	return buckets
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
