package recur

import (
	"time"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
)

// Occurrences returns every visible occurrence of a series within the
// horizon: the anchor plus the projected dates, with the exception overlay
// applied. This is the read path behind any "upcoming obligations" view.
func Occurrences(s model.Series, now time.Time, horizonMonths int) []model.Occurrence {
	candidates := append([]time.Time{dateutil.Date(s.AnchorDate)}, Project(s, now, horizonMonths)...)
	return ApplyOverlay(s, candidates)
}

// ApplyOverlay maps candidate occurrence dates through the series'
// exceptions. Candidates with no exception inherit the series' fields; a
// deleted exception suppresses its date; a modified exception overrides the
// fields it sets, relocating ScheduledDate while OriginalDate (the overlay
// key) stays put. The candidate matching the anchor date is the only
// materialized occurrence.
func ApplyOverlay(s model.Series, candidates []time.Time) []model.Occurrence {
	out := make([]model.Occurrence, 0, len(candidates))

	for _, d := range candidates {
		d = dateutil.Date(d)
		occ := model.Occurrence{
			SeriesID:      s.ID,
			ScheduledDate: d,
			OriginalDate:  d,
			Title:         s.Title,
			Amount:        s.Amount,
		}
		if dateutil.SameDay(d, s.AnchorDate) {
			occ.Materialized = true
			occ.Paid = s.Paid
			occ.TransactionID = s.TransactionID
		}

		exc, ok := s.Exception(dateutil.DayKey(d))
		if ok {
			if exc.Action == model.ExceptionDeleted {
				continue
			}
			if exc.Title != nil {
				occ.Title = *exc.Title
			}
			if exc.Amount != nil {
				occ.Amount = *exc.Amount
			}
			if exc.Date != nil {
				occ.ScheduledDate = dateutil.Date(*exc.Date)
			}
			if exc.Paid != nil {
				occ.Paid = *exc.Paid
			}
			if exc.TransactionID != nil {
				occ.TransactionID = *exc.TransactionID
			}
		}

		out = append(out, occ)
	}
	return out
}
