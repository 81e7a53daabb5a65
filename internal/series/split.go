package series

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
	"github.com/duebook-dev/duebook/internal/recur"
)

// SplitParams optionally reconfigures the forward half of a split. Nil
// fields inherit the original series verbatim.
type SplitParams struct {
	Title  *string
	Amount *decimal.Decimal
	Rule   *model.RecurrenceRule
}

// SplitResult names the two series a split leaves behind.
type SplitResult struct {
	Terminated model.Series
	Created    model.Series
}

// Split implements "edit/delete this and all following occurrences": the
// original series is terminated immediately before splitDate and a new,
// independently-evolving series starts at splitDate. Exceptions dated
// before the split stay frozen on the terminated series; exceptions on or
// after it are discarded. Both writes commit atomically.
func (s *Service) Split(seriesID string, splitDate time.Time, params SplitParams, now time.Time) (SplitResult, error) {
	ser, err := s.Get(seriesID)
	if err != nil {
		return SplitResult{}, err
	}

	splitDate = dateutil.Date(splitDate)
	if !splitDate.After(dateutil.Date(ser.AnchorDate)) {
		return SplitResult{}, fmt.Errorf("%s: %w", dateutil.DayKey(splitDate), ErrInvalidSplitDate)
	}

	terminated := ser
	terminated.Rule.End = terminateAt(ser, splitDate)
	terminated.Exceptions = make(map[string]model.Exception, len(ser.Exceptions))
	for key, exc := range ser.Exceptions {
		d, err := dateutil.ParseDayKey(key)
		if err != nil {
			return SplitResult{}, fmt.Errorf("series %s: bad exception key %q: %w", seriesID, key, err)
		}
		if d.Before(splitDate) {
			terminated.Exceptions[key] = exc
		}
	}
	terminated.UpdatedAt = now

	created := model.Series{
		ID:         uuid.NewString(),
		Title:      ser.Title,
		Amount:     ser.Amount,
		AnchorDate: splitDate,
		Rule:       ser.Rule,
		TemplateID: ser.TemplateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if params.Title != nil {
		created.Title = *params.Title
	}
	if params.Amount != nil {
		created.Amount = *params.Amount
	}
	if params.Rule != nil {
		if err := validateRule(*params.Rule); err != nil {
			return SplitResult{}, err
		}
		created.Rule = *params.Rule
	}

	if err := s.store.PutPair(terminated, created); err != nil {
		return SplitResult{}, fmt.Errorf("saving split of %s: %w", seriesID, err)
	}
	return SplitResult{Terminated: terminated, Created: created}, nil
}

// terminateAt computes the terminated half's end condition: the day before
// the split, or the original end if that already comes first.
func terminateAt(ser model.Series, splitDate time.Time) model.EndCondition {
	cutoff := splitDate.AddDate(0, 0, -1)

	switch ser.Rule.End.Kind {
	case model.EndOn:
		if dateutil.Date(ser.Rule.End.Date).Before(cutoff) {
			return ser.Rule.End
		}
	case model.EndAfter:
		// A count-bounded series may already end before the split; keep
		// the count if its last occurrence lands before the cutoff.
		if last, ok := lastOccurrenceDate(ser); ok && last.Before(cutoff) {
			return ser.Rule.End
		}
	}
	return model.OnDate(cutoff)
}

// lastOccurrenceDate walks an After(n) rule to its final occurrence.
func lastOccurrenceDate(ser model.Series) (time.Time, bool) {
	if ser.Rule.End.Kind != model.EndAfter || ser.Rule.Kind == model.KindOnce || ser.Rule.Interval < 1 {
		return time.Time{}, false
	}
	cur := dateutil.Date(ser.AnchorDate)
	for n := 0; n < ser.Rule.End.Count; n++ {
		cur = recur.Next(cur, ser.Rule)
	}
	return cur, true
}
