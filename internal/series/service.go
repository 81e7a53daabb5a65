// Package series holds the mutation entry points for stored reminder
// series: creating them, overriding single occurrences, marking occurrences
// paid, and splitting a series into "this and all following".
package series

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
	"github.com/duebook-dev/duebook/internal/recur"
)

var (
	// ErrSeriesNotFound reports a mutation targeting a nonexistent series.
	ErrSeriesNotFound = errors.New("series not found")
	// ErrInvalidSplitDate reports a split date on or before the anchor.
	ErrInvalidSplitDate = errors.New("split date must be after the first occurrence")
	// ErrUnknownOccurrenceDate reports an exception keyed at a date the
	// rule never generates. Surfaced rather than silently dropped, so the
	// stored series never drifts from what the user asked for.
	ErrUnknownOccurrenceDate = errors.New("date does not match any occurrence of the series")
)

// Store is the persistence collaborator. Get reports found=false for an
// unknown id; PutPair commits both series atomically or neither.
type Store interface {
	Get(id string) (model.Series, bool, error)
	List() ([]model.Series, error)
	Put(s model.Series) error
	PutPair(a, b model.Series) error
	Delete(id string) error
}

// Materializer records the linkage of an occurrence to an actual
// transaction. The reference is opaque to this package.
type Materializer interface {
	Materialize(occ model.Occurrence, transactionID string) error
}

// Service provides business logic for reminder series.
type Service struct {
	store        Store
	materializer Materializer // optional
}

// NewService creates a series Service. materializer may be nil.
func NewService(store Store, materializer Materializer) *Service {
	return &Service{store: store, materializer: materializer}
}

// CreateParams holds parameters for creating a series.
type CreateParams struct {
	Title      string
	Amount     decimal.Decimal
	AnchorDate time.Time
	Rule       model.RecurrenceRule
	TemplateID string
}

// Create validates the rule, assigns an id, and persists a new series.
func (s *Service) Create(params CreateParams, now time.Time) (model.Series, error) {
	if err := validateRule(params.Rule); err != nil {
		return model.Series{}, err
	}
	if params.Title == "" {
		return model.Series{}, fmt.Errorf("invalid series: title must not be empty")
	}
	if params.AnchorDate.IsZero() {
		return model.Series{}, fmt.Errorf("invalid series: anchor date must be set")
	}

	ser := model.Series{
		ID:         uuid.NewString(),
		Title:      params.Title,
		Amount:     params.Amount,
		AnchorDate: dateutil.Date(params.AnchorDate),
		Rule:       params.Rule,
		TemplateID: params.TemplateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Put(ser); err != nil {
		return model.Series{}, fmt.Errorf("saving series: %w", err)
	}
	return ser, nil
}

// Get loads one series.
func (s *Service) Get(id string) (model.Series, error) {
	ser, ok, err := s.store.Get(id)
	if err != nil {
		return model.Series{}, fmt.Errorf("loading series %s: %w", id, err)
	}
	if !ok {
		return model.Series{}, fmt.Errorf("%s: %w", id, ErrSeriesNotFound)
	}
	return ser, nil
}

// List loads every stored series.
func (s *Service) List() ([]model.Series, error) {
	return s.store.List()
}

// Delete removes a series and, through the store's cascade, all of its
// exceptions.
func (s *Service) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("deleting series %s: %w", id, err)
	}
	return nil
}

// ApplyException upserts the override for one occurrence, keyed by the
// date the rule originally produced. Re-editing the same occurrence always
// lands on the same record, whatever the exception's Date relocation says.
func (s *Service) ApplyException(seriesID string, originalDate time.Time, exc model.Exception, now time.Time) (model.Series, error) {
	ser, err := s.Get(seriesID)
	if err != nil {
		return model.Series{}, err
	}

	if !recur.IsOccurrenceDate(ser, originalDate) {
		return model.Series{}, fmt.Errorf("%s: %w", dateutil.DayKey(originalDate), ErrUnknownOccurrenceDate)
	}

	ser.SetException(dateutil.DayKey(originalDate), exc)
	ser.UpdatedAt = now
	if err := s.store.Put(ser); err != nil {
		return model.Series{}, fmt.Errorf("saving series %s: %w", seriesID, err)
	}
	return ser, nil
}

// RemoveException drops the override for one occurrence, restoring the
// base rule's instance.
func (s *Service) RemoveException(seriesID string, originalDate time.Time, now time.Time) (model.Series, error) {
	ser, err := s.Get(seriesID)
	if err != nil {
		return model.Series{}, err
	}

	key := dateutil.DayKey(originalDate)
	if _, ok := ser.Exception(key); !ok {
		return model.Series{}, fmt.Errorf("%s: %w", key, ErrUnknownOccurrenceDate)
	}

	delete(ser.Exceptions, key)
	ser.UpdatedAt = now
	if err := s.store.Put(ser); err != nil {
		return model.Series{}, fmt.Errorf("saving series %s: %w", seriesID, err)
	}
	return ser, nil
}

// MarkPaid settles one occurrence and links it to a transaction. The
// anchor occurrence is settled on the series record itself; any other
// occurrence is settled through a modified exception carrying the paid
// flag.
func (s *Service) MarkPaid(seriesID string, date time.Time, transactionID string, now time.Time) (model.Series, error) {
	ser, err := s.Get(seriesID)
	if err != nil {
		return model.Series{}, err
	}

	if !recur.IsOccurrenceDate(ser, date) {
		return model.Series{}, fmt.Errorf("%s: %w", dateutil.DayKey(date), ErrUnknownOccurrenceDate)
	}

	paid := true
	if dateutil.SameDay(date, ser.AnchorDate) {
		ser.Paid = true
		ser.TransactionID = transactionID
	} else {
		key := dateutil.DayKey(date)
		exc, _ := ser.Exception(key)
		exc.Action = model.ExceptionModified
		exc.Paid = &paid
		if transactionID != "" {
			exc.TransactionID = &transactionID
		}
		ser.SetException(key, exc)
	}
	ser.UpdatedAt = now

	if err := s.store.Put(ser); err != nil {
		return model.Series{}, fmt.Errorf("saving series %s: %w", seriesID, err)
	}

	if s.materializer != nil {
		occs := recur.ApplyOverlay(ser, []time.Time{dateutil.Date(date)})
		if len(occs) > 0 {
			if err := s.materializer.Materialize(occs[0], transactionID); err != nil {
				return model.Series{}, fmt.Errorf("materializing occurrence: %w", err)
			}
		}
	}
	return ser, nil
}

func validateRule(rule model.RecurrenceRule) error {
	verrs := recur.ValidateRule(rule)
	if len(verrs) == 0 {
		return nil
	}
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("invalid rule: %s", strings.Join(msgs, "; "))
}
