package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExceptionAction distinguishes the two kinds of per-occurrence override.
type ExceptionAction string

const (
	ExceptionDeleted  ExceptionAction = "deleted"
	ExceptionModified ExceptionAction = "modified"
)

// Exception overrides a single occurrence of a series without touching the
// base rule. It is keyed (in Series.Exceptions) by the day key of the
// occurrence date the rule originally produced — even when Date relocates
// the visible occurrence, the key never moves, so editing the same nominal
// occurrence twice targets one record.
type Exception struct {
	Action ExceptionAction

	// Override fields, meaningful only for ExceptionModified. Nil means
	// "inherit from the series".
	Title         *string
	Amount        *decimal.Decimal
	Date          *time.Time
	Paid          *bool
	TransactionID *string
}

// Series is a stored reminder: one anchor occurrence plus the rule that
// projects the rest, plus the exception overlay.
type Series struct {
	ID     string
	Title  string
	Amount decimal.Decimal
	// AnchorDate is the first scheduled occurrence and the only one that
	// exists as a stored record.
	AnchorDate time.Time
	Rule       RecurrenceRule
	// Paid applies to the anchor occurrence only; projections are never
	// paid until materialized.
	Paid bool
	// TemplateID and TransactionID are opaque references owned by
	// external collaborators.
	TemplateID    string
	TransactionID string
	// Exceptions maps dateutil.DayKey(originalDate) -> override.
	Exceptions map[string]Exception

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exception returns the override for the given original-date day key.
func (s *Series) Exception(dayKey string) (Exception, bool) {
	e, ok := s.Exceptions[dayKey]
	return e, ok
}

// SetException upserts the override for the given original-date day key.
func (s *Series) SetException(dayKey string, e Exception) {
	if s.Exceptions == nil {
		s.Exceptions = make(map[string]Exception)
	}
	s.Exceptions[dayKey] = e
}
