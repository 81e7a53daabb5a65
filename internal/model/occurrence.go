package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status classifies a single occurrence relative to "now".
type Status string

const (
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusToday     Status = "today"
	StatusThisWeek  Status = "this-week"
	StatusUpcoming  Status = "upcoming"
	StatusProjected Status = "projected"
)

// Occurrence is one visible instance of an obligation: either the series'
// literal anchor record or a computed future projection. Occurrences are
// rebuilt on every read and never persisted.
type Occurrence struct {
	SeriesID string
	// ScheduledDate is the date actually shown, after any exception.
	ScheduledDate time.Time
	// OriginalDate is the date the rule produced, before any relocation.
	// Together with SeriesID it identifies the occurrence.
	OriginalDate time.Time
	Title        string
	Amount       decimal.Decimal
	Paid         bool
	// Materialized is true only for the anchor occurrence of a series.
	Materialized  bool
	TransactionID string
}

// MonthBucket groups the occurrences of one calendar month for display.
type MonthBucket struct {
	Year         int
	Month        time.Month
	CurrentMonth bool
	PastMonth    bool
	Occurrences  []Occurrence
}
