package model

import "time"

// RuleKind classifies how a series recurs.
type RuleKind string

const (
	KindOnce    RuleKind = "once"
	KindDaily   RuleKind = "daily"
	KindWeekly  RuleKind = "weekly"
	KindMonthly RuleKind = "monthly"
	KindYearly  RuleKind = "yearly"
	KindCustom  RuleKind = "custom" // every N days; see recur.Next
)

// EndKind classifies how a recurrence terminates.
type EndKind string

const (
	EndNever EndKind = "never"
	EndAfter EndKind = "after"   // stop after Count generated occurrences
	EndOn    EndKind = "on-date" // stop after Date
)

// EndCondition is the tagged terminator of a recurrence rule. Count is
// meaningful only for EndAfter, Date only for EndOn.
type EndCondition struct {
	Kind  EndKind
	Count int
	Date  time.Time
}

// Never returns the open-ended end condition.
func Never() EndCondition {
	return EndCondition{Kind: EndNever}
}

// After returns an end condition that stops after n generated occurrences
// beyond the anchor.
func After(n int) EndCondition {
	return EndCondition{Kind: EndAfter, Count: n}
}

// OnDate returns an end condition that stops after the given date.
func OnDate(d time.Time) EndCondition {
	return EndCondition{Kind: EndOn, Date: d}
}

// RecurrenceRule is an immutable description of how occurrences repeat.
type RecurrenceRule struct {
	Kind RuleKind
	// Interval is the step count: every N days/weeks/months/years
	// (N days for KindCustom). Must be >= 1.
	Interval int
	// DaysOfWeek optionally restricts weekly rules to specific weekdays
	// (0=Sunday..6=Saturday). Non-empty when present.
	DaysOfWeek []int
	End        EndCondition
}
