package recur

import (
	"fmt"

	"github.com/duebook-dev/duebook/internal/model"
)

// RuleError describes a single recurrence-rule invariant violation.
type RuleError struct {
	Field       string
	Description string
}

func (e RuleError) Error() string {
	return fmt.Sprintf("rule %s: %s", e.Field, e.Description)
}

// ValidateRule checks every invariant a rule must satisfy before it is
// stored or projected. The read path assumes rules have passed this check;
// defects are reported here, at construction, never rediscovered during
// projection.
func ValidateRule(rule model.RecurrenceRule) []RuleError {
	var errs []RuleError

	switch rule.Kind {
	case model.KindOnce, model.KindDaily, model.KindWeekly, model.KindMonthly, model.KindYearly, model.KindCustom:
	default:
		errs = append(errs, RuleError{Field: "kind", Description: fmt.Sprintf("unknown kind %q", rule.Kind)})
	}

	if rule.Interval < 1 {
		errs = append(errs, RuleError{Field: "interval", Description: fmt.Sprintf("must be >= 1, got %d", rule.Interval)})
	}

	if rule.DaysOfWeek != nil {
		if rule.Kind != model.KindWeekly {
			errs = append(errs, RuleError{Field: "days_of_week", Description: fmt.Sprintf("only valid for weekly rules, not %q", rule.Kind)})
		}
		if len(rule.DaysOfWeek) == 0 {
			errs = append(errs, RuleError{Field: "days_of_week", Description: "must not be empty when provided"})
		}
		seen := make(map[int]bool)
		for _, wd := range rule.DaysOfWeek {
			if wd < 0 || wd > 6 {
				errs = append(errs, RuleError{Field: "days_of_week", Description: fmt.Sprintf("weekday %d out of range 0-6", wd)})
			}
			if seen[wd] {
				errs = append(errs, RuleError{Field: "days_of_week", Description: fmt.Sprintf("weekday %d listed twice", wd)})
			}
			seen[wd] = true
		}
	}

	switch rule.End.Kind {
	case model.EndNever:
	case model.EndAfter:
		if rule.End.Count < 1 {
			errs = append(errs, RuleError{Field: "end", Description: fmt.Sprintf("occurrence count must be >= 1, got %d", rule.End.Count)})
		}
	case model.EndOn:
		if rule.End.Date.IsZero() {
			errs = append(errs, RuleError{Field: "end", Description: "end date must be set"})
		}
	default:
		errs = append(errs, RuleError{Field: "end", Description: fmt.Sprintf("unknown end kind %q", rule.End.Kind)})
	}

	return errs
}
