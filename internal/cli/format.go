// Package cli provides formatting and rendering utilities for terminal
// output.
package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duebook-dev/duebook/internal/model"
)

// FormatAmount formats a signed obligation amount with grouping,
// e.g. -1234.5 -> "-$1,234.50".
func FormatAmount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	s := d.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatDate renders a date for list output, e.g. "Mon Jun 02".
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 02")
}

// FormatMonth renders a bucket heading, e.g. "June 2025".
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatRule renders a recurrence rule as a human phrase.
func FormatRule(rule model.RecurrenceRule) string {
	var base string
	switch rule.Kind {
	case model.KindOnce:
		return "once"
	case model.KindDaily, model.KindCustom:
		base = every(rule.Interval, "day")
	case model.KindWeekly:
		base = every(rule.Interval, "week")
		if len(rule.DaysOfWeek) > 0 {
			days := append([]int(nil), rule.DaysOfWeek...)
			sort.Ints(days)
			names := make([]string, 0, len(days))
			for _, d := range days {
				if d >= 0 && d < len(dayNames) {
					names = append(names, dayNames[d])
				}
			}
			base += " on " + strings.Join(names, ", ")
		}
	case model.KindMonthly:
		base = every(rule.Interval, "month")
	case model.KindYearly:
		base = every(rule.Interval, "year")
	default:
		return string(rule.Kind)
	}

	switch rule.End.Kind {
	case model.EndAfter:
		base += fmt.Sprintf(", %d more times", rule.End.Count)
	case model.EndOn:
		base += ", until " + rule.End.Date.Format("Jan 2 2006")
	}
	return base
}

func every(n int, unit string) string {
	if n == 1 {
		return "every " + unit
	}
	return fmt.Sprintf("every %d %ss", n, unit)
}

// StatusLabel renders a status as its display word.
func StatusLabel(status model.Status) string {
	switch status {
	case model.StatusThisWeek:
		return "this week"
	default:
		return string(status)
	}
}
