package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duebook-dev/duebook/internal/model"
)

// ruleFlags collects the recurrence flags shared by `add` and `split`.
type ruleFlags struct {
	repeat string
	every  int
	on     string
	times  int
	until  string
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.repeat, "repeat", "once", "recurrence: once, daily, weekly, monthly, yearly or custom")
	cmd.Flags().IntVar(&f.every, "every", 1, "step count (every N days/weeks/months/years; N days for custom)")
	cmd.Flags().StringVar(&f.on, "on", "", "weekdays for weekly rules, e.g. mon,thu")
	cmd.Flags().IntVar(&f.times, "times", 0, "stop after N further occurrences")
	cmd.Flags().StringVar(&f.until, "until", "", "stop after this date (YYYY-MM-DD)")
}

// changed reports whether any recurrence flag was set explicitly.
func (f *ruleFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"repeat", "every", "on", "times", "until"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (f *ruleFlags) build() (model.RecurrenceRule, error) {
	rule := model.RecurrenceRule{
		Kind:     model.RuleKind(f.repeat),
		Interval: f.every,
		End:      model.Never(),
	}

	if f.on != "" {
		days, err := parseWeekdays(f.on)
		if err != nil {
			return model.RecurrenceRule{}, err
		}
		rule.DaysOfWeek = days
	}

	if f.times > 0 && f.until != "" {
		return model.RecurrenceRule{}, fmt.Errorf("--times and --until are mutually exclusive")
	}
	if f.times > 0 {
		rule.End = model.After(f.times)
	}
	if f.until != "" {
		d, err := parseDateArg(f.until)
		if err != nil {
			return model.RecurrenceRule{}, err
		}
		rule.End = model.OnDate(d)
	}

	return rule, nil
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

func parseWeekdays(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		name := strings.ToLower(strings.TrimSpace(p))
		d, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", p)
		}
		days = append(days, d)
	}
	return days, nil
}
