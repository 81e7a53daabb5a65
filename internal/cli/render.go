package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/duebook-dev/duebook/internal/model"
	"github.com/duebook-dev/duebook/internal/timeline"
)

// Theme colors (Flexoki Dark)
var (
	colorTextDim = lipgloss.Color("#575653")
	colorText    = lipgloss.Color("#FFFCF0")
	colorAccent  = lipgloss.Color("#3AA99F")
	colorGreen   = lipgloss.Color("#879A39")
	colorOrange  = lipgloss.Color("#DA702C")
	colorRed     = lipgloss.Color("#D14D41")
	colorBlue    = lipgloss.Color("#4385BE")
	colorYellow  = lipgloss.Color("#D0A215")
)

var (
	monthStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	currentMonthStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText).
				Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	statusStyles = map[model.Status]lipgloss.Style{
		model.StatusPaid:      lipgloss.NewStyle().Foreground(colorGreen),
		model.StatusOverdue:   lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		model.StatusToday:     lipgloss.NewStyle().Foreground(colorOrange).Bold(true),
		model.StatusThisWeek:  lipgloss.NewStyle().Foreground(colorYellow),
		model.StatusUpcoming:  lipgloss.NewStyle().Foreground(colorText),
		model.StatusProjected: lipgloss.NewStyle().Foreground(colorBlue),
	}
)

// RenderStatus renders a status word in its theme color.
func RenderStatus(status model.Status) string {
	style, ok := statusStyles[status]
	if !ok {
		return StatusLabel(status)
	}
	return style.Render(StatusLabel(status))
}

// RenderTimeline renders month buckets as a scrollable text timeline. Empty
// months stay visible so the window shape is stable.
func RenderTimeline(buckets []model.MonthBucket, now time.Time) string {
	var b strings.Builder

	for i, bucket := range buckets {
		if i > 0 {
			b.WriteString("\n")
		}

		heading := FormatMonth(bucket.Year, bucket.Month)
		switch {
		case bucket.CurrentMonth:
			b.WriteString(currentMonthStyle.Render(heading))
		case bucket.PastMonth:
			b.WriteString(dimStyle.Render(heading))
		default:
			b.WriteString(monthStyle.Render(heading))
		}
		b.WriteString("\n")

		if len(bucket.Occurrences) == 0 {
			b.WriteString(dimStyle.Render("  nothing due"))
			b.WriteString("\n")
			continue
		}

		for _, occ := range bucket.Occurrences {
			b.WriteString(renderOccurrenceLine(occ, now))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderOccurrenceLine(occ model.Occurrence, now time.Time) string {
	status := timeline.Classify(occ, now)
	return fmt.Sprintf("  %s  %-28s %12s  %s",
		occ.ScheduledDate.Format("Jan 02"),
		truncate(occ.Title, 28),
		FormatAmount(occ.Amount),
		RenderStatus(status),
	)
}

// RenderOverdueBanner renders the overdue count headline, or an all-clear.
func RenderOverdueBanner(count int) string {
	if count == 0 {
		return statusStyles[model.StatusPaid].Render("Nothing overdue")
	}
	noun := "obligations"
	if count == 1 {
		noun = "obligation"
	}
	return statusStyles[model.StatusOverdue].Render(fmt.Sprintf("%d %s overdue", count, noun))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
