package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Money renders an amount in dollars with thousands separators, e.g. "$1,234.50".
func Money(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", amount)
}

// HumanDate renders a YYYY-MM-DD date as "Aug 16, 2024". Unparseable dates
// are returned unchanged.
func HumanDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// DateRange renders a tour's date span.
func DateRange(start, end string) string {
	return fmt.Sprintf("%s – %s", HumanDate(start), HumanDate(end))
}

// TimeRange renders an event's time span, or "All day" when both ends are empty.
func TimeRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return "All day"
	case end == "":
		return start
	default:
		return start + "–" + end
	}
}

// Check renders a completion marker.
func Check(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("○")
}

// RenderMarkdown renders md for the terminal. Plain output uses the notty
// style so redirected output carries no escape codes.
func RenderMarkdown(md string, styled bool, width int) (string, error) {
	style := "notty"
	if styled {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
