package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Stage-lighting palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorAmber  = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleAmber  = lipgloss.NewStyle().Foreground(ColorAmber)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TourStatusPill renders a tour status such as "● Active".
func TourStatusPill(status domain.TourStatus) string {
	switch status {
	case domain.TourActive:
		return StyleGreen.Render("● Active")
	case domain.TourUpcoming:
		return StyleBlue.Render("○ Upcoming")
	case domain.TourCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// ExpenseStatusPill renders an expense status with its approval color.
func ExpenseStatusPill(status domain.ExpenseStatus) string {
	switch status {
	case domain.ExpenseApproved:
		return StyleGreen.Render("✔ approved")
	case domain.ExpensePending:
		return StyleAmber.Render("○ pending")
	case domain.ExpenseRejected:
		return StyleRed.Render("✖ rejected")
	default:
		return StyleDim.Render(string(status))
	}
}

// PersonStatusPill marks people who have not accepted their invitation yet.
func PersonStatusPill(status domain.PersonStatus) string {
	if status == domain.PersonPendingInvitation {
		return StyleAmber.Render("invited")
	}
	return StyleGreen.Render("active")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
