package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errConfirmRequired = errors.New("refusing to delete without confirmation: pass --yes when not running in a terminal")

func showrunnerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// Confirm implements service.Confirmer. --yes wins; otherwise a terminal
// gets a huh prompt and anything else is refused.
func (a *App) Confirm(ctx context.Context, prompt string) (bool, error) {
	if a.yes {
		return true, nil
	}
	if !a.interactive() {
		return false, errConfirmRequired
	}
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(showrunnerHuhTheme()).WithShowHelp(false)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return ok, nil
}

// Notify implements service.Notifier by printing to stderr.
func (a *App) Notify(_ context.Context, message string) {
	fmt.Fprintln(a.errOut(), formatter.StyleAmber.Render("! "+message))
}

// promptSecret asks for a password when the flag was left empty.
func (a *App) promptSecret(ctx context.Context, title string, value *string) error {
	if *value != "" || !a.interactive() {
		return nil
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(value),
		),
	).WithTheme(showrunnerHuhTheme()).WithShowHelp(false)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("password prompt: %w", err)
	}
	return nil
}
