package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	bwerrors "github.com/mrz1836/buildwatch/internal/errors"
)

// terminalCheck reports whether stdin is interactive. Tests override it.
//
//nolint:gochecknoglobals // Required for test injection of terminal detection
var terminalCheck = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsInteractive reports whether prompts can be shown.
func IsInteractive() bool {
	return terminalCheck()
}

// Theme returns a Huh theme using the package colors.
func Theme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(ColorPrimary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	return t
}

// Confirm asks a yes/no question. It returns ErrNonInteractiveMode when
// stdin is not a terminal and ErrOperationCanceled when the user aborts.
func Confirm(title, description string, defaultYes bool) (bool, error) {
	if !IsInteractive() {
		return false, bwerrors.ErrNonInteractiveMode
	}

	confirmed := defaultYes
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, bwerrors.ErrOperationCanceled
		}
		return false, fmt.Errorf("confirm prompt failed: %w", err)
	}
	return confirmed, nil
}
