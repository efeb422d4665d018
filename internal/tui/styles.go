// Package tui provides terminal output helpers for buildwatch commands.
//
// Colors use AdaptiveColor for light/dark terminal support. Status displays
// carry an icon, a color and the status text so they stay readable when
// color is disabled.
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR
// environment variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/buildwatch/internal/constants"
)

//nolint:gochecknoglobals // Intentional package-level constants for styling API
var (
	// ColorPrimary is blue, used for headings and links.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for successful attempts.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for exceptions and attention-required items.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failed attempts.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for unknown states and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Header  lipgloss.Style
}

// NewOutputStyles creates the common output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns false if NO_COLOR is set (any value, including
// empty) or TERM=dumb. See https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// StatusColor returns the color for an integration status.
func StatusColor(status constants.IntegrationStatus) lipgloss.AdaptiveColor {
	switch status {
	case constants.StatusSuccess:
		return ColorSuccess
	case constants.StatusFailure:
		return ColorError
	case constants.StatusException:
		return ColorWarning
	case constants.StatusUnknown:
		return ColorMuted
	default:
		return ColorMuted
	}
}

// StatusIcon returns the icon for an integration status.
func StatusIcon(status constants.IntegrationStatus) string {
	switch status {
	case constants.StatusSuccess:
		return "✓"
	case constants.StatusFailure:
		return "✗"
	case constants.StatusException:
		return "⚠"
	case constants.StatusUnknown:
		return "?"
	default:
		return "?"
	}
}

// FormatStatus renders "<icon> <status>" in the status color.
func FormatStatus(status constants.IntegrationStatus) string {
	style := lipgloss.NewStyle().Foreground(StatusColor(status))
	return style.Render(StatusIcon(status) + " " + status.String())
}
