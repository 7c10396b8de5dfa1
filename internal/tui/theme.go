package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func envNoColor() string { return os.Getenv("NO_COLOR") }

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor and "faint" styling is applied only on
// dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "75") // blue
	colorError    lipgloss.TerminalColor = ac("160", "203")
	colorSelected lipgloss.TerminalColor = ac("232", "255")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
// Only NO_COLOR is honored; CLICOLOR-style vars are for non-interactive
// output and would accidentally strip the interface.
func applyColorProfilePreference() {
	if strings.TrimSpace(envNoColor()) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// renderConfirmModal draws the delete gate. Borderless buttons: nesting
// bordered components inside a colored modal shows background artifacts on
// some terminals.
func renderConfirmModal(width int, title, body string, focus confirmFocus) string {
	btnBase := lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	btnActive := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSelected).Bold(true).Underline(true)

	confirm := btnBase.Render("Delete")
	cancel := btnBase.Render("Cancel")
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render("Delete")
	} else {
		cancel = btnActive.Render("Cancel")
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel)

	help := styleMuted().Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		styleHeader().Render(title),
		"",
		body,
		"",
		controls,
		"",
		help,
	}, "\n")

	boxW := width - 8
	if boxW > 60 {
		boxW = 60
	}
	if boxW < 30 {
		boxW = 30
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(boxW).
		Render(content)
	return lipgloss.Place(width, lipgloss.Height(box)+2, lipgloss.Center, lipgloss.Top, box)
}
