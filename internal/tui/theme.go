package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal
// backgrounds, so colors are adaptive and "faint" styling is only
// applied on dark backgrounds (faint on light terminals often becomes
// illegible).

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
	colorMuted   lipgloss.TerminalColor = ac("240", "243")
	colorOverdue lipgloss.TerminalColor = ac("160", "203")
	colorDone    lipgloss.TerminalColor = ac("28", "78")
	colorHeading lipgloss.TerminalColor = ac("232", "255")
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHeading)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	overdueStyle = lipgloss.NewStyle().Foreground(colorOverdue)
	doneStyle    = lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true)
	footerStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// hasColor reports whether the terminal supports color at all; plain
// output keeps tests and dumb terminals readable.
func hasColor() bool {
	return termenv.ColorProfile() != termenv.Ascii
}
