package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	balanceStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// renderField draws one labelled input line, marking the focused one.
func renderField(f *field, focused bool) string {
	cursor := "  "
	style := subtleStyle
	if focused {
		cursor = focusStyle.Render("> ")
		style = lipgloss.NewStyle()
	}
	return cursor + f.label + ": " + style.Render(f.display())
}

// statusLine renders the view's single status message, if any.
func statusLine(success, errMsg string) string {
	switch {
	case errMsg != "":
		return errorStyle.Render(errMsg)
	case success != "":
		return successStyle.Render(success)
	default:
		return ""
	}
}
