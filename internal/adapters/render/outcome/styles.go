package outcome

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	success    lipgloss.Style
	owned      lipgloss.Style
	notFound   lipgloss.Style
	failed     lipgloss.Style
	fatal      lipgloss.Style
	link       lipgloss.Style
	detail     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	aborted    lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		success:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		owned:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		notFound:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		failed:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		fatal:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		link:       lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		aborted:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
