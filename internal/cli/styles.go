// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PaidColor marks expenses settled for the period.
	PaidColor = lipgloss.Color("#4ECDC4") // Teal
	// OverdueColor marks expenses past their due day.
	OverdueColor = lipgloss.Color("#FF6B6B") // Red
	// DueSoonColor marks expenses inside their warning window.
	DueSoonColor = lipgloss.Color("#FFE66D") // Yellow
	// PendingColor marks expenses not yet near due.
	PendingColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PaidColor).
			MarginBottom(1)

	// PaidStyle formats paid status labels.
	PaidStyle = lipgloss.NewStyle().
			Foreground(PaidColor)

	// OverdueStyle formats overdue status labels.
	OverdueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(OverdueColor)

	// DueSoonStyle formats due-soon status labels.
	DueSoonStyle = lipgloss.NewStyle().
			Foreground(DueSoonColor)

	// PendingStyle formats pending status labels.
	PendingStyle = lipgloss.NewStyle().
			Foreground(PendingColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// CardStyle is the bordered box around one expense.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return PaidStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return OverdueStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return DueSoonStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderCard renders titled content inside a card border.
func RenderCard(title, content string) string {
	cardTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return CardStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		cardTitle,
		content,
	))
}

// ProgressBar renders a fixed-width text progress bar for loan and goal
// completion.
func ProgressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
