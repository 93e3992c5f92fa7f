package main

import "github.com/charmbracelet/lipgloss"

const (
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.Color("#6B7280")
)

var (
	// SuccessStyle labels progress lines such as "Execute binary:".
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	// ErrorStyle is for fatal user-facing messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
