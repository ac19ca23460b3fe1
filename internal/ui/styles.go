package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#4f9d8f") // teal
	ColorSecondary  = lipgloss.Color("#5a7d9a") // steel blue
	ColorAccent     = lipgloss.Color("#b08a4e") // amber
	ColorBackground = lipgloss.Color("#10161a") // dark
	ColorText       = lipgloss.Color("#d6dade") // main text
	ColorMuted      = lipgloss.Color("#8e98a8") // muted text
	ColorSuccess    = lipgloss.Color("#3f866b") // green
	ColorError      = lipgloss.Color("#8a3440") // red
	ColorWarning    = lipgloss.Color("#c78854") // warning
	ColorBorder     = lipgloss.Color("#2b3a42") // border
	ColorHigh       = lipgloss.Color("#c05b6a") // high priority
)

// --- Reusable Styles ---

var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HighStyle = lipgloss.NewStyle().
			Foreground(ColorHigh).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			PaddingBottom(1)

	GroupHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)
