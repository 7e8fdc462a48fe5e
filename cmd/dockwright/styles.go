// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette for all CLI output, tuned for dark terminal backgrounds.
const (
	colorPrimary   = lipgloss.Color("#7C3AED") // purple: titles
	colorMuted     = lipgloss.Color("#6B7280") // gray: subtitles, hints
	colorSuccess   = lipgloss.Color("#10B981") // green: checkmarks, values
	colorWarning   = lipgloss.Color("#F59E0B") // amber: bullets, flags
	colorHighlight = lipgloss.Color("#3B82F6") // blue: commands, names
	colorVerbose   = lipgloss.Color("#9CA3AF") // light gray: details
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// SubtitleStyle is for secondary headers and hints.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// SuccessStyle is for confirmations and configured values.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// WarningStyle is for suggestion bullets.
	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// CmdStyle is for command names and configuration keys.
	CmdStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// VerboseStyle is for error chains and other verbose-only detail.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(colorVerbose)

	listNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight)
	listFlagStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	listSummaryStyle = lipgloss.NewStyle().Foreground(colorVerbose)
)
