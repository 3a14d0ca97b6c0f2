// Package ui holds the lipgloss palette and styles for the calleditor TUI.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/reign/calleditor/internal/calllog"
)

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	GrantedStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	DeniedStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorYellow).
			Padding(0, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(10)

	LabelFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorCyan).
				Bold(true).
				Width(10)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorDimGray).
			Padding(0, 1)

	ButtonFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray).
				Background(ColorCyan).
				Bold(true).
				Padding(0, 1)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Faint(true).
				Padding(0, 1)
)

// Call type label colors.
var (
	IncomingStyle = lipgloss.NewStyle().Foreground(ColorCyan)
	OutgoingStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	MissedStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	OtherStyle    = lipgloss.NewStyle().Foreground(ColorYellow)
)

// TypeStyle picks the label style for a call type.
func TypeStyle(t calllog.CallType) lipgloss.Style {
	switch t {
	case calllog.Incoming:
		return IncomingStyle
	case calllog.Outgoing:
		return OutgoingStyle
	case calllog.Missed, calllog.Rejected, calllog.Blocked:
		return MissedStyle
	case calllog.Unknown:
		return DimStyle
	default:
		return OtherStyle
	}
}
