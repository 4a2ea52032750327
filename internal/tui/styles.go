// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     tui
// Description: Shared lipgloss palette for terminal output
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package tui holds the colour palette shared by the terminal renderers
// and the interactive player.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSecondary = lipgloss.Color("#10B981")
	ColorAccent    = lipgloss.Color("#F59E0B")
	ColorError     = lipgloss.Color("#EF4444")
	ColorMuted     = lipgloss.Color("#6B7280")
)

// Styles binds the palette to one lipgloss renderer. Styles built from a
// renderer writing to a pipe or buffer carry no colour codes.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Correct  lipgloss.Style
	Wrong    lipgloss.Style
	Error    lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Gutter   lipgloss.Style
}

// NewStyles creates the palette for r. A nil renderer uses the default one.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Subtitle: r.NewStyle().
			Foreground(ColorMuted).
			Italic(true),

		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2),

		Selected: r.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Item: r.NewStyle().
			PaddingLeft(2),

		Correct: r.NewStyle().
			Foreground(ColorSecondary).
			Bold(true),

		Wrong: r.NewStyle().
			Foreground(ColorError),

		Error: r.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Accent: r.NewStyle().
			Foreground(ColorAccent),

		Muted: r.NewStyle().
			Foreground(ColorMuted),

		Help: r.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),

		Gutter: r.NewStyle().
			Foreground(ColorMuted),
	}
}
