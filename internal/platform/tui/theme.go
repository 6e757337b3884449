package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aetheria/internal/core"
)

// Theme contains the visual styles of the game screens.
type Theme struct {
	// HUD styles
	HUDTitle     lipgloss.Style
	HUDLabel     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style

	// Status badges
	StatusOnline     lipgloss.Style
	StatusLocal      lipgloss.Style
	StatusConnecting lipgloss.Style

	// Notification banners
	NoticeInfo        lipgloss.Style
	NoticeAchievement lipgloss.Style

	// Artifact detail panel
	PanelBorder lipgloss.Style
	PanelTitle  lipgloss.Style
	PanelText   lipgloss.Style
	PanelTag    lipgloss.Style
	PanelLink   lipgloss.Style
	PanelHint   lipgloss.Style

	// Character selection
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the neon theme.
func DefaultTheme() Theme {
	return Theme{
		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		StatusOnline:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		StatusLocal:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusConnecting: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),

		NoticeInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(0, 2),
		NoticeAchievement: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 2),

		PanelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Bold(true),
		PanelText:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PanelTag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("245")).
			Padding(0, 1),
		PanelLink: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		PanelHint: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Accent returns a copy of s in color c.
func Accent(s lipgloss.Style, c core.Color) lipgloss.Style {
	if c == core.ColorDefault {
		return s
	}
	return s.Foreground(lipgloss.Color(string(c)))
}

// theme is read by every view; it is never modified after init.
var theme = DefaultTheme()
