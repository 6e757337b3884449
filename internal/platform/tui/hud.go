package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/game"
	"github.com/vovakirdan/aetheria/internal/notify"
)

// HUD layout constants
const (
	barWidth        = 16
	panelWidth      = 36
	minWidthForSide = 90 // Below this the detail panel replaces the map
	feedLines       = 3
)

// hud renders everything around the map: stats, status, notifications,
// the artifact panel and help.
type hud struct {
	energy progress.Model
	xp     progress.Model
	help   help.Model
}

func newHUD() hud {
	h := help.New()
	h.ShowAll = false
	return hud{
		energy: progress.New(
			progress.WithGradient("#ff3333", "#ccff00"),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		xp: progress.New(
			progress.WithSolidFill("#764abc"),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		help: h,
	}
}

// connStatus is the multiplayer badge shown in the header.
type connStatus int

const (
	statusLocal connStatus = iota
	statusConnecting
	statusOnline
)

func (s connStatus) render() string {
	switch s {
	case statusOnline:
		return theme.StatusOnline.Render("● ONLINE")
	case statusConnecting:
		return theme.StatusConnecting.Render("◌ CONNECTING")
	default:
		return theme.StatusLocal.Render("○ LOCAL")
	}
}

func ratio(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max
}

// header renders the top stat line.
func (h hud) header(st game.State, status connStatus, total int) string {
	p := st.Progress
	sep := theme.HUDSeparator.Render(" │ ")

	energyLabel := "ENERGY"
	if st.Sprinting {
		energyLabel = "SPRINT"
	}

	parts := []string{
		Accent(theme.HUDTitle, st.Profile.Color).Render("AETHERIA"),
		theme.HUDLabel.Render(energyLabel+" ") + h.energy.ViewAs(ratio(p.Energy, p.MaxEnergy)),
		theme.HUDLabel.Render(fmt.Sprintf("LV %d ", p.Level)) +
			h.xp.ViewAs(ratio(float64(p.LevelXP), float64(p.XPPerLevel))) +
			theme.HUDValue.Render(fmt.Sprintf(" %d XP", p.XP)),
		theme.HUDLabel.Render("DATA ") + theme.HUDValue.Render(fmt.Sprintf("%d/%d", len(p.Discovered), total)),
		status.render(),
	}
	if status == statusOnline {
		parts = append(parts, theme.HUDLabel.Render(fmt.Sprintf("%d nearby", len(st.Peers))))
	}
	return strings.Join(parts, sep)
}

// notice renders the active notification banner, or "".
func (h hud) notice(st game.State) string {
	if !st.HasNotice {
		return ""
	}
	style := theme.NoticeInfo
	if st.Notice.Kind == notify.KindAchievement {
		style = theme.NoticeAchievement
	}
	return style.Render(st.Notice.Title)
}

// prompt renders the interaction hint for the nearest artifact in range.
func (h hud) prompt(st game.State, cat *catalog.Catalog) string {
	if st.HasActive || !st.HasNearby {
		return ""
	}
	a, ok := cat.Get(st.Nearby)
	if !ok {
		return ""
	}
	return theme.PanelHint.Render("[E] access ") + Accent(theme.PanelTitle, a.Color).Render(a.Title)
}

// panel renders the detail panel of an open artifact.
func (h hud) panel(a catalog.Artifact, width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	text := theme.PanelText.Width(inner)

	var b strings.Builder
	b.WriteString(Accent(theme.PanelTitle, a.Color).Render(a.Title))
	b.WriteString("\n\n")
	b.WriteString(text.Render(a.Description))
	if a.Content != "" {
		b.WriteString("\n\n")
		b.WriteString(text.Render(a.Content))
	}
	if len(a.TechStack) > 0 {
		tags := make([]string, 0, len(a.TechStack))
		for _, t := range a.TechStack {
			tags = append(tags, theme.PanelTag.Render(t))
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(strings.Join(tags, " ")))
	}
	if a.Link != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.PanelLink.Render(a.Link))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.PanelHint.Render("[ESC] close"))

	return theme.PanelBorder.
		BorderForeground(lipgloss.Color(string(a.Color))).
		Width(width - 2).
		Render(b.String())
}

// footer renders the roster feed and the help line.
func (h hud) footer(feed []string, keys GameKeyMap, width int) string {
	h.help.Width = width
	lines := make([]string, 0, len(feed)+1)
	for _, f := range feed {
		lines = append(lines, theme.HUDControls.Render(f))
	}
	lines = append(lines, h.help.View(keys))
	return strings.Join(lines, "\n")
}
