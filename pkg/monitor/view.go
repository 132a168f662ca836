package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/teamdeck/pkg/monitor/element"
	"github.com/marcus/teamdeck/pkg/monitor/modal"
	"github.com/marcus/teamdeck/pkg/monitor/tabs"
)

// headerHeight is the tab bar plus its divider.
const headerHeight = 2

var (
	appTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(modal.Primary).Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 2)
	tabSelectedStyle = tabStyle.
				Foreground(lipgloss.Color("255")).
				Background(modal.Primary).
				Bold(true)
	tabHoverStyle = tabStyle.Background(modal.BgSecondary)

	dividerStyle = lipgloss.NewStyle().Foreground(modal.BorderNormal)
	statusStyle  = lipgloss.NewStyle().Foreground(modal.Info)
	errorStyle   = lipgloss.NewStyle().Foreground(modal.Error).Bold(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(modal.Muted).Padding(1, 2)
)

// View renders the model. Mouse hit regions are recorded as a side effect so
// they always match the last frame.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}
	m.mouse.Clear()

	if m.page == nil {
		msg := "Loading roster..."
		if m.Err != nil {
			msg = errorStyle.Render("Error: " + m.Err.Error())
		}
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, msg)
	}

	header := m.renderTabBar()
	divider := dividerStyle.Render(strings.Repeat("─", m.Width))
	panel := m.renderPanel(m.panelHeight())
	footer := m.renderFooter()

	base := lipgloss.JoinVertical(lipgloss.Left, header, divider, panel, footer)

	c := m.page.registry.Current()
	if c == nil {
		return base
	}
	r := modal.Render(m.page.doc, c.Dialog(), modal.RenderOptions{Width: dialogWidth(m.Width), ShowHints: true})
	x, y := centerOffset(m.Width, m.Height, r.Width, r.Height)
	for _, reg := range r.Regions {
		m.mouse.HitMap.AddRect(reg.ID, x+reg.OffsetX, y+reg.OffsetY, reg.Width, reg.Height, nil)
	}
	return overlay(base, r.Content, m.Width, x, y)
}

// renderTabBar draws the title and the tabs, registering a region per tab.
func (m Model) renderTabBar() string {
	title := appTitleStyle.Render("teamdeck")
	x := lipgloss.Width(title)

	focusID, hoverID := "", ""
	if a := m.page.doc.Active(); a != nil {
		focusID = a.ID
	}
	if h := m.page.doc.Hovered(); h != nil {
		hoverID = h.ID
	}

	parts := []string{title}
	for _, t := range m.page.tabs.Tabs() {
		style := tabStyle
		switch {
		case tabs.Selected(t):
			style = tabSelectedStyle
		case t.ID == hoverID:
			style = tabHoverStyle
		}
		if t.ID == focusID {
			style = style.Underline(true)
		}
		label := style.Render(t.Text)
		w := lipgloss.Width(label)
		m.mouse.HitMap.AddRect(t.ID, x, 0, w, 1, nil)
		parts = append(parts, label)
		x += w
	}

	bar := strings.Join(parts, "")
	if n := len(m.Members); n > 0 {
		count := statusStyle.Render(pluralMembers(n))
		if gap := m.Width - lipgloss.Width(bar) - lipgloss.Width(count) - 1; gap > 0 {
			bar += strings.Repeat(" ", gap) + count
		}
	}
	return ansi.Truncate(bar, m.Width, "")
}

func pluralMembers(n int) string {
	if n == 1 {
		return "1 member"
	}
	return fmt.Sprintf("%d members", n)
}

// renderPanel draws the selected tab's panel padded to height lines.
func (m Model) renderPanel(height int) string {
	var content string
	switch m.page.activeTab() {
	case tabAboutID:
		content = m.renderAbout(height)
	default:
		content = m.renderTeam(height)
	}
	return lipgloss.NewStyle().Width(m.Width).Height(height).MaxHeight(height).Render(content)
}

func (m Model) renderTeam(height int) string {
	if len(m.Members) == 0 {
		if e := m.page.doc.Get(emptyID); e != nil {
			return emptyStyle.Render(e.Text)
		}
		return ""
	}
	grid, regions := renderGrid(m.page.doc, m.visibleTriggers(), m.page.members, m.Width, height, m.GridScroll)
	for _, r := range regions {
		m.mouse.HitMap.AddRect(r.ID, r.Rect.X, r.Rect.Y+headerHeight, r.Rect.W, r.Rect.H, nil)
	}
	return grid
}

func (m Model) renderAbout(height int) string {
	e := m.page.doc.Get(aboutID)
	if e == nil {
		return ""
	}
	lines := strings.Split(e.Text, "\n")
	start := min(m.AboutScroll, max(len(lines)-height, 0))
	end := min(start+height, len(lines))
	out := lines[start:end]
	for i, l := range out {
		out[i] = ansi.Truncate(l, m.Width, "")
	}
	return strings.Join(out, "\n")
}

// footerHeight is the line count of the footer for the current help mode.
func (m Model) footerHeight() int {
	return lipgloss.Height(m.renderFooter())
}

func (m Model) renderFooter() string {
	if m.StatusText != "" && !m.ShowHelp {
		style := statusStyle
		if m.StatusErr {
			style = errorStyle
		}
		return ansi.Truncate(style.Render(" "+m.StatusText), m.Width, "…")
	}
	if m.Err != nil && !m.ShowHelp {
		return ansi.Truncate(errorStyle.Render(" "+m.Err.Error()), m.Width, "…")
	}
	return " " + m.Help.View(m.Keys)
}

// visibleTriggers returns the triggers on the shown panel, in order.
func (m Model) visibleTriggers() []*element.Element {
	if m.page == nil {
		return nil
	}
	var out []*element.Element
	for _, t := range m.page.binder.Triggers() {
		if t.Visible() {
			out = append(out, t)
		}
	}
	return out
}
