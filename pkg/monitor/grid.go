package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/teamdeck/internal/models"
	"github.com/marcus/teamdeck/pkg/monitor/element"
	"github.com/marcus/teamdeck/pkg/monitor/modal"
	"github.com/marcus/teamdeck/pkg/monitor/mouse"
)

// cardWidth is the outer width of a member card, border included.
const cardWidth = 26

// cardHeight is the number of lines per card: border plus three text lines.
const cardHeight = 5

// cardGap separates cards horizontally.
const cardGap = 2

// gridColumns returns how many cards fit side by side in width.
func gridColumns(width int) int {
	cols := (width + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// gridRows returns the number of card rows for n cards.
func gridRows(n, cols int) int {
	if n == 0 {
		return 0
	}
	return (n + cols - 1) / cols
}

// visibleGridRows returns how many card rows fit in height, at least one.
func visibleGridRows(height int) int {
	rows := height / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampGridScroll keeps row visible in a window of visible rows starting at
// scroll, and keeps scroll within the grid.
func clampGridScroll(scroll, row, visible, total int) int {
	if row >= 0 {
		if row < scroll {
			scroll = row
		} else if row >= scroll+visible {
			scroll = row - visible + 1
		}
	}
	maxScroll := total - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// renderGrid lays the visible triggers out as cards, row-major, starting at
// card row scroll and filling at most height lines. Regions are relative to
// the grid's top-left corner.
func renderGrid(doc *element.Document, triggers []*element.Element, members map[string]*models.Member, width, height, scroll int) (string, []mouse.Region) {
	cols := gridColumns(width)
	rows := visibleGridRows(height)

	focusID, hoverID := "", ""
	if a := doc.Active(); a != nil {
		focusID = a.ID
	}
	if h := doc.Hovered(); h != nil {
		hoverID = h.ID
	}

	var lines []string
	var regions []mouse.Region
	for r := 0; r < rows; r++ {
		start := (scroll + r) * cols
		if start >= len(triggers) {
			break
		}
		end := min(start+cols, len(triggers))

		var cards []string
		x := 0
		for i, t := range triggers[start:end] {
			if i > 0 {
				cards = append(cards, strings.Repeat(" ", cardGap))
				x += cardGap
			}
			m := members[memberIDFromTrigger(t.ID)]
			card := renderCard(t, m, t.ID == focusID, t.ID == hoverID, expanded(doc, t))
			cards = append(cards, card)
			regions = append(regions, mouse.Region{
				ID:   t.ID,
				Rect: mouse.Rect{X: x, Y: r * cardHeight, W: lipgloss.Width(card), H: lipgloss.Height(card)},
			})
			x += lipgloss.Width(card)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(lines, "\n"), regions
}

// expanded reports whether the dialog controlled by t is showing.
func expanded(doc *element.Document, t *element.Element) bool {
	id, _ := t.Attr(element.AttrControls)
	d := doc.Get(id)
	return d != nil && d.Visible()
}

// renderCard draws one member card.
// Line 0: initials + name
// Line 1: role
// Line 2: team
func renderCard(t *element.Element, m *models.Member, focused, hovered, open bool) string {
	inner := cardWidth - 4 // border + padding

	name, role, team := t.Text, "", ""
	initials := ""
	if m != nil {
		name, role, team = m.Name, m.Role, m.TeamOrDefault()
		initials = m.Initials()
	}

	nameLine := cardNameStyle.Render(fitCardLine(name, inner-len(initials)-1))
	if initials != "" {
		nameLine = cardInitialsStyle.Render(initials) + " " + nameLine
	}
	body := strings.Join([]string{
		nameLine,
		cardRoleStyle.Render(fitCardLine(role, inner)),
		cardTeamStyle.Render(fitCardLine(team, inner)),
	}, "\n")

	style := cardStyle
	switch {
	case focused:
		style = cardFocusedStyle
	case open:
		style = cardOpenStyle
	case hovered:
		style = cardHoverStyle
	}
	return style.Render(body)
}

func fitCardLine(s string, width int) string {
	if width < 1 {
		return ""
	}
	if lipgloss.Width(s) > width {
		return ansi.Truncate(s, width, "…")
	}
	return s
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(modal.BorderNormal).
			Padding(0, 1).
			Width(cardWidth - 2)

	cardFocusedStyle = cardStyle.BorderForeground(modal.Primary).Bold(true)
	cardHoverStyle   = cardStyle.BorderForeground(modal.Info)
	cardOpenStyle    = cardStyle.BorderForeground(modal.Warning)

	cardInitialsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(modal.BgSecondary).
				Bold(true)
	cardNameStyle = lipgloss.NewStyle().Bold(true)
	cardRoleStyle = lipgloss.NewStyle().Foreground(modal.Info)
	cardTeamStyle = lipgloss.NewStyle().Foreground(modal.Muted)
)
