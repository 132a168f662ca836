package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/teamdeck/pkg/monitor/element"
)

// LinksClass marks a group whose children render as a vertical link list.
const LinksClass = "links"

// renderLinks renders each link child on its own line. Every link is its own
// tab stop, so each line is registered as a separate focusable region.
func renderLinks(group *element.Element, contentWidth int, focusID, hoverID string) RenderedSection {
	var items []*element.Element
	for _, c := range group.Children() {
		if !c.Hidden {
			items = append(items, c)
		}
	}
	if len(items) == 0 {
		return RenderedSection{Content: MutedText.Render("(no links)")}
	}

	var sb strings.Builder
	var focusables []FocusableInfo
	for i, item := range items {
		isFocused := item.ID == focusID
		isHovered := item.ID == hoverID

		style := ListItemNormal
		if isFocused {
			style = ListItemFocused
		} else if isHovered {
			style = ListItemHover
		}

		cursor := "  "
		if isFocused {
			cursor = ListCursor.Render("> ")
		}

		label := item.Text
		if label == "" {
			label, _ = item.Attr(element.AttrHref)
		}
		if maxLabel := contentWidth - 2; maxLabel > 0 && lipgloss.Width(label) > maxLabel {
			label = ansi.Truncate(label, maxLabel, "…")
		}

		line := cursor + style.Render(label)
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line)

		focusables = append(focusables, FocusableInfo{
			ID:      item.ID,
			OffsetX: 0,
			OffsetY: i,
			Width:   lipgloss.Width(line),
			Height:  1,
		})
	}

	return RenderedSection{
		Content:    sb.String(),
		Focusables: focusables,
	}
}
