package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/teamdeck/pkg/monitor/element"
)

// Class names recognised when rendering dialog children.
const (
	TitleClass    = "title"
	SubtitleClass = "subtitle"
	ButtonsClass  = "buttons"
	// MarkdownClass marks text that is already rendered (ANSI) and wrapped.
	MarkdownClass = "markdown"
)

// FocusableInfo is a hit region for an element, relative to the section or
// box it was measured in.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is one rendered dialog child and its hit regions.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// Rendered is a framed dialog. Regions are relative to the box's top-left
// corner; the first region always covers the whole box.
type Rendered struct {
	Content string
	Width   int
	Height  int
	Regions []FocusableInfo
}

// RenderOptions controls dialog rendering.
type RenderOptions struct {
	Width     int  // outer width including the border
	ShowHints bool // keyboard hint line at the bottom
}

// ContentWidth is the text width inside a box of the given outer width.
func ContentWidth(width int) int {
	if width < 20 {
		width = 20
	}
	return width - 2*boxInsetX
}

// Render draws dialog using the focus and hover state of doc. Regions are
// measured from the rendered output (render-then-measure) so they match what
// the user sees.
func Render(doc *element.Document, dialog *element.Element, opts RenderOptions) Rendered {
	width := opts.Width
	if width < 20 {
		width = 20
	}
	contentWidth := ContentWidth(width)

	focusID, hoverID := "", ""
	if a := doc.Active(); a != nil {
		focusID = a.ID
	}
	if h := doc.Hovered(); h != nil {
		hoverID = h.ID
	}

	var blocks []string
	var regions []FocusableInfo
	y := 0
	for _, child := range dialog.Children() {
		if child.Hidden {
			continue
		}
		sec := renderSection(child, contentWidth, focusID, hoverID)
		if sec.Content == "" && len(sec.Focusables) == 0 {
			continue
		}
		if len(blocks) > 0 {
			blocks = append(blocks, "")
			y++
		}
		for _, f := range sec.Focusables {
			f.OffsetX += boxInsetX
			f.OffsetY += boxInsetY + y
			regions = append(regions, f)
		}
		blocks = append(blocks, sec.Content)
		y += lipgloss.Height(sec.Content)
	}
	if opts.ShowHints {
		blocks = append(blocks, "", MutedText.Render(truncate("esc: close  tab/shift+tab: move  enter: activate", contentWidth)))
	}

	box := Box.Width(width - 2).Render(strings.Join(blocks, "\n"))
	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)

	all := make([]FocusableInfo, 0, len(regions)+1)
	all = append(all, FocusableInfo{ID: dialog.ID, Width: boxW, Height: boxH})
	all = append(all, regions...)

	return Rendered{Content: box, Width: boxW, Height: boxH, Regions: all}
}

func renderSection(el *element.Element, contentWidth int, focusID, hoverID string) RenderedSection {
	switch {
	case el.HasClass(LinksClass):
		return renderLinks(el, contentWidth, focusID, hoverID)
	case el.HasClass(ButtonsClass):
		return renderButtons(el.Children(), focusID, hoverID)
	case el.Role == element.RoleButton:
		return renderButtons([]*element.Element{el}, focusID, hoverID)
	case el.HasClass(TitleClass):
		return RenderedSection{Content: ModalTitle.Render(truncate(el.Text, contentWidth))}
	case el.HasClass(SubtitleClass):
		return RenderedSection{Content: Subtitle.Render(truncate(el.Text, contentWidth))}
	case el.HasClass(MarkdownClass):
		lines := strings.Split(el.Text, "\n")
		for i, l := range lines {
			lines[i] = truncate(l, contentWidth)
		}
		return RenderedSection{Content: strings.Join(lines, "\n")}
	}

	content := Body.Width(contentWidth).Render(el.Text)
	sec := RenderedSection{Content: content}
	if el.Tabbable() {
		sec.Focusables = []FocusableInfo{{
			ID:     el.ID,
			Width:  lipgloss.Width(content),
			Height: lipgloss.Height(content),
		}}
	}
	return sec
}

// renderButtons lays buttons out on one row separated by two spaces.
func renderButtons(btns []*element.Element, focusID, hoverID string) RenderedSection {
	var parts []string
	var focusables []FocusableInfo
	x := 0
	for _, b := range btns {
		if b.Hidden {
			continue
		}
		style := Button
		if b.ID == focusID {
			style = ButtonFocused
		} else if b.ID == hoverID {
			style = ButtonHover
		}
		rendered := style.Render(b.Text)
		w := lipgloss.Width(rendered)
		if len(parts) > 0 {
			parts = append(parts, "  ")
			x += 2
		}
		parts = append(parts, rendered)
		focusables = append(focusables, FocusableInfo{ID: b.ID, OffsetX: x, Width: w, Height: 1})
		x += w
	}
	return RenderedSection{Content: strings.Join(parts, ""), Focusables: focusables}
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
