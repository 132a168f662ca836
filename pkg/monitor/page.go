package monitor

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/internal/models"
	"github.com/marcus/teamdeck/pkg/monitor/element"
	"github.com/marcus/teamdeck/pkg/monitor/modal"
	"github.com/marcus/teamdeck/pkg/monitor/tabs"
	"github.com/marcus/teamdeck/pkg/monitor/trigger"
)

// Element IDs of the fixed page structure.
const (
	tabListID  = "tabs"
	tabTeamID  = "tab-team"
	tabAboutID = "tab-about"
	panelTeam  = "panel-team"
	panelAbout = "panel-about"
	gridID     = "grid"
	aboutID    = "about"
	emptyID    = "empty"
)

// Action classes on dialog buttons.
const (
	copyEmailClass = "copy-email"
	copyCardClass  = "copy-card"
)

func triggerID(memberID string) string { return "trigger-" + memberID }
func modalID(memberID string) string   { return "modal-" + memberID }

// memberIDFromModal returns the member ID behind a dialog element ID.
func memberIDFromModal(id string) string { return strings.TrimPrefix(id, "modal-") }

// memberIDFromTrigger returns the member ID behind a trigger element ID.
func memberIDFromTrigger(id string) string { return strings.TrimPrefix(id, "trigger-") }

// buildPage lays out the element tree: a tab list, the team panel with one
// trigger per member, the about panel, and one hidden dialog per member.
func buildPage(members []models.Member, bios map[string]string, about string) *element.Document {
	tabList := element.New(element.RoleTabList, tabListID).Append(
		element.New(element.RoleTab, tabTeamID).
			SetAttr(element.AttrControls, panelTeam).
			SetAttr(element.AttrSelected, "true").
			WithText("Team"),
		element.New(element.RoleTab, tabAboutID).
			SetAttr(element.AttrControls, panelAbout).
			SetAttr(element.AttrSelected, "false").
			WithText("About"),
	)

	grid := element.New(element.RoleGroup, gridID)
	for i := range members {
		m := &members[i]
		grid.Append(element.New(element.RoleButton, triggerID(m.ID)).
			AddClass(trigger.Class).
			SetAttr(element.AttrControls, modalID(m.ID)).
			WithText(m.Name))
	}
	team := element.New(element.RoleTabPanel, panelTeam).Append(grid)
	if len(members) == 0 {
		team.Append(element.New(element.RoleText, emptyID).WithText(emptyRosterText))
	}

	aboutText := about
	if aboutText == "" {
		aboutText = aboutMarkdown
	}
	aboutPanel := element.New(element.RoleTabPanel, panelAbout).Append(
		element.New(element.RoleText, aboutID).AddClass(modal.MarkdownClass).WithText(aboutText),
	)
	aboutPanel.Hidden = true

	root := element.New(element.RoleGroup, "root").Append(tabList, team, aboutPanel)
	for i := range members {
		root.Append(buildDialog(&members[i], bios[members[i].ID]))
	}
	return element.NewDocument(root)
}

// buildDialog builds the hidden detail dialog for one member.
func buildDialog(m *models.Member, bio string) *element.Element {
	id := modalID(m.ID)
	dialog := element.New(element.RoleDialog, id).Append(
		element.New(element.RoleText, id+"-title").AddClass(modal.TitleClass).WithText(m.Name),
		element.New(element.RoleText, id+"-role").AddClass(modal.SubtitleClass).WithText(subtitle(m)),
	)

	// Until glamour output arrives the raw bio is shown wrapped as plain text.
	switch {
	case bio != "":
		dialog.Append(element.New(element.RoleText, id+"-bio").AddClass(modal.MarkdownClass).WithText(bio))
	case strings.TrimSpace(m.Bio) != "":
		dialog.Append(element.New(element.RoleText, id+"-bio").WithText(strings.TrimSpace(m.Bio)))
	}

	links := element.New(element.RoleGroup, id+"-links").AddClass(modal.LinksClass)
	if m.Email != "" {
		links.Append(element.New(element.RoleLink, id+"-email").
			SetAttr(element.AttrHref, "mailto:"+m.Email).
			WithText(m.Email))
	}
	for i, l := range m.Links {
		label := l.Label
		if label == "" {
			label = l.URL
		}
		links.Append(element.New(element.RoleLink, fmt.Sprintf("%s-link-%d", id, i)).
			SetAttr(element.AttrHref, l.URL).
			WithText(label))
	}
	if len(links.Children()) > 0 {
		dialog.Append(links)
	}

	buttons := element.New(element.RoleGroup, id+"-buttons").AddClass(modal.ButtonsClass)
	if m.Email != "" {
		buttons.Append(element.New(element.RoleButton, id+"-copy-email").AddClass(copyEmailClass).WithText("Copy email"))
	}
	buttons.Append(
		element.New(element.RoleButton, id+"-copy-card").AddClass(copyCardClass).WithText("Copy card"),
		element.New(element.RoleButton, id+"-close").AddClass(modal.CloseClass).WithText("Close"),
	)
	dialog.Append(buttons)
	dialog.Hidden = true
	return dialog
}

// page is a built element tree plus the behaviour bound to it. Model holds it
// by pointer so listeners can queue commands while Model is copied.
type page struct {
	doc      *element.Document
	registry *modal.Registry
	binder   *trigger.Binder
	tabs     *tabs.Switcher
	members  map[string]*models.Member
	pending  []tea.Cmd
	lastTab  string
	onTab    func(tabID string) tea.Cmd
}

type pageOptions struct {
	Hover      bool
	HoverDelay time.Duration
	Logger     *slog.Logger
	Keys       *trigger.KeyMap
	ActiveTab  string
	OnTab      func(tabID string) tea.Cmd
}

// newPage builds and wires the page for members. bios holds pre-rendered
// markdown by member ID and may be empty.
func newPage(members []models.Member, bios map[string]string, about string, opts pageOptions) (*page, error) {
	doc := buildPage(members, bios, about)
	registry := modal.NewRegistry()
	binder, err := trigger.Bind(doc, registry, trigger.Options{
		Hover:      opts.Hover,
		HoverDelay: opts.HoverDelay,
		Logger:     opts.Logger,
		KeyMap:     opts.Keys,
	})
	if err != nil {
		return nil, fmt.Errorf("bind triggers: %w", err)
	}
	sw, err := tabs.Bind(doc)
	if err != nil {
		binder.Unbind()
		return nil, fmt.Errorf("bind tabs: %w", err)
	}

	p := &page{
		doc:      doc,
		registry: registry,
		binder:   binder,
		tabs:     sw,
		members:  make(map[string]*models.Member, len(members)),
		onTab:    opts.OnTab,
	}
	for i := range members {
		p.members[members[i].ID] = &members[i]
	}
	if t := doc.Get(opts.ActiveTab); t != nil && t.Role == element.RoleTab {
		tabs.Select(doc, t)
	}
	p.lastTab = p.activeTab()
	p.wireActions()
	return p, nil
}

// wireActions binds the copy buttons and links inside each dialog.
func (p *page) wireActions() {
	for _, c := range p.registry.Controllers() {
		m := p.members[memberIDFromModal(c.ID())]
		if m == nil {
			continue
		}
		dialog := c.Dialog()
		for _, b := range dialog.QueryClass(copyEmailClass) {
			b.OnClick(func() { p.queue(copyCmd(m.Email, "email")) })
		}
		for _, b := range dialog.QueryClass(copyCardClass) {
			b.OnClick(func() { p.queue(copyCmd(formatMemberAsMarkdown(m), "card")) })
		}
		for _, l := range dialog.QueryRole(element.RoleLink) {
			href, _ := l.Attr(element.AttrHref)
			l.OnClick(func() { p.queue(copyCmd(strings.TrimPrefix(href, "mailto:"), "link")) })
		}
	}
}

func (p *page) queue(cmd tea.Cmd) {
	p.pending = append(p.pending, cmd)
}

// drain returns everything queued by listeners since the last call,
// including hover timers and a save when the selected tab changed.
func (p *page) drain() tea.Cmd {
	cmds := append(p.pending, p.binder.Flush())
	p.pending = nil
	if id := p.activeTab(); id != p.lastTab {
		p.lastTab = id
		if p.onTab != nil {
			cmds = append(cmds, p.onTab(id))
		}
	}
	return tea.Batch(cmds...)
}

func (p *page) activeTab() string {
	for _, t := range p.tabs.Tabs() {
		if tabs.Selected(t) {
			return t.ID
		}
	}
	return ""
}

// openMember returns the member whose dialog is open, or nil.
func (p *page) openMember() *models.Member {
	c := p.registry.Current()
	if c == nil {
		return nil
	}
	return p.members[memberIDFromModal(c.ID())]
}

// selectedMember is the open member, else the member of the focused trigger.
func (p *page) selectedMember() *models.Member {
	if m := p.openMember(); m != nil {
		return m
	}
	if a := p.doc.Active(); a != nil && a.HasClass(trigger.Class) {
		return p.members[memberIDFromTrigger(a.ID)]
	}
	return nil
}

// focusTrigger focuses the first (dir > 0) or last trigger when focus is
// not already on one.
func (p *page) focusTrigger(dir int) bool {
	if p.registry.Current() != nil {
		return false
	}
	if a := p.doc.Active(); a != nil && a.HasClass(trigger.Class) {
		return false
	}
	var visible []*element.Element
	for _, t := range p.binder.Triggers() {
		if t.Visible() {
			visible = append(visible, t)
		}
	}
	if len(visible) == 0 {
		return false
	}
	if dir > 0 {
		return p.doc.Focus(visible[0])
	}
	return p.doc.Focus(visible[len(visible)-1])
}

// restore carries the selected tab, open dialog, pending hover close and
// focus over from prev, matching elements by ID, then unbinds prev.
func (p *page) restore(prev *page) {
	if prev == nil {
		return
	}
	if t := p.doc.Get(prev.activeTab()); t != nil && t.Role == element.RoleTab {
		tabs.Select(p.doc, t)
	}
	if c := prev.registry.Current(); c != nil {
		if mem := c.Memento(); mem != nil {
			p.doc.Focus(p.doc.Get(mem.ID))
		}
		if next := p.registry.Get(c.ID()); next != nil {
			next.Open()
			// The pointer already left; no new leave event will come.
			if prev.binder.ClosePending(c.ID()) {
				p.binder.ScheduleClose(c.ID())
			}
		}
	}
	if a := prev.doc.Active(); a != nil {
		p.doc.Focus(p.doc.Get(a.ID))
	}
	p.lastTab = p.activeTab()
	prev.close()
}

func (p *page) close() {
	p.binder.Unbind()
	p.tabs.Unbind()
}

func subtitle(m *models.Member) string {
	if m.Team == "" {
		return m.Role
	}
	return m.Role + " · " + m.Team
}

const emptyRosterText = "No team members yet.\n\n" +
	"Add one with:  teamdeck roster add\n" +
	"Or import:     teamdeck roster import team.json"

const aboutMarkdown = `# teamdeck

A terminal directory of the people on your team.

- **Arrow keys** move between member cards.
- **Enter** or **Space** opens a card; **Esc** closes it.
- **Tab** cycles through links and buttons inside an open card.
- With ` + "`hover_mode`" + ` on, pointing at a card opens it.

Configure with ` + "`teamdeck config set <key> <value>`" + `.
`
