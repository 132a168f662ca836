// Package tabs implements a tab list that shows one panel at a time.
//
// A tab's controls attribute names its panel. Selecting a tab marks it
// selected, marks its sibling tabs unselected, shows its panel and hides
// every other panel controlled by the same tab list. All state lives in
// element attributes.
package tabs

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/pkg/monitor/element"
)

// WiringError reports a tab whose panel cannot be resolved.
type WiringError struct {
	TabID   string
	PanelID string
	Reason  string
}

func (e *WiringError) Error() string {
	return fmt.Sprintf("tab %q -> panel %q: %s", e.TabID, e.PanelID, e.Reason)
}

// tabList returns the tab list a tab belongs to, or nil.
func tabList(tab *element.Element) *element.Element {
	for n := tab.Parent(); n != nil; n = n.Parent() {
		if n.Role == element.RoleTabList {
			return n
		}
	}
	return nil
}

// siblings returns the tabs sharing tab's tab list, or tab alone.
func siblings(tab *element.Element) []*element.Element {
	list := tabList(tab)
	if list == nil {
		return []*element.Element{tab}
	}
	return list.QueryRole(element.RoleTab)
}

// Select activates tab. Panels that cannot be found are skipped.
func Select(doc *element.Document, tab *element.Element) {
	if tab == nil {
		return
	}
	for _, t := range siblings(tab) {
		sel := t == tab
		t.SetAttr(element.AttrSelected, fmt.Sprint(sel))
		id, ok := t.Attr(element.AttrControls)
		if !ok {
			continue
		}
		if panel := doc.Get(id); panel != nil {
			panel.Hidden = !sel
		}
	}
}

// Selected reports whether tab is selected.
func Selected(tab *element.Element) bool {
	v, _ := tab.Attr(element.AttrSelected)
	return v == "true"
}

// Switcher holds the tabs wired by Bind.
type Switcher struct {
	doc      *element.Document
	tabs     []*element.Element
	removers []func()
}

var activate = key.NewBinding(key.WithKeys("enter", " "))

// Bind wires every tab in doc: click, Enter and Space select it. The first
// tab already marked selected in each list (or the first tab) is applied so
// panels start consistent. Tabs without a resolvable panel fail with a
// *WiringError.
func Bind(doc *element.Document) (*Switcher, error) {
	tabs := doc.Root().QueryRole(element.RoleTab)
	for _, t := range tabs {
		id, ok := t.Attr(element.AttrControls)
		if !ok || id == "" {
			return nil, &WiringError{TabID: t.ID, Reason: "missing controls attribute"}
		}
		if doc.Get(id) == nil {
			return nil, &WiringError{TabID: t.ID, PanelID: id, Reason: "panel not found"}
		}
	}

	s := &Switcher{doc: doc, tabs: tabs}
	for _, t := range tabs {
		s.removers = append(s.removers,
			t.OnClick(func() { Select(doc, t) }),
			t.OnKey(func(msg tea.KeyMsg) bool {
				if key.Matches(msg, activate) {
					Select(doc, t)
					return true
				}
				return false
			}),
		)
	}

	done := map[*element.Element]bool{}
	for _, t := range tabs {
		list := tabList(t)
		if done[list] {
			continue
		}
		done[list] = true
		initial := t
		for _, sib := range siblings(t) {
			if Selected(sib) {
				initial = sib
				break
			}
		}
		Select(doc, initial)
	}
	return s, nil
}

// Tabs returns the wired tabs in document order.
func (s *Switcher) Tabs() []*element.Element {
	return s.tabs
}

// Current returns the selected tab in the same list as tab, or nil.
func (s *Switcher) Current(tab *element.Element) *element.Element {
	for _, t := range siblings(tab) {
		if Selected(t) {
			return t
		}
	}
	return nil
}

// Cycle selects the tab dir steps away from the selected one in its list,
// wrapping around.
func (s *Switcher) Cycle(dir int) {
	if len(s.tabs) == 0 {
		return
	}
	list := siblings(s.tabs[0])
	cur := 0
	for i, t := range list {
		if Selected(t) {
			cur = i
			break
		}
	}
	n := len(list)
	Select(s.doc, list[((cur+dir)%n+n)%n])
}

// Unbind removes the listeners installed by Bind.
func (s *Switcher) Unbind() {
	for _, rm := range s.removers {
		rm()
	}
	s.removers = nil
}
