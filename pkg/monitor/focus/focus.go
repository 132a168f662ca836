// Package focus confines sequential keyboard navigation to a container.
package focus

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/pkg/monitor/element"
)

// ComputeFocusable returns the tabbable descendants of container in
// document order. Hidden subtrees are skipped. The container itself is
// never included.
func ComputeFocusable(container *element.Element) []*element.Element {
	if container == nil {
		return nil
	}
	var out []*element.Element
	container.Walk(func(n *element.Element) bool {
		if n == container {
			return true
		}
		if n.Hidden {
			return false
		}
		if n.Tabbable() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Trap wraps Tab and Shift+Tab at the edges of a container's focusable set.
// The set is computed once at activation; later tree mutations are not seen.
type Trap struct {
	doc       *element.Document
	container *element.Element
	elements  []*element.Element
	remove    func()
}

// Activate computes the focusable set of container and starts trapping.
// An empty set yields an inert trap.
func Activate(doc *element.Document, container *element.Element) *Trap {
	t := &Trap{
		doc:       doc,
		container: container,
		elements:  ComputeFocusable(container),
	}
	t.remove = container.OnKey(t.handleKey)
	return t
}

// Deactivate stops trapping. It is safe to call more than once.
func (t *Trap) Deactivate() {
	if t.remove != nil {
		t.remove()
		t.remove = nil
	}
}

// Active reports whether the trap is still listening.
func (t *Trap) Active() bool {
	return t.remove != nil
}

// Elements returns the focusable set captured at activation.
func (t *Trap) Elements() []*element.Element {
	return t.elements
}

// First returns the first focusable element, or nil.
func (t *Trap) First() *element.Element {
	if len(t.elements) == 0 {
		return nil
	}
	return t.elements[0]
}

// Last returns the last focusable element, or nil.
func (t *Trap) Last() *element.Element {
	if len(t.elements) == 0 {
		return nil
	}
	return t.elements[len(t.elements)-1]
}

func (t *Trap) contains(e *element.Element) bool {
	for _, x := range t.elements {
		if x == e {
			return true
		}
	}
	return false
}

// handleKey wraps at the edges. Focus on the container itself (just after
// opening) is treated as sitting before the first element, so Shift+Tab
// lands on the last one instead of leaving the container.
func (t *Trap) handleKey(msg tea.KeyMsg) bool {
	if len(t.elements) == 0 {
		return false
	}
	first, last := t.First(), t.Last()
	cur := t.doc.Active()

	switch msg.Type {
	case tea.KeyShiftTab:
		if cur == first || !t.contains(cur) {
			return t.doc.Focus(last)
		}
	case tea.KeyTab:
		if cur == last || !t.contains(cur) {
			return t.doc.Focus(first)
		}
	}
	return false
}
