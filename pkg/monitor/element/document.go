package element

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// NotFoundError is returned when an identifier does not resolve.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("element %q not found", e.ID)
}

// Document owns an element tree and the focus and hover state over it.
type Document struct {
	root        *Element
	byID        map[string]*Element
	active      *Element
	hovered     *Element
	keyHandlers []*keyHandler
}

// NewDocument indexes the tree under root.
func NewDocument(root *Element) *Document {
	d := &Document{root: root, byID: make(map[string]*Element)}
	d.index(root)
	return d
}

func (d *Document) index(e *Element) {
	e.Walk(func(n *Element) bool {
		n.doc = d
		if n.ID != "" {
			d.byID[n.ID] = n
		}
		return true
	})
}

// Root returns the root element.
func (d *Document) Root() *Element {
	return d.root
}

// Get returns the element with id, or nil.
func (d *Document) Get(id string) *Element {
	return d.byID[id]
}

// MustGet returns the element with id or a NotFoundError.
func (d *Document) MustGet(id string) (*Element, error) {
	e, ok := d.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return e, nil
}

// Active returns the focused element, or nil when nothing has focus.
func (d *Document) Active() *Element {
	if d.active != nil && !d.active.Visible() {
		// Hiding a focused subtree drops focus, as a browser would.
		d.active = nil
	}
	return d.active
}

// Focus moves focus to e. It reports false and leaves focus unchanged when e
// is nil, detached from this document, hidden or not focusable.
func (d *Document) Focus(e *Element) bool {
	if e == nil || e.doc != d || !e.Focusable() {
		return false
	}
	d.active = e
	return true
}

// Blur clears focus.
func (d *Document) Blur() {
	d.active = nil
}

// Hovered returns the element under the pointer, or nil.
func (d *Document) Hovered() *Element {
	return d.hovered
}

// AddKeyListener registers a document-level key listener. Document listeners
// run after the listeners on the focused element and its ancestors.
func (d *Document) AddKeyListener(fn KeyListener) (remove func()) {
	h := &keyHandler{fn: fn}
	d.keyHandlers = append(d.keyHandlers, h)
	return func() {
		h.removed = true
		d.keyHandlers = slices.DeleteFunc(d.keyHandlers, func(x *keyHandler) bool { return x == h })
	}
}

// DispatchKey delivers msg to the focused element, bubbling to the root and
// then to document listeners. The propagation path is fixed when dispatch
// starts. When no listener prevents the default and the key is Tab or
// Shift+Tab, focus moves along the sequential tab order. It reports whether
// the key was consumed.
func (d *Document) DispatchKey(msg tea.KeyMsg) bool {
	target := d.Active()
	if target == nil {
		target = d.root
	}
	var path []*Element
	for n := target; n != nil; n = n.parent {
		path = append(path, n)
	}

	prevented := false
	for _, n := range path {
		for _, h := range slices.Clone(n.keyHandlers) {
			if !h.removed && h.fn(msg) {
				prevented = true
			}
		}
	}
	for _, h := range slices.Clone(d.keyHandlers) {
		if !h.removed && h.fn(msg) {
			prevented = true
		}
	}
	if prevented {
		return true
	}

	switch msg.Type {
	case tea.KeyTab:
		return d.moveFocus(1)
	case tea.KeyShiftTab:
		return d.moveFocus(-1)
	case tea.KeyEnter, tea.KeySpace:
		if activates(target, msg.Type) {
			return d.Click(target.ID)
		}
	}
	return false
}

// activates reports whether key triggers a click on e as its default action:
// Enter or Space on buttons and tabs, Enter on links.
func activates(e *Element, k tea.KeyType) bool {
	switch e.Role {
	case RoleButton, RoleTab:
		return true
	case RoleLink:
		return k == tea.KeyEnter && e.HasAttr(AttrHref)
	}
	return false
}

// TabOrder returns the visible tabbable elements in document order.
func (d *Document) TabOrder() []*Element {
	var out []*Element
	d.root.Walk(func(n *Element) bool {
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

// moveFocus applies default sequential navigation from the active element.
func (d *Document) moveFocus(dir int) bool {
	var order []*Element
	pos := -1
	active := d.Active()
	d.root.Walk(func(n *Element) bool {
		if n.Hidden {
			return false
		}
		if n == active {
			pos = len(order)
			if n.Tabbable() {
				order = append(order, n)
				return true
			}
			// Non-tabbable focus target: remember where it sits between
			// tabbable neighbours.
			pos = len(order) - 1
			if dir < 0 {
				pos = len(order)
			}
			return true
		}
		if n.Tabbable() {
			order = append(order, n)
		}
		return true
	})
	if len(order) == 0 {
		return false
	}
	var next int
	switch {
	case active == nil && dir > 0:
		next = 0
	case active == nil:
		next = len(order) - 1
	default:
		next = ((pos+dir)%len(order) + len(order)) % len(order)
	}
	return d.Focus(order[next])
}

// Click delivers a click to the element with id. Like a pointer press, it
// first focuses the nearest focusable element at or above the target. It
// reports false when id does not resolve to a visible element.
func (d *Document) Click(id string) bool {
	e := d.byID[id]
	if e == nil || !e.Visible() {
		return false
	}
	for n := e; n != nil; n = n.parent {
		if n.Focusable() {
			d.active = n
			break
		}
	}
	for n := e; n != nil; n = n.parent {
		firePointer(n.clickHandlers)
	}
	return true
}

// Hover moves the pointer onto the element with id ("" for none), firing
// leave on elements the pointer left and enter on elements it entered.
// Moving between descendants of an element does not fire on that element.
func (d *Document) Hover(id string) {
	var next *Element
	if id != "" {
		next = d.byID[id]
	}
	if next == d.hovered {
		return
	}
	prev := d.hovered
	d.hovered = next

	for n := prev; n != nil; n = n.parent {
		if next == nil || !n.Contains(next) {
			firePointer(n.leaveHandlers)
		}
	}
	var entered []*Element
	for n := next; n != nil; n = n.parent {
		if prev == nil || !n.Contains(prev) {
			entered = append(entered, n)
		}
	}
	for i := len(entered) - 1; i >= 0; i-- {
		firePointer(entered[i].enterHandlers)
	}
}
