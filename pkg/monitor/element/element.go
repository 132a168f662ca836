// Package element is the small element tree the monitor renders and routes
// input through.
//
// An Element carries the structural contract the widgets rely on: a role, an
// identifier, string attributes (href, controls, selected, tabindex, class),
// a hidden flag and ordered children. A Document owns a tree, tracks the
// globally focused element and dispatches key, click and hover events to
// listeners registered on elements or on the document itself.
package element

import (
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Role identifies what an element is for.
type Role string

const (
	RoleGroup    Role = "group"
	RoleText     Role = "text"
	RoleDialog   Role = "dialog"
	RoleButton   Role = "button"
	RoleLink     Role = "link"
	RoleInput    Role = "input"
	RoleTextarea Role = "textarea"
	RoleSelect   Role = "select"
	RoleTabList  Role = "tablist"
	RoleTab      Role = "tab"
	RoleTabPanel Role = "tabpanel"
)

// Attribute names understood by the widgets.
const (
	AttrHref     = "href"
	AttrControls = "controls"
	AttrSelected = "selected"
	AttrTabIndex = "tabindex"
	AttrClass    = "class"
)

// KeyListener handles a key event. Returning true prevents the default action.
type KeyListener func(msg tea.KeyMsg) bool

// Listener handles a pointer event (click, enter, leave).
type Listener func()

type keyHandler struct {
	fn      KeyListener
	removed bool
}

type pointerHandler struct {
	fn      Listener
	removed bool
}

// Element is a node in the tree.
type Element struct {
	ID     string
	Role   Role
	Text   string
	Hidden bool

	attrs    map[string]string
	children []*Element
	parent   *Element
	doc      *Document

	keyHandlers   []*keyHandler
	clickHandlers []*pointerHandler
	enterHandlers []*pointerHandler
	leaveHandlers []*pointerHandler
}

// New creates a detached element.
func New(role Role, id string) *Element {
	return &Element{ID: id, Role: role, attrs: make(map[string]string)}
}

// WithText sets the element text and returns the element.
func (e *Element) WithText(text string) *Element {
	e.Text = text
	return e
}

// SetAttr sets an attribute and returns the element for chaining.
func (e *Element) SetAttr(name, value string) *Element {
	e.attrs[name] = value
	return e
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// Attr returns an attribute value and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// AddClass appends a class name to the class attribute.
func (e *Element) AddClass(class string) *Element {
	if e.HasClass(class) {
		return e
	}
	if cur := e.attrs[AttrClass]; cur != "" {
		e.attrs[AttrClass] = cur + " " + class
	} else {
		e.attrs[AttrClass] = class
	}
	return e
}

// HasClass reports whether class appears in the class attribute.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(strings.Fields(e.attrs[AttrClass]), class)
}

// SetTabIndex sets an explicit tab index.
func (e *Element) SetTabIndex(i int) *Element {
	return e.SetAttr(AttrTabIndex, strconv.Itoa(i))
}

// TabIndex returns the explicit tab index, if one is set and parses.
func (e *Element) TabIndex() (int, bool) {
	v, ok := e.attrs[AttrTabIndex]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

// Append adds children in order and returns the element.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = e
		e.children = append(e.children, c)
		if e.doc != nil {
			e.doc.index(c)
		}
	}
	return e
}

// Children returns the element's children.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the parent element, or nil for the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Visible reports whether neither the element nor any ancestor is hidden.
func (e *Element) Visible() bool {
	for n := e; n != nil; n = n.parent {
		if n.Hidden {
			return false
		}
	}
	return true
}

// Tabbable reports whether the element takes part in sequential tab order,
// ignoring visibility: links with an href, buttons, tabs and form controls, and
// anything with a non-negative explicit tab index. A negative explicit tab
// index always opts out.
func (e *Element) Tabbable() bool {
	if i, ok := e.TabIndex(); ok {
		return i >= 0
	}
	switch e.Role {
	case RoleLink:
		return e.HasAttr(AttrHref)
	case RoleButton, RoleTab, RoleInput, RoleTextarea, RoleSelect:
		return true
	}
	return false
}

// Focusable reports whether the element may receive programmatic focus.
func (e *Element) Focusable() bool {
	if !e.Visible() {
		return false
	}
	if _, ok := e.TabIndex(); ok {
		return true
	}
	return e.Tabbable()
}

// Walk visits e and its descendants in document order. Returning false from
// fn skips the visited element's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Query returns descendants (excluding e) matching pred in document order.
func (e *Element) Query(pred func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(n *Element) bool {
		if n != e && pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// QueryClass returns descendants carrying class.
func (e *Element) QueryClass(class string) []*Element {
	return e.Query(func(n *Element) bool { return n.HasClass(class) })
}

// QueryRole returns descendants with role.
func (e *Element) QueryRole(role Role) []*Element {
	return e.Query(func(n *Element) bool { return n.Role == role })
}

// OnKey registers a key listener and returns a func that removes it.
func (e *Element) OnKey(fn KeyListener) (remove func()) {
	h := &keyHandler{fn: fn}
	e.keyHandlers = append(e.keyHandlers, h)
	return func() {
		h.removed = true
		e.keyHandlers = slices.DeleteFunc(e.keyHandlers, func(x *keyHandler) bool { return x == h })
	}
}

// OnClick registers a click listener.
func (e *Element) OnClick(fn Listener) (remove func()) {
	return addPointer(&e.clickHandlers, fn)
}

// OnEnter registers a pointer-enter listener.
func (e *Element) OnEnter(fn Listener) (remove func()) {
	return addPointer(&e.enterHandlers, fn)
}

// OnLeave registers a pointer-leave listener.
func (e *Element) OnLeave(fn Listener) (remove func()) {
	return addPointer(&e.leaveHandlers, fn)
}

func addPointer(list *[]*pointerHandler, fn Listener) func() {
	h := &pointerHandler{fn: fn}
	*list = append(*list, h)
	return func() {
		h.removed = true
		*list = slices.DeleteFunc(*list, func(x *pointerHandler) bool { return x == h })
	}
}

func firePointer(list []*pointerHandler) {
	for _, h := range slices.Clone(list) {
		if !h.removed {
			h.fn()
		}
	}
}
