package modal

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/pkg/monitor/element"
)

// fixture builds a page with two trigger buttons and two dialogs.
func fixture(t *testing.T) (*element.Document, *Controller, *Controller) {
	t.Helper()
	mk := func(id string) *element.Element {
		return element.New(element.RoleDialog, id).Append(
			element.New(element.RoleText, id+"-title").AddClass(TitleClass).WithText(id),
			element.New(element.RoleGroup, id+"-links").AddClass(LinksClass).Append(
				element.New(element.RoleLink, id+"-mail").SetAttr(element.AttrHref, "mailto:x@y.z").WithText("x@y.z"),
			),
			element.New(element.RoleButton, id+"-close").AddClass(CloseClass).WithText(" Close "),
		)
	}
	root := element.New(element.RoleGroup, "root").Append(
		element.New(element.RoleButton, "t0").WithText("T0"),
		element.New(element.RoleButton, "t1").WithText("T1"),
		mk("m0"),
		mk("m1"),
	)
	doc := element.NewDocument(root)

	c0, err := NewController(doc, doc.Get("m0"))
	if err != nil {
		t.Fatalf("NewController(m0): %v", err)
	}
	c1, err := NewController(doc, doc.Get("m1"))
	if err != nil {
		t.Fatalf("NewController(m1): %v", err)
	}
	return doc, c0, c1
}

func TestNewControllerStartsClosed(t *testing.T) {
	doc, c0, _ := fixture(t)
	if c0.IsOpen() || c0.State() != StateClosed {
		t.Errorf("new controller state = %s, want closed", c0.State())
	}
	if !c0.Dialog().Hidden {
		t.Error("dialog should be hidden when closed")
	}
	if ti, ok := c0.Dialog().TabIndex(); !ok || ti != -1 {
		t.Errorf("dialog tabindex = %d,%v, want -1,true", ti, ok)
	}
	if c0.CloseControl() != doc.Get("m0-close") {
		t.Error("close control not resolved")
	}
}

func TestOpenCloseRestoresFocus(t *testing.T) {
	doc, c0, _ := fixture(t)
	t1 := doc.Get("t1")
	doc.Focus(t1)

	c0.Open()
	if !c0.IsOpen() || c0.Dialog().Hidden {
		t.Fatal("dialog should be open and visible")
	}
	if doc.Active() != c0.Dialog() {
		t.Errorf("focus after open = %v, want dialog", doc.Active())
	}
	if c0.Memento() != t1 {
		t.Errorf("memento = %v, want t1", c0.Memento())
	}
	if c0.Trap() == nil || !c0.Trap().Active() {
		t.Error("trap should be active while open")
	}

	c0.Close()
	if c0.IsOpen() || !c0.Dialog().Hidden {
		t.Fatal("dialog should be closed and hidden")
	}
	if doc.Active() != t1 {
		t.Errorf("focus after close = %v, want t1", doc.Active())
	}
	if c0.Memento() != nil {
		t.Error("memento should be cleared after close")
	}
	if c0.Trap() != nil {
		t.Error("trap should be released after close")
	}
}

func TestReentrantOpenKeepsMemento(t *testing.T) {
	doc, c0, _ := fixture(t)
	t0 := doc.Get("t0")
	doc.Focus(t0)

	c0.Open()
	doc.Focus(doc.Get("m0-mail"))
	c0.Open()
	c0.Open()

	if c0.Memento() != t0 {
		t.Fatalf("memento = %v, want t0", c0.Memento())
	}
	if doc.Active() != doc.Get("m0-mail") {
		t.Error("re-entrant open should not move focus")
	}

	c0.Close()
	if doc.Active() != t0 {
		t.Errorf("focus after close = %v, want t0", doc.Active())
	}
}

func TestCloseWhenClosedIsNoop(t *testing.T) {
	doc, c0, _ := fixture(t)
	t0 := doc.Get("t0")
	doc.Focus(t0)

	c0.Close()
	if doc.Active() != t0 || c0.IsOpen() {
		t.Error("closing a closed dialog should change nothing")
	}
}

func TestOpenWithoutPriorFocus(t *testing.T) {
	doc, c0, _ := fixture(t)
	c0.Open()
	if c0.Memento() != nil {
		t.Errorf("memento = %v, want nil", c0.Memento())
	}
	c0.Close()
	if doc.Active() != nil {
		t.Errorf("focus after close = %v, want nil", doc.Active())
	}
}

func TestEscapeClosesOnlyWhileOpen(t *testing.T) {
	doc, c0, _ := fixture(t)
	t0 := doc.Get("t0")
	doc.Focus(t0)

	if doc.DispatchKey(tea.KeyMsg{Type: tea.KeyEsc}) {
		t.Error("Escape with no open dialog should not be consumed")
	}

	c0.Open()
	doc.Focus(doc.Get("m0-mail"))
	if !doc.DispatchKey(tea.KeyMsg{Type: tea.KeyEsc}) {
		t.Error("Escape should be consumed while open")
	}
	if c0.IsOpen() {
		t.Error("Escape should close the dialog")
	}
	if doc.Active() != t0 {
		t.Errorf("focus after Escape = %v, want t0", doc.Active())
	}
}

func TestTrapWrapsWhileOpen(t *testing.T) {
	doc, c0, _ := fixture(t)
	c0.Open()

	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	if doc.Active().ID != "m0-mail" {
		t.Fatalf("Tab from dialog: got %s, want m0-mail", doc.Active().ID)
	}
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	if doc.Active().ID != "m0-close" {
		t.Fatalf("Tab: got %s, want m0-close", doc.Active().ID)
	}
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	if doc.Active().ID != "m0-mail" {
		t.Errorf("Tab on last: got %s, want m0-mail", doc.Active().ID)
	}
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if doc.Active().ID != "m0-close" {
		t.Errorf("Shift+Tab on first: got %s, want m0-close", doc.Active().ID)
	}
}

func TestNewControllerSetupErrors(t *testing.T) {
	noClose := element.New(element.RoleDialog, "no-close")
	twoClose := element.New(element.RoleDialog, "two-close").Append(
		element.New(element.RoleButton, "a").AddClass(CloseClass),
		element.New(element.RoleButton, "b").AddClass(CloseClass),
	)
	notDialog := element.New(element.RoleGroup, "group").Append(
		element.New(element.RoleButton, "c").AddClass(CloseClass),
	)
	doc := element.NewDocument(element.New(element.RoleGroup, "root").Append(noClose, twoClose, notDialog))

	tests := []struct {
		name   string
		dialog *element.Element
	}{
		{"missing dialog", nil},
		{"no close control", noClose},
		{"two close controls", twoClose},
		{"wrong role", notDialog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewController(doc, tt.dialog)
			var se *SetupError
			if !errors.As(err, &se) {
				t.Fatalf("NewController() error = %v, want SetupError", err)
			}
		})
	}
}
