package focus

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/pkg/monitor/element"
)

// dialogFixture builds: outside button, then a dialog holding a link,
// a hidden group with a button, an input, a text element with tabindex 0,
// and a button opted out with tabindex -1.
func dialogFixture() (*element.Document, *element.Element) {
	dialog := element.New(element.RoleDialog, "dialog").SetTabIndex(-1)
	hidden := element.New(element.RoleGroup, "hidden")
	hidden.Hidden = true
	hidden.Append(element.New(element.RoleButton, "hidden-btn"))
	dialog.Append(
		element.New(element.RoleText, "title"),
		element.New(element.RoleLink, "link").SetAttr(element.AttrHref, "mailto:a@b.c"),
		hidden,
		element.New(element.RoleInput, "input"),
		element.New(element.RoleText, "card").SetTabIndex(0),
		element.New(element.RoleButton, "optout").SetTabIndex(-1),
		element.New(element.RoleButton, "close"),
	)
	root := element.New(element.RoleGroup, "root").Append(
		element.New(element.RoleButton, "outside"),
		dialog,
	)
	return element.NewDocument(root), dialog
}

func TestComputeFocusable(t *testing.T) {
	_, dialog := dialogFixture()
	got := ComputeFocusable(dialog)
	want := []string{"link", "input", "card", "close"}
	if len(got) != len(want) {
		t.Fatalf("ComputeFocusable() returned %d elements, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("ComputeFocusable()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestComputeFocusableNil(t *testing.T) {
	if got := ComputeFocusable(nil); got != nil {
		t.Errorf("ComputeFocusable(nil) = %v, want nil", got)
	}
}

func TestTrapWrapsForward(t *testing.T) {
	doc, dialog := dialogFixture()
	trap := Activate(doc, dialog)
	defer trap.Deactivate()

	doc.Focus(doc.Get("close"))
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	if doc.Active().ID != "link" {
		t.Errorf("Tab on last: got %s, want link", doc.Active().ID)
	}
}

func TestTrapWrapsBackward(t *testing.T) {
	doc, dialog := dialogFixture()
	trap := Activate(doc, dialog)
	defer trap.Deactivate()

	doc.Focus(doc.Get("link"))
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if doc.Active().ID != "close" {
		t.Errorf("Shift+Tab on first: got %s, want close", doc.Active().ID)
	}
}

func TestTrapDefaultOrderInside(t *testing.T) {
	doc, dialog := dialogFixture()
	trap := Activate(doc, dialog)
	defer trap.Deactivate()

	doc.Focus(doc.Get("link"))
	for _, want := range []string{"input", "card", "close", "link", "input"} {
		doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
		if doc.Active().ID != want {
			t.Fatalf("Tab: got %s, want %s", doc.Active().ID, want)
		}
	}
	for _, want := range []string{"link", "close", "card"} {
		doc.DispatchKey(tea.KeyMsg{Type: tea.KeyShiftTab})
		if doc.Active().ID != want {
			t.Fatalf("Shift+Tab: got %s, want %s", doc.Active().ID, want)
		}
	}
}

func TestTrapFromContainer(t *testing.T) {
	doc, dialog := dialogFixture()
	trap := Activate(doc, dialog)
	defer trap.Deactivate()

	doc.Focus(dialog)
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if doc.Active().ID != "close" {
		t.Errorf("Shift+Tab on container: got %s, want close", doc.Active().ID)
	}

	doc.Focus(dialog)
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	if doc.Active().ID != "link" {
		t.Errorf("Tab on container: got %s, want link", doc.Active().ID)
	}
}

func TestTrapNeverEscapes(t *testing.T) {
	doc, dialog := dialogFixture()
	trap := Activate(doc, dialog)
	defer trap.Deactivate()

	doc.Focus(dialog)
	keys := []tea.KeyType{tea.KeyTab, tea.KeyTab, tea.KeyShiftTab, tea.KeyTab, tea.KeyTab,
		tea.KeyTab, tea.KeyTab, tea.KeyShiftTab, tea.KeyShiftTab, tea.KeyShiftTab, tea.KeyShiftTab}
	for i, k := range keys {
		doc.DispatchKey(tea.KeyMsg{Type: k})
		if !dialog.Contains(doc.Active()) || doc.Active() == dialog {
			t.Fatalf("step %d: focus escaped to %v", i, doc.Active())
		}
	}
}

func TestEmptyTrapIsNoop(t *testing.T) {
	dialog := element.New(element.RoleDialog, "empty").SetTabIndex(-1)
	dialog.Append(element.New(element.RoleText, "only-text"))
	root := element.New(element.RoleGroup, "root").Append(dialog)
	doc := element.NewDocument(root)

	trap := Activate(doc, dialog)
	if len(trap.Elements()) != 0 {
		t.Fatalf("expected empty set, got %d", len(trap.Elements()))
	}
	if trap.First() != nil || trap.Last() != nil {
		t.Error("First/Last should be nil for an empty set")
	}

	doc.Focus(dialog)
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyShiftTab})
}

func TestDeactivate(t *testing.T) {
	doc, dialog := dialogFixture()
	trap := Activate(doc, dialog)
	trap.Deactivate()
	trap.Deactivate()
	if trap.Active() {
		t.Error("trap should be inactive")
	}

	doc.Focus(doc.Get("close"))
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeyTab})
	if doc.Active().ID != "outside" {
		t.Errorf("without a trap Tab should follow document order, got %s", doc.Active().ID)
	}
}

func TestTrapSnapshotAtActivation(t *testing.T) {
	doc, dialog := dialogFixture()
	trap := Activate(doc, dialog)
	defer trap.Deactivate()

	dialog.Append(element.New(element.RoleButton, "late"))
	if n := len(trap.Elements()); n != 4 {
		t.Errorf("trap should not track later mutations, has %d elements", n)
	}
}
