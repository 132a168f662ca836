package tabs

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/pkg/monitor/element"
)

func page(n int) *element.Document {
	list := element.New(element.RoleTabList, "tabs")
	root := element.New(element.RoleGroup, "root").Append(list)
	for i := 0; i < n; i++ {
		list.Append(element.New(element.RoleTab, fmt.Sprintf("tab%d", i)).
			SetAttr(element.AttrControls, fmt.Sprintf("panel%d", i)))
	}
	for i := 0; i < n; i++ {
		root.Append(element.New(element.RoleTabPanel, fmt.Sprintf("panel%d", i)))
	}
	return element.NewDocument(root)
}

// assertOnly checks that tab k alone is selected and panel k alone visible.
func assertOnly(t *testing.T, doc *element.Document, n, k int) {
	t.Helper()
	for i := 0; i < n; i++ {
		tab := doc.Get(fmt.Sprintf("tab%d", i))
		panel := doc.Get(fmt.Sprintf("panel%d", i))
		if Selected(tab) != (i == k) {
			t.Errorf("tab%d selected = %v, want %v", i, Selected(tab), i == k)
		}
		if v, ok := tab.Attr(element.AttrSelected); !ok || (v != "true" && v != "false") {
			t.Errorf("tab%d selected attr = %q, want true/false", i, v)
		}
		if panel.Hidden != (i != k) {
			t.Errorf("panel%d hidden = %v, want %v", i, panel.Hidden, i != k)
		}
	}
}

func TestSelect(t *testing.T) {
	const n = 4
	for k := 0; k < n; k++ {
		t.Run(fmt.Sprintf("tab%d", k), func(t *testing.T) {
			doc := page(n)
			Select(doc, doc.Get(fmt.Sprintf("tab%d", k)))
			assertOnly(t, doc, n, k)
		})
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	doc := page(3)
	tab := doc.Get("tab1")
	Select(doc, tab)
	Select(doc, tab)
	assertOnly(t, doc, 3, 1)
}

func TestBindAppliesInitialSelection(t *testing.T) {
	doc := page(3)
	doc.Get("tab2").SetAttr(element.AttrSelected, "true")
	if _, err := Bind(doc); err != nil {
		t.Fatal(err)
	}
	assertOnly(t, doc, 3, 2)

	doc = page(3)
	if _, err := Bind(doc); err != nil {
		t.Fatal(err)
	}
	assertOnly(t, doc, 3, 0)
}

func TestBindClickAndKeys(t *testing.T) {
	doc := page(3)
	if _, err := Bind(doc); err != nil {
		t.Fatal(err)
	}

	doc.Click("tab1")
	assertOnly(t, doc, 3, 1)

	doc.Focus(doc.Get("tab2"))
	if !doc.DispatchKey(tea.KeyMsg{Type: tea.KeyEnter}) {
		t.Error("Enter on a tab should be consumed")
	}
	assertOnly(t, doc, 3, 2)

	doc.Focus(doc.Get("tab0"))
	doc.DispatchKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assertOnly(t, doc, 3, 0)
}

func TestCycle(t *testing.T) {
	doc := page(3)
	s, err := Bind(doc)
	if err != nil {
		t.Fatal(err)
	}
	s.Cycle(1)
	assertOnly(t, doc, 3, 1)
	s.Cycle(-2)
	assertOnly(t, doc, 3, 2)
	if s.Current(doc.Get("tab0")) != doc.Get("tab2") {
		t.Error("Current() should return tab2")
	}
}

func TestSeparateListsAreIndependent(t *testing.T) {
	a := element.New(element.RoleTabList, "a").Append(
		element.New(element.RoleTab, "a0").SetAttr(element.AttrControls, "pa0"),
		element.New(element.RoleTab, "a1").SetAttr(element.AttrControls, "pa1"),
	)
	b := element.New(element.RoleTabList, "b").Append(
		element.New(element.RoleTab, "b0").SetAttr(element.AttrControls, "pb0"),
		element.New(element.RoleTab, "b1").SetAttr(element.AttrControls, "pb1"),
	)
	root := element.New(element.RoleGroup, "root").Append(a, b,
		element.New(element.RoleTabPanel, "pa0"),
		element.New(element.RoleTabPanel, "pa1"),
		element.New(element.RoleTabPanel, "pb0"),
		element.New(element.RoleTabPanel, "pb1"),
	)
	doc := element.NewDocument(root)
	if _, err := Bind(doc); err != nil {
		t.Fatal(err)
	}

	Select(doc, doc.Get("a1"))
	if doc.Get("pb0").Hidden {
		t.Error("selecting in list a should not touch list b")
	}
	if !doc.Get("pa0").Hidden || doc.Get("pa1").Hidden {
		t.Error("list a panels not switched")
	}
}

func TestBindWiringErrors(t *testing.T) {
	tests := []struct {
		name string
		tab  *element.Element
	}{
		{"no controls", element.New(element.RoleTab, "t")},
		{"missing panel", element.New(element.RoleTab, "t").SetAttr(element.AttrControls, "ghost")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := element.NewDocument(element.New(element.RoleGroup, "root").Append(
				element.New(element.RoleTabList, "list").Append(tt.tab),
			))
			_, err := Bind(doc)
			var we *WiringError
			if !errors.As(err, &we) {
				t.Fatalf("Bind() error = %v, want WiringError", err)
			}
			if we.TabID != "t" {
				t.Errorf("TabID = %q, want t", we.TabID)
			}
		})
	}
}
