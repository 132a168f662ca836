package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/marcus/teamdeck/pkg/monitor/trigger"
)

// KeyMap holds the monitor's global bindings. Focus movement, opening and
// closing dialogs go through the element tree; these are the keys the
// model handles itself.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Copy     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Refresh  key.Binding
	Tab      key.Binding
	Close    key.Binding
	Triggers trigger.KeyMap
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy email")),
		NextTab:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev tab")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "move focus")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Triggers: trigger.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Triggers.Open, k.Triggers.Next, k.Tab, k.Close, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Triggers.Open, k.Triggers.Next, k.Triggers.Prev, k.Tab},
		{k.Close, k.Copy, k.NextTab, k.PrevTab},
		{k.Refresh, k.Help, k.Quit},
	}
}
