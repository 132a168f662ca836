// Package trigger wires team-member cards to the dialogs they control.
//
// Every element carrying Class is a trigger. Its controls attribute names a
// dialog; the dialog gets one modal.Controller shared by every trigger that
// points at it. Triggers open their dialog on click, Enter and Space, and the
// arrow keys move focus between triggers with wraparound. With hover enabled,
// pointing at a trigger opens its dialog and leaving both the trigger and the
// dialog closes it after a delay.
package trigger

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/pkg/monitor/element"
	"github.com/marcus/teamdeck/pkg/monitor/modal"
)

// Class marks trigger elements.
const Class = "team-trigger"

// WiringError reports a trigger whose dialog association is broken.
type WiringError struct {
	TriggerID string
	ModalID   string
	Reason    string
}

func (e *WiringError) Error() string {
	if e.ModalID != "" {
		return fmt.Sprintf("trigger %q -> modal %q: %s", e.TriggerID, e.ModalID, e.Reason)
	}
	return fmt.Sprintf("trigger %q: %s", e.TriggerID, e.Reason)
}

// ValidationError collects every wiring failure found by Bind.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d wiring errors", len(e.Errors))
}

// Add appends err.
func (e *ValidationError) Add(err error) {
	e.Errors = append(e.Errors, err)
}

// HasErrors reports whether any error was collected.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

// KeyMap holds the trigger key bindings.
type KeyMap struct {
	Open key.Binding
	Next key.Binding
	Prev key.Binding
}

// DefaultKeyMap returns Enter/Space to open and arrows to move.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Next: key.NewBinding(key.WithKeys("right", "down"), key.WithHelp("→/↓", "next")),
		Prev: key.NewBinding(key.WithKeys("left", "up"), key.WithHelp("←/↑", "prev")),
	}
}

// Options configures Bind.
type Options struct {
	Hover      bool
	HoverDelay time.Duration // zero means modal.DefaultHoverDelay
	Logger     *slog.Logger
	KeyMap     *KeyMap
}

// Binding ties one trigger to its controller.
type Binding struct {
	Trigger    *element.Element
	Controller *modal.Controller
}

// Binder owns the listeners installed by Bind.
type Binder struct {
	doc      *element.Document
	registry *modal.Registry
	keys     KeyMap
	hover    bool
	delay    time.Duration
	logger   *slog.Logger

	bindings []Binding
	timers   map[string]*modal.HoverTimer
	pending  []tea.Cmd
	removers []func()
}

// Bind finds every trigger in doc and wires it. Broken associations are
// collected and returned together as a *ValidationError; nothing is wired
// when any trigger fails.
func Bind(doc *element.Document, registry *modal.Registry, opts Options) (*Binder, error) {
	if doc == nil || registry == nil {
		return nil, fmt.Errorf("trigger: document and registry are required")
	}
	b := &Binder{
		doc:      doc,
		registry: registry,
		keys:     DefaultKeyMap(),
		hover:    opts.Hover,
		delay:    opts.HoverDelay,
		logger:   opts.Logger,
		timers:   make(map[string]*modal.HoverTimer),
	}
	if opts.KeyMap != nil {
		b.keys = *opts.KeyMap
	}
	if b.delay <= 0 {
		b.delay = modal.DefaultHoverDelay
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	verr := &ValidationError{}
	controllers := make(map[string]*modal.Controller)
	for _, trig := range doc.Root().QueryClass(Class) {
		c, err := b.resolve(trig, controllers)
		if err != nil {
			verr.Add(err)
			continue
		}
		b.bindings = append(b.bindings, Binding{Trigger: trig, Controller: c})
	}
	if verr.HasErrors() {
		return nil, verr
	}

	for i, bd := range b.bindings {
		b.wireTrigger(i, bd)
	}
	for _, c := range controllers {
		b.wireDialog(c)
	}
	b.logger.Debug("trigger: bound", "triggers", len(b.bindings), "modals", len(controllers), "hover", b.hover)
	return b, nil
}

// resolve finds or creates the controller for trig's dialog.
func (b *Binder) resolve(trig *element.Element, controllers map[string]*modal.Controller) (*modal.Controller, error) {
	modalID, ok := trig.Attr(element.AttrControls)
	if !ok || modalID == "" {
		return nil, &WiringError{TriggerID: trig.ID, Reason: "missing controls attribute"}
	}
	if c, ok := controllers[modalID]; ok {
		return c, nil
	}
	if c := b.registry.Get(modalID); c != nil {
		controllers[modalID] = c
		return c, nil
	}
	dialog := b.doc.Get(modalID)
	if dialog == nil {
		return nil, &WiringError{TriggerID: trig.ID, ModalID: modalID, Reason: "dialog not found"}
	}
	c, err := modal.NewController(b.doc, dialog, modal.WithLogger(b.logger))
	if err != nil {
		return nil, &WiringError{TriggerID: trig.ID, ModalID: modalID, Reason: err.Error()}
	}
	if err := b.registry.Register(c); err != nil {
		return nil, &WiringError{TriggerID: trig.ID, ModalID: modalID, Reason: err.Error()}
	}
	controllers[modalID] = c
	return c, nil
}

func (b *Binder) wireTrigger(i int, bd Binding) {
	trig, c := bd.Trigger, bd.Controller
	b.removers = append(b.removers,
		trig.OnClick(func() { b.open(c) }),
		trig.OnKey(func(msg tea.KeyMsg) bool {
			switch {
			case key.Matches(msg, b.keys.Open):
				b.open(c)
				return true
			case key.Matches(msg, b.keys.Next):
				b.move(i, 1)
				return true
			case key.Matches(msg, b.keys.Prev):
				b.move(i, -1)
				return true
			}
			return false
		}),
	)
	if b.hover {
		b.removers = append(b.removers,
			trig.OnEnter(func() { b.open(c) }),
			trig.OnLeave(func() { b.scheduleClose(c) }),
		)
	}
}

func (b *Binder) wireDialog(c *modal.Controller) {
	b.removers = append(b.removers, c.CloseControl().OnClick(func() {
		b.timer(c).Cancel()
		c.Close()
	}))
	if b.hover {
		b.removers = append(b.removers,
			c.Dialog().OnEnter(func() { b.timer(c).Cancel() }),
			c.Dialog().OnLeave(func() { b.scheduleClose(c) }),
		)
	}
}

func (b *Binder) open(c *modal.Controller) {
	b.timer(c).Cancel()
	c.Open()
}

// move focuses the trigger dir steps from index i, wrapping at both ends.
func (b *Binder) move(i, dir int) {
	n := len(b.bindings)
	if n == 0 {
		return
	}
	next := ((i+dir)%n + n) % n
	b.doc.Focus(b.bindings[next].Trigger)
}

func (b *Binder) scheduleClose(c *modal.Controller) {
	if !c.IsOpen() {
		return
	}
	b.pending = append(b.pending, b.timer(c).Schedule())
	b.logger.Debug("trigger: close scheduled", "modal", c.ID(), "delay", b.delay)
}

func (b *Binder) timer(c *modal.Controller) *modal.HoverTimer {
	t, ok := b.timers[c.ID()]
	if !ok {
		t = modal.NewHoverTimer(c.ID(), b.delay)
		b.timers[c.ID()] = t
	}
	return t
}

// Flush returns the commands produced by hover events since the last call.
// The caller hands them to the Bubble Tea runtime.
func (b *Binder) Flush() tea.Cmd {
	if len(b.pending) == 0 {
		return nil
	}
	cmds := b.pending
	b.pending = nil
	return tea.Batch(cmds...)
}

// HandleHoverClose closes the dialog named by msg if its timer is still
// current. It reports whether a dialog was closed.
func (b *Binder) HandleHoverClose(msg modal.HoverCloseMsg) bool {
	t, ok := b.timers[msg.ModalID]
	if !ok || !t.Fire(msg) {
		return false
	}
	c := b.registry.Get(msg.ModalID)
	if c == nil || !c.IsOpen() {
		return false
	}
	c.Close()
	b.logger.Debug("trigger: hover close", "modal", msg.ModalID)
	return true
}

// ClosePending reports whether a hover close is scheduled for the dialog.
func (b *Binder) ClosePending(modalID string) bool {
	t, ok := b.timers[modalID]
	return ok && t.Pending()
}

// ScheduleClose starts the hover close delay for an open dialog, as if the
// pointer had just left it. The command is returned by the next Flush.
func (b *Binder) ScheduleClose(modalID string) {
	if c := b.registry.Get(modalID); c != nil {
		b.scheduleClose(c)
	}
}

// Triggers returns the bound triggers in document order.
func (b *Binder) Triggers() []*element.Element {
	out := make([]*element.Element, len(b.bindings))
	for i, bd := range b.bindings {
		out[i] = bd.Trigger
	}
	return out
}

// Bindings returns every trigger and its controller.
func (b *Binder) Bindings() []Binding {
	return b.bindings
}

// Hover reports whether hover open/close is enabled.
func (b *Binder) Hover() bool {
	return b.hover
}

// KeyMap returns the active key bindings.
func (b *Binder) KeyMap() KeyMap {
	return b.keys
}

// Unbind removes every listener installed by Bind and cancels pending
// hover timers. Open dialogs stay open.
func (b *Binder) Unbind() {
	for _, rm := range b.removers {
		rm()
	}
	b.removers = nil
	for _, t := range b.timers {
		t.Cancel()
	}
	b.pending = nil
}
