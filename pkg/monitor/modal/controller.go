package modal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/teamdeck/pkg/monitor/element"
	"github.com/marcus/teamdeck/pkg/monitor/focus"
)

// CloseClass marks the single close control inside a dialog.
const CloseClass = "close-modal"

// SetupError reports a dialog that cannot be controlled.
type SetupError struct {
	ModalID string
	Reason  string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("modal %q: %s", e.ModalID, e.Reason)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for state changes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller owns the open/closed state of one dialog, the element that had
// focus before it opened, and the focus trap while it is open.
type Controller struct {
	doc          *element.Document
	dialog       *element.Element
	closeControl *element.Element
	state        State
	memento      *element.Element
	trap         *focus.Trap
	unsubscribe  func()
	registry     *Registry
	logger       *slog.Logger
}

// NewController validates dialog and returns a closed controller for it. The
// dialog must have the dialog role and exactly one close control. It is hidden
// and given tabindex -1 (unless it has an explicit tab index) so it can
// receive focus when opened.
func NewController(doc *element.Document, dialog *element.Element, opts ...Option) (*Controller, error) {
	if doc == nil {
		return nil, errors.New("modal: nil document")
	}
	if dialog == nil {
		return nil, &SetupError{Reason: "dialog element is missing"}
	}
	if dialog.Role != element.RoleDialog {
		return nil, &SetupError{ModalID: dialog.ID, Reason: fmt.Sprintf("role is %q, want %q", dialog.Role, element.RoleDialog)}
	}
	closers := dialog.QueryClass(CloseClass)
	if len(closers) != 1 {
		return nil, &SetupError{ModalID: dialog.ID, Reason: fmt.Sprintf("want exactly one %s control, found %d", CloseClass, len(closers))}
	}
	if _, ok := dialog.TabIndex(); !ok {
		dialog.SetTabIndex(-1)
	}
	dialog.Hidden = true

	c := &Controller{
		doc:          doc,
		dialog:       dialog,
		closeControl: closers[0],
		state:        StateClosed,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ID returns the dialog identifier.
func (c *Controller) ID() string { return c.dialog.ID }

// Dialog returns the dialog element.
func (c *Controller) Dialog() *element.Element { return c.dialog }

// CloseControl returns the dialog's close control.
func (c *Controller) CloseControl() *element.Element { return c.closeControl }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// IsOpen reports whether the dialog is open.
func (c *Controller) IsOpen() bool { return c.state == StateOpen }

// Memento returns the element that will receive focus on close, or nil.
func (c *Controller) Memento() *element.Element { return c.memento }

// Trap returns the active focus trap, or nil when closed.
func (c *Controller) Trap() *focus.Trap { return c.trap }

// Open shows the dialog. Opening an open dialog does nothing, so the
// remembered focus target is never replaced by an element inside the dialog.
func (c *Controller) Open() {
	next, err := Next(c.state, EventOpen)
	if err != nil {
		c.logger.Warn("modal: open rejected", "modal", c.ID(), "err", err)
		return
	}
	if c.state == next {
		c.logger.Debug("modal: already open", "modal", c.ID())
		return
	}
	memento := c.doc.Active()
	if c.registry != nil {
		if prev := c.registry.open; prev != nil && prev != c && prev.dialog.Contains(memento) {
			memento = prev.memento
		}
		c.registry.opening(c)
	}

	c.memento = memento
	c.dialog.Hidden = false
	c.state = next
	c.doc.Focus(c.dialog)
	c.trap = focus.Activate(c.doc, c.dialog)
	c.unsubscribe = c.doc.AddKeyListener(c.handleEscape)

	c.logger.Debug("modal: opened", "modal", c.ID(), "memento", elementID(c.memento), "focusable", len(c.trap.Elements()))
}

// Close hides the dialog and returns focus to the remembered element.
// Closing a closed dialog does nothing.
func (c *Controller) Close() {
	next, err := Next(c.state, EventClose)
	if err != nil {
		c.logger.Warn("modal: close rejected", "modal", c.ID(), "err", err)
		return
	}
	if c.state == next {
		return
	}

	c.dialog.Hidden = true
	c.state = next
	if c.trap != nil {
		c.trap.Deactivate()
		c.trap = nil
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}

	memento := c.memento
	c.memento = nil
	if memento != nil && !c.doc.Focus(memento) {
		c.logger.Debug("modal: focus target gone", "modal", c.ID(), "memento", memento.ID)
	}
	if c.registry != nil {
		c.registry.closed(c)
	}

	c.logger.Debug("modal: closed", "modal", c.ID(), "restored", elementID(memento))
}

// handleEscape is subscribed at document level only while the dialog is open.
func (c *Controller) handleEscape(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyEsc {
		return false
	}
	c.Close()
	return true
}

func elementID(e *element.Element) string {
	if e == nil {
		return ""
	}
	return e.ID
}
