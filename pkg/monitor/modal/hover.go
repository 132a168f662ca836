package modal

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultHoverDelay is how long the pointer may stay away from a trigger and
// its dialog before the dialog closes.
const DefaultHoverDelay = 300 * time.Millisecond

// HoverCloseMsg is delivered when a hover-close timer fires.
type HoverCloseMsg struct {
	ModalID    string
	Generation uint64
}

// generations is shared by every timer so a tick issued by a timer that was
// replaced (after a page rebuild) never matches its successor.
var generations atomic.Uint64

// HoverTimer is a cancellable one-shot delayed close for one dialog.
//
// Bubble Tea ticks cannot be stopped once issued, so cancellation moves the
// timer to a new generation and a tick carrying an older one is ignored.
type HoverTimer struct {
	modalID    string
	delay      time.Duration
	generation uint64
	pending    bool
}

// NewHoverTimer returns an idle timer. A non-positive delay uses
// DefaultHoverDelay.
func NewHoverTimer(modalID string, delay time.Duration) *HoverTimer {
	if delay <= 0 {
		delay = DefaultHoverDelay
	}
	return &HoverTimer{modalID: modalID, delay: delay}
}

// Delay returns the configured delay.
func (t *HoverTimer) Delay() time.Duration { return t.delay }

// Pending reports whether a close is scheduled.
func (t *HoverTimer) Pending() bool { return t.pending }

// Schedule cancels any outstanding close and schedules a new one.
func (t *HoverTimer) Schedule() tea.Cmd {
	t.Cancel()
	t.pending = true
	msg := HoverCloseMsg{ModalID: t.modalID, Generation: t.generation}
	return tea.Tick(t.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// Cancel drops the outstanding close, if any.
func (t *HoverTimer) Cancel() {
	t.generation = generations.Add(1)
	t.pending = false
}

// Fire consumes msg. It reports true only for the current, uncancelled
// schedule of this timer; the caller then closes the dialog.
func (t *HoverTimer) Fire(msg HoverCloseMsg) bool {
	if msg.ModalID != t.modalID || msg.Generation != t.generation || !t.pending {
		return false
	}
	t.pending = false
	return true
}
