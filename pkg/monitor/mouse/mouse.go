// Package mouse maps terminal mouse events onto named screen regions.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickThreshold is the longest gap between two clicks on the same
// region that still counts as a double click.
const DoubleClickThreshold = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named rectangle with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions for one frame. Regions added later sit on top.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	if w <= 0 || h2 <= 0 {
		return
	}
	h.regions = append(h.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h2}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Clear removes every region.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns the registered regions, bottom first.
func (h *HitMap) Regions() []Region {
	return h.regions
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double-click"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// Action is the result of interpreting a mouse event. Region is nil when the
// event landed outside every region.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler turns raw mouse events into actions against a HitMap.
type Handler struct {
	HitMap *HitMap

	now         func() time.Time
	lastClickID string
	lastClickAt time.Time
	lastHoverID string
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// Clear empties the hit map. Call it at the start of every render.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick resolves a click. A second click on the same region within
// DoubleClickThreshold is a double click; the click after a double click
// starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := h.now()
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}
	if h.lastClickID == region.ID && now.Sub(h.lastClickAt) <= DoubleClickThreshold {
		h.lastClickID = ""
		return ClickResult{Region: region, IsDoubleClick: true}
	}
	h.lastClickID = region.ID
	h.lastClickAt = now
	return ClickResult{Region: region}
}

// HandleMouse interprets a Bubble Tea mouse message. Left presses become
// clicks, motion becomes hover and the wheel scrolls; everything else is
// ActionNone.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		res := h.HandleClick(msg.X, msg.Y)
		t := ActionClick
		if res.IsDoubleClick {
			t = ActionDoubleClick
		}
		return Action{Type: t, Region: res.Region, X: msg.X, Y: msg.Y}
	case msg.Action == tea.MouseActionMotion:
		region := h.HitMap.Test(msg.X, msg.Y)
		id := ""
		if region != nil {
			id = region.ID
		}
		h.lastHoverID = id
		return Action{Type: ActionHover, Region: region, X: msg.X, Y: msg.Y}
	case msg.Button == tea.MouseButtonWheelUp:
		return Action{Type: ActionScrollUp, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}
	case msg.Button == tea.MouseButtonWheelDown:
		return Action{Type: ActionScrollDown, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}
	}
	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}

// HoverID returns the region under the pointer at the last motion event.
func (h *Handler) HoverID() string {
	return h.lastHoverID
}
