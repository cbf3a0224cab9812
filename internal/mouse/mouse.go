// Package mouse maps terminal mouse events onto named screen regions.
package mouse

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Rect represents a rectangular region.
type Rect struct {
	X, Y, W, H int
}

// Contains returns true if the point (x, y) is within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named rectangular hit region with associated data.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap tracks hit regions for mouse click detection.
type HitMap struct {
	regions []Region
}

// NewHitMap creates a new empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{regions: make([]Region, 0, 16)}
}

// Clear removes all regions from the hit map.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// AddRect adds a region using individual coordinates.
func (h *HitMap) AddRect(id string, x, y, w, height int, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: height}, Data: data})
}

// Test returns the last added region containing the point, or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Handler combines a HitMap with drag tracking.
type Handler struct {
	HitMap *HitMap

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragStartValue int // e.g. the banner offset when the drag began
	dragRegion     string
}

// NewHandler creates a new mouse handler.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// StartDrag begins tracking a drag operation.
func (h *Handler) StartDrag(x, y int, regionID string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragStartValue = startValue
	h.dragRegion = regionID
}

// IsDragging returns true if a drag operation is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region ID being dragged.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value recorded when the drag started.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// EndDrag stops tracking the drag operation.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

// ActionType is the kind of gesture a mouse event completes.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionScrollUp
	ActionScrollDown
	ActionDrag
	ActionDragEnd
)

// Action is a processed mouse event.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll lines
	DragDX int
	DragDY int
}

// HandleMouse classifies msg against the hit map and the drag state.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			region := h.HitMap.Test(msg.X, msg.Y)
			if region == nil {
				return Action{Type: ActionNone}
			}
			return Action{Type: ActionClick, Region: region, X: msg.X, Y: msg.Y}
		case tea.MouseButtonWheelUp:
			return Action{Type: ActionScrollUp, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: -3}
		case tea.MouseButtonWheelDown:
			return Action{Type: ActionScrollDown, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: 3}
		}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return Action{Type: ActionDragEnd}
		}

	case tea.MouseActionMotion:
		if h.dragging {
			return Action{
				Type:   ActionDrag,
				X:      msg.X,
				Y:      msg.Y,
				DragDX: msg.X - h.dragStartX,
				DragDY: msg.Y - h.dragStartY,
			}
		}
	}
	return Action{Type: ActionNone}
}
