package main

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler polls keyboard and mouse bindings each frame and routes
// triggered actions to the application.
type InputHandler struct {
	app     AppActions
	keys    *KeybindingManager
	mouse   *MousebindingManager
	actions []string // sorted union of bound actions

	// drag-to-pan state
	pressed        bool
	dragging       bool
	pressX, pressY int
	lastX, lastY   int
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(app AppActions, keys *KeybindingManager, mouse *MousebindingManager) *InputHandler {
	h := &InputHandler{
		app:   app,
		keys:  keys,
		mouse: mouse,
	}
	h.actions = h.buildActionList()
	return h
}

// buildActionList returns the sorted union of keyboard and mouse bound
// actions, so polling order is stable across frames.
func (h *InputHandler) buildActionList() []string {
	actionSet := make(map[string]bool)
	for action := range h.keys.GetKeybindings() {
		actionSet[action] = true
	}
	for action := range h.mouse.GetMousebindings() {
		actionSet[action] = true
	}

	actions := make([]string, 0, len(actionSet))
	for action := range actionSet {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}

// HandleInput processes all input for the current frame. At most one action
// triggers per frame; its error is passed up to the game loop.
func (h *InputHandler) HandleInput() error {
	for _, action := range h.actions {
		if h.keys.CheckAction(action) || h.mouse.CheckAction(action) {
			return globalActionExecutor.ExecuteAction(action, h.app)
		}
	}
	h.handleDrag()
	return nil
}

// handleDrag tracks left-button drags and converts them to pan deltas once
// the pointer travels past the drag threshold.
func (h *InputHandler) handleDrag() {
	settings := h.mouse.GetSettings()
	if !settings.EnableMouse || !settings.EnableDragPan {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.pressX, h.pressY = ebiten.CursorPosition()
		h.lastX, h.lastY = h.pressX, h.pressY
		h.pressed = true
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		h.pressed = false
		h.dragging = false
		return
	}
	if !h.pressed {
		return
	}

	cx, cy := ebiten.CursorPosition()
	if !h.dragging {
		if abs(cx-h.pressX) >= settings.DragThreshold || abs(cy-h.pressY) >= settings.DragThreshold {
			h.dragging = true
		}
	}
	if h.dragging {
		dx := int(float64(cx-h.lastX) * settings.DragSensitivity)
		dy := int(float64(cy-h.lastY) * settings.DragSensitivity)
		if dx != 0 || dy != 0 {
			h.app.DragPan(dx, dy)
		}
	}
	h.lastX, h.lastY = cx, cy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
