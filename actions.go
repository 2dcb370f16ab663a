package main

import "strings"

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings,
// mouse bindings, and descriptions. The name may carry parameters after a
// space ("zoom +10"); bindings in the config use the same format.
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Quit application"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info display"},
	{"fullscreen", []string{"KeyF", "Enter"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},

	{"next_file", []string{"Space", "KeyN", "PageDown"}, []string{"WheelDown"}, "Next image"},
	{"prev_file", []string{"Backspace", "KeyP", "PageUp"}, []string{"WheelUp"}, "Previous image"},
	{"first_file", []string{"Home"}, []string{}, "First image"},
	{"last_file", []string{"End"}, []string{}, "Last image"},
	{"next_dir", []string{"KeyD"}, []string{}, "Next directory"},
	{"prev_dir", []string{"Shift+KeyD"}, []string{}, "Previous directory"},
	{"rand_file", []string{"KeyX"}, []string{}, "Random image"},
	{"skip_file", []string{"Period"}, []string{}, "Skip current image"},
	{"reload", []string{"Ctrl+KeyR"}, []string{}, "Reload current image"},

	{"next_frame", []string{"KeyO"}, []string{}, "Next frame"},
	{"prev_frame", []string{"Shift+KeyO"}, []string{}, "Previous frame"},
	{"animation", []string{"KeyA"}, []string{}, "Start/stop animation"},
	{"slideshow", []string{"KeyS"}, []string{}, "Start/stop slideshow"},

	{"zoom +10", []string{"Equal", "Shift+Equal"}, []string{"Ctrl+WheelUp"}, "Zoom in"},
	{"zoom -10", []string{"Minus"}, []string{"Ctrl+WheelDown"}, "Zoom out"},
	{"zoom real", []string{"Key0"}, []string{"Shift+MiddleClick"}, "Reset to 100% zoom"},
	{"scale", []string{"KeyZ"}, []string{"MiddleClick"}, "Cycle scale mode"},
	{"keep_zoom", []string{"KeyK"}, []string{}, "Keep zoom on image change"},

	{"step_left 10", []string{"ArrowLeft"}, []string{}, "Pan left"},
	{"step_right 10", []string{"ArrowRight"}, []string{}, "Pan right"},
	{"step_up 10", []string{"ArrowUp"}, []string{}, "Pan up"},
	{"step_down 10", []string{"ArrowDown"}, []string{}, "Pan down"},

	{"rotate_left", []string{"KeyL"}, []string{}, "Rotate left 90 degrees"},
	{"rotate_right", []string{"KeyR"}, []string{}, "Rotate right 90 degrees"},
	{"flip_horizontal", []string{"KeyH"}, []string{}, "Flip horizontally"},
	{"flip_vertical", []string{"KeyV"}, []string{}, "Flip vertically"},
	{"antialiasing", []string{"KeyB"}, []string{}, "Cycle anti-aliasing filter"},
}

// AppActions is the application surface the input layer drives. Window-level
// actions have dedicated methods; everything else routes to the viewer.
type AppActions interface {
	ViewerAction(name, params string) error
	ToggleFullscreen()
	ToggleInfo()
	DragPan(dx, dy int)
}

// splitAction separates an action string into its name and parameters.
func splitAction(action string) (name, params string) {
	name, params, _ = strings.Cut(action, " ")
	return name, params
}

// ActionExecutor provides centralized action execution logic
// This eliminates the need for duplicate ExecuteAction implementations
// in both KeybindingManager and MousebindingManager
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the AppActions interface
// This is the single source of truth for all action execution logic
func (ae *ActionExecutor) ExecuteAction(action string, app AppActions) error {
	name, params := splitAction(action)
	switch name {
	case "fullscreen":
		app.ToggleFullscreen()
	case "info":
		app.ToggleInfo()
	default:
		return app.ViewerAction(name, params)
	}
	return nil
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
