package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// Slideshow pause bounds in seconds
const (
	defaultSlideshowTime = 3
	maxSlideshowTime     = 3600
)

type Config struct {
	WindowWidth      int                 `json:"window_width"`
	WindowHeight     int                 `json:"window_height"`
	Fullscreen       bool                `json:"fullscreen"`
	Scale            string              `json:"scale"`             // initial scale mode
	Position         string              `json:"position"`          // image anchor within the window
	FixedPosition    bool                `json:"fixed_position"`    // pin the image to the window
	KeepZoom         bool                `json:"keep_zoom"`         // carry scale across image changes
	AntiAliasing     string              `json:"antialiasing"`      // sampling filter
	WindowBackground string              `json:"window_background"` // hex color
	ImageBackground  string              `json:"image_background"`  // "grid" or hex color
	Slideshow        bool                `json:"slideshow"`
	SlideshowTime    int                 `json:"slideshow_time"` // seconds
	Animation        bool                `json:"animation"`
	Loop             bool                `json:"loop"`
	ShowInfo         bool                `json:"show_info"`
	SortMethod       int                 `json:"sort_method"`
	CacheSize        int                 `json:"cache_size"`
	PreloadEnabled   bool                `json:"preload_enabled"`
	PreloadCount     int                 `json:"preload_count"`
	Keybindings      map[string][]string `json:"keybindings"`
	Mousebindings    map[string][]string `json:"mousebindings"`
	Mouse            MouseSettings       `json:"mouse"`
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Warning", "Error"
}

func defaultConfig() Config {
	return Config{
		WindowWidth:      defaultWidth,
		WindowHeight:     defaultHeight,
		Fullscreen:       false,
		Scale:            "optimal",
		Position:         "center",
		FixedPosition:    true,
		KeepZoom:         false,
		AntiAliasing:     "nearest",
		WindowBackground: "#000000",
		ImageBackground:  "grid",
		Slideshow:        false,
		SlideshowTime:    defaultSlideshowTime,
		Animation:        true,
		Loop:             true,
		ShowInfo:         false,
		SortMethod:       SortNatural,
		CacheSize:        16,
		PreloadEnabled:   true,
		PreloadCount:     4,
		Keybindings:      GetDefaultKeybindings(),
		Mousebindings:    GetDefaultMousebindings(),
		Mouse:            GetDefaultMouseSettings(),
	}
}

func getConfigPath() string {
	path, err := xdg.ConfigFile("iv/config.json")
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "iv.json"
		}
		return filepath.Join(homeDir, ".iv.json")
	}
	return path
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		// Invalid config file - log warning and use defaults
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		// Keep default config values
		return result
	}

	// Validate minimum size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate scale mode, anchor and filter names
	if _, ok := ParseScaleMode(config.Scale); !ok {
		log.Printf("Warning: Unknown scale mode %q, using optimal", config.Scale)
		config.Scale = "optimal"
	}
	if _, ok := ParseAnchor(config.Position); !ok {
		log.Printf("Warning: Unknown position %q, using center", config.Position)
		config.Position = "center"
	}
	if _, ok := ParseAAMode(config.AntiAliasing); !ok {
		log.Printf("Warning: Unknown anti-aliasing filter %q, using nearest", config.AntiAliasing)
		config.AntiAliasing = "nearest"
	}

	// Validate background colors
	if _, err := parseHexColor(config.WindowBackground); err != nil {
		log.Printf("Warning: Invalid window background %q: %v", config.WindowBackground, err)
		config.WindowBackground = "#000000"
	}
	if config.ImageBackground != "grid" {
		if _, err := parseHexColor(config.ImageBackground); err != nil {
			log.Printf("Warning: Invalid image background %q: %v", config.ImageBackground, err)
			config.ImageBackground = "grid"
		}
	}

	// Validate slideshow pause (1s..1h)
	if config.SlideshowTime < 1 || config.SlideshowTime > maxSlideshowTime {
		config.SlideshowTime = defaultSlideshowTime
	}

	// Validate sort method
	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		// Fill in missing keybindings with defaults
		defaults := GetDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		// Validate keybindings and resolve conflicts
		if err := validateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	// Fill in missing mouse bindings with defaults
	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		defaults := GetDefaultMousebindings()
		for action, defaultMouse := range defaults {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaultMouse
			}
		}
	}

	// Validate mouse settings
	if config.Mouse.WheelSensitivity <= 0 {
		config.Mouse.WheelSensitivity = 1.0
	}
	if config.Mouse.DoubleClickTime <= 0 {
		config.Mouse.DoubleClickTime = 300
	}
	if config.Mouse.DragThreshold <= 0 {
		config.Mouse.DragThreshold = 5
	}
	if config.Mouse.DragSensitivity <= 0 {
		config.Mouse.DragSensitivity = 1.0
	}

	// Update the result with the final config
	result.Config = config
	return result
}

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	// Check for valid key formats and detect conflicts
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			// Validate key format
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}

			// Check for conflicts
			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 {
		return fmt.Errorf("empty key string")
	}

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	// Check modifiers
	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns a set of valid key names
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	strategy := GetSortStrategy(sortMethod)
	return strategy.Name()
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		log.Printf("Error: Failed to create config directory: %v", err)
		return
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
