package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayGrid     OverlayID = "grid"
	OverlayHP       OverlayID = "hp"
	OverlayFollowed OverlayID = "followed"
	OverlayGenomes  OverlayID = "genomes"
	OverlayPerf     OverlayID = "perf"
	OverlayHelp     OverlayID = "help"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID // Unique identifier
	Name        string    // Display name
	Description string    // What this overlay shows
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display (e.g., "G")
	Category    string    // Grouping (e.g., "board", "panels")
	Default     bool      // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Grid",
		Description: "Draw cell borders",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "board",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayHP,
		Name:        "HP Colors",
		Description: "Color monsters by hit points",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "board",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayFollowed,
		Name:        "Followed",
		Description: "Outline followed monsters",
		Key:         rl.KeyO,
		KeyLabel:    "O",
		Category:    "board",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayGenomes,
		Name:        "Genomes",
		Description: "Show the most common genomes",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "panels",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Show tick phase timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "panels",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayHelp,
		Name:        "Controls",
		Description: "Show the controls panel",
		Key:         rl.KeyTab,
		KeyLabel:    "Tab",
		Category:    "panels",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
