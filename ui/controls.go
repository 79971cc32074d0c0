package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSpeed is the largest number of ticks run per frame.
const MaxSpeed = 64

// ControlEvents reports what the user did in the controls panel this frame.
type ControlEvents struct {
	TogglePause bool
	Step        bool
	ResetView   bool
	Speed       int // New ticks per frame, or 0 if unchanged
}

// ControlsPanel renders the simulation controls and the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Contains reports whether a screen point lies on the panel.
func (c *ControlsPanel) Contains(x, y int32) bool {
	return x >= c.x && x <= c.x+c.width && y >= c.y && y <= c.y+c.height
}

// Draw renders the panel and returns the user's actions.
func (c *ControlsPanel) Draw(paused bool, speed int, overlays *OverlayRegistry) ControlEvents {
	var ev ControlEvents

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	toggles := 0
	categories := overlays.Categories()
	for _, cat := range categories {
		toggles += len(overlays.ByCategory(cat)) + 1
	}
	c.height = padding*2 + lineHeight + 36 + 44 + int32(toggles)*lineHeight + int32(len(categories))*4
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := float32(c.x + padding)
	y := c.y + padding

	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	btnW := float32(c.width-padding*4) / 3
	label := "Pause"
	if paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: btnW, Height: 24}, label) {
		ev.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + btnW + float32(padding), Y: float32(y), Width: btnW, Height: 24}, "Step") {
		ev.Step = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(btnW+float32(padding)), Y: float32(y), Width: btnW, Height: 24}, "Fit") {
		ev.ResetView = true
	}
	y += 32

	rl.DrawText(fmt.Sprintf("Speed: %dx", speed), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: float32(y), Width: float32(c.width-padding*2) - 50, Height: 16},
		"1", fmt.Sprint(MaxSpeed),
		float32(speed), 1, MaxSpeed,
	)
	if s := int(newSpeed + 0.5); s != speed {
		ev.Speed = s
	}
	y += 28

	for _, category := range categories {
		rl.DrawText(category, c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return ev
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}
