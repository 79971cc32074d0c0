package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/monsters/grid"
)

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.stepOnce()
	}

	// Ticks per frame, halved or doubled with < > (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && a.speed > 1 {
		a.speed /= 2
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && a.speed < MaxSpeed {
		a.speed *= 2
	}

	if rl.IsKeyPressed(rl.KeyC) {
		a.copyInfo()
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.inspector.Deselect()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		a.overlays.HandleKeyPress(key)
	}

	a.handleCameraInput()
	a.handleMouse()
}

// handleResize propagates window size changes.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == a.screenW && h == a.screenH {
		return
	}
	a.screenW = w
	a.screenH = h

	a.camera.Resize(w, h)
	a.inspector.Resize(int32(w))
	a.perf.SetPosition(10, int32(h)-140)
}

// handleCameraInput processes camera pan/zoom controls.
func (a *App) handleCameraInput() {
	panSpeed := float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		a.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.camera.Pan(0, -panSpeed)
	}

	// Zoom toward the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		a.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}
	if rl.IsKeyDown(rl.KeyEqual) {
		a.camera.ZoomBy(1.02)
	}
	if rl.IsKeyDown(rl.KeyMinus) {
		a.camera.ZoomBy(0.98)
	}

	// Drag with the middle button
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		delta := rl.GetMouseDelta()
		a.camera.Pan(-delta.X, -delta.Y)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		a.camera.Reset()
	}
}

// handleMouse tracks the hovered cell. A left click on a monster toggles
// whether it is followed and shows it in the inspector; a right click
// clears the selection.
func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	x, y, ok := a.camera.ScreenToCell(mouse.X, mouse.Y)
	a.hover, a.hasHover = grid.C(x, y), ok

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		a.inspector.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mx, my := int32(mouse.X), int32(mouse.Y)
	if a.inspector.HandleClick(mx, my) {
		return
	}
	if a.overlays.IsEnabled(OverlayHelp) && a.controls.Contains(mx, my) {
		return
	}

	e, ok := a.hoveredMonster()
	if !ok {
		return
	}
	a.game.ToggleFollowed(e)
	a.inspector.Select(e)
}
