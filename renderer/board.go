// Package renderer draws the board with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/monsters/camera"
	"github.com/pthm-cable/monsters/components"
	"github.com/pthm-cable/monsters/game"
)

// BoardView selects what the board renderer shows.
type BoardView struct {
	ShowGrid     bool // Cell borders, drawn only when cells are large enough
	ShowHP       bool // Color monsters by HP instead of their inherited color
	ShowFollowed bool // Outline followed monsters
	MaxHP        int  // HP that maps to full green in HP mode
}

// BoardRenderer draws food and monsters as cells through a camera.
type BoardRenderer struct {
	Background rl.Color
	Surface    rl.Color
	FoodColor  rl.Color
	GridColor  rl.Color
	FollowRing rl.Color
}

// NewBoardRenderer creates a renderer with the default palette.
func NewBoardRenderer() *BoardRenderer {
	return &BoardRenderer{
		Background: rl.Color{R: 12, G: 14, B: 18, A: 255},
		Surface:    rl.Color{R: 28, G: 32, B: 38, A: 255},
		FoodColor:  rl.Color{R: 70, G: 150, B: 60, A: 255},
		GridColor:  rl.Color{R: 45, G: 50, B: 58, A: 255},
		FollowRing: rl.Color{R: 255, G: 255, B: 255, A: 255},
	}
}

// Draw renders the board. Call between BeginDrawing and EndDrawing.
func (b *BoardRenderer) Draw(g *game.Game, cam *camera.Camera, view BoardView) {
	rl.ClearBackground(b.Background)

	// Board surface
	sx, sy, size := cam.CellRect(0, 0)
	rl.DrawRectangleRec(rl.Rectangle{
		X:      sx,
		Y:      sy,
		Width:  size * float32(g.Width()),
		Height: size * float32(g.Height()),
	}, b.Surface)

	for at, occ := range g.Cells() {
		wx := float32(at.X) * cam.CellSize
		wy := float32(at.Y) * cam.CellSize
		if !cam.IsVisible(wx, wy, cam.CellSize, cam.CellSize) {
			continue
		}
		x, y, s := cam.CellRect(at.X, at.Y)

		if occ.IsFood() {
			inset := s * 0.3
			rl.DrawRectangleRec(rl.Rectangle{X: x + inset, Y: y + inset, Width: s - 2*inset, Height: s - 2*inset}, b.FoodColor)
			continue
		}

		m, ok := g.Monster(occ.Monster)
		if !ok {
			continue
		}
		color := toRL(m.Color)
		if view.ShowHP {
			color = HPColor(m.HP, view.MaxHP)
		}
		inset := s * 0.08
		cell := rl.Rectangle{X: x + inset, Y: y + inset, Width: s - 2*inset, Height: s - 2*inset}
		rl.DrawRectangleRec(cell, color)

		if view.ShowFollowed && m.Followed {
			rl.DrawRectangleLinesEx(cell, max(1, s*0.1), b.FollowRing)
		}
	}

	if view.ShowGrid && size >= 8 {
		b.drawGrid(cam)
	}
}

// drawGrid draws cell borders over the visible part of the board.
func (b *BoardRenderer) drawGrid(cam *camera.Camera) {
	x0, y0, x1, y1 := cam.VisibleCells()
	left, top, _ := cam.CellRect(x0, y0)
	right, bottom, _ := cam.CellRect(x1, y1)

	for x := x0; x <= x1; x++ {
		sx, _, _ := cam.CellRect(x, 0)
		rl.DrawLineV(rl.Vector2{X: sx, Y: top}, rl.Vector2{X: sx, Y: bottom}, b.GridColor)
	}
	for y := y0; y <= y1; y++ {
		_, sy, _ := cam.CellRect(0, y)
		rl.DrawLineV(rl.Vector2{X: left, Y: sy}, rl.Vector2{X: right, Y: sy}, b.GridColor)
	}
}

// DrawHover outlines the cell under the cursor.
func (b *BoardRenderer) DrawHover(cam *camera.Camera, x, y int) {
	sx, sy, s := cam.CellRect(x, y)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: s, Height: s}, 1, rl.Color{R: 200, G: 200, B: 200, A: 160})
}

// HPColor maps HP onto a red to green ramp; maxHP and above is full green.
func HPColor(hp, maxHP int) rl.Color {
	t := float32(1)
	if maxHP > 0 {
		t = float32(hp) / float32(maxHP)
	}
	t = max(0, min(1, t))
	return rl.Color{
		R: uint8(220 * (1 - t)),
		G: uint8(60 + 160*t),
		B: 60,
		A: 255,
	}
}

func toRL(c components.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
