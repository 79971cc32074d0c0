// Package camera provides a 2D camera for viewing the board.
package camera

import "math"

// Camera controls the viewport onto a bounded board drawn as square cells.
// World coordinates are pixels at zoom 1: cell (x, y) spans
// [x*CellSize, (x+1)*CellSize) horizontally, likewise vertically.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Board size in cells and the cell edge length at zoom 1
	Cols, Rows int
	CellSize   float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera that fits the whole board into the viewport.
func New(viewportW, viewportH float32, cols, rows int, cellSize float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		Cols:      cols,
		Rows:      rows,
		CellSize:  cellSize,
		MaxZoom:   8.0,
	}
	c.updateMinZoom()
	c.Reset()
	return c
}

// WorldW returns the board width in world coordinates.
func (c *Camera) WorldW() float32 { return float32(c.Cols) * c.CellSize }

// WorldH returns the board height in world coordinates.
func (c *Camera) WorldH() float32 { return float32(c.Rows) * c.CellSize }

// FitZoom returns the zoom at which the whole board just fits the viewport.
func (c *Camera) FitZoom() float32 {
	fitX := c.ViewportW / c.WorldW()
	fitY := c.ViewportH / c.WorldH()
	if fitY < fitX {
		return fitY
	}
	return fitX
}

// updateMinZoom lets the board shrink to a quarter of the fitted size.
func (c *Camera) updateMinZoom() {
	c.MinZoom = c.FitZoom() / 4
	if c.MinZoom > 1 {
		c.MinZoom = 1
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// ScreenToCell returns the cell under a screen point, or false when the
// point lies outside the board.
func (c *Camera) ScreenToCell(sx, sy float32) (x, y int, ok bool) {
	wx, wy := c.ScreenToWorld(sx, sy)
	if wx < 0 || wy < 0 {
		return 0, 0, false
	}
	x = int(wx / c.CellSize)
	y = int(wy / c.CellSize)
	if x >= c.Cols || y >= c.Rows {
		return 0, 0, false
	}
	return x, y, true
}

// CellRect returns the on-screen rectangle of a cell.
func (c *Camera) CellRect(x, y int) (sx, sy, size float32) {
	sx, sy = c.WorldToScreen(float32(x)*c.CellSize, float32(y)*c.CellSize)
	return sx, sy, c.CellSize * c.Zoom
}

// IsVisible returns true if any part of the given world rectangle is on screen.
func (c *Camera) IsVisible(wx, wy, w, h float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+w >= minX && wx <= maxX && wy+h >= minY && wy <= maxY
}

// VisibleCells returns the range of cells at least partly on screen,
// clamped to the board: columns [x0, x1) and rows [y0, y1).
func (c *Camera) VisibleCells() (x0, y0, x1, y1 int) {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	x0 = clampInt(int(math.Floor(float64(minX/c.CellSize))), 0, c.Cols)
	y0 = clampInt(int(math.Floor(float64(minY/c.CellSize))), 0, c.Rows)
	x1 = clampInt(int(math.Ceil(float64(maxX/c.CellSize))), 0, c.Cols)
	y1 = clampInt(int(math.Ceil(float64(maxY/c.CellSize))), 0, c.Rows)
	return x0, y0, x1, y1
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateMinZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera by the given delta in screen pixels.
// The center stays on the board.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.WorldW())
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.WorldH())
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = clamp(c.X+wx-nx, 0, c.WorldW())
	c.Y = clamp(c.Y+wy-ny, 0, c.WorldH())
}

// Reset centers the board and zooms to fit it.
func (c *Camera) Reset() {
	c.X = c.WorldW() / 2
	c.Y = c.WorldH() / 2
	c.SetZoom(c.FitZoom())
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func clampInt(x, min, max int) int {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
