package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsBoard(t *testing.T) {
	// 64x36 cells of 20px is 1280x720, the viewport size
	cam := New(1280, 720, 64, 36, 20)

	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected camera at (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.MinZoom != 0.25 {
		t.Errorf("expected MinZoom 0.25, got %f", cam.MinZoom)
	}
}

func TestFitZoomLimitingDimension(t *testing.T) {
	// Board is 1600x400 world units; width limits the fit
	cam := New(800, 600, 80, 20, 20)

	if !near(cam.FitZoom(), 0.5) {
		t.Errorf("expected fit zoom 0.5, got %f", cam.FitZoom())
	}
	if !near(cam.Zoom, 0.5) {
		t.Errorf("expected initial zoom 0.5, got %f", cam.Zoom)
	}
	visibleW := cam.ViewportW / cam.Zoom
	if !near(visibleW, cam.WorldW()) {
		t.Errorf("at fit zoom, visible width %f should equal board width %f", visibleW, cam.WorldW())
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)

	sx, sy := cam.WorldToScreen(640, 360)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)
	cam.SetZoom(2.5)
	cam.Pan(120, -40)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestScreenToCell(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)

	tests := []struct {
		sx, sy float32
		x, y   int
		ok     bool
	}{
		{0, 0, 0, 0, true},
		{19.9, 19.9, 0, 0, true},
		{20, 0, 1, 0, true},
		{645, 365, 32, 18, true},
		{1279, 719, 63, 35, true},
	}
	for _, tt := range tests {
		x, y, ok := cam.ScreenToCell(tt.sx, tt.sy)
		if ok != tt.ok || x != tt.x || y != tt.y {
			t.Errorf("ScreenToCell(%v,%v) = (%d,%d,%v), want (%d,%d,%v)", tt.sx, tt.sy, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}

	cam.SetZoom(0.5)
	if _, _, ok := cam.ScreenToCell(10, 10); ok {
		t.Error("point left of the zoomed-out board should be off the board")
	}
	if _, _, ok := cam.ScreenToCell(1270, 700); ok {
		t.Error("point right of the zoomed-out board should be off the board")
	}
}

func TestCellRect(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)
	cam.SetZoom(2)

	// The center cell's corner sits at the screen center
	sx, sy, size := cam.CellRect(32, 18)
	if !near(sx, 640) || !near(sy, 360) || !near(size, 40) {
		t.Errorf("CellRect = (%f,%f,%f), want (640,360,40)", sx, sy, size)
	}
}

func TestPanClampsToBoard(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)

	cam.Pan(-5000, 0)
	if cam.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", cam.X)
	}
	cam.Pan(0, 5000)
	if cam.Y != 720 {
		t.Errorf("expected Y clamped to 720, got %f", cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)

	cam.SetZoom(0.1)
	if cam.Zoom != 0.25 {
		t.Errorf("expected zoom clamped to 0.25, got %f", cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != 8.0 {
		t.Errorf("expected zoom clamped to 8.0, got %f", cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)

	wx, wy := cam.ScreenToWorld(900, 500)
	cam.ZoomAt(900, 500, 2)
	gx, gy := cam.ScreenToWorld(900, 500)
	if !near(wx, gx) || !near(wy, gy) {
		t.Errorf("point under cursor moved from (%f,%f) to (%f,%f)", wx, wy, gx, gy)
	}
}

func TestVisibleCells(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)

	x0, y0, x1, y1 := cam.VisibleCells()
	if x0 != 0 || y0 != 0 || x1 != 64 || y1 != 36 {
		t.Errorf("fitted view should show the whole board, got [%d,%d)x[%d,%d)", x0, x1, y0, y1)
	}

	cam.SetZoom(4)
	x0, y0, x1, y1 = cam.VisibleCells()
	if x0 != 24 || x1 != 40 || y0 != 13 || y1 != 23 {
		t.Errorf("zoomed view = [%d,%d)x[%d,%d), want [24,40)x[13,23)", x0, x1, y0, y1)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)
	cam.SetZoom(2)

	// Visible world range: (320, 180) to (960, 540)
	if !cam.IsVisible(640, 360, 20, 20) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(1000, 600, 20, 20) {
		t.Error("far cell should not be visible")
	}
	if !cam.IsVisible(310, 360, 20, 20) {
		t.Error("cell straddling the edge should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 64, 36, 20)
	cam.Pan(300, 200)
	cam.SetZoom(3)

	cam.Reset()

	if cam.X != 640 || cam.Y != 360 {
		t.Errorf("expected position (640, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
