package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(800, 800, 800, 600)

	// Should be centered on canvas
	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("expected camera at (400, 300), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestCanvasToScreenCentered(t *testing.T) {
	cam := New(800, 600, 800, 600)

	sx, sy := cam.CanvasToScreen(400, 300)
	if !near(sx, 400) || !near(sy, 300) {
		t.Errorf("expected screen center (400, 300), got (%f, %f)", sx, sy)
	}

	// Identity at 1:1 with matching sizes
	sx, sy = cam.CanvasToScreen(10, 20)
	if !near(sx, 10) || !near(sy, 20) {
		t.Errorf("expected (10, 20), got (%f, %f)", sx, sy)
	}
}

func TestScreenToCanvasRoundtrip(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(2.5)
	cam.Pan(37, -12)

	testCases := []struct{ sx, sy float32 }{
		{400, 300}, // center
		{10, 10},   // top-left
		{790, 590}, // bottom-right
	}

	for _, tc := range testCases {
		cx, cy := cam.ScreenToCanvas(tc.sx, tc.sy)
		sx, sy := cam.CanvasToScreen(cx, cy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, cx, cy, sx, sy)
		}
	}
}

func TestPanClampsToCanvas(t *testing.T) {
	cam := New(800, 600, 800, 600)

	cam.Pan(-5000, 5000)
	if cam.X != 0 || cam.Y != 600 {
		t.Errorf("expected center clamped to (0, 600), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestPanScalesWithZoom(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(2)
	cam.Pan(100, 0)

	if !near(cam.X, 450) {
		t.Errorf("expected 100px pan at 2x to move 50 canvas units, got X=%f", cam.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 800, 600)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(800, 600, 800, 600)

	cx, cy := cam.ScreenToCanvas(200, 150)
	cam.ZoomAt(200, 150, 2)
	sx, sy := cam.CanvasToScreen(cx, cy)
	if !near(sx, 200) || !near(sy, 150) {
		t.Errorf("expected anchor to stay at (200, 150), got (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.SetZoom(4)

	if !cam.IsVisible(400, 300, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(10, 10, 1) {
		t.Error("corner should be culled at 4x zoom")
	}
	if !cam.IsVisible(400+100+4, 300, 5) {
		t.Error("circle overlapping the edge should be visible")
	}
}

func TestResizeKeepsRelativeCenter(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.Pan(-200, 0) // X = 200, a quarter of the width

	cam.Resize(1600, 1200, 1600, 1200)
	if !near(cam.X, 400) || !near(cam.Y, 600) {
		t.Errorf("expected (400, 600), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestReset(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.Pan(123, 45)
	cam.SetZoom(3)
	cam.Reset()

	if cam.X != 400 || cam.Y != 300 || cam.Zoom != 1 {
		t.Errorf("expected reset to (400, 300) at 1x, got (%f, %f) at %f", cam.X, cam.Y, cam.Zoom)
	}
}
