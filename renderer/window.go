package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"

	"github.com/pthm-cable/slabview/camera"
	"github.com/pthm-cable/slabview/surface"
)

// ringSegments is the polygon resolution of concentration rings.
const ringSegments = 24

// Window draws the scene with raylib inside a viewport rectangle.
type Window struct {
	background  rl.Color
	stroke      rl.Color
	strokeWidth float32
}

// NewWindow creates a raylib scene renderer.
func NewWindow(style Style) *Window {
	return &Window{
		background:  toRL(style.Background),
		stroke:      toRL(style.Stroke),
		strokeWidth: float32(style.StrokeWidth),
	}
}

// Draw renders every visible element through cam, clipped to viewport.
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func (w *Window) Draw(scene *surface.Scene, cam *camera.Camera, viewport rl.Rectangle) {
	rl.BeginScissorMode(int32(viewport.X), int32(viewport.Y), int32(viewport.Width), int32(viewport.Height))
	defer rl.EndScissorMode()

	rl.DrawRectangleRec(viewport, w.background)

	rl.BeginMode2D(rl.Camera2D{
		Offset: rl.Vector2{X: viewport.X + viewport.Width/2, Y: viewport.Y + viewport.Height/2},
		Target: rl.Vector2{X: cam.X, Y: cam.Y},
		Zoom:   cam.Zoom,
	})
	defer rl.EndMode2D()

	// Strokes stay at least one screen pixel wide
	lw := w.strokeWidth
	if px := 1 / cam.Zoom; lw < px {
		lw = px
	}

	scene.Each(func(_ int64, v surface.Visual) {
		if !cam.IsVisible(float32(v.Pos.X), float32(v.Pos.Y), extent(v)) {
			return
		}
		w.drawVisual(v, lw)
	})
}

func (w *Window) drawVisual(v surface.Visual, lw float32) {
	fill := toRL(v.Fill)
	sh := v.Shape
	tip := vec(v.Pos, sh.Tip)
	left := vec(v.Pos, sh.Left)
	right := vec(v.Pos, sh.Right)

	if sh.RingRadius > 0 {
		c := vec(v.Pos, sh.RingCenter)
		r := float32(sh.RingRadius)
		rl.DrawCircleV(c, r, fill)
		rl.DrawRing(c, max(r-lw/2, 0), r+lw/2, 0, 360, ringSegments, w.stroke)
	}

	// Left sits clockwise of the tip on screen, so tip, right, left is counter-clockwise
	rl.DrawTriangle(tip, right, left, fill)
	rl.DrawLineEx(tip, left, lw, w.stroke)
	rl.DrawLineEx(left, right, lw, w.stroke)
	rl.DrawLineEx(right, tip, lw, w.stroke)
}

// extent is a conservative radius around the anchor covering the whole glyph.
func extent(v surface.Visual) float32 {
	sh := v.Shape
	r := sh.ArrowLength() + 2*sh.RingRadius
	if l := sh.Left.Length(); l > r {
		r = l
	}
	return float32(r)
}

func vec(origin, local gg.Point) rl.Vector2 {
	return rl.Vector2{X: float32(origin.X + local.X), Y: float32(origin.Y + local.Y)}
}

func toRL(c gg.RGBA) rl.Color {
	n := nrgba(c)
	return rl.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
