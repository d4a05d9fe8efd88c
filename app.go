package main

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"

	"github.com/pthm-cable/slabview/camera"
	"github.com/pthm-cable/slabview/config"
	"github.com/pthm-cable/slabview/particle"
	"github.com/pthm-cable/slabview/renderer"
	"github.com/pthm-cable/slabview/surface"
	"github.com/pthm-cable/slabview/ui"
	"github.com/pthm-cable/slabview/view"
)

const helpText = "[RMB] pan  [wheel] zoom  [R] reset  [P] save"

// runWindow opens the interactive view and blocks until it is closed.
func runWindow(cfg *config.Config, v *view.View, brush *ui.BrushState, style renderer.Style, outPath string) {
	screenW, screenH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	panelW := int32(cfg.Screen.PanelWidth)

	rl.InitWindow(screenW, screenH, "Slab View")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	canvasW, canvasH := cfg.CanvasSize()
	viewport := rl.Rectangle{X: 0, Y: 0, Width: float32(canvasW), Height: float32(canvasH)}

	scene := surface.NewScene(cfg.Derived.Transition)
	v.Attach(scene, canvasW, canvasH)

	cam := camera.New(viewport.Width, viewport.Height, float32(canvasW), float32(canvasH))
	win := renderer.NewWindow(style)
	panel := ui.NewBrushPanel(brush, screenW-panelW, 0, panelW)
	readout := ui.NewReadout(screenW-panelW, panelW)
	chrome := ui.NewRenderer()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Tick(time.Duration(rl.GetFrameTime() * float32(time.Second)))
		v.Perf().RecordFrame()

		handleCameraInput(cam, viewport)
		hovered := hoveredParticle(v, scene, cam, viewport)
		if rl.IsKeyPressed(rl.KeyP) {
			if err := saveFrame(outPath, scene, int(canvasW), int(canvasH), style); err != nil {
				slog.Error("failed to save frame", "error", err)
			} else {
				slog.Info("frame saved", "path", outPath)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		win.Draw(scene, cam, viewport)

		chrome.DrawPanel(screenW-panelW, 0, panelW, screenH)
		ev, y := panel.Draw()
		data := readoutData(v, cam)
		data.Hovered = hovered
		readout.Draw(y, data)
		readout.DrawHelp(screenH, helpText)

		rl.EndDrawing()

		applyBrush(v, brush, ev)
	}
}

// applyBrush forwards panel edits to the view.
func applyBrush(v *view.View, b *ui.BrushState, ev ui.BrushEvent) {
	if ev.Brush {
		v.SetBrush(b.Axis, b.Coord, b.Thickness, b.Accessor())
	}
	if ev.Threshold {
		v.SetThreshold(b.Threshold)
	}
}

// handleCameraInput pans with the right mouse button and zooms with the wheel.
func handleCameraInput(cam *camera.Camera, viewport rl.Rectangle) {
	mouse := rl.GetMousePosition()
	if !rl.CheckCollisionPointRec(mouse, viewport) {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X, -d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / factor
		}
		cam.ZoomAt(mouse.X-viewport.X, mouse.Y-viewport.Y, factor)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		cam.Reset()
	}
}

// hoveredParticle returns the drawn particle under the mouse, if any.
func hoveredParticle(v *view.View, scene *surface.Scene, cam *camera.Camera, viewport rl.Rectangle) *particle.Particle {
	mouse := rl.GetMousePosition()
	if !rl.CheckCollisionPointRec(mouse, viewport) {
		return nil
	}
	cx, cy := cam.ScreenToCanvas(mouse.X-viewport.X, mouse.Y-viewport.Y)
	// Max hover distance, at least a few screen pixels
	reach := max(v.LastPass().Radius, float64(6/cam.Zoom))
	id, ok := scene.Pick(gg.Pt(float64(cx), float64(cy)), reach)
	if !ok {
		return nil
	}
	p, ok := v.Particle(id)
	if !ok {
		return nil
	}
	return &p
}

func readoutData(v *view.View, cam *camera.Camera) ui.ReadoutData {
	p := v.Props()
	vertical := particle.Plane(p.BrushedAxis).B
	data := ui.ReadoutData{
		Pass:         v.LastPass(),
		Perf:         v.Perf().Stats(),
		ColorRange:   p.ColorRange,
		VerticalAxis: vertical.String(),
		Zoom:         cam.Zoom,
	}
	if p.Bounds != nil {
		data.ColorLo, data.ColorHi = p.Bounds.Extent(vertical)
	}
	return data
}
