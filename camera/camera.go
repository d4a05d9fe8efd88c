// Package camera provides a 2D camera for inspecting the glyph canvas.
package camera

// Camera controls the viewport onto the canvas the glyphs are laid out on.
// Supports pan and zoom; the center is kept inside the canvas.
type Camera struct {
	// Position is the camera center in canvas coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen area the canvas is drawn into)
	ViewportW, ViewportH float32

	// Canvas dimensions
	CanvasW, CanvasH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the canvas with 1:1 zoom.
func New(viewportW, viewportH, canvasW, canvasH float32) *Camera {
	return &Camera{
		X:         canvasW / 2,
		Y:         canvasH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		CanvasW:   canvasW,
		CanvasH:   canvasH,
		MinZoom:   0.5,
		MaxZoom:   8.0,
	}
}

// CanvasToScreen converts canvas coordinates to viewport coordinates.
func (c *Camera) CanvasToScreen(cx, cy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (cx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (cy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToCanvas converts viewport coordinates to canvas coordinates.
func (c *Camera) ScreenToCanvas(sx, sy float32) (cx, cy float32) {
	cx = c.X + (sx-c.ViewportW/2)/c.Zoom
	cy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return cx, cy
}

// IsVisible returns true if a circle at (cx, cy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(cx, cy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(cx-c.X) <= halfW && absf(cy-c.Y) <= halfH
}

// Resize updates the viewport and canvas dimensions.
// The center is rescaled so the same part of the canvas stays in view.
func (c *Camera) Resize(viewportW, viewportH, canvasW, canvasH float32) {
	if canvasW > 0 && c.CanvasW > 0 {
		c.X *= canvasW / c.CanvasW
	}
	if canvasH > 0 && c.CanvasH > 0 {
		c.Y *= canvasH / c.CanvasH
	}
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.CanvasW, c.CanvasH = canvasW, canvasH
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the canvas point under (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	cx, cy := c.ScreenToCanvas(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToCanvas(sx, sy)
	c.X += cx - nx
	c.Y += cy - ny
	c.clampCenter()
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.CanvasW / 2
	c.Y = c.CanvasH / 2
	c.Zoom = 1.0
}

// VisibleBounds returns the canvas-coordinate bounds of the visible area.
func (c *Camera) VisibleBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

func (c *Camera) clampCenter() {
	c.X = clamp(c.X, 0, c.CanvasW)
	c.Y = clamp(c.Y, 0, c.CanvasH)
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
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
