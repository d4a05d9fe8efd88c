// Package renderer draws the glyph scene, headless through gg or on screen through raylib.
package renderer

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/slabview/surface"
)

// Style holds the colors shared by every renderer.
type Style struct {
	Background  gg.RGBA
	Stroke      gg.RGBA
	StrokeWidth float64
}

// DefaultStyle is a thin black outline on white.
func DefaultStyle() Style {
	return Style{
		Background:  gg.RGB(1, 1, 1),
		Stroke:      gg.RGB(0, 0, 0),
		StrokeWidth: 0.1,
	}
}

// Raster renders the scene into a gg context.
type Raster struct {
	style Style
}

// NewRaster creates a raster renderer.
func NewRaster(style Style) *Raster {
	return &Raster{style: style}
}

// Draw clears dc and paints every element in scene order.
// Returns the first rendering error.
func (r *Raster) Draw(dc *gg.Context, scene *surface.Scene) error {
	dc.ClearWithColor(r.style.Background)
	dc.SetLineWidth(r.style.StrokeWidth)

	var firstErr error
	scene.Each(func(id int64, v surface.Visual) {
		if err := r.drawVisual(dc, v); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("drawing element %d: %w", id, err)
		}
	})
	return firstErr
}

func (r *Raster) drawVisual(dc *gg.Context, v surface.Visual) error {
	dc.Push()
	defer dc.Pop()

	dc.Translate(v.Pos.X, v.Pos.Y)
	v.Shape.Draw(dc)

	f := v.Fill
	dc.SetRGBA(f.R, f.G, f.B, f.A)
	if err := dc.FillPreserve(); err != nil {
		dc.ClearPath()
		return err
	}
	s := r.style.Stroke
	dc.SetRGBA(s.R, s.G, s.B, s.A)
	return dc.Stroke()
}

// Render draws the scene into a new width x height context.
// The caller owns the returned context and must Close it.
func (r *Raster) Render(scene *surface.Scene, width, height int) (*gg.Context, error) {
	dc := gg.NewContext(width, height)
	if err := r.Draw(dc, scene); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

// SavePNG renders the scene and writes it to path.
func (r *Raster) SavePNG(scene *surface.Scene, width, height int, path string) error {
	dc, err := r.Render(scene, width, height)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// nrgba converts to 8-bit straight alpha.
func nrgba(c gg.RGBA) color.NRGBA {
	return color.NRGBAModel.Convert(c.Color()).(color.NRGBA)
}
