package renderer

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/slabview/surface"
)

// WriteSVG writes the scene as an SVG document, one path per element.
func WriteSVG(w io.Writer, scene *surface.Scene, width, height int, style Style) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(style.Background))
	fmt.Fprintf(bw, `<g stroke="%s" stroke-width="%g">`+"\n", hexColor(style.Stroke), style.StrokeWidth)
	scene.Each(func(id int64, v surface.Visual) {
		fmt.Fprintf(bw, `<path data-id="%d" transform="translate(%g,%g)" fill="%s" d="%s"/>`+"\n",
			id, v.Pos.X, v.Pos.Y, hexColor(v.Fill), v.Shape.SVG())
	})
	fmt.Fprint(bw, "</g>\n</svg>\n")
	return bw.Flush()
}

// SaveSVG writes the scene as an SVG file.
func SaveSVG(path string, scene *surface.Scene, width, height int, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteSVG(f, scene, width, height, style); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func hexColor(c gg.RGBA) string {
	n := nrgba(c)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
