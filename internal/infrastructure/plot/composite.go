package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
)

// compositePNG renders each panel to its own PNG and tiles them into a
// 2x2 grid sized by the configured plot dimensions.
func (r *ChartRenderer) compositePNG(panels []*chart.Chart) ([]byte, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, r.cfg.Width, r.cfg.Height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for i, panel := range panels {
		var buf bytes.Buffer
		if err := panel.Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("failed to render panel %d: %w", i, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return nil, fmt.Errorf("failed to decode panel %d: %w", i, err)
		}

		offsetX := (i % 2) * (r.cfg.Width / 2)
		offsetY := (i / 2) * (r.cfg.Height / 2)
		target := img.Bounds().Add(image.Pt(offsetX, offsetY))
		draw.Draw(canvas, target, img, img.Bounds().Min, draw.Src)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode composite png: %w", err)
	}
	return out.Bytes(), nil
}

// compositeSVG nests each panel's SVG document inside an outer <svg>
// element, positioned by quadrant via injected x/y attributes.
func (r *ChartRenderer) compositeSVG(panels []*chart.Chart) ([]byte, error) {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, r.cfg.Width, r.cfg.Height)

	for i, panel := range panels {
		var buf bytes.Buffer
		if err := panel.Render(chart.SVG, &buf); err != nil {
			return nil, fmt.Errorf("failed to render panel %d: %w", i, err)
		}

		doc := buf.String()
		start := strings.Index(doc, "<svg")
		if start < 0 {
			return nil, fmt.Errorf("panel %d produced no svg root element", i)
		}
		doc = doc[start:]

		offsetX := (i % 2) * (r.cfg.Width / 2)
		offsetY := (i / 2) * (r.cfg.Height / 2)
		doc = strings.Replace(doc, "<svg", fmt.Sprintf(`<svg x="%d" y="%d"`, offsetX, offsetY), 1)
		out.WriteString(doc)
	}

	out.WriteString("</svg>")
	return out.Bytes(), nil
}
