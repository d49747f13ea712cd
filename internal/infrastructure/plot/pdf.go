package plot

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// pngToPDF wraps an already-rendered PNG in a single-page PDF whose page
// matches the image dimensions at 96 DPI.
func pngToPDF(data []byte, widthPx, heightPx int) ([]byte, error) {
	widthPt := float64(widthPx) * 72.0 / 96.0
	heightPt := float64(heightPx) * 72.0 / 96.0

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: widthPt, Ht: heightPt},
	})
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("plot", opts, bytes.NewReader(data))
	pdf.ImageOptions("plot", 0, 0, widthPt, heightPt, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return out.Bytes(), nil
}
