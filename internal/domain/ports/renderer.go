package ports

import (
	"context"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
)

type PlotVariant string

const (
	PlotOutsideTempHistogram PlotVariant = "a"
	PlotTempComparison       PlotVariant = "b"
	PlotAllDistributions     PlotVariant = "c"
)

type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatSVG ImageFormat = "svg"
	FormatPDF ImageFormat = "pdf"
)

type PlotRenderer interface {
	// Render draws one of the three fixed report variants over the flattened
	// reading set and returns the encoded image with its content type.
	Render(ctx context.Context, variant PlotVariant, format ImageFormat, readings []entities.SensorRecord) ([]byte, string, error)
}
