package plot

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/maalberto-engineer/IoT-Data-Generator/config"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/ports"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/pkg/logger"
)

var (
	ErrNoReadings       = errors.New("no sensor readings to plot")
	ErrUnknownVariant   = errors.New("unknown plot variant")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

type ChartRenderer struct {
	cfg    config.PlotsConfig
	font   *truetype.Font
	logger logger.Logger
}

func NewChartRenderer(cfg config.PlotsConfig) (*ChartRenderer, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load chart font: %w", err)
	}
	return &ChartRenderer{
		cfg:    cfg,
		font:   font,
		logger: logger.New("info", "development").WithField("component", "plot_renderer"),
	}, nil
}

func (r *ChartRenderer) Render(
	ctx context.Context,
	variant ports.PlotVariant,
	format ports.ImageFormat,
	readings []entities.SensorRecord,
) ([]byte, string, error) {
	if len(readings) == 0 {
		return nil, "", ErrNoReadings
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	r.logger.Infof("Rendering plot %s as %s over %d readings", variant, format, len(readings))

	var (
		data []byte
		err  error
	)
	switch variant {
	case ports.PlotOutsideTempHistogram:
		data, err = r.renderSingle(r.outsideTempHistogram(readings), format)
	case ports.PlotTempComparison:
		data, err = r.renderSingle(r.temperatureComparison(readings), format)
	case ports.PlotAllDistributions:
		data, err = r.renderDistributionGrid(readings, format)
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	if err != nil {
		return nil, "", err
	}

	contentType, err := contentTypeFor(format)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

func contentTypeFor(format ports.ImageFormat) (string, error) {
	switch format {
	case ports.FormatPNG:
		return "image/png", nil
	case ports.FormatSVG:
		return "image/svg+xml", nil
	case ports.FormatPDF:
		return "application/pdf", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, format)
	}
}

// outsideTempHistogram is the single-field density view: outside temperature
// binned across the full reading set with its headline statistics overlaid.
func (r *ChartRenderer) outsideTempHistogram(readings []entities.SensorRecord) *chart.Chart {
	values := make([]float64, len(readings))
	for i := range readings {
		values[i] = readings[i].OutsideTemperature
	}

	hist := computeHistogram(values, r.cfg.HistogramBins)
	mean := stat.Mean(values, nil)
	std := sampleStdDev(values)

	graph := &chart.Chart{
		Title:  "Outside Temperature Distribution",
		Width:  r.cfg.Width,
		Height: r.cfg.Height,
		Font:   r.font,
		XAxis: chart.XAxis{
			Name: "Temperature (F)",
		},
		YAxis: chart.YAxis{
			Name: "Density",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Outside Temperature",
				XValues: hist.Centers,
				YValues: hist.Densities,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.5,
					FillColor:   chart.ColorBlue.WithAlpha(80),
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		r.annotationBlock([]string{
			fmt.Sprintf("Mean: %.2f", mean),
			fmt.Sprintf("Std Dev: %.2f", std),
			fmt.Sprintf("Range: %.2f - %.2f", minOf(values), maxOf(values)),
		}),
	}
	return graph
}

// temperatureComparison overlays outside and room temperature for the first
// slice of readings so the fixed room offset is visible sample by sample.
func (r *ChartRenderer) temperatureComparison(readings []entities.SensorRecord) *chart.Chart {
	n := len(readings)
	if r.cfg.ComparisonSamples > 0 && n > r.cfg.ComparisonSamples {
		n = r.cfg.ComparisonSamples
	}

	xs := make([]float64, n)
	outside := make([]float64, n)
	room := make([]float64, n)
	var sumDiff, maxDiff float64
	for i := 0; i < n; i++ {
		xs[i] = float64(i)
		outside[i] = readings[i].OutsideTemperature
		room[i] = readings[i].RoomTemperature
		diff := outside[i] - room[i]
		sumDiff += diff
		if diff > maxDiff {
			maxDiff = diff
		}
	}
	avgDiff := sumDiff / float64(n)

	graph := &chart.Chart{
		Title:  "Outside vs Room Temperature",
		Width:  r.cfg.Width,
		Height: r.cfg.Height,
		Font:   r.font,
		XAxis: chart.XAxis{
			Name: "Sample",
		},
		YAxis: chart.YAxis{
			Name: "Temperature (F)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Outside",
				XValues: xs,
				YValues: outside,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 1.0,
				},
			},
			chart.ContinuousSeries{
				Name:    "Room",
				XValues: xs,
				YValues: room,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.0,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(graph),
		r.annotationBlock([]string{
			fmt.Sprintf("Avg Difference: %.2f", avgDiff),
			fmt.Sprintf("Max Difference: %.2f", maxDiff),
		}),
	}
	return graph
}

// distributionPanel builds one quadrant of the all-fields grid.
func (r *ChartRenderer) distributionPanel(title string, values []float64, color chart.Style) *chart.Chart {
	hist := computeHistogram(values, r.cfg.GridBins)
	mean := stat.Mean(values, nil)
	std := sampleStdDev(values)

	graph := &chart.Chart{
		Title:  title,
		Width:  r.cfg.Width / 2,
		Height: r.cfg.Height / 2,
		Font:   r.font,
		YAxis: chart.YAxis{
			Name: "Density",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    title,
				XValues: hist.Centers,
				YValues: hist.Densities,
				Style:   color,
			},
		},
	}
	graph.Elements = []chart.Renderable{
		r.annotationBlock([]string{
			fmt.Sprintf("mean=%.2f  std=%.2f", mean, std),
			fmt.Sprintf("range %.2f - %.2f", minOf(values), maxOf(values)),
		}),
	}
	return graph
}

func (r *ChartRenderer) renderDistributionGrid(readings []entities.SensorRecord, format ports.ImageFormat) ([]byte, error) {
	outsideTemp := make([]float64, len(readings))
	outsideHum := make([]float64, len(readings))
	roomTemp := make([]float64, len(readings))
	roomHum := make([]float64, len(readings))
	for i := range readings {
		outsideTemp[i] = readings[i].OutsideTemperature
		outsideHum[i] = readings[i].OutsideHumidity
		roomTemp[i] = readings[i].RoomTemperature
		roomHum[i] = readings[i].RoomHumidity
	}

	panels := []*chart.Chart{
		r.distributionPanel("Outside Temperature", outsideTemp, seriesStyle(chart.ColorRed)),
		r.distributionPanel("Outside Humidity", outsideHum, seriesStyle(chart.ColorBlue)),
		r.distributionPanel("Room Temperature", roomTemp, seriesStyle(chart.ColorOrange)),
		r.distributionPanel("Room Humidity", roomHum, seriesStyle(chart.ColorGreen)),
	}

	switch format {
	case ports.FormatPNG:
		return r.compositePNG(panels)
	case ports.FormatSVG:
		return r.compositeSVG(panels)
	case ports.FormatPDF:
		png, err := r.compositePNG(panels)
		if err != nil {
			return nil, err
		}
		return pngToPDF(png, r.cfg.Width, r.cfg.Height)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, format)
	}
}

func seriesStyle(c drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: 1.5,
		FillColor:   c.WithAlpha(80),
	}
}

func (r *ChartRenderer) renderSingle(graph *chart.Chart, format ports.ImageFormat) ([]byte, error) {
	switch format {
	case ports.FormatPNG:
		var buf bytes.Buffer
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("failed to render png: %w", err)
		}
		return buf.Bytes(), nil
	case ports.FormatSVG:
		var buf bytes.Buffer
		if err := graph.Render(chart.SVG, &buf); err != nil {
			return nil, fmt.Errorf("failed to render svg: %w", err)
		}
		return buf.Bytes(), nil
	case ports.FormatPDF:
		var buf bytes.Buffer
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("failed to render png for pdf: %w", err)
		}
		return pngToPDF(buf.Bytes(), graph.Width, graph.Height)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImage, format)
	}
}

// annotationBlock draws a small block of text lines inside the top-left
// corner of the plot area.
func (r *ChartRenderer) annotationBlock(lines []string) chart.Renderable {
	return func(rd chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		style := chart.Style{
			FontSize:  9.0,
			FontColor: chart.ColorBlack,
			Font:      r.font,
		}
		x := canvasBox.Left + 15
		y := canvasBox.Top + 25
		for i, line := range lines {
			chart.Draw.Text(rd, line, x, y+i*16, style)
		}
	}
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

func minOf(values []float64) float64 { return floats.Min(values) }

func maxOf(values []float64) float64 { return floats.Max(values) }
