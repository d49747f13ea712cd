package plot

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maalberto-engineer/IoT-Data-Generator/config"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/ports"
)

func testPlotsConfig() config.PlotsConfig {
	return config.PlotsConfig{
		Width:             400,
		Height:            300,
		HistogramBins:     20,
		GridBins:          20,
		ComparisonSamples: 50,
	}
}

func sampleReadings(n int) []entities.SensorRecord {
	readings := make([]entities.SensorRecord, n)
	for i := 0; i < n; i++ {
		outTemp := 70.0 + math.Mod(float64(i)*0.37, 25.0)
		outHum := 50.0 + math.Mod(float64(i)*0.53, 45.0)
		readings[i] = entities.SensorRecord{
			Date:               "2015-01-01",
			Time:               fmt.Sprintf("%02d:00:00", i%24),
			OutsideTemperature: outTemp,
			OutsideHumidity:    outHum,
			RoomTemperature:    outTemp - 5.0,
			RoomHumidity:       outHum - 5.0,
		}
	}
	return readings
}

func TestComputeHistogram(t *testing.T) {
	t.Run("density integrates to one", func(t *testing.T) {
		values := make([]float64, 200)
		for i := range values {
			values[i] = 70.0 + math.Mod(float64(i)*1.7, 25.0)
		}

		h := computeHistogram(values, 30)
		require.Len(t, h.Centers, 30)
		require.Len(t, h.Densities, 30)

		var integral float64
		for _, d := range h.Densities {
			integral += d * h.BinWidth
		}
		assert.InDelta(t, 1.0, integral, 1e-9)
	})

	t.Run("identical values get a positive bin width", func(t *testing.T) {
		h := computeHistogram([]float64{42.0, 42.0, 42.0}, 10)
		assert.Greater(t, h.BinWidth, 0.0)

		var total float64
		for _, d := range h.Densities {
			total += d * h.BinWidth
		}
		assert.InDelta(t, 1.0, total, 1e-9)
	})

	t.Run("empty input yields empty histogram", func(t *testing.T) {
		h := computeHistogram(nil, 10)
		assert.Empty(t, h.Centers)
		assert.Empty(t, h.Densities)
	})
}

func TestChartRenderer_Render(t *testing.T) {
	renderer, err := NewChartRenderer(testPlotsConfig())
	require.NoError(t, err)

	readings := sampleReadings(120)

	variants := []ports.PlotVariant{
		ports.PlotOutsideTempHistogram,
		ports.PlotTempComparison,
		ports.PlotAllDistributions,
	}

	for _, variant := range variants {
		t.Run(string(variant)+" png", func(t *testing.T) {
			data, contentType, err := renderer.Render(context.Background(), variant, ports.FormatPNG, readings)
			require.NoError(t, err)
			assert.Equal(t, "image/png", contentType)
			require.Greater(t, len(data), 8)
			assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
		})

		t.Run(string(variant)+" svg", func(t *testing.T) {
			data, contentType, err := renderer.Render(context.Background(), variant, ports.FormatSVG, readings)
			require.NoError(t, err)
			assert.Equal(t, "image/svg+xml", contentType)
			assert.Contains(t, string(data), "<svg")
		})

		t.Run(string(variant)+" pdf", func(t *testing.T) {
			data, contentType, err := renderer.Render(context.Background(), variant, ports.FormatPDF, readings)
			require.NoError(t, err)
			assert.Equal(t, "application/pdf", contentType)
			assert.True(t, strings.HasPrefix(string(data), "%PDF"))
		})
	}

	t.Run("grid svg nests four positioned panels", func(t *testing.T) {
		data, _, err := renderer.Render(context.Background(), ports.PlotAllDistributions, ports.FormatSVG, readings)
		require.NoError(t, err)

		doc := string(data)
		assert.Equal(t, 5, strings.Count(doc, "<svg")) // outer document plus four panels
		assert.Contains(t, doc, `x="200" y="150"`)
	})

	t.Run("empty readings are rejected", func(t *testing.T) {
		_, _, err := renderer.Render(context.Background(), ports.PlotOutsideTempHistogram, ports.FormatPNG, nil)
		assert.ErrorIs(t, err, ErrNoReadings)
	})

	t.Run("unknown variant is rejected", func(t *testing.T) {
		_, _, err := renderer.Render(context.Background(), ports.PlotVariant("z"), ports.FormatPNG, readings)
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		_, _, err := renderer.Render(context.Background(), ports.PlotOutsideTempHistogram, ports.ImageFormat("gif"), readings)
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})

	t.Run("cancelled context stops rendering", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := renderer.Render(ctx, ports.PlotOutsideTempHistogram, ports.FormatPNG, readings)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
