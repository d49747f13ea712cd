package application

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
)

// Summarize computes descriptive statistics over the flattened reading set.
// An empty dataset yields a NoData summary instead of dividing by zero.
func Summarize(dataset *entities.Dataset) *entities.DatasetSummary {
	if dataset == nil {
		return &entities.DatasetSummary{NoData: true}
	}

	readings := dataset.FlattenReadings()
	if len(readings) == 0 {
		return &entities.DatasetSummary{
			NoData:     true,
			TotalUsers: len(dataset.Users),
		}
	}

	outsideTemp := make([]float64, len(readings))
	outsideHumidity := make([]float64, len(readings))
	roomTemp := make([]float64, len(readings))
	roomHumidity := make([]float64, len(readings))
	for i, r := range readings {
		outsideTemp[i] = r.OutsideTemperature
		outsideHumidity[i] = r.OutsideHumidity
		roomTemp[i] = r.RoomTemperature
		roomHumidity[i] = r.RoomHumidity
	}

	return &entities.DatasetSummary{
		TotalUsers:         len(dataset.Users),
		TotalReadings:      len(readings),
		DateFrom:           readings[0].Date,
		DateTo:             readings[len(readings)-1].Date,
		OutsideTemperature: summarizeField(outsideTemp),
		OutsideHumidity:    summarizeField(outsideHumidity),
		RoomTemperature:    summarizeField(roomTemp),
		RoomHumidity:       summarizeField(roomHumidity),
	}
}

func summarizeField(values []float64) entities.FieldSummary {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	summary := entities.FieldSummary{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    floats.Min(sorted),
		P25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		P75:    quantile(sorted, 0.75),
		Max:    floats.Max(sorted),
	}

	// Sample standard deviation is NaN for a single value; report zero.
	if len(values) > 1 {
		summary.StdDev = stat.StdDev(values, nil)
	}

	return summary
}

// quantile linearly interpolates between the two nearest order statistics.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
