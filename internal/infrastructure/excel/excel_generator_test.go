package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
)

func testDataset() *entities.Dataset {
	return &entities.Dataset{
		ID:          "test-dataset",
		GeneratedAt: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		Users: []entities.UserRecord{
			{
				Firstname: "Alice", Lastname: "Smith", Age: 30, Gender: "Female",
				Username: "alice30", Address: "1 Main St", Email: "alice@example.com",
				SensorData: []entities.SensorRecord{
					{Date: "2015-01-01", Time: "00:00:00", OutsideTemperature: 85.25, OutsideHumidity: 60.5, RoomTemperature: 80.1, RoomHumidity: 55.2},
					{Date: "2015-01-01", Time: "06:00:00", OutsideTemperature: 90.0, OutsideHumidity: 70.0, RoomTemperature: 85.0, RoomHumidity: 65.0},
				},
			},
			{
				Firstname: "Bob", Lastname: "Jones", Age: 45, Gender: "Male",
				Username: "bob45", Address: "2 Oak Ave", Email: "bob@example.com",
				SensorData: []entities.SensorRecord{
					{Date: "2015-01-01", Time: "00:00:00", OutsideTemperature: 72.0, OutsideHumidity: 52.0, RoomTemperature: 70.0, RoomHumidity: 50.0},
				},
			},
		},
	}
}

func testSummary() *entities.DatasetSummary {
	return &entities.DatasetSummary{
		TotalUsers:    2,
		TotalReadings: 3,
		DateFrom:      "2015-01-01",
		DateTo:        "2015-01-01",
		OutsideTemperature: entities.FieldSummary{
			Count: 3, Mean: 82.42, StdDev: 9.21, Min: 72.0, P25: 78.63, Median: 85.25, P75: 87.63, Max: 90.0,
		},
	}
}

func TestDatasetReportGenerator_GenerateDatasetReport(t *testing.T) {
	gen := NewDatasetReportGenerator()

	t.Run("creates workbook with data and statistics sheets", func(t *testing.T) {
		data, err := gen.GenerateDatasetReport(context.Background(), testDataset(), testSummary(), 100)
		require.NoError(t, err)
		require.NotEmpty(t, data)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		sheets := f.GetSheetList()
		assert.Contains(t, sheets, "Sensor Data")
		assert.Contains(t, sheets, "Statistics")
		assert.NotContains(t, sheets, "Sheet1")
	})

	t.Run("data sheet has header row and one row per reading", func(t *testing.T) {
		data, err := gen.GenerateDatasetReport(context.Background(), testDataset(), testSummary(), 100)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Sensor Data")
		require.NoError(t, err)
		require.Len(t, rows, 4) // header + 3 readings

		assert.Equal(t, "Firstname", rows[0][0])
		assert.Equal(t, "Room Hum", rows[0][12])

		assert.Equal(t, "Alice", rows[1][0])
		assert.Equal(t, "2015-01-01", rows[1][7])
		assert.Equal(t, "85.25", rows[1][9])
		assert.Equal(t, "Bob", rows[3][0])
	})

	t.Run("respects row cap", func(t *testing.T) {
		data, err := gen.GenerateDatasetReport(context.Background(), testDataset(), testSummary(), 2)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Sensor Data")
		require.NoError(t, err)
		assert.Len(t, rows, 3) // header + 2 capped readings
	})

	t.Run("statistics sheet carries field summaries and totals", func(t *testing.T) {
		data, err := gen.GenerateDatasetReport(context.Background(), testDataset(), testSummary(), 100)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		v, err := f.GetCellValue("Statistics", "A2")
		require.NoError(t, err)
		assert.Equal(t, "Outside Temperature", v)

		mean, err := f.GetCellValue("Statistics", "C2")
		require.NoError(t, err)
		assert.Equal(t, "82.42", mean)

		label, err := f.GetCellValue("Statistics", "A9")
		require.NoError(t, err)
		assert.Equal(t, "Date Range", label)

		rangeVal, err := f.GetCellValue("Statistics", "B9")
		require.NoError(t, err)
		assert.Equal(t, "2015-01-01 to 2015-01-01", rangeVal)
	})

	t.Run("no-data summary writes placeholder", func(t *testing.T) {
		data, err := gen.GenerateDatasetReport(context.Background(), testDataset(), &entities.DatasetSummary{NoData: true}, 100)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		v, err := f.GetCellValue("Statistics", "A1")
		require.NoError(t, err)
		assert.Equal(t, "No sensor data available", v)
	})
}
