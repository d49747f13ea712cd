package excel

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/pkg/logger"
)

type DatasetReportGenerator struct {
	logger logger.Logger
}

func NewDatasetReportGenerator() *DatasetReportGenerator {
	return &DatasetReportGenerator{
		logger: logger.New("info", "development").WithField("component", "excel_generator"),
	}
}

func (g *DatasetReportGenerator) GenerateDatasetReport(
	ctx context.Context,
	dataset *entities.Dataset,
	summary *entities.DatasetSummary,
	maxRows int,
) ([]byte, error) {
	g.logger.Infof("Generating Excel report for dataset %s (%d users)", dataset.ID, len(dataset.Users))

	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Title:       "IoT Sensor Data Report",
		Subject:     "Synthetic IoT Sensor Data",
		Creator:     "IoT Data Generator",
		Description: fmt.Sprintf("Dataset %s generated at %s", dataset.ID, dataset.GeneratedAt.Format("2006-01-02 15:04:05")),
		Created:     time.Now().String(),
	})

	written, err := g.createDataSheet(f, dataset, maxRows)
	if err != nil {
		return nil, fmt.Errorf("failed to create data sheet: %w", err)
	}

	if err := g.createStatisticsSheet(f, summary); err != nil {
		return nil, fmt.Errorf("failed to create statistics sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	g.logger.Infof("Generated Excel report with %d data rows", written)
	return buf.Bytes(), nil
}

func (g *DatasetReportGenerator) createDataSheet(f *excelize.File, dataset *entities.Dataset, maxRows int) (int, error) {
	sheetName := "Sensor Data"
	if _, err := f.NewSheet(sheetName); err != nil {
		return 0, err
	}

	headers := []string{
		"Firstname", "Lastname", "Age", "Gender", "Username", "Address", "Email",
		"Date", "Time", "Outside Temp", "Outside Hum", "Room Temp", "Room Hum",
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	row := 2
	written := 0
	for i := range dataset.Users {
		user := &dataset.Users[i]
		for j := range user.SensorData {
			if written >= maxRows {
				break
			}
			r := &user.SensorData[j]

			values := []interface{}{
				user.Firstname, user.Lastname, user.Age, user.Gender,
				user.Username, user.Address, user.Email,
				r.Date, r.Time,
				r.OutsideTemperature, r.OutsideHumidity,
				r.RoomTemperature, r.RoomHumidity,
			}
			for col, value := range values {
				f.SetCellValue(sheetName, g.cell(col+1, row), value)
			}
			row++
			written++
		}
		if written >= maxRows {
			break
		}
	}

	for i := 1; i <= len(headers); i++ {
		colWidth := 15.0
		if i == 6 {
			colWidth = 30.0
		} else if i == 7 {
			colWidth = 25.0
		}
		f.SetColWidth(sheetName, g.colLetter(i), g.colLetter(i), colWidth)
	}

	return written, nil
}

func (g *DatasetReportGenerator) createStatisticsSheet(f *excelize.File, summary *entities.DatasetSummary) error {
	sheetName := "Statistics"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	if summary == nil || summary.NoData {
		f.SetCellValue(sheetName, "A1", "No sensor data available")
		return nil
	}

	headers := []string{"Field", "Count", "Mean", "Std Dev", "Min", "25%", "50% (Median)", "75%", "Max"}
	for i, header := range headers {
		f.SetCellValue(sheetName, g.cell(i+1, 1), header)
	}

	fields := []struct {
		name    string
		summary entities.FieldSummary
	}{
		{"Outside Temperature", summary.OutsideTemperature},
		{"Outside Humidity", summary.OutsideHumidity},
		{"Room Temperature", summary.RoomTemperature},
		{"Room Humidity", summary.RoomHumidity},
	}

	for i, field := range fields {
		row := i + 2
		f.SetCellValue(sheetName, g.cell(1, row), field.name)
		f.SetCellValue(sheetName, g.cell(2, row), field.summary.Count)
		f.SetCellValue(sheetName, g.cell(3, row), field.summary.Mean)
		f.SetCellValue(sheetName, g.cell(4, row), field.summary.StdDev)
		f.SetCellValue(sheetName, g.cell(5, row), field.summary.Min)
		f.SetCellValue(sheetName, g.cell(6, row), field.summary.P25)
		f.SetCellValue(sheetName, g.cell(7, row), field.summary.Median)
		f.SetCellValue(sheetName, g.cell(8, row), field.summary.P75)
		f.SetCellValue(sheetName, g.cell(9, row), field.summary.Max)
	}

	totals := []struct {
		label string
		value interface{}
	}{
		{"Total Users", summary.TotalUsers},
		{"Total Sensor Records", summary.TotalReadings},
		{"Date Range", fmt.Sprintf("%s to %s", summary.DateFrom, summary.DateTo)},
	}

	startRow := len(fields) + 3
	for i, total := range totals {
		f.SetCellValue(sheetName, g.cell(1, startRow+i), total.label)
		f.SetCellValue(sheetName, g.cell(2, startRow+i), total.value)
	}

	f.SetColWidth(sheetName, "A", "A", 22)
	for i := 2; i <= len(headers); i++ {
		f.SetColWidth(sheetName, g.colLetter(i), g.colLetter(i), 14)
	}

	return nil
}

func (g *DatasetReportGenerator) cell(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func (g *DatasetReportGenerator) colLetter(col int) string {
	letter, _ := excelize.ColumnNumberToName(col)
	return letter
}
