package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/ports"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/pkg/logger"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// csvHeader is the fixed 13-column layout of the flattened export.
var csvHeader = []string{
	"firstname", "lastname", "age", "gender", "username", "address", "email",
	"date", "time", "outside_temperature", "outside_humidity",
	"room_temperature", "room_humidity",
}

// ExportService serializes the in-memory dataset. When object storage is
// configured every export is also archived there; archival failures degrade
// to a warning and never fail the export itself.
type ExportService struct {
	excel      ports.ExcelGenerator
	storage    ports.ObjectStorage
	csvMaxRows int
	logger     logger.Logger
}

func NewExportService(excel ports.ExcelGenerator, storage ports.ObjectStorage, csvMaxRows int) *ExportService {
	return &ExportService{
		excel:      excel,
		storage:    storage,
		csvMaxRows: csvMaxRows,
		logger:     logger.New("info", "development").WithField("component", "export_service"),
	}
}

// ExportJSON serializes the full nested user/reading structure. JSON exports
// are never capped.
func (s *ExportService) ExportJSON(ctx context.Context, dataset *entities.Dataset) ([]byte, string, error) {
	if dataset == nil {
		return nil, "", ErrNoData
	}

	data, err := json.MarshalIndent(dataset.Users, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal dataset: %w", err)
	}

	fileName := exportFileName(dataset, "json")
	s.archive(ctx, dataset, fileName, ContentTypeJSON, data)

	s.logger.Infof("Exported %d users to JSON (%d bytes)", len(dataset.Users), len(data))
	return data, fileName, nil
}

// ExportCSV flattens the dataset to one row per (user, reading) pair, capped
// at csvMaxRows data rows to keep the export responsive.
func (s *ExportService) ExportCSV(ctx context.Context, dataset *entities.Dataset) ([]byte, string, error) {
	if dataset == nil {
		return nil, "", ErrNoData
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	written := 0
	for i := range dataset.Users {
		user := &dataset.Users[i]
		for j := range user.SensorData {
			if written >= s.csvMaxRows {
				break
			}
			r := &user.SensorData[j]
			row := []string{
				user.Firstname,
				user.Lastname,
				formatInt(user.Age),
				user.Gender,
				user.Username,
				user.Address,
				user.Email,
				r.Date,
				r.Time,
				formatFloat(r.OutsideTemperature),
				formatFloat(r.OutsideHumidity),
				formatFloat(r.RoomTemperature),
				formatFloat(r.RoomHumidity),
			}
			if err := w.Write(row); err != nil {
				return nil, "", fmt.Errorf("failed to write CSV row: %w", err)
			}
			written++
		}
		if written >= s.csvMaxRows {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	fileName := exportFileName(dataset, "csv")
	data := buf.Bytes()
	s.archive(ctx, dataset, fileName, ContentTypeCSV, data)

	s.logger.Infof("Exported %d rows to CSV (%d bytes)", written, len(data))
	return data, fileName, nil
}

// ExportExcel builds a workbook with a capped data sheet plus a statistics
// sheet.
func (s *ExportService) ExportExcel(ctx context.Context, dataset *entities.Dataset) ([]byte, string, error) {
	if dataset == nil {
		return nil, "", ErrNoData
	}

	summary := Summarize(dataset)
	data, err := s.excel.GenerateDatasetReport(ctx, dataset, summary, s.csvMaxRows)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate excel report: %w", err)
	}

	fileName := exportFileName(dataset, "xlsx")
	s.archive(ctx, dataset, fileName, ContentTypeXLSX, data)

	s.logger.Infof("Exported dataset %s to Excel (%d bytes)", dataset.ID, len(data))
	return data, fileName, nil
}

func (s *ExportService) archive(ctx context.Context, dataset *entities.Dataset, fileName, contentType string, data []byte) {
	if s.storage == nil {
		return
	}

	key := fmt.Sprintf("%s/%s", dataset.ID, fileName)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		s.logger.Warnf("Failed to archive export %s: %v", key, err)
		return
	}
	s.logger.Debugf("Archived export to storage, key: %s", key)
}

func exportFileName(dataset *entities.Dataset, ext string) string {
	return fmt.Sprintf("iot_data_%s.%s", dataset.GeneratedAt.Format("20060102_150405"), ext)
}
