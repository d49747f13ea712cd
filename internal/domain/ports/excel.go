package ports

import (
	"context"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
)

type ExcelGenerator interface {
	// GenerateDatasetReport builds a workbook with a capped data sheet and a
	// statistics sheet for the given dataset.
	GenerateDatasetReport(ctx context.Context, dataset *entities.Dataset, summary *entities.DatasetSummary, maxRows int) ([]byte, error)
}
