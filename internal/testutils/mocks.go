package testutils

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/ports"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, users, readingsPerUser int, progress ports.ProgressFunc) ([]entities.UserRecord, error) {
	args := m.Called(ctx, users, readingsPerUser, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.UserRecord), args.Error(1)
}

type MockExcelGenerator struct {
	mock.Mock
}

func (m *MockExcelGenerator) GenerateDatasetReport(ctx context.Context, dataset *entities.Dataset, summary *entities.DatasetSummary, maxRows int) ([]byte, error) {
	args := m.Called(ctx, dataset, summary, maxRows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, data, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(ctx context.Context, name string, interval time.Duration, task ports.Task) error {
	args := m.Called(ctx, name, interval, task)
	return args.Error(0)
}

func (m *MockScheduler) Stop() {
	m.Called()
}

type MockPlotRenderer struct {
	mock.Mock
}

func (m *MockPlotRenderer) Render(ctx context.Context, variant ports.PlotVariant, format ports.ImageFormat, readings []entities.SensorRecord) ([]byte, string, error) {
	args := m.Called(ctx, variant, format, readings)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
