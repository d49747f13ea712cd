package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maalberto-engineer/IoT-Data-Generator/config"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/testutils"
)

func generatorConfig() config.GeneratorConfig {
	return config.GeneratorConfig{
		Users:           3,
		ReadingsPerUser: 2,
		StartDate:       "2015-01-01",
		ReadingInterval: 6 * time.Hour,
	}
}

func sampleUsers() []entities.UserRecord {
	return []entities.UserRecord{
		{Username: "u1", SensorData: []entities.SensorRecord{
			{Date: "2015-01-01", Time: "00:00:00", OutsideTemperature: 80, OutsideHumidity: 60, RoomTemperature: 75, RoomHumidity: 55},
			{Date: "2015-01-01", Time: "06:00:00", OutsideTemperature: 82, OutsideHumidity: 62, RoomTemperature: 77, RoomHumidity: 57},
		}},
		{Username: "u2", SensorData: []entities.SensorRecord{
			{Date: "2015-01-01", Time: "00:00:00", OutsideTemperature: 90, OutsideHumidity: 70, RoomTemperature: 85, RoomHumidity: 65},
		}},
	}
}

func TestDatasetService_StartGeneration(t *testing.T) {
	t.Run("successful run publishes a dataset", func(t *testing.T) {
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(sampleUsers(), nil)

		service := NewDatasetService(mockGen, generatorConfig())
		require.Nil(t, service.Current())

		err := service.StartGeneration(context.Background())
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return service.Status().State == RunStateReady
		}, 2*time.Second, 10*time.Millisecond)

		dataset := service.Current()
		require.NotNil(t, dataset)
		assert.NotEmpty(t, dataset.ID)
		assert.Len(t, dataset.Users, 2)
		assert.Equal(t, 3, dataset.TotalReadings())

		status := service.Status()
		assert.Equal(t, 2, status.TotalUsers)
		assert.Equal(t, 3, status.TotalReadings)
		assert.Empty(t, status.LastError)
		mockGen.AssertExpectations(t)
	})

	t.Run("concurrent run is rejected", func(t *testing.T) {
		release := make(chan struct{})
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).
			Run(func(args mock.Arguments) { <-release }).
			Return(sampleUsers(), nil)

		service := NewDatasetService(mockGen, generatorConfig())

		require.NoError(t, service.StartGeneration(context.Background()))

		err := service.StartGeneration(context.Background())
		assert.ErrorIs(t, err, ErrGenerationInProgress)

		close(release)
		require.Eventually(t, func() bool {
			return service.Status().State == RunStateReady
		}, 2*time.Second, 10*time.Millisecond)

		// A finished run frees the guard.
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(sampleUsers(), nil)
		assert.NoError(t, service.StartGeneration(context.Background()))
	})

	t.Run("failed run keeps the previous dataset", func(t *testing.T) {
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(sampleUsers(), nil).Once()

		service := NewDatasetService(mockGen, generatorConfig())
		require.NoError(t, service.StartGeneration(context.Background()))
		require.Eventually(t, func() bool {
			return service.Status().State == RunStateReady
		}, 2*time.Second, 10*time.Millisecond)

		previous := service.Current()
		require.NotNil(t, previous)

		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(nil, errors.New("generator exploded")).Once()
		require.NoError(t, service.StartGeneration(context.Background()))
		require.Eventually(t, func() bool {
			return service.Status().State == RunStateFailed
		}, 2*time.Second, 10*time.Millisecond)

		status := service.Status()
		assert.Contains(t, status.LastError, "generator exploded")
		assert.Equal(t, previous.ID, service.Current().ID)
	})
}

func TestDatasetService_Regenerate(t *testing.T) {
	t.Run("synchronous success", func(t *testing.T) {
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(sampleUsers(), nil)

		service := NewDatasetService(mockGen, generatorConfig())

		err := service.Regenerate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, RunStateReady, service.Status().State)
		assert.NotNil(t, service.Current())
	})

	t.Run("synchronous failure returns the error", func(t *testing.T) {
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(nil, errors.New("boom"))

		service := NewDatasetService(mockGen, generatorConfig())

		err := service.Regenerate(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestDatasetService_Preview(t *testing.T) {
	t.Run("no dataset", func(t *testing.T) {
		service := NewDatasetService(&testutils.MockGenerator{}, generatorConfig())

		_, err := service.Preview(10)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("rows pair profile with first reading", func(t *testing.T) {
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(sampleUsers(), nil)

		service := NewDatasetService(mockGen, generatorConfig())
		require.NoError(t, service.Regenerate(context.Background()))

		rows, err := service.Preview(10)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		require.Len(t, rows[0], len(PreviewColumns))
		assert.Equal(t, "u1", rows[0][4])
		assert.Equal(t, "2015-01-01", rows[0][7])
		assert.Equal(t, "00:00:00", rows[0][8])
		assert.Equal(t, "80", rows[0][9])
	})

	t.Run("row limit respected", func(t *testing.T) {
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(sampleUsers(), nil)

		service := NewDatasetService(mockGen, generatorConfig())
		require.NoError(t, service.Regenerate(context.Background()))

		rows, err := service.Preview(1)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("users without readings are skipped", func(t *testing.T) {
		users := append(sampleUsers(), entities.UserRecord{Username: "empty"})
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(users, nil)

		service := NewDatasetService(mockGen, generatorConfig())
		require.NoError(t, service.Regenerate(context.Background()))

		rows, err := service.Preview(0)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestDatasetService_Summary(t *testing.T) {
	t.Run("empty service reports no data", func(t *testing.T) {
		service := NewDatasetService(&testutils.MockGenerator{}, generatorConfig())
		assert.True(t, service.Summary().NoData)
	})

	t.Run("summary over generated data", func(t *testing.T) {
		mockGen := &testutils.MockGenerator{}
		mockGen.On("Generate", mock.Anything, 3, 2, mock.Anything).Return(sampleUsers(), nil)

		service := NewDatasetService(mockGen, generatorConfig())
		require.NoError(t, service.Regenerate(context.Background()))

		summary := service.Summary()
		assert.False(t, summary.NoData)
		assert.Equal(t, 3, summary.TotalReadings)
		assert.InDelta(t, 84.0, summary.OutsideTemperature.Mean, 1e-9)
	})
}
