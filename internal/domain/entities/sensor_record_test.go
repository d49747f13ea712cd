package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorRecord_Validate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		record := &SensorRecord{
			Date:               "2015-01-01",
			Time:               "06:00:00",
			OutsideTemperature: 85.12,
			OutsideHumidity:    60.5,
			RoomTemperature:    80.0,
			RoomHumidity:       55.25,
		}

		assert.NoError(t, record.Validate())
	})

	t.Run("room temperature above outside", func(t *testing.T) {
		record := &SensorRecord{
			Date:               "2015-01-01",
			Time:               "06:00:00",
			OutsideTemperature: 75.0,
			OutsideHumidity:    60.0,
			RoomTemperature:    80.0,
			RoomHumidity:       55.0,
		}

		err := record.Validate()
		assert.Error(t, err)
		assert.Equal(t, "room_temperature: must not exceed outside temperature", err.Error())
	})

	t.Run("room humidity above outside", func(t *testing.T) {
		record := &SensorRecord{
			Date:               "2015-01-01",
			Time:               "06:00:00",
			OutsideTemperature: 75.0,
			OutsideHumidity:    60.0,
			RoomTemperature:    70.0,
			RoomHumidity:       65.0,
		}

		err := record.Validate()
		assert.Error(t, err)
		assert.Equal(t, "room_humidity: must not exceed outside humidity", err.Error())
	})

	t.Run("empty date", func(t *testing.T) {
		record := &SensorRecord{Time: "06:00:00"}
		assert.Error(t, record.Validate())
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		record := &SensorRecord{Date: "01.01.2015", Time: "06:00:00"}
		assert.Error(t, record.Validate())
	})
}

func TestSensorRecord_Timestamp(t *testing.T) {
	record := &SensorRecord{Date: "2015-01-02", Time: "18:00:00"}

	ts, err := record.Timestamp()
	require.NoError(t, err)

	assert.Equal(t, 2015, ts.Year())
	assert.Equal(t, 2, ts.Day())
	assert.Equal(t, 18, ts.Hour())
}

func TestUserRecord_Validate(t *testing.T) {
	valid := func() *UserRecord {
		return &UserRecord{
			Firstname: "Anna",
			Lastname:  "Berg",
			Age:       34,
			Gender:    "Female",
			Username:  "anna.berg",
			Address:   "12 Main St, Springfield",
			Email:     "anna.berg@example.com",
		}
	}

	t.Run("valid user", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("age out of range", func(t *testing.T) {
		user := valid()
		user.Age = 17
		err := user.Validate()
		assert.Error(t, err)
		assert.Equal(t, "age: must be between 18 and 80", err.Error())
	})

	t.Run("unexpected gender value", func(t *testing.T) {
		user := valid()
		user.Gender = "unknown"
		assert.Error(t, user.Validate())
	})

	t.Run("missing email", func(t *testing.T) {
		user := valid()
		user.Email = ""
		assert.Error(t, user.Validate())
	})
}

func TestDataset_FlattenReadings(t *testing.T) {
	dataset := &Dataset{
		Users: []UserRecord{
			{Username: "u1", SensorData: []SensorRecord{
				{Date: "2015-01-01", Time: "00:00:00"},
				{Date: "2015-01-01", Time: "06:00:00"},
			}},
			{Username: "u2", SensorData: []SensorRecord{
				{Date: "2015-01-01", Time: "00:00:00"},
			}},
		},
	}

	assert.Equal(t, 3, dataset.TotalReadings())

	readings := dataset.FlattenReadings()
	require.Len(t, readings, 3)
	assert.Equal(t, "06:00:00", readings[1].Time)
}
