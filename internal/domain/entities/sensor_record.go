package entities

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// SensorRecord is one timestamped quadruple of outside/room temperature and
// humidity readings. Values are rounded to two decimals at generation time.
type SensorRecord struct {
	Date               string  `json:"date"`
	Time               string  `json:"time"`
	OutsideTemperature float64 `json:"outside_temperature"`
	OutsideHumidity    float64 `json:"outside_humidity"`
	RoomTemperature    float64 `json:"room_temperature"`
	RoomHumidity       float64 `json:"room_humidity"`
}

func (r *SensorRecord) Timestamp() (time.Time, error) {
	return time.Parse(DateLayout+" "+TimeLayout, r.Date+" "+r.Time)
}

func (r *SensorRecord) Validate() error {
	if r.Date == "" {
		return ValidationError{Field: "date", Reason: "must not be empty"}
	}
	if r.Time == "" {
		return ValidationError{Field: "time", Reason: "must not be empty"}
	}
	if _, err := r.Timestamp(); err != nil {
		return ValidationError{Field: "date", Reason: "must be a valid timestamp"}
	}
	if r.RoomTemperature > r.OutsideTemperature {
		return ValidationError{Field: "room_temperature", Reason: "must not exceed outside temperature"}
	}
	if r.RoomHumidity > r.OutsideHumidity {
		return ValidationError{Field: "room_humidity", Reason: "must not exceed outside humidity"}
	}
	return nil
}
