package entities

import "time"

// Dataset is one generation run's output. The service holds exactly one
// dataset at a time; a new run replaces it wholesale.
type Dataset struct {
	ID          string       `json:"id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Users       []UserRecord `json:"users"`
}

func (d *Dataset) TotalReadings() int {
	total := 0
	for i := range d.Users {
		total += len(d.Users[i].SensorData)
	}
	return total
}

// FlattenReadings concatenates every user's readings in user order,
// preserving each user's reading order.
func (d *Dataset) FlattenReadings() []SensorRecord {
	readings := make([]SensorRecord, 0, d.TotalReadings())
	for i := range d.Users {
		readings = append(readings, d.Users[i].SensorData...)
	}
	return readings
}
