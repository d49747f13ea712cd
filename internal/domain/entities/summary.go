package entities

import (
	"fmt"
	"strings"
)

type FieldSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// DatasetSummary holds descriptive statistics over the flattened reading set.
// NoData is set instead of zeroed statistics when there is nothing to
// summarize.
type DatasetSummary struct {
	NoData             bool         `json:"no_data"`
	TotalUsers         int          `json:"total_users"`
	TotalReadings      int          `json:"total_readings"`
	DateFrom           string       `json:"date_from,omitempty"`
	DateTo             string       `json:"date_to,omitempty"`
	OutsideTemperature FieldSummary `json:"outside_temperature"`
	OutsideHumidity    FieldSummary `json:"outside_humidity"`
	RoomTemperature    FieldSummary `json:"room_temperature"`
	RoomHumidity       FieldSummary `json:"room_humidity"`
}

// Text renders the summary in the plain report layout served by the
// summary/text endpoint.
func (s *DatasetSummary) Text() string {
	var b strings.Builder

	b.WriteString("DESCRIPTIVE STATISTICS\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	if s.NoData {
		b.WriteString("No sensor data available. Please generate IoT data first.\n")
		return b.String()
	}

	fields := []struct {
		name    string
		summary FieldSummary
	}{
		{"OUTSIDE TEMPERATURE", s.OutsideTemperature},
		{"OUTSIDE HUMIDITY", s.OutsideHumidity},
		{"ROOM TEMPERATURE", s.RoomTemperature},
		{"ROOM HUMIDITY", s.RoomHumidity},
	}

	for _, f := range fields {
		b.WriteString(fmt.Sprintf("\n%s:\n", f.name))
		b.WriteString(strings.Repeat("-", 30) + "\n")
		b.WriteString(fmt.Sprintf("Count: %d\n", f.summary.Count))
		b.WriteString(fmt.Sprintf("Mean: %.2f\n", f.summary.Mean))
		b.WriteString(fmt.Sprintf("Std Dev: %.2f\n", f.summary.StdDev))
		b.WriteString(fmt.Sprintf("Min: %.2f\n", f.summary.Min))
		b.WriteString(fmt.Sprintf("25%%: %.2f\n", f.summary.P25))
		b.WriteString(fmt.Sprintf("50%% (Median): %.2f\n", f.summary.Median))
		b.WriteString(fmt.Sprintf("75%%: %.2f\n", f.summary.P75))
		b.WriteString(fmt.Sprintf("Max: %.2f\n", f.summary.Max))
	}

	b.WriteString("\n\nADDITIONAL STATISTICS\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	b.WriteString(fmt.Sprintf("Total Users: %d\n", s.TotalUsers))
	b.WriteString(fmt.Sprintf("Total Sensor Records: %d\n", s.TotalReadings))
	b.WriteString(fmt.Sprintf("Date Range: %s to %s\n", s.DateFrom, s.DateTo))

	return b.String()
}
