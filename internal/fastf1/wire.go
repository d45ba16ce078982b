package fastf1

import (
	"strconv"

	"github.com/pkg/errors"
)

type sessionResponse struct {
	Year        int    `json:"year"`
	Race        string `json:"race"`
	Session     string `json:"session"`
	EventName   string `json:"event_name"`
	CircuitName string `json:"circuit_name"`
}

type lapsResponse struct {
	Laps []wireLap `json:"laps"`
}

type wireLap struct {
	Driver     string `json:"driver"`
	DriverName string `json:"driver_name"`
	Team       string `json:"team"`
	LapTimeMS  int64  `json:"lap_time_ms"`
	LapNumber  int    `json:"lap_number"`
	Deleted    bool   `json:"deleted"`
}

type telemetryResponse struct {
	Samples []wireSample `json:"samples"`
}

type wireSample struct {
	Distance float64    `json:"distance"`
	TimeMS   int64      `json:"time_ms"`
	Speed    float64    `json:"speed"`
	Throttle float64    `json:"throttle"`
	Brake    brakeValue `json:"brake"`
}

// brakeValue accepts either a percentage or a boolean. Some sources only
// record brake on/off; those map to 100/0 so downstream sees one contract.
type brakeValue float64

func (b *brakeValue) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*b = 100

		return nil
	case "false", "null":
		*b = 0

		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)

	if err != nil {
		return errors.Wrapf(err, "could not parse brake value %s", data)
	}

	*b = brakeValue(f)

	return nil
}
