package quali

import "time"

// TelemetrySample is a single distance-indexed point of a lap. A full lap
// is an ordered slice of samples with non-decreasing Distance; the renderer
// relies on that for shared x-axis alignment.
type TelemetrySample struct {
	Distance float64 // metres along the track
	Elapsed  time.Duration
	Speed    float64 // km/h
	Throttle float64 // percent, 0-100
	Brake    float64 // percent, 0-100; boolean sources map to 0 or 100
}

// ValidateTelemetry checks the distance monotonicity the renderer depends
// on. It returns the index of the first violation, or -1.
func ValidateTelemetry(samples []TelemetrySample) int {
	for i := 1; i < len(samples); i++ {
		if samples[i].Distance < samples[i-1].Distance {
			return i
		}
	}

	return -1
}
