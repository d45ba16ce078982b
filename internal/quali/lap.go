package quali

import "time"

// Lap is one timed lap as reported by the session provider.
type Lap struct {
	DriverCode string
	DriverName string
	Team       string
	LapTime    time.Duration
	LapNumber  int

	// Deleted is set when the provider flags the lap as removed from
	// classification (e.g. track limits). Deleted laps never rank.
	Deleted bool
}

// Valid reports whether the lap can be ranked. A lap without a positive
// recorded time, or one the provider deleted, is excluded.
func (l Lap) Valid() bool {
	return l.LapTime > 0 && !l.Deleted
}

// RankedLap is a lap with its classification position, starting at 1.
type RankedLap struct {
	Rank int
	Lap
}
