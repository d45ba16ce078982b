package quali

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// FormatLapTime renders a lap time as mm:ss.fff, zero padded. A qualifying
// lap is always positive, so zero and negative durations are rejected.
func FormatLapTime(d time.Duration) (string, error) {
	if d <= 0 {
		return "", errors.Wrapf(ErrInvalidParameter, "lap time must be positive, got %s", d)
	}

	ms := d.Milliseconds()

	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms%60000)/1000, ms%1000), nil
}

// MustFormatLapTime is FormatLapTime for laps that already passed
// validity checks; it falls back to the raw duration on bad input.
func MustFormatLapTime(d time.Duration) string {
	s, err := FormatLapTime(d)

	if err != nil {
		return d.String()
	}

	return s
}
