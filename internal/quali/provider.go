package quali

import "context"

// SessionProvider is the upstream data source for session, lap and
// telemetry data. Implementations own all fetching and caching; the
// comparator treats cache behaviour as invisible.
type SessionProvider interface {
	// LoadSession resolves (year, race, session code) to a session. It
	// fails with ErrDataUnavailable if the session cannot be loaded.
	LoadSession(ctx context.Context, year int, race, session string) (*SessionInfo, error)

	// Laps returns every timed lap of the session, in provider order.
	Laps(ctx context.Context, session *SessionInfo) ([]Lap, error)

	// Telemetry returns the distance-ordered sample sequence for one
	// specific lap of one driver.
	Telemetry(ctx context.Context, session *SessionInfo, driverCode string, lapNumber int) ([]TelemetrySample, error)
}
