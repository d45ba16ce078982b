package quali

import "errors"

// Error taxonomy for a comparison request. Failures are request-scoped:
// nothing here should ever take the hosting process down.
var (
	// ErrInvalidParameter indicates bad caller input (year, race, session
	// code, lap time). Reported immediately, never retried.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDataUnavailable indicates the provider could not supply session,
	// lap or telemetry data. Not retried automatically; repeated failures
	// usually mean the session genuinely does not exist.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrTelemetryInconsistent indicates a telemetry shape or monotonicity
	// violation. Treated as a data-integrity fault and surfaced rather than
	// silently patched.
	ErrTelemetryInconsistent = errors.New("telemetry inconsistent")

	// ErrRender indicates the comparison image could not be written.
	ErrRender = errors.New("render failed")
)
