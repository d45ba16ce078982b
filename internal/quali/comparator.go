package quali

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// DefaultTopK is the number of drivers whose telemetry is compared.
const DefaultTopK = 3

// minimumSeason is the first Formula 1 world championship season.
const minimumSeason = 1950

// Comparison is the result of one comparison request: the full
// classification of valid laps plus telemetry for the leading drivers.
// All fields are request-local; results of concurrent requests never share
// state.
type Comparison struct {
	Session SessionInfo

	// Ranked holds every driver's fastest valid lap, fastest first.
	Ranked []RankedLap

	// Leaders are the top-K entries of Ranked that carry telemetry.
	Leaders []RankedLap

	// Telemetry maps driver code to that driver's fastest-lap samples,
	// for drivers in Leaders only.
	Telemetry map[string][]TelemetrySample
}

// Comparator ranks a session's fastest laps and gathers telemetry for the
// leaders. It holds no per-request state and is safe for concurrent use.
type Comparator struct {
	provider SessionProvider
	logger   Logger
}

func NewComparator(provider SessionProvider, logger Logger) *Comparator {
	return &Comparator{
		provider: provider,
		logger:   logger,
	}
}

// Compare loads (year, race, session), ranks each driver's fastest valid
// lap and fetches telemetry for the first topK entries. topK is a ceiling:
// a session with fewer ranked drivers yields fewer leaders, not an error.
//
// A lap ranks only if the provider recorded a positive time and did not
// flag it deleted (track-limit deletions and in/out laps never classify).
// Ties are broken by ascending driver code; at millisecond resolution real
// sessions do not produce them, but the order must still be deterministic.
func (c *Comparator) Compare(ctx context.Context, year int, race, session string, topK int) (*Comparison, error) {
	if err := validateRequest(year, race, session, topK); err != nil {
		return nil, err
	}

	sessionInfo, err := c.provider.LoadSession(ctx, year, race, session)

	if err != nil {
		return nil, errors.Wrapf(err, "could not load session %d %s %s", year, race, session)
	}

	laps, err := c.provider.Laps(ctx, sessionInfo)

	if err != nil {
		return nil, errors.Wrapf(err, "could not load laps for %d %s %s", year, race, session)
	}

	ranked := rankFastestLaps(laps)

	if len(ranked) == 0 {
		return nil, errors.Wrapf(ErrDataUnavailable, "no valid laps recorded in %d %s %s", year, race, session)
	}

	c.logger.Infof("Ranked %d drivers in %d %s %s, fastest: %s (%s)", len(ranked), year, race, session, ranked[0].DriverCode, MustFormatLapTime(ranked[0].LapTime))

	numLeaders := topK

	if numLeaders > len(ranked) {
		numLeaders = len(ranked)
	}

	comparison := &Comparison{
		Session:   *sessionInfo,
		Ranked:    ranked,
		Leaders:   ranked[:numLeaders],
		Telemetry: make(map[string][]TelemetrySample),
	}

	for _, leader := range comparison.Leaders {
		samples, err := c.provider.Telemetry(ctx, sessionInfo, leader.DriverCode, leader.LapNumber)

		if err != nil {
			return nil, errors.Wrapf(err, "could not load telemetry for %s lap %d", leader.DriverCode, leader.LapNumber)
		}

		if len(samples) == 0 {
			return nil, errors.Wrapf(ErrDataUnavailable, "no telemetry recorded for %s lap %d", leader.DriverCode, leader.LapNumber)
		}

		if i := ValidateTelemetry(samples); i >= 0 {
			return nil, errors.Wrapf(ErrTelemetryInconsistent, "distance decreases at sample %d of %d for %s lap %d", i, len(samples), leader.DriverCode, leader.LapNumber)
		}

		comparison.Telemetry[leader.DriverCode] = samples
	}

	return comparison, nil
}

func validateRequest(year int, race, session string, topK int) error {
	if maxSeason := time.Now().Year() + 1; year < minimumSeason || year > maxSeason {
		return errors.Wrapf(ErrInvalidParameter, "year %d outside supported range %d-%d", year, minimumSeason, maxSeason)
	}

	if race == "" {
		return errors.Wrap(ErrInvalidParameter, "race must not be empty")
	}

	if !SessionCodes[session] {
		return errors.Wrapf(ErrInvalidParameter, "unknown session code %q", session)
	}

	if topK < 1 {
		return errors.Wrapf(ErrInvalidParameter, "top k must be at least 1, got %d", topK)
	}

	return nil
}

// rankFastestLaps reduces the full lap table to one fastest valid lap per
// driver and orders the result ascending by lap time.
func rankFastestLaps(laps []Lap) []RankedLap {
	fastest := make(map[string]Lap)

	for _, lap := range laps {
		if !lap.Valid() {
			continue
		}

		best, ok := fastest[lap.DriverCode]

		if !ok || lap.LapTime < best.LapTime {
			fastest[lap.DriverCode] = lap
		}
	}

	var ranked []RankedLap

	for _, lap := range fastest {
		ranked = append(ranked, RankedLap{Lap: lap})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		lapI, lapJ := ranked[i], ranked[j]

		if lapI.LapTime == lapJ.LapTime {
			return lapI.DriverCode < lapJ.DriverCode
		}

		return lapI.LapTime < lapJ.LapTime
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
