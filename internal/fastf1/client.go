// Package fastf1 implements quali.SessionProvider against a
// FastF1-compatible HTTP bridge. The bridge does the heavy lifting of
// timing-data assembly and telemetry interpolation; this client only
// fetches, caches and decodes its JSON responses.
package fastf1

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/f1qualify/f1qualify/internal/quali"
)

// Client is a quali.SessionProvider backed by an HTTP bridge. Successful
// responses are cached on disk, so repeated requests for the same session
// are served without network access.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cacheDir   string
	logger     quali.Logger
}

type ClientOption func(*Client)

// WithBaseURL sets the bridge base URL, e.g. "http://localhost:3000".
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCacheDir enables the on-disk response cache. An empty dir disables
// caching.
func WithCacheDir(dir string) ClientOption {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

func WithLogger(logger quali.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: time.Minute},
		baseURL:    "http://localhost:3000",
		logger:     logrus.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) LoadSession(ctx context.Context, year int, race, session string) (*quali.SessionInfo, error) {
	var response sessionResponse

	if err := c.get(ctx, c.sessionPath(year, race, session), &response); err != nil {
		return nil, err
	}

	return &quali.SessionInfo{
		Year:        response.Year,
		Race:        response.Race,
		SessionCode: response.Session,
		EventName:   response.EventName,
		CircuitName: response.CircuitName,
	}, nil
}

func (c *Client) Laps(ctx context.Context, session *quali.SessionInfo) ([]quali.Lap, error) {
	var response lapsResponse

	if err := c.get(ctx, c.sessionPath(session.Year, session.Race, session.SessionCode)+"/laps", &response); err != nil {
		return nil, err
	}

	laps := make([]quali.Lap, 0, len(response.Laps))

	for _, lap := range response.Laps {
		laps = append(laps, quali.Lap{
			DriverCode: lap.Driver,
			DriverName: lap.DriverName,
			Team:       lap.Team,
			LapTime:    time.Duration(lap.LapTimeMS) * time.Millisecond,
			LapNumber:  lap.LapNumber,
			Deleted:    lap.Deleted,
		})
	}

	return laps, nil
}

func (c *Client) Telemetry(ctx context.Context, session *quali.SessionInfo, driverCode string, lapNumber int) ([]quali.TelemetrySample, error) {
	var response telemetryResponse

	path := fmt.Sprintf("%s/telemetry/%s/%d", c.sessionPath(session.Year, session.Race, session.SessionCode), url.PathEscape(driverCode), lapNumber)

	if err := c.get(ctx, path, &response); err != nil {
		return nil, err
	}

	samples := make([]quali.TelemetrySample, 0, len(response.Samples))

	for _, sample := range response.Samples {
		samples = append(samples, quali.TelemetrySample{
			Distance: sample.Distance,
			Elapsed:  time.Duration(sample.TimeMS) * time.Millisecond,
			Speed:    sample.Speed,
			Throttle: sample.Throttle,
			Brake:    float64(sample.Brake),
		})
	}

	return samples, nil
}

func (c *Client) sessionPath(year int, race, session string) string {
	return fmt.Sprintf("/session/%d/%s/%s", year, url.PathEscape(race), url.PathEscape(session))
}

// get fetches path from the bridge, consulting the cache first. Cache
// entries never expire: a finished session's data is immutable upstream.
func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	if data, ok := c.cacheRead(path); ok {
		c.logger.Debugf("fastf1 cache hit: %s", path)

		return json.Unmarshal(data, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)

	if err != nil {
		return errors.Wrapf(quali.ErrDataUnavailable, "could not build request for %s: %s", path, err)
	}

	c.logger.Debugf("fastf1 fetch: %s", c.baseURL+path)

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return errors.Wrapf(quali.ErrDataUnavailable, "provider request failed for %s: %s", path, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(quali.ErrDataUnavailable, "provider has no data for %s", path)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(quali.ErrDataUnavailable, "provider returned status %d for %s", resp.StatusCode, path)
	}

	data, err := ioutil.ReadAll(resp.Body)

	if err != nil {
		return errors.Wrapf(quali.ErrDataUnavailable, "could not read provider response for %s: %s", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(quali.ErrDataUnavailable, "could not decode provider response for %s: %s", path, err)
	}

	c.cacheWrite(path, data)

	return nil
}
