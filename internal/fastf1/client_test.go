package fastf1

import (
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/f1qualify/f1qualify/internal/quali"
)

func testLogger() quali.Logger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)

	return logger
}

func bridgeStub(t *testing.T, requests *int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/session/2024/Monaco/Q", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		_, _ = w.Write([]byte(`{"year":2024,"race":"Monaco","session":"Q","event_name":"Monaco Grand Prix","circuit_name":"Monte Carlo"}`))
	})

	mux.HandleFunc("/session/2024/Monaco/Q/laps", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		_, _ = w.Write([]byte(`{"laps":[
			{"driver":"VER","driver_name":"Max Verstappen","team":"Red Bull Racing","lap_time_ms":70954,"lap_number":14,"deleted":false},
			{"driver":"LEC","driver_name":"Charles Leclerc","team":"Ferrari","lap_time_ms":71230,"lap_number":9,"deleted":true}
		]}`))
	})

	mux.HandleFunc("/session/2024/Monaco/Q/telemetry/VER/14", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		_, _ = w.Write([]byte(`{"samples":[
			{"distance":0,"time_ms":0,"speed":120.5,"throttle":40,"brake":false},
			{"distance":55.2,"time_ms":900,"speed":190,"throttle":100,"brake":0},
			{"distance":120.8,"time_ms":1800,"speed":150,"throttle":0,"brake":true},
			{"distance":180,"time_ms":2700,"speed":110,"throttle":0,"brake":62.5}
		]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestClientLoadSession(t *testing.T) {
	var requests int64

	bridge := bridgeStub(t, &requests)
	client := New(WithBaseURL(bridge.URL), WithLogger(testLogger()))

	session, err := client.LoadSession(context.Background(), 2024, "Monaco", "Q")

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if session.EventName != "Monaco Grand Prix" || session.Year != 2024 {
		t.Errorf("unexpected session: %+v", session)
	}
}

func TestClientLaps(t *testing.T) {
	var requests int64

	bridge := bridgeStub(t, &requests)
	client := New(WithBaseURL(bridge.URL), WithLogger(testLogger()))

	session, err := client.LoadSession(context.Background(), 2024, "Monaco", "Q")

	if err != nil {
		t.Fatal(err)
	}

	laps, err := client.Laps(context.Background(), session)

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(laps) != 2 {
		t.Fatalf("expected 2 laps, got %d", len(laps))
	}

	if laps[0].LapTime != 70954*time.Millisecond {
		t.Errorf("expected 70.954s lap time, got %s", laps[0].LapTime)
	}

	if !laps[1].Deleted {
		t.Errorf("expected deleted flag carried over")
	}
}

func TestClientTelemetryBrakeMapping(t *testing.T) {
	var requests int64

	bridge := bridgeStub(t, &requests)
	client := New(WithBaseURL(bridge.URL), WithLogger(testLogger()))

	session := &quali.SessionInfo{Year: 2024, Race: "Monaco", SessionCode: "Q"}

	samples, err := client.Telemetry(context.Background(), session, "VER", 14)

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(samples))
	}

	expectedBrakes := []float64{0, 0, 100, 62.5}

	for i, expected := range expectedBrakes {
		if samples[i].Brake != expected {
			t.Errorf("sample %d: expected brake %.1f, got %.1f", i, expected, samples[i].Brake)
		}
	}

	if samples[1].Elapsed != 900*time.Millisecond {
		t.Errorf("expected elapsed 900ms, got %s", samples[1].Elapsed)
	}
}

func TestClientNotFoundIsDataUnavailable(t *testing.T) {
	var requests int64

	bridge := bridgeStub(t, &requests)
	client := New(WithBaseURL(bridge.URL), WithLogger(testLogger()))

	_, err := client.LoadSession(context.Background(), 2024, "Atlantis", "Q")

	if !errors.Is(err, quali.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestClientUnreachableBridge(t *testing.T) {
	client := New(WithBaseURL("http://127.0.0.1:1"), WithLogger(testLogger()))

	_, err := client.LoadSession(context.Background(), 2024, "Monaco", "Q")

	if !errors.Is(err, quali.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestClientCacheServesRepeatRequests(t *testing.T) {
	var requests int64

	bridge := bridgeStub(t, &requests)
	client := New(WithBaseURL(bridge.URL), WithCacheDir(t.TempDir()), WithLogger(testLogger()))

	for i := 0; i < 3; i++ {
		session, err := client.LoadSession(context.Background(), 2024, "Monaco", "Q")

		if err != nil {
			t.Fatalf("unexpected error on request %d: %s", i, err)
		}

		if session.CircuitName != "Monte Carlo" {
			t.Errorf("unexpected session on request %d: %+v", i, session)
		}
	}

	if n := atomic.LoadInt64(&requests); n != 1 {
		t.Errorf("expected 1 network request, the rest from cache; got %d", n)
	}
}

func TestClientErrorsAreNotCached(t *testing.T) {
	var requests int64

	bridge := bridgeStub(t, &requests)
	cacheDir := t.TempDir()
	client := New(WithBaseURL(bridge.URL), WithCacheDir(cacheDir), WithLogger(testLogger()))

	if _, err := client.LoadSession(context.Background(), 2024, "Atlantis", "Q"); err == nil {
		t.Fatal("expected error for unknown race")
	}

	entries, err := ioutil.ReadDir(cacheDir)

	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 0 {
		t.Errorf("expected empty cache after a failed fetch, found %d entries", len(entries))
	}
}
