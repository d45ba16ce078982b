package render

import (
	"errors"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
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

func testComparison(numDrivers int) *quali.Comparison {
	comparison := &quali.Comparison{
		Session:   quali.SessionInfo{Year: 2024, Race: "Monaco", SessionCode: "Q"},
		Telemetry: make(map[string][]quali.TelemetrySample),
	}

	codes := []string{"VER", "LEC", "NOR", "HAM", "RUS"}

	for i := 0; i < numDrivers; i++ {
		ranked := quali.RankedLap{
			Rank: i + 1,
			Lap: quali.Lap{
				DriverCode: codes[i],
				Team:       "Team " + codes[i],
				LapTime:    time.Duration(71000+i*150) * time.Millisecond,
				LapNumber:  i + 1,
			},
		}

		comparison.Ranked = append(comparison.Ranked, ranked)
		comparison.Leaders = append(comparison.Leaders, ranked)

		var samples []quali.TelemetrySample

		for d := 0; d <= 3000; d += 10 {
			sample := quali.TelemetrySample{
				Distance: float64(d),
				Elapsed:  time.Duration(d) * 25 * time.Millisecond,
				Speed:    120 + float64((d+i*100)%180),
				Throttle: float64((d / 10) % 101),
			}

			if sample.Throttle < 20 {
				sample.Brake = 100
			}

			samples = append(samples, sample)
		}

		comparison.Telemetry[codes[i]] = samples
	}

	return comparison
}

func TestRenderWritesThreePanelImage(t *testing.T) {
	outputDir := t.TempDir()

	path, err := New(testLogger()).Render(testComparison(3), outputDir)

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if filepath.Base(path) != "f1_qualifying_2024_Monaco_Q_top3_comparison.png" {
		t.Errorf("unexpected file name: %s", filepath.Base(path))
	}

	f, err := os.Open(path)

	if err != nil {
		t.Fatalf("image was not written: %s", err)
	}

	defer f.Close()

	img, err := png.Decode(f)

	if err != nil {
		t.Fatalf("output is not a decodable PNG: %s", err)
	}

	bounds := img.Bounds()

	if bounds.Dx() != imageWidth || bounds.Dy() != imageHeight {
		t.Errorf("expected %dx%d image, got %dx%d", imageWidth, imageHeight, bounds.Dx(), bounds.Dy())
	}
}

func TestRenderSanitizesRaceName(t *testing.T) {
	comparison := testComparison(1)
	comparison.Session.Race = "Emilia Romagna / Imola"

	path, err := New(testLogger()).Render(comparison, t.TempDir())

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if filepath.Base(path) != "f1_qualifying_2024_Emilia_Romagna_Imola_Q_top1_comparison.png" {
		t.Errorf("unexpected file name: %s", filepath.Base(path))
	}
}

func TestRenderCreatesOutputDir(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "nested", "visualizations")

	if _, err := New(testLogger()).Render(testComparison(2), outputDir); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if _, err := os.Stat(outputDir); err != nil {
		t.Errorf("expected output directory to be created: %s", err)
	}
}

func TestRenderFailsOnUnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")

	if err := ioutil.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New(testLogger()).Render(testComparison(1), filepath.Join(blocker, "out"))

	if !errors.Is(err, quali.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}

func TestRenderRejectsEmptyComparison(t *testing.T) {
	comparison := &quali.Comparison{
		Telemetry: make(map[string][]quali.TelemetrySample),
	}

	_, err := New(testLogger()).Render(comparison, t.TempDir())

	if !errors.Is(err, quali.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}
