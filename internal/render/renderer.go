// Package render draws the multi-panel telemetry comparison image. It is a
// pure consumer of quali.Comparison: every decision about which laps and
// samples appear has already been made upstream.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"regexp"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"

	"github.com/f1qualify/f1qualify/internal/quali"
)

var (
	// rankColors are assigned by classification order so legends agree
	// across panels. Cycled if more drivers than colors are compared.
	rankColors = []color.RGBA{
		{R: 0x36, G: 0x71, B: 0xC6, A: 255},
		{R: 0x27, G: 0xF4, B: 0xD2, A: 255},
		{R: 0xFF, G: 0x87, B: 0x00, A: 255},
	}

	frameColor   = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	gridColor    = color.RGBA{R: 210, G: 210, B: 210, A: 255}
	legendBorder = color.RGBA{R: 140, G: 140, B: 140, A: 255}

	unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

const (
	imageWidth  = 1600
	imageHeight = 1200

	marginLeft   = 85
	marginRight  = 85
	marginTop    = 45
	marginBottom = 50

	seriesLineWidth = 2.5
	gridTicks       = 6

	// pedalAxisMax leaves headroom above 100% so flat-out traces do not
	// sit on the panel border.
	pedalAxisMax = 105
)

type Renderer struct {
	width, height int
	logger        quali.Logger
}

func New(logger quali.Logger) *Renderer {
	return &Renderer{
		width:  imageWidth,
		height: imageHeight,
		logger: logger,
	}
}

// Render writes the three-panel comparison to outputDir and returns the
// image path: speed overlay, throttle/brake dual-scale overlay, and a
// detailed speed overlay. All panels share distance as the x axis.
func (r *Renderer) Render(comparison *quali.Comparison, outputDir string) (string, error) {
	if len(comparison.Leaders) == 0 {
		return "", errors.Wrap(quali.ErrRender, "comparison has no drivers to draw")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.Wrapf(quali.ErrRender, "could not create output directory %s: %s", outputDir, err)
	}

	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	maxDistance, maxSpeed := dataBounds(comparison)

	panelHeight := float64(r.height) / 3
	panelWidth := float64(r.width)

	session := comparison.Session

	r.drawSpeedPanel(dc, comparison, panel{
		x:    marginLeft,
		y:    marginTop,
		w:    panelWidth - marginLeft - marginRight,
		h:    panelHeight - marginTop - marginBottom,
		xMax: maxDistance,
		yMax: maxSpeed,
	}, fmt.Sprintf("%d %s - Top %d Qualifying Laps Speed Comparison", session.Year, session.Race, len(comparison.Leaders)), true)

	r.drawPedalPanel(dc, comparison, panel{
		x:    marginLeft,
		y:    panelHeight + marginTop,
		w:    panelWidth - marginLeft - marginRight,
		h:    panelHeight - marginTop - marginBottom,
		xMax: maxDistance,
		yMax: pedalAxisMax,
	})

	r.drawSpeedPanel(dc, comparison, panel{
		x:    marginLeft,
		y:    2*panelHeight + marginTop,
		w:    panelWidth - marginLeft - marginRight,
		h:    panelHeight - marginTop - marginBottom,
		xMax: maxDistance,
		yMax: maxSpeed,
	}, "Detailed Speed Trace Comparison", false)

	path := filepath.Join(outputDir, fileName(comparison))

	if err := dc.SavePNG(path); err != nil {
		return "", errors.Wrapf(quali.ErrRender, "could not write image to %s: %s", path, err)
	}

	r.logger.Infof("Wrote comparison image to %s", path)

	return path, nil
}

func fileName(comparison *quali.Comparison) string {
	session := comparison.Session

	return fmt.Sprintf("f1_qualifying_%d_%s_%s_top%d_comparison.png",
		session.Year,
		unsafePathChars.ReplaceAllString(session.Race, "_"),
		unsafePathChars.ReplaceAllString(session.SessionCode, "_"),
		len(comparison.Leaders),
	)
}

// dataBounds finds the shared axis extents across every driver's samples.
func dataBounds(comparison *quali.Comparison) (maxDistance, maxSpeed float64) {
	for _, samples := range comparison.Telemetry {
		for _, sample := range samples {
			if sample.Distance > maxDistance {
				maxDistance = sample.Distance
			}

			if sample.Speed > maxSpeed {
				maxSpeed = sample.Speed
			}
		}
	}

	if maxDistance == 0 {
		maxDistance = 1
	}

	if maxSpeed == 0 {
		maxSpeed = 1
	}

	// headroom above the fastest trace
	maxSpeed *= 1.05

	return maxDistance, maxSpeed
}

func colorForRank(rank int) color.RGBA {
	return rankColors[(rank-1)%len(rankColors)]
}

func (r *Renderer) drawSpeedPanel(dc *gg.Context, comparison *quali.Comparison, p panel, title string, withLapTimes bool) {
	p.drawFrame(dc, title, "Distance (m)", "Speed (km/h)", "")

	var legend []legendEntry

	for _, leader := range comparison.Leaders {
		col := colorForRank(leader.Rank)

		p.drawSeries(dc, comparison.Telemetry[leader.DriverCode], func(s quali.TelemetrySample) float64 {
			return s.Speed
		}, col, false)

		label := leader.DriverCode

		if withLapTimes {
			label = fmt.Sprintf("%s - %s", leader.DriverCode, quali.MustFormatLapTime(leader.LapTime))
		}

		legend = append(legend, legendEntry{label: label, color: col})
	}

	p.drawLegend(dc, legend)
}

func (r *Renderer) drawPedalPanel(dc *gg.Context, comparison *quali.Comparison, p panel) {
	p.drawFrame(dc, "Throttle (solid) and Brake (dashed) Application", "Distance (m)", "Throttle (%)", "Brake (%)")

	var legend []legendEntry

	for _, leader := range comparison.Leaders {
		col := colorForRank(leader.Rank)
		samples := comparison.Telemetry[leader.DriverCode]

		p.drawSeries(dc, samples, func(s quali.TelemetrySample) float64 {
			return s.Throttle
		}, col, false)

		p.drawSeries(dc, samples, func(s quali.TelemetrySample) float64 {
			return s.Brake
		}, col, true)

		legend = append(legend,
			legendEntry{label: leader.DriverCode + " throttle", color: col},
			legendEntry{label: leader.DriverCode + " brake", color: col, dashed: true},
		)
	}

	p.drawLegend(dc, legend)
}
