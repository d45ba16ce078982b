package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/f1qualify/f1qualify/internal/quali"
)

// panel is one plot area in pixel space plus its data extents. Data
// minimums are zero for every channel drawn here, so only the maximums
// vary.
type panel struct {
	x, y, w, h float64
	xMax, yMax float64
}

func (p panel) px(v float64) float64 {
	return p.x + v/p.xMax*p.w
}

func (p panel) py(v float64) float64 {
	return p.y + p.h - v/p.yMax*p.h
}

// drawFrame draws the border, grid, ticks and labels. A non-empty
// yRightLabel adds a mirrored right-hand scale for dual-axis panels.
func (p panel) drawFrame(dc *gg.Context, title, xLabel, yLabel, yRightLabel string) {
	dc.Push()
	defer dc.Pop()

	dc.SetLineWidth(1)

	for i := 0; i <= gridTicks; i++ {
		frac := float64(i) / gridTicks

		gx := p.x + frac*p.w
		gy := p.y + frac*p.h

		dc.SetColor(gridColor)
		dc.DrawLine(gx, p.y, gx, p.y+p.h)
		dc.Stroke()
		dc.DrawLine(p.x, gy, p.x+p.w, gy)
		dc.Stroke()

		dc.SetColor(frameColor)

		xValue := frac * p.xMax
		yValue := (1 - frac) * p.yMax

		dc.DrawStringAnchored(formatTick(xValue), gx, p.y+p.h+12, 0.5, 0.5)
		dc.DrawStringAnchored(formatTick(yValue), p.x-8, gy, 1, 0.5)

		if yRightLabel != "" {
			dc.DrawStringAnchored(formatTick(yValue), p.x+p.w+8, gy, 0, 0.5)
		}
	}

	dc.SetColor(frameColor)
	dc.DrawRectangle(p.x, p.y, p.w, p.h)
	dc.Stroke()

	dc.DrawStringAnchored(title, p.x+p.w/2, p.y-16, 0.5, 0.5)
	dc.DrawStringAnchored(xLabel, p.x+p.w/2, p.y+p.h+30, 0.5, 0.5)

	dc.Push()
	dc.RotateAbout(-math.Pi/2, p.x-55, p.y+p.h/2)
	dc.DrawStringAnchored(yLabel, p.x-55, p.y+p.h/2, 0.5, 0.5)
	dc.Pop()

	if yRightLabel != "" {
		dc.Push()
		dc.RotateAbout(math.Pi/2, p.x+p.w+55, p.y+p.h/2)
		dc.DrawStringAnchored(yRightLabel, p.x+p.w+55, p.y+p.h/2, 0.5, 0.5)
		dc.Pop()
	}
}

// drawSeries strokes one telemetry channel as a polyline.
func (p panel) drawSeries(dc *gg.Context, samples []quali.TelemetrySample, value func(quali.TelemetrySample) float64, col color.RGBA, dashed bool) {
	if len(samples) == 0 {
		return
	}

	dc.Push()
	defer dc.Pop()

	if dashed {
		dc.SetDash(8, 6)
	}

	dc.MoveTo(p.px(samples[0].Distance), p.py(clampAxis(value(samples[0]), p.yMax)))

	for _, sample := range samples[1:] {
		dc.LineTo(p.px(sample.Distance), p.py(clampAxis(value(sample), p.yMax)))
	}

	dc.SetColor(col)
	dc.SetLineWidth(seriesLineWidth)
	dc.Stroke()
}

// clampAxis keeps out-of-range source values (e.g. throttle spikes above
// 100) inside the panel instead of drawing over neighbouring panels.
func clampAxis(v, max float64) float64 {
	if v < 0 {
		return 0
	}

	if v > max {
		return max
	}

	return v
}

type legendEntry struct {
	label  string
	color  color.RGBA
	dashed bool
}

// drawLegend draws a boxed legend in the panel's top-right corner, one
// swatch-and-label row per entry.
func (p panel) drawLegend(dc *gg.Context, entries []legendEntry) {
	if len(entries) == 0 {
		return
	}

	const (
		rowHeight   = 16.0
		swatchWidth = 24.0
		pad         = 8.0
		charWidth   = 7.0 // basicfont.Face7x13 advance
	)

	maxLabel := 0

	for _, entry := range entries {
		if len(entry.label) > maxLabel {
			maxLabel = len(entry.label)
		}
	}

	boxWidth := pad*3 + swatchWidth + float64(maxLabel)*charWidth
	boxHeight := pad*2 + rowHeight*float64(len(entries))
	boxX := p.x + p.w - boxWidth - 10
	boxY := p.y + 10

	dc.Push()
	defer dc.Pop()

	dc.SetRGBA(1, 1, 1, 0.9)
	dc.DrawRectangle(boxX, boxY, boxWidth, boxHeight)
	dc.Fill()
	dc.SetColor(legendBorder)
	dc.SetLineWidth(1)
	dc.DrawRectangle(boxX, boxY, boxWidth, boxHeight)
	dc.Stroke()

	for i, entry := range entries {
		rowY := boxY + pad + rowHeight*float64(i) + rowHeight/2

		if entry.dashed {
			dc.SetDash(5, 4)
		} else {
			dc.SetDash()
		}

		dc.SetColor(entry.color)
		dc.SetLineWidth(seriesLineWidth)
		dc.DrawLine(boxX+pad, rowY, boxX+pad+swatchWidth, rowY)
		dc.Stroke()

		dc.SetDash()
		dc.SetColor(frameColor)
		dc.DrawStringAnchored(entry.label, boxX+pad*2+swatchWidth, rowY, 0, 0.5)
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
