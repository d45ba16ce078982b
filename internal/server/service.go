// Package server exposes the comparison as a remotely callable operation,
// over MCP stdio and optionally over HTTP.
package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/f1qualify/f1qualify/internal/quali"
	"github.com/f1qualify/f1qualify/internal/render"
)

// DefaultSessionCode is used when a caller omits the session parameter.
const DefaultSessionCode = "Q"

// Service runs one comparison end to end: rank, fetch telemetry, render.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	comparator *quali.Comparator
	renderer   *render.Renderer
	outputDir  string
	topK       int
	logger     quali.Logger
}

func NewService(comparator *quali.Comparator, renderer *render.Renderer, outputDir string, topK int, logger quali.Logger) *Service {
	if topK < 1 {
		topK = quali.DefaultTopK
	}

	return &Service{
		comparator: comparator,
		renderer:   renderer,
		outputDir:  outputDir,
		topK:       topK,
		logger:     logger,
	}
}

// CompareAndRender produces the comparison and its image, returning both.
func (s *Service) CompareAndRender(ctx context.Context, year int, race, session string) (*quali.Comparison, string, error) {
	if session == "" {
		session = DefaultSessionCode
	}

	comparison, err := s.comparator.Compare(ctx, year, race, session, s.topK)

	if err != nil {
		return nil, "", err
	}

	imagePath, err := s.renderer.Render(comparison, s.outputDir)

	if err != nil {
		return nil, "", err
	}

	return comparison, imagePath, nil
}

// Report builds the text response for the MCP tool: session header, the
// classification table, the compared laps and the image location.
func Report(comparison *quali.Comparison, imagePath string) string {
	var b strings.Builder

	session := comparison.Session
	header := fmt.Sprintf("%d %s - Qualifying Results", session.Year, session.Race)

	if session.EventName != "" {
		header = fmt.Sprintf("%d %s - Qualifying Results", session.Year, session.EventName)
	}

	b.WriteString(header + "\n\n")
	b.WriteString(quali.SummaryTable(comparison, quali.DefaultSummarySize))
	b.WriteString("\n\nTelemetry comparison (top " + fmt.Sprint(len(comparison.Leaders)) + "):\n")

	for _, leader := range comparison.Leaders {
		b.WriteString(fmt.Sprintf("  %d. %s (%s): %s\n", leader.Rank, leader.DriverCode, leader.Team, quali.MustFormatLapTime(leader.LapTime)))
	}

	b.WriteString("\nPanels: speed overlay, throttle/brake overlay (brake dashed), detailed speed trace.\n")
	b.WriteString("Visualization saved to: " + imagePath + "\n")

	return b.String()
}
