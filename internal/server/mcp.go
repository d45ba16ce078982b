package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "f1-qualifying-comparison"

// NewMCPServer builds the MCP server with the compare_qualifying_laps
// tool registered. Serve it over stdio with mcpserver.ServeStdio.
func NewMCPServer(service *Service, version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version)

	tool := mcp.NewTool("compare_qualifying_laps",
		mcp.WithDescription("Compare the fastest qualifying laps of the top drivers in a session. Returns the classification and writes a three-panel telemetry comparison image (speed, throttle/brake, detailed speed) to disk."),
		mcp.WithNumber("year",
			mcp.Required(),
			mcp.Description("Season year, e.g. 2024"),
		),
		mcp.WithString("race",
			mcp.Required(),
			mcp.Description("Race name or round number, e.g. 'Monaco' or '8'"),
		),
		mcp.WithString("session",
			mcp.Description("Session code: Q, Q1, Q2, Q3, SQ or S (default Q)"),
		),
	)

	s.AddTool(tool, service.handleCompare)

	return s
}

func (s *Service) handleCompare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.logger.WithField("request_id", uuid.New().String())

	year, ok := numberArgument(request.Params.Arguments, "year")

	if !ok {
		return mcp.NewToolResultError("year must be a number"), nil
	}

	race, _ := request.Params.Arguments["race"].(string)
	session, _ := request.Params.Arguments["session"].(string)

	logger.Infof("compare_qualifying_laps: year=%d race=%q session=%q", year, race, session)

	comparison, imagePath, err := s.CompareAndRender(ctx, year, race, session)

	if err != nil {
		logger.WithError(err).Errorf("Comparison failed")

		return mcp.NewToolResultError(fmt.Sprintf("Error analyzing qualifying laps: %s", err)), nil
	}

	return mcp.NewToolResultText(Report(comparison, imagePath)), nil
}

// numberArgument reads an MCP tool argument that arrives as JSON number.
func numberArgument(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
