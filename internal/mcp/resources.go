// ABOUTME: MCP resource implementations for fitnotes.
// ABOUTME: Provides fitnotes://workouts/recent and fitnotes://settings.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentWorkoutsURI = "fitnotes://workouts/recent"
	settingsURI       = "fitnotes://settings"

	recentWorkoutCount = 7
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentWorkoutsURI,
		Name:        "Recent Workouts",
		Description: "The last few workouts with exercises and sets",
		MIMEType:    "application/json",
	}, s.handleRecentWorkoutsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         settingsURI,
		Name:        "Settings",
		Description: "User preferences, record counts and last backup",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// Resource handlers

func (s *Server) handleRecentWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts := s.app.Store.Workouts()
	if len(workouts) > recentWorkoutCount {
		workouts = workouts[:recentWorkoutCount]
	}

	out := make([]workoutOutput, 0, len(workouts))
	for i := range workouts {
		out = append(out, s.workoutDetail(&workouts[i]))
	}
	return jsonResource(recentWorkoutsURI, map[string]any{"workouts": out})
}

func (s *Server) handleSettingsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	counts, err := s.app.Store.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	result := map[string]any{
		"settings": s.app.Store.Settings(),
		"counts":   counts,
	}
	if last, err := s.app.KV.LastBackup(); err == nil && last != nil {
		result["lastBackup"] = map[string]any{
			"timestamp": last.Timestamp,
			"age":       last.Age(),
			"size":      last.HumanSize(),
		}
	}
	return jsonResource(settingsURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
