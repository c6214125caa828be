// ABOUTME: MCP resource implementations for the anamnesis engine.
// ABOUTME: Provides anamnesis://schema and anamnesis://latest resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	schemaURI = "anamnesis://schema"
	latestURI = "anamnesis://latest"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         schemaURI,
		Name:        "Onboarding Questionnaire",
		Description: "The active question schema with options, fields, and conditionals",
		MIMEType:    "application/json",
	}, s.handleSchemaResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         latestURI,
		Name:        "Latest Assessment",
		Description: "Most recent assessment and computed profile for the configured user",
		MIMEType:    "application/json",
	}, s.handleLatestResource)
}

// Resource handlers

func (s *Server) handleSchemaResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(schemaURI, map[string]interface{}{
		"version":   s.schemaVersion(),
		"questions": s.schema.Questions,
	})
}

func (s *Server) handleLatestResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	userID, err := s.resolveUser("")
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ListAssessments(&userID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	if len(list) == 0 {
		return jsonResource(latestURI, map[string]interface{}{
			"user_id": userID,
			"message": "No assessments found.",
		})
	}
	return jsonResource(latestURI, assessmentView(list[0], s.schema))
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
