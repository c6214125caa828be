// ABOUTME: MCP server setup for the anamnesis engine.
// ABOUTME: Wraps the MCP server with the questionnaire, calculator, and storage Repository.
package mcp

import (
	"context"

	"github.com/harperreed/anamnesis/internal/anamnesis"
	"github.com/harperreed/anamnesis/internal/metabolic"
	"github.com/harperreed/anamnesis/internal/models"
	"github.com/harperreed/anamnesis/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	schema    *models.Schema
	calc      *metabolic.Calculator
	identity  anamnesis.IdentityProvider
}

// Option configures a Server.
type Option func(*Server)

// WithSchema replaces the built-in questionnaire.
func WithSchema(s *models.Schema) Option {
	return func(srv *Server) { srv.schema = s }
}

// WithCalculator sets the calculator used for profiles.
func WithCalculator(c *metabolic.Calculator) Option {
	return func(srv *Server) { srv.calc = c }
}

// WithIdentity sets who owns assessments saved without an explicit user_id.
func WithIdentity(id anamnesis.IdentityProvider) Option {
	return func(srv *Server) { srv.identity = id }
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "anamnesis",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		schema:    anamnesis.DefaultSchema(),
		calc:      metabolic.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) schemaVersion() string {
	if s.schema.Version != "" {
		return s.schema.Version
	}
	return anamnesis.DefaultSchemaVersion
}
