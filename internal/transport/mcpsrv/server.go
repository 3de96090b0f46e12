package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/mentorhub/contextd/internal/core"
	"github.com/mentorhub/contextd/internal/service/bizcontext"
	"github.com/mentorhub/contextd/internal/service/relevance"
	"github.com/mentorhub/contextd/pkg/log"
)

// Server exposes the context builder and relevance scorer as MCP tools
// over stdio, so agent runtimes can pull tenant context without going
// through the HTTP API.
type Server struct {
	logger  zerolog.Logger
	mcpSrv  *server.MCPServer
	builder *bizcontext.Builder
	scorer  *relevance.Scorer
}

func NewServer(ctx context.Context, builder *bizcontext.Builder, scorer *relevance.Scorer) *Server {
	s := &Server{
		logger:  *log.FromCtx(ctx),
		builder: builder,
		scorer:  scorer,
	}

	s.mcpSrv = server.NewMCPServer(
		core.AppName,
		core.AppVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpSrv.AddTool(mcp.NewTool("get_business_context",
		mcp.WithDescription("Get the aggregated business context block for a tenant, formatted for prompt injection."),
		mcp.WithString("tenant_id", mcp.Required(), mcp.Description("Tenant identifier")),
	), s.handleGetContext)

	s.mcpSrv.AddTool(mcp.NewTool("score_concept",
		mcp.WithDescription("Score how relevant a catalogue concept is for a tenant. Returns the score, the role threshold, and whether the concept passes."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Concept category label, ordering prefix allowed")),
		mcp.WithString("tenant_industry", mcp.Description("Tenant's industry description")),
		mcp.WithString("org_unit", mcp.Description("Viewer's department; omit for owner-level viewpoint")),
		mcp.WithString("relationship", mcp.Description("Concept relationship: PREREQUISITE, RELATED or ADVANCED")),
		mcp.WithString("role", mcp.Description("Viewer role, selects the acceptance threshold")),
	), s.handleScoreConcept)
}

func (s *Server) handleGetContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenantID, err := req.RequireString("tenant_id")
	if err != nil {
		return mcpError(err.Error()), nil
	}

	block, err := s.builder.Build(ctx, tenantID)
	if err != nil {
		s.logger.Error().Err(err).Str("tenant", tenantID).Msg("mcp context build failed")
		return mcpError("context build failed: " + err.Error()), nil
	}
	if block == "" {
		return mcpText("No business context recorded for this tenant."), nil
	}
	return mcpText(block), nil
}

func (s *Server) handleScoreConcept(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcpError(err.Error()), nil
	}

	in := relevance.Input{
		Category:       category,
		TenantIndustry: req.GetString("tenant_industry", ""),
		Relationship:   core.Relationship(req.GetString("relationship", "")),
		Role:           req.GetString("role", ""),
	}
	if unit := req.GetString("org_unit", ""); unit != "" {
		in.OrgUnit = &unit
	}

	score := s.scorer.Score(in)
	threshold := s.scorer.Threshold(in.Role)

	return mcpText(fmt.Sprintf("score=%.2f threshold=%.2f relevant=%t", score, threshold, score >= threshold)), nil
}

// Start serves MCP over stdio until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Msg("starting mcp server on stdio")
	if err := server.NewStdioServer(s.mcpSrv).Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	// The stdio listener exits when the Start context is cancelled.
	return nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}

func mcpError(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}
