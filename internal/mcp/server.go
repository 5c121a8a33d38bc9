// Package mcp serves the highlight extraction pipeline over the Model
// Context Protocol on standard I/O.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pdfmarks/pdfmarks/internal/config"
	"github.com/pdfmarks/pdfmarks/internal/pipeline"
)

const serverName = "pdfmarks"

// Server represents the MCP server instance
type Server struct {
	config       *config.Config
	orchestrator *pipeline.Orchestrator
	mcpServer    *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, orchestrator *pipeline.Orchestrator) (*Server, error) {
	if orchestrator == nil {
		return nil, fmt.Errorf("orchestrator cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		serverName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:       cfg,
		orchestrator: orchestrator,
		mcpServer:    mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		"pdf_extract_highlights",
		mcp.WithDescription("Extract the highlight annotations of a PDF file as sanitized text with page numbers, colors and notes"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handleExtractHighlights)

	enrichTool := mcp.NewTool(
		"pdf_enrich",
		mcp.WithDescription("Extract a PDF's highlights and enrich them with bibliographic metadata matched from the configured BibTeX bibliography"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(enrichTool, s.handleEnrich)
}

// Handler functions
func (s *Server) handleExtractHighlights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	highlights, err := s.orchestrator.Extract(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(highlights) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No highlights found in %s", path)), nil
	}

	data, err := json.MarshalIndent(highlights, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleEnrich(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, result := s.orchestrator.Enrich(path)
	if result.Err != nil {
		return mcp.NewToolResultError(result.Err.Error()), nil
	}
	if result.Status == pipeline.StatusEmpty {
		return mcp.NewToolResultText(fmt.Sprintf("No highlights found in %s", path)), nil
	}

	envelope := struct {
		Status      pipeline.Status `json:"status"`
		CitationKey string          `json:"citation_key,omitempty"`
		Meta        any             `json:"meta"`
		Data        any             `json:"data"`
	}{
		Status:      result.Status,
		CitationKey: result.CitationKey,
		Meta:        doc.Meta,
		Data:        doc.Data,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Run starts the MCP server on standard I/O.
func (s *Server) Run(_ context.Context) error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
