// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vidgrade/vidgrade/internal/contract"
)

// NewMCPServer initializes and configures the vidgrade MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Vidgrade Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: analyze_scene ---
	s.AddTool(mcp.NewTool("analyze_scene",
		mcp.WithDescription("Score the visual quality of a video: exposure, sharpness, contrast, saturation, color cast and logo visibility."),
		mcp.WithString("video_path", mcp.Description("Path to the video file to analyze."), mcp.Required()),
		mcp.WithString("keywords", mcp.Description("Comma-separated brand keywords for logo detection. Without keywords, any substantial on-screen text counts as a logo.")),
		mcp.WithNumber("sample_fps", mcp.Description("Frames per second to sample. Defaults to 1.")),
		mcp.WithNumber("ocr_every", mcp.Description("Minimum seconds between OCR attempts. Defaults to 5.")),
		mcp.WithBoolean("detail", mcp.Description("Include performance diagnostics in the result.")),
	), h.handleAnalyzeScene)

	// --- 2. Tool: analyze_emotion ---
	s.AddTool(mcp.NewTool("analyze_emotion",
		mcp.WithDescription("Score facial expressiveness in a video: valence and energy derived from smile, eye and head dynamics."),
		mcp.WithString("video_path", mcp.Description("Path to the video file to analyze."), mcp.Required()),
		mcp.WithNumber("sample_fps", mcp.Description("Frames per second to sample. Defaults to 1.")),
		mcp.WithString("cascade_dir", mcp.Description("Directory holding the face detection cascades.")),
		mcp.WithBoolean("detail", mcp.Description("Include performance diagnostics in the result.")),
	), h.handleAnalyzeEmotion)

	// --- 3. Tool: get_signal_definitions ---
	s.AddTool(mcp.NewTool("get_signal_definitions",
		mcp.WithDescription("Describe every signal and highlight reason the analyses can report."),
	), h.handleGetSignalDefinitions)

	return s
}

// StartMCPServer starts the vidgrade MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
