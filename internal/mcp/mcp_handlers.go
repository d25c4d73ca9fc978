package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vidgrade/vidgrade/core"
	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleAnalyzeScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	path := request.GetString("video_path", "")
	if path == "" {
		return mcp.NewToolResultError("video_path is required"), nil
	}
	if kw := request.GetString("keywords", ""); kw != "" {
		cfg.Scene.BrandKeywords = contract.SplitCommaList(kw)
	}
	if fps := request.GetFloat("sample_fps", 0); fps > 0 {
		cfg.Scene.SampleFPS = fps
	}
	if every := request.GetFloat("ocr_every", 0); every > 0 {
		cfg.Scene.OCREveryS = every
	}
	cfg.Detail = request.GetBool("detail", cfg.Detail)

	result, err := core.GetSceneResult(ctx, cfg, schema.PathSource{Path: path})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scene analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeEmotion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	path := request.GetString("video_path", "")
	if path == "" {
		return mcp.NewToolResultError("video_path is required"), nil
	}
	if fps := request.GetFloat("sample_fps", 0); fps > 0 {
		cfg.Emotion.SampleFPS = fps
	}
	if dir := request.GetString("cascade_dir", ""); dir != "" {
		cfg.Emotion.CascadeDir = dir
	}
	cfg.Detail = request.GetBool("detail", cfg.Detail)

	result, err := core.GetEmotionResult(ctx, cfg, schema.PathSource{Path: path})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("emotion analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSignalDefinitions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(schema.AllSignalDefinitions(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
