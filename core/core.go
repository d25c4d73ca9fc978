package core

import (
	"context"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/internal/faceclient"
	"github.com/vidgrade/vidgrade/internal/ocrclient"
	"github.com/vidgrade/vidgrade/internal/outwriter"
	"github.com/vidgrade/vidgrade/internal/videoclient"
	"github.com/vidgrade/vidgrade/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteScene runs the scene analysis and writes results to the
// configured output. It serves as the main entry point for the 'scene' mode.
func ExecuteScene(ctx context.Context, cfg *contract.Config) error {
	result, err := GetSceneResult(ctx, cfg, schema.PathSource{Path: cfg.VideoPath})
	if err != nil {
		return err
	}
	return outwriter.PrintSceneResult(result, cfg)
}

// ExecuteEmotion runs the emotion analysis and writes results to the
// configured output. It serves as the main entry point for the 'emotion' mode.
func ExecuteEmotion(ctx context.Context, cfg *contract.Config) error {
	result, err := GetEmotionResult(ctx, cfg, schema.PathSource{Path: cfg.VideoPath})
	if err != nil {
		return err
	}
	return outwriter.PrintEmotionResult(result, cfg)
}

// GetSceneResult opens the source, wires the real decoder and OCR
// engine, and runs the scene pipeline. Callers that already hold a
// result payload in memory (MCP, tests) use this instead of the
// Execute wrapper.
func GetSceneResult(ctx context.Context, cfg *contract.Config, src schema.VideoSource) (*schema.SceneResult, error) {
	if err := schema.ValidateSource(src); err != nil {
		return nil, err
	}

	stream, err := videoclient.New().Open(src)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	engine, err := ocrclient.New(ocrclient.Options{
		Language:    cfg.Scene.OCRLang,
		PageSegMode: cfg.Scene.OCRPageSegMode,
		MinWordConf: cfg.Scene.OCRWordConf,
		Height:      cfg.Scene.OCRHeight,
	})
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	return analyzeScene(ctx, stream, engine, cfg.Scene, cfg.Precision, cfg.Detail)
}

// GetEmotionResult opens the source, wires the decoder and the face
// engine, and runs the emotion pipeline.
func GetEmotionResult(ctx context.Context, cfg *contract.Config, src schema.VideoSource) (*schema.EmotionResult, error) {
	if err := schema.ValidateSource(src); err != nil {
		return nil, err
	}

	stream, err := videoclient.New().Open(src)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	engine, err := faceclient.New(faceclient.Options{
		CascadeDir: cfg.Emotion.CascadeDir,
		QualityMin: cfg.Emotion.FaceQualityMin,
	})
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	return analyzeEmotion(ctx, stream, engine, cfg.Emotion, cfg.Precision, cfg.Detail)
}
