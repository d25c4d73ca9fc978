package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidgrade/vidgrade/schema"
)

func tempVideo(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(p, []byte("stub"), 0o644))
	return p
}

func validRawInput(path string) *ConfigRawInput {
	return &ConfigRawInput{
		VideoPathStr: path,
		Output:       "text",
		Precision:    1,
		Color:        "yes",
		SampleFPS:    1.0,
		MergeGap:     2.0,
		MinDuration:  8.0,
		Autoscale:    true,
		OCREvery:     5.0,
		OCRLang:      "eng",
		OCRConf:      60,
		OCRMinSharp:  140,
		OCRSkipBlurry: true,
		SmoothWindow: 1.2,
	}
}

func TestProcessAndValidate(t *testing.T) {
	path := tempVideo(t)

	t.Run("valid defaults", func(t *testing.T) {
		var cfg Config
		err := ProcessAndValidate(&cfg, validRawInput(path))
		require.NoError(t, err)
		assert.Equal(t, path, cfg.VideoPath)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.Equal(t, 1, cfg.Precision)
		assert.InDelta(t, 0.30, cfg.Scene.Weights.Exposure, 1e-9)
		assert.InDelta(t, 0.55, cfg.Emotion.Weights.Valence, 1e-9)
		assert.Equal(t, "eng", cfg.Scene.OCRLang)
		assert.True(t, cfg.Scene.OCROnlyIfSharp)
	})

	t.Run("keywords split and trimmed", func(t *testing.T) {
		var cfg Config
		input := validRawInput(path)
		input.Keywords = "acme, ACME Corp ,shop"
		require.NoError(t, ProcessAndValidate(&cfg, input))
		assert.Equal(t, []string{"acme", "ACME Corp", "shop"}, cfg.Scene.BrandKeywords)
	})

	t.Run("precision clamped", func(t *testing.T) {
		var cfg Config
		input := validRawInput(path)
		input.Precision = 9
		require.NoError(t, ProcessAndValidate(&cfg, input))
		assert.Equal(t, MaxPrecision, cfg.Precision)
	})

	t.Run("weight overrides applied", func(t *testing.T) {
		var cfg Config
		input := validRawInput(path)
		logo := 0.5
		smile := 0.9
		input.SceneWeights = &SceneWeightsRaw{Logo: &logo}
		input.EmotionWeights = &EmotionWeightsRaw{Smile: &smile}
		require.NoError(t, ProcessAndValidate(&cfg, input))
		assert.InDelta(t, 0.5, cfg.Scene.Weights.Logo, 1e-9)
		assert.InDelta(t, 0.25, cfg.Scene.Weights.Sharpness, 1e-9)
		assert.InDelta(t, 0.9, cfg.Emotion.Weights.Smile, 1e-9)
	})

	errorCases := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"missing path", func(in *ConfigRawInput) { in.VideoPathStr = "" }},
		{"nonexistent path", func(in *ConfigRawInput) { in.VideoPathStr = "/no/such/clip.mp4" }},
		{"bad output mode", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"parquet without file", func(in *ConfigRawInput) { in.Output = "parquet" }},
		{"zero sample fps", func(in *ConfigRawInput) { in.SampleFPS = 0 }},
		{"negative merge gap", func(in *ConfigRawInput) { in.MergeGap = -1 }},
		{"zero ocr interval", func(in *ConfigRawInput) { in.OCREvery = 0 }},
		{"ocr conf out of range", func(in *ConfigRawInput) { in.OCRConf = 101 }},
		{"bad color value", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"negative weight", func(in *ConfigRawInput) {
			bad := -0.1
			in.SceneWeights = &SceneWeightsRaw{Logo: &bad}
		}},
		{"all scene weights zero", func(in *ConfigRawInput) {
			z := 0.0
			in.SceneWeights = &SceneWeightsRaw{
				Exposure: &z, Sharpness: &z, Contrast: &z,
				Saturation: &z, ColorCast: &z, Logo: &z,
			}
		}},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			input := validRawInput(path)
			tc.mutate(input)
			assert.Error(t, ProcessAndValidate(&cfg, input))
		})
	}
}

func TestDefaultConfigs(t *testing.T) {
	sc := DefaultSceneConfig()
	assert.Equal(t, 480, sc.MetricsHeight)
	assert.Equal(t, Band{Lo: 100, Hi: 300}, sc.SharpnessBand)
	assert.InDelta(t, 1.0, sc.Weights.Exposure+sc.Weights.Sharpness+sc.Weights.Contrast+
		sc.Weights.Saturation+sc.Weights.ColorCast+sc.Weights.Logo, 1e-9)

	ec := DefaultEmotionConfig()
	assert.InDelta(t, 1.0, ec.Weights.Valence+ec.Weights.Energy, 1e-9)
	assert.InDelta(t, 1.0, ec.Weights.Smile+ec.Weights.EyeOpen, 1e-9)
	assert.InDelta(t, 1.0, ec.Weights.MouthDyn+ec.Weights.HeadMotion+ec.Weights.EyeVar, 1e-9)
}
