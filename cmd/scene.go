package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vidgrade/vidgrade/core"
	"github.com/vidgrade/vidgrade/internal/contract"
)

// sceneCmd performs scene-quality analysis.
var sceneCmd = &cobra.Command{
	Use:   "scene <video-path>",
	Short: "Score the visual quality of a video.",
	Long: `Sample frames from a video and score its visual quality.

Measures exposure, sharpness, contrast, saturation, color cast and
brand/logo visibility, then combines them into a single 0-100 score.
OCR runs at a throttled cadence and only on sharp frames, so cost stays
bounded even on long videos.

Alongside the score you get the per-frame timeline and highlight windows
marking sustained dark, blurry or logo-free spans.

Examples:
  # Score a clip with defaults
  vidgrade scene clip.mp4

  # Look for a specific brand and include cost diagnostics
  vidgrade scene clip.mp4 --keywords "acme,acme corp" --detail

  # Sample more densely and export the timeline
  vidgrade scene clip.mp4 --sample-fps 2 --output csv --output-file timeline.csv

  # Columnar export for analytics pipelines
  vidgrade scene clip.mp4 --output parquet --output-file timeline.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScene(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run scene analysis", err)
		}
	},
}
