package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vidgrade/vidgrade/core"
	"github.com/vidgrade/vidgrade/internal/contract"
)

// emotionCmd performs facial-expressiveness analysis.
var emotionCmd = &cobra.Command{
	Use:   "emotion <video-path>",
	Short: "Score facial expressiveness in a video.",
	Long: `Sample frames from a video and score the on-screen person's
expressiveness.

Detects the strongest face per sampled frame, measures smile width,
eye openness, mouth movement and head motion, and folds them into
valence (positivity) and energy (engagement) series, each smoothed over
a short window. The final 0-100 score weighs valence against energy.

Frames without a detectable face stay in the timeline as invalid
samples; when coverage drops below 20% the result carries an advisory
highlight instead of failing.

Examples:
  # Score a talking-head clip
  vidgrade emotion talk.mp4

  # Use custom cascades and show diagnostics
  vidgrade emotion talk.mp4 --cascade-dir /opt/cascades --detail

  # Export the per-frame series as JSON
  vidgrade emotion talk.mp4 --output json --output-file emotion.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEmotion(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run emotion analysis", err)
		}
	},
}
