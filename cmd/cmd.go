// Package cmd defines the command-line interface for vidgrade.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(sceneCmd)
	rootCmd.AddCommand(emotionCmd)
	rootCmd.AddCommand(signalsCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to (required for parquet)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("detail", false, "Print performance diagnostics (decode, sampling, timing)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Float64("sample-fps", contract.DefaultSampleFPS, "Frames per second to sample")
	rootCmd.PersistentFlags().Float64("merge-gap", contract.DefaultMergeGapS, "Seconds of tolerated gap when merging highlight windows")
	rootCmd.PersistentFlags().Float64("min-duration", contract.DefaultMinDurationS, "Minimum highlight window duration in seconds")
	rootCmd.PersistentFlags().Bool("autoscale", true, "Relax sampling rates automatically for long videos")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of sceneCmd to Viper
	sceneCmd.Flags().String("keywords", "", "Comma-separated brand keywords for logo detection")
	sceneCmd.Flags().Float64("ocr-every", contract.DefaultOCREveryS, "Minimum seconds between OCR attempts")
	sceneCmd.Flags().String("ocr-lang", "eng", "Tesseract language pack")
	sceneCmd.Flags().Float64("ocr-conf", 60, "Word confidence cutoff for OCR results (0-100)")
	sceneCmd.Flags().Float64("ocr-min-sharpness", 140, "Skip OCR on frames below this Laplacian variance")
	sceneCmd.Flags().Bool("ocr-skip-blurry", true, "Only attempt OCR on sharp frames")
	if err := viper.BindPFlags(sceneCmd.Flags()); err != nil {
		contract.LogFatal("Error binding scene flags", err)
	}

	// Bind all flags of emotionCmd to Viper
	emotionCmd.Flags().String("cascade-dir", "", "Directory holding the face detection cascades")
	emotionCmd.Flags().Float64("smooth-window", 1.2, "Moving-average window in seconds for valence/energy")
	if err := viper.BindPFlags(emotionCmd.Flags()); err != nil {
		contract.LogFatal("Error binding emotion flags", err)
	}
}
