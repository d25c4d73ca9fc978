package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vidgrade/vidgrade/internal/outwriter"
	"github.com/vidgrade/vidgrade/schema"
)

// signalsCmd displays the formal definitions of all signals and
// highlight reasons. This is a static display that needs no video.
var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Describe every signal and highlight reason vidgrade reports.",
	Long: `Print the reference for all signals and highlight reasons.

Useful when interpreting JSON or Parquet exports, or when deciding
which highlight reasons to alert on.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		output := schema.OutputMode(viper.GetString("output"))
		if _, ok := schema.ValidOutputModes[output]; !ok {
			return fmt.Errorf("invalid output mode %q", output)
		}
		return outwriter.PrintSignalDefinitions(output, viper.GetString("output-file"))
	},
}
