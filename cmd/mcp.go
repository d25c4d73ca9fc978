package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/internal/mcp"
	"github.com/vidgrade/vidgrade/schema"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the vidgrade MCP server",
	Long:  `Launch an MCP server that allows AI agents to run video analyses via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// The server receives video paths per request, so only the
		// base defaults are resolved here; no positional args exist.
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return err
			}
		}
		if err := viper.Unmarshal(input); err != nil {
			return err
		}
		cfg.Output = schema.JSONOut
		cfg.Precision = input.Precision
		cfg.Detail = input.Detail
		cfg.Scene = contract.DefaultSceneConfig()
		cfg.Emotion = contract.DefaultEmotionConfig()
		cfg.Emotion.CascadeDir = input.CascadeDir
		cfg.Scene.BrandKeywords = contract.SplitCommaList(input.Keywords)
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
