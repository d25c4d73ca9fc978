package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/vidgrade/vidgrade/internal/contract"
)

// getTerminalWidth returns the effective terminal width for table and
// score bar rendering.
func getTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// getScoreBarWidth reserves space for the score prefix and caps the bar
// so it stays readable on wide terminals.
func getScoreBarWidth(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - 20
	if available < 10 {
		return 10
	}
	if available > 50 {
		return 50
	}
	return available
}
