package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/vidgrade/vidgrade/schema"
)

// renderScoreBar draws a fixed-width bar visualizing a 0-100 score.
func renderScoreBar(score float64, width int) string {
	filled := int(score / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// writeSignalsTable renders the signal summary sorted by key so output
// stays stable across runs.
func writeSignalsTable(w io.Writer, signals map[string]float64, undefined []string, fmtFloat func(float64) string) error {
	keys := make([]string, 0, len(signals))
	for k := range signals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Signal", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, k := range keys {
		data = append(data, []string{k, fmtFloat(signals[k])})
	}
	for _, name := range undefined {
		data = append(data, []string{name, "n/a"})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeHighlightsTable renders the advisory windows, or a single note
// when the run produced none.
func writeHighlightsTable(w io.Writer, highlights []schema.HighlightWindow, fmtFloat func(float64) string) error {
	if len(highlights) == 0 {
		_, err := fmt.Fprintln(w, "No highlights detected.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Start", "End", "Reason"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, h := range highlights {
		data = append(data, []string{fmtFloat(h.Start), fmtFloat(h.End), h.Reason})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writePerfSection renders the cost diagnostics block.
func writePerfSection(w io.Writer, perf *schema.PerfReport, fmtFloat func(float64) string) error {
	if perf == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Video: %.2f fps, %d frames, %s s\n",
		perf.Video.FPS, perf.Video.Frames, fmtFloat(perf.Video.DurationS)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sampling: %v fps, %d frames sampled", perf.Sampling.SampleFPS, perf.Sampling.FramesSampled); err != nil {
		return err
	}
	if perf.Sampling.OCRAttempts != nil {
		fmt.Fprintf(w, ", OCR every %vs (%d attempts, %d hits)",
			*perf.Sampling.OCREveryS, *perf.Sampling.OCRAttempts, *perf.Sampling.OCRHits)
	}
	if perf.Sampling.DetectionRate != nil {
		fmt.Fprintf(w, ", %d valid faces (rate %.3f)", *perf.Sampling.ValidFrames, *perf.Sampling.DetectionRate)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Timing: %.3fs total, %s ms/frame", perf.Timing.TotalS, fmtFloat(perf.Timing.AvgPerFrameMS)); err != nil {
		return err
	}
	if perf.Timing.AvgOCRMS != nil {
		fmt.Fprintf(w, ", %s ms/OCR", fmtFloat(*perf.Timing.AvgOCRMS))
	}
	_, err := fmt.Fprintln(w)
	return err
}
