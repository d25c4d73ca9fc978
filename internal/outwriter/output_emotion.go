package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vidgrade/vidgrade/internal/contract"
	"github.com/vidgrade/vidgrade/internal/parquet"
	"github.com/vidgrade/vidgrade/schema"
)

// PrintEmotionResult outputs an emotion analysis, dispatching based on
// the output format configured.
func PrintEmotionResult(result *schema.EmotionResult, cfg *contract.Config) error {
	fmtFloat := newFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEmotionCSV(w, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.ConvertEmotionTimeline(result)
		if err := parquet.WriteEmotionTimelineParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d timeline rows to %s\n", len(rows), cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEmotionTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeEmotionCSV exports the timeline with one row per sampled frame.
// Signal columns are left empty on frames without a detected face.
func writeEmotionCSV(w io.Writer, result *schema.EmotionResult) error {
	header := []string{"t", "valence", "energy", "smile", "eye", "mouth", "head", "valid"}
	f3 := func(v float64) string { return fmt.Sprintf("%.3f", v) }
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range result.Emotion.Timeline {
			rec := []string{f3(s.T), "", "", "", "", "", "", formatBool(s.Valid)}
			if s.Valid {
				rec[1] = f3(s.Valence)
				rec[2] = f3(s.Energy)
				rec[3] = f3(s.Smile)
				rec[4] = f3(s.Eye)
				rec[5] = f3(s.Mouth)
				rec[6] = f3(s.Head)
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeEmotionTable generates and writes the human-readable summary.
func writeEmotionTable(w io.Writer, result *schema.EmotionResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	emotion := result.Emotion

	label := contract.GetPlainLabel(emotion.Score)
	if cfg.UseColors {
		label = contract.GetColorLabel(emotion.Score)
	}
	if _, err := fmt.Fprintf(w, "Emotion score: %s %s %s\n",
		fmtFloat(emotion.Score), renderScoreBar(emotion.Score, getScoreBarWidth(cfg)), label); err != nil {
		return err
	}
	if emotion.Truncated {
		if _, err := fmt.Fprintln(w, "Note: analysis was cancelled before the end of the video."); err != nil {
			return err
		}
	}

	f3 := func(v float64) string { return fmt.Sprintf("%.3f", v) }
	if err := writeSignalsTable(w, emotion.Signals, emotion.Undefined, f3); err != nil {
		return err
	}
	if err := writeHighlightsTable(w, emotion.Highlights, fmtFloat); err != nil {
		return err
	}
	valid := 0
	for _, s := range emotion.Timeline {
		if s.Valid {
			valid++
		}
	}
	if _, err := fmt.Fprintf(w, "Sampled %d frames, %d with a detected face\n", len(emotion.Timeline), valid); err != nil {
		return err
	}
	return writePerfSection(w, result.Perf, fmtFloat)
}
