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

// PrintSceneResult outputs a scene analysis, dispatching based on the
// output format configured.
func PrintSceneResult(result *schema.SceneResult, cfg *contract.Config) error {
	fmtFloat := newFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSceneCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.ConvertSceneTimeline(result)
		if err := parquet.WriteSceneTimelineParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d timeline rows to %s\n", len(rows), cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSceneTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeSceneCSV exports the timeline with one row per sampled frame.
func writeSceneCSV(w io.Writer, result *schema.SceneResult, fmtFloat func(float64) string) error {
	header := []string{"t", "v", "s", "varlap", "logo", "text_area"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range result.Scene.Timeline {
			rec := []string{
				fmtFloat(s.T),
				fmtFloat(s.Brightness),
				fmtFloat(s.Saturation),
				fmtFloat(s.Sharpness),
				formatBool(s.Logo),
				fmt.Sprintf("%.4f", s.TextArea),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeSceneTable generates and writes the human-readable summary.
func writeSceneTable(w io.Writer, result *schema.SceneResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	scene := result.Scene

	label := contract.GetPlainLabel(scene.Score)
	if cfg.UseColors {
		label = contract.GetColorLabel(scene.Score)
	}
	if _, err := fmt.Fprintf(w, "Scene score: %s %s %s\n",
		fmtFloat(scene.Score), renderScoreBar(scene.Score, getScoreBarWidth(cfg)), label); err != nil {
		return err
	}
	if scene.Truncated {
		if _, err := fmt.Fprintln(w, "Note: analysis was cancelled before the end of the video."); err != nil {
			return err
		}
	}

	if err := writeSignalsTable(w, scene.Signals, scene.Undefined, fmtFloat); err != nil {
		return err
	}
	if err := writeHighlightsTable(w, scene.Highlights, fmtFloat); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sampled %d frames\n", len(scene.Timeline)); err != nil {
		return err
	}
	return writePerfSection(w, result.Perf, fmtFloat)
}
