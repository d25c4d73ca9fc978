// Package parquet provides data structures and functions for exporting
// analysis timelines to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/vidgrade/vidgrade/schema"
)

// SceneTimelineRow is one sampled frame of the scene timeline flattened
// for columnar export, with the run-level score repeated per row so a
// single file is self-describing.
type SceneTimelineRow struct {
	// T is the timestamp in seconds from video start
	T float64 `parquet:"t,snappy"`

	// Brightness is the HSV value-channel mean (0-255)
	Brightness float64 `parquet:"brightness,snappy"`

	// Saturation is the HSV saturation-channel mean (0-255)
	Saturation float64 `parquet:"saturation,snappy"`

	// Sharpness is the variance of the Laplacian edge response
	Sharpness float64 `parquet:"sharpness_varlap,snappy"`

	// LogoVisible reports the cached OCR logo state at this sample
	LogoVisible bool `parquet:"logo_visible,snappy"`

	// TextArea is the text region area as a fraction of frame area
	TextArea float64 `parquet:"text_area,snappy"`

	// SceneScore is the run-level scene score (0-100)
	SceneScore float64 `parquet:"scene_score,snappy"`
}

// EmotionTimelineRow is one sampled frame of the emotion timeline.
// Signal columns are nullable so frames without a detected face keep
// their slot without fabricating zeros.
type EmotionTimelineRow struct {
	// T is the timestamp in seconds from video start
	T float64 `parquet:"t,snappy"`

	// Valence is the smoothed expression positivity (nullable, 0-1)
	Valence *float64 `parquet:"valence,optional,snappy"`

	// Energy is the smoothed engagement level (nullable, 0-1)
	Energy *float64 `parquet:"energy,optional,snappy"`

	// Smile is the raw mouth-width to eye-distance ratio (nullable)
	Smile *float64 `parquet:"smile,optional,snappy"`

	// EyeOpen is the raw eyelid-gap to eye-distance ratio (nullable)
	EyeOpen *float64 `parquet:"eye_open,optional,snappy"`

	// MouthOpen is the raw lip-gap to eye-distance ratio (nullable)
	MouthOpen *float64 `parquet:"mouth_open,optional,snappy"`

	// HeadMotion is the face displacement relative to face size (nullable)
	HeadMotion *float64 `parquet:"head_motion,optional,snappy"`

	// Valid reports whether a face was detected at this sample
	Valid bool `parquet:"valid,snappy"`

	// EmotionScore is the run-level emotion score (0-100)
	EmotionScore float64 `parquet:"emotion_score,snappy"`
}

// WriteSceneTimelineParquet writes a scene timeline to a Parquet file.
func WriteSceneTimelineParquet(data []SceneTimelineRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteEmotionTimelineParquet writes an emotion timeline to a Parquet file.
func WriteEmotionTimelineParquet(data []EmotionTimelineRow, outputPath string) error {
	return writeRows(data, outputPath)
}

func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the row struct tags.
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertSceneTimeline converts a scene result timeline for Parquet export.
func ConvertSceneTimeline(result *schema.SceneResult) []SceneTimelineRow {
	rows := make([]SceneTimelineRow, len(result.Scene.Timeline))
	for i, s := range result.Scene.Timeline {
		rows[i] = SceneTimelineRow{
			T:           s.T,
			Brightness:  s.Brightness,
			Saturation:  s.Saturation,
			Sharpness:   s.Sharpness,
			LogoVisible: s.Logo,
			TextArea:    s.TextArea,
			SceneScore:  result.Scene.Score,
		}
	}
	return rows
}

// ConvertEmotionTimeline converts an emotion result timeline for Parquet export.
func ConvertEmotionTimeline(result *schema.EmotionResult) []EmotionTimelineRow {
	rows := make([]EmotionTimelineRow, len(result.Emotion.Timeline))
	for i, s := range result.Emotion.Timeline {
		row := EmotionTimelineRow{
			T:            s.T,
			Valid:        s.Valid,
			EmotionScore: result.Emotion.Score,
		}
		if s.Valid {
			valence, energy := s.Valence, s.Energy
			smile, eye := s.Smile, s.Eye
			mouth, head := s.Mouth, s.Head
			row.Valence = &valence
			row.Energy = &energy
			row.Smile = &smile
			row.EyeOpen = &eye
			row.MouthOpen = &mouth
			row.HeadMotion = &head
		}
		rows[i] = row
	}
	return rows
}
