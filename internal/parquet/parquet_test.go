package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidgrade/vidgrade/schema"
)

func TestSceneTimelineRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(SceneTimelineRow))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"t",
		"brightness",
		"saturation",
		"sharpness_varlap",
		"logo_visible",
		"text_area",
		"scene_score",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestEmotionTimelineRowStructTags(t *testing.T) {
	pqSchema := parquet.SchemaOf(new(EmotionTimelineRow))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"t",
		"valence",
		"energy",
		"smile",
		"eye_open",
		"mouth_open",
		"head_motion",
		"valid",
		"emotion_score",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertSceneTimeline(t *testing.T) {
	result := &schema.SceneResult{
		Scene: schema.SceneBlock{
			Score: 88.5,
			Timeline: []schema.SceneSample{
				{T: 0, Brightness: 150.2, Saturation: 90.1, Sharpness: 240.8, Logo: true, TextArea: 0.02},
				{T: 1, Brightness: 148.9, Saturation: 89.7, Sharpness: 235.1, Logo: false, TextArea: 0},
			},
		},
	}

	rows := ConvertSceneTimeline(result)
	require.Len(t, rows, 2)

	assert.Equal(t, 0.0, rows[0].T)
	assert.Equal(t, 150.2, rows[0].Brightness)
	assert.True(t, rows[0].LogoVisible)
	assert.False(t, rows[1].LogoVisible)

	// The run-level score is repeated on every row
	assert.Equal(t, 88.5, rows[0].SceneScore)
	assert.Equal(t, 88.5, rows[1].SceneScore)
}

func TestConvertEmotionTimeline(t *testing.T) {
	result := &schema.EmotionResult{
		Emotion: schema.EmotionBlock{
			Score: 64.0,
			Timeline: []schema.EmotionSample{
				{T: 0, Valence: 0.7, Energy: 0.5, Smile: 0.45, Eye: 0.21, Mouth: 0.08, Head: 0.01, Valid: true},
				{T: 1, Valid: false},
			},
		},
	}

	rows := ConvertEmotionTimeline(result)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Valence)
	assert.Equal(t, 0.7, *rows[0].Valence)
	require.NotNil(t, rows[0].HeadMotion)
	assert.Equal(t, 0.01, *rows[0].HeadMotion)
	assert.True(t, rows[0].Valid)

	// Frames without a face export null signal columns
	assert.Nil(t, rows[1].Valence)
	assert.Nil(t, rows[1].Energy)
	assert.Nil(t, rows[1].Smile)
	assert.False(t, rows[1].Valid)
	assert.Equal(t, 64.0, rows[1].EmotionScore)
}

func TestWriteSceneTimelineParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "scene_timeline.parquet")

	data := []SceneTimelineRow{
		{T: 0, Brightness: 150, Saturation: 90, Sharpness: 240, LogoVisible: true, TextArea: 0.02, SceneScore: 88.5},
		{T: 1, Brightness: 149, Saturation: 88, Sharpness: 230, LogoVisible: false, TextArea: 0, SceneScore: 88.5},
	}

	err := WriteSceneTimelineParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[SceneTimelineRow](file)
	defer reader.Close()

	readData := make([]SceneTimelineRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.InDelta(t, data[i].T, readData[i].T, 1e-9)
		assert.InDelta(t, data[i].Brightness, readData[i].Brightness, 1e-9)
		assert.Equal(t, data[i].LogoVisible, readData[i].LogoVisible)
		assert.InDelta(t, data[i].SceneScore, readData[i].SceneScore, 1e-9)
	}
}

func TestWriteEmotionTimelineParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "emotion_timeline.parquet")

	valence := 0.7
	energy := 0.5
	data := []EmotionTimelineRow{
		{T: 0, Valence: &valence, Energy: &energy, Valid: true, EmotionScore: 64},
		{T: 1, Valid: false, EmotionScore: 64},
	}

	err := WriteEmotionTimelineParquet(data, outputPath)
	require.NoError(t, err)

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[EmotionTimelineRow](file)
	defer reader.Close()

	readData := make([]EmotionTimelineRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(data), n)

	require.NotNil(t, readData[0].Valence)
	assert.InDelta(t, valence, *readData[0].Valence, 1e-9)
	assert.True(t, readData[0].Valid)

	// Nullable columns survive the round trip as nil
	assert.Nil(t, readData[1].Valence)
	assert.Nil(t, readData[1].Energy)
	assert.False(t, readData[1].Valid)
}

func TestWriteParquetEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	err := WriteSceneTimelineParquet([]SceneTimelineRow{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquetInvalidPath(t *testing.T) {
	err := WriteSceneTimelineParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}
