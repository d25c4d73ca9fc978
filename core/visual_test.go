package core

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"

	"github.com/vidgrade/vidgrade/internal/contract"
)

func TestComputeFrameMetricsUniform(t *testing.T) {
	mat := uniformFrame(150, 150, 150)
	defer mat.Close()

	m := computeFrameMetrics(contract.Frame{Mat: mat}, 480)

	// A solid gray frame: brightness equals the channel value, everything
	// else collapses to zero.
	assert.InDelta(t, 150, m.Brightness, 1)
	assert.InDelta(t, 0, m.Saturation, 1)
	assert.InDelta(t, 0, m.Contrast, 1)
	assert.InDelta(t, 0, m.Sharpness, 1e-6)
	assert.InDelta(t, 0, m.ColorCast, 1e-6)
}

func TestComputeFrameMetricsColorCast(t *testing.T) {
	// Pure blue frame: both red and blue deviate from green.
	mat := uniformFrame(200, 0, 0)
	defer mat.Close()

	m := computeFrameMetrics(contract.Frame{Mat: mat}, 480)
	assert.InDelta(t, 100, m.ColorCast, 1)
	assert.InDelta(t, 255, m.Saturation, 1)
}

func TestComputeFrameMetricsContrast(t *testing.T) {
	// Half black, half white yields a full-range histogram spread.
	mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer mat.Close()
	white := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 24, 64, gocv.MatTypeCV8UC3)
	defer white.Close()
	region := mat.Region(image.Rect(0, 0, 64, 24))
	white.CopyTo(&region)
	region.Close()

	m := computeFrameMetrics(contract.Frame{Mat: mat}, 480)
	assert.Greater(t, m.Contrast, 200.0)
	assert.Greater(t, m.Sharpness, 0.0)
}

func TestDownscaleToHeight(t *testing.T) {
	t.Run("shrinks tall frames preserving aspect", func(t *testing.T) {
		src := gocv.NewMatWithSize(960, 1280, gocv.MatTypeCV8UC3)
		defer src.Close()

		dst := downscaleToHeight(src, 480)
		defer dst.Close()

		assert.Equal(t, 480, dst.Rows())
		assert.Equal(t, 640, dst.Cols())
	})

	t.Run("clones small frames untouched", func(t *testing.T) {
		src := gocv.NewMatWithSize(100, 200, gocv.MatTypeCV8UC3)
		defer src.Close()

		dst := downscaleToHeight(src, 480)
		defer dst.Close()

		assert.Equal(t, 100, dst.Rows())
		assert.Equal(t, 200, dst.Cols())
	})
}

func TestGrayPercentile(t *testing.T) {
	gray := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 0, 0, 0), 10, 10, gocv.MatTypeCV8UC1)
	defer gray.Close()

	assert.Equal(t, 128.0, grayPercentile(gray, 5))
	assert.Equal(t, 128.0, grayPercentile(gray, 95))
}
