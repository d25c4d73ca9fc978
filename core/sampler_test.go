package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"

	"github.com/vidgrade/vidgrade/internal/contract"
)

func TestSampleStride(t *testing.T) {
	cases := []struct {
		name      string
		videoFPS  float64
		sampleFPS float64
		want      int
	}{
		{name: "30fps at 1fps", videoFPS: 30, sampleFPS: 1, want: 30},
		{name: "25fps at 2fps", videoFPS: 25, sampleFPS: 2, want: 13},
		{name: "sampling faster than native", videoFPS: 24, sampleFPS: 60, want: 1},
		{name: "fractional target", videoFPS: 30, sampleFPS: 0.5, want: 60},
		{name: "zero native fps", videoFPS: 0, sampleFPS: 1, want: 1},
		{name: "zero sample fps", videoFPS: 30, sampleFPS: 0, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sampleStride(tc.videoFPS, tc.sampleFPS))
		})
	}
}

func TestAutoscaleScene(t *testing.T) {
	base := func() contract.SceneConfig {
		cfg := contract.DefaultSceneConfig()
		cfg.SampleFPS = 1.0
		cfg.OCREveryS = 5.0
		return cfg
	}

	cases := []struct {
		name      string
		durationS float64
		wantFPS   float64
		wantOCR   float64
	}{
		{name: "short video untouched", durationS: 300, wantFPS: 1.0, wantOCR: 5.0},
		{name: "medium video", durationS: 900, wantFPS: 0.5, wantOCR: 8},
		{name: "long video", durationS: 2400, wantFPS: 0.33, wantOCR: 12},
		{name: "very long video", durationS: 7200, wantFPS: 0.2, wantOCR: 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			autoscaleScene(&cfg, tc.durationS)
			assert.Equal(t, tc.wantFPS, cfg.SampleFPS)
			assert.Equal(t, tc.wantOCR, cfg.OCREveryS)
		})
	}

	t.Run("disabled is a no-op", func(t *testing.T) {
		cfg := base()
		cfg.AutoscaleEnabled = false
		autoscaleScene(&cfg, 7200)
		assert.Equal(t, 1.0, cfg.SampleFPS)
		assert.Equal(t, 5.0, cfg.OCREveryS)
	})

	t.Run("never makes user settings finer", func(t *testing.T) {
		cfg := base()
		cfg.SampleFPS = 0.1
		cfg.OCREveryS = 30
		autoscaleScene(&cfg, 900)
		assert.Equal(t, 0.1, cfg.SampleFPS)
		assert.Equal(t, 30.0, cfg.OCREveryS)
	})
}

func TestAutoscaleEmotion(t *testing.T) {
	base := func() contract.EmotionConfig {
		cfg := contract.DefaultEmotionConfig()
		cfg.SampleFPS = 2.0
		return cfg
	}

	cfg := base()
	autoscaleEmotion(&cfg, 600)
	assert.Equal(t, 2.0, cfg.SampleFPS)

	cfg = base()
	autoscaleEmotion(&cfg, 1800)
	assert.Equal(t, 1.0, cfg.SampleFPS)

	cfg = base()
	autoscaleEmotion(&cfg, 3600)
	assert.Equal(t, 0.5, cfg.SampleFPS)

	cfg = base()
	cfg.AutoscaleEnabled = false
	autoscaleEmotion(&cfg, 3600)
	assert.Equal(t, 2.0, cfg.SampleFPS)
}

func TestFrameSampler(t *testing.T) {
	t.Run("yields every stride-th frame", func(t *testing.T) {
		stream := newFakeStream(10, 5, func(int) gocv.Mat {
			return uniformFrame(128, 128, 128)
		})
		sampler := newFrameSampler(stream, 1) // stride 5

		var times []float64
		for {
			frame, tAt, ok := sampler.next()
			if !ok {
				break
			}
			times = append(times, tAt)
			frame.Mat.Close()
		}

		assert.Equal(t, []float64{0, 1}, times)
		assert.Equal(t, 10, sampler.decoded)
		assert.Equal(t, 2, sampler.sampled)
	})

}
