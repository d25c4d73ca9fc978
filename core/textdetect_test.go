package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidgrade/vidgrade/internal/contract"
)

func sceneCfgForOCR(keywords []string, everyS float64) *contract.SceneConfig {
	cfg := contract.DefaultSceneConfig()
	cfg.BrandKeywords = keywords
	cfg.OCREveryS = everyS
	return &cfg
}

func TestLogoDetectorThrottling(t *testing.T) {
	engine := &fakeTextEngine{script: []contract.TextDetection{
		{Words: []string{"ACME"}, AreaRatio: 0.02},
	}}
	det := newLogoDetector(engine, sceneCfgForOCR([]string{"acme"}, 5))

	// First frame runs OCR, the next ones within 5s reuse the result.
	det.observe(contract.Frame{}, 0, 500)
	det.observe(contract.Frame{}, 1, 500)
	det.observe(contract.Frame{}, 4.9, 500)
	assert.Equal(t, 1, engine.calls)

	det.observe(contract.Frame{}, 5, 500)
	assert.Equal(t, 2, engine.calls)
	assert.Equal(t, 2, det.attempts)
}

func TestLogoDetectorMinimumInterval(t *testing.T) {
	engine := &fakeTextEngine{}
	det := newLogoDetector(engine, sceneCfgForOCR(nil, 0.1))
	assert.Equal(t, 1.0, det.intervalS)

	det.observe(contract.Frame{}, 0, 500)
	det.observe(contract.Frame{}, 0.5, 500)
	assert.Equal(t, 1, engine.calls)
	det.observe(contract.Frame{}, 1.0, 500)
	assert.Equal(t, 2, engine.calls)
}

func TestLogoDetectorSharpnessGate(t *testing.T) {
	engine := &fakeTextEngine{script: []contract.TextDetection{
		{Words: []string{"brand"}, AreaRatio: 0.03},
	}}
	cfg := sceneCfgForOCR([]string{"brand"}, 5)
	det := newLogoDetector(engine, cfg)

	// Blurry frames do not consume the throttle window.
	logo, _ := det.observe(contract.Frame{}, 0, cfg.OCRMinVarlap-1)
	assert.False(t, logo)
	assert.Zero(t, engine.calls)
	assert.Zero(t, det.attempts)

	// The next sharp frame runs immediately.
	logo, area := det.observe(contract.Frame{}, 0.2, cfg.OCRMinVarlap+1)
	assert.True(t, logo)
	assert.Equal(t, 0.03, area)
	assert.Equal(t, 1, engine.calls)
}

func TestLogoDetectorCarriesState(t *testing.T) {
	engine := &fakeTextEngine{script: []contract.TextDetection{
		{Words: []string{"acme"}, AreaRatio: 0.05},
	}}
	det := newLogoDetector(engine, sceneCfgForOCR([]string{"acme"}, 5))

	det.observe(contract.Frame{}, 0, 500)
	logo, area := det.observe(contract.Frame{}, 2, 500)
	assert.True(t, logo)
	assert.Equal(t, 0.05, area)
}

func TestLogoDetectorEngineError(t *testing.T) {
	engine := &fakeTextEngine{
		script: []contract.TextDetection{
			{Words: []string{"acme"}, AreaRatio: 0.05},
			{},
		},
		errs: []error{nil, errors.New("ocr crashed")},
	}
	det := newLogoDetector(engine, sceneCfgForOCR([]string{"acme"}, 1))

	det.observe(contract.Frame{}, 0, 500)
	logo, area := det.observe(contract.Frame{}, 2, 500)

	// A failed attempt keeps the previous result and is only counted.
	assert.True(t, logo)
	assert.Equal(t, 0.05, area)
	assert.Equal(t, 2, det.attempts)
	assert.Equal(t, 1, det.errors)
	assert.Equal(t, 1, det.hits)
}

func TestLogoDetectorMatches(t *testing.T) {
	cases := []struct {
		name     string
		keywords []string
		det      contract.TextDetection
		want     bool
	}{
		{
			name:     "case-insensitive substring",
			keywords: []string{"acme"},
			det:      contract.TextDetection{Words: []string{"ACMECorp"}},
			want:     true,
		},
		{
			name:     "no keyword match",
			keywords: []string{"acme"},
			det:      contract.TextDetection{Words: []string{"other", "words"}},
			want:     false,
		},
		{
			name: "fallback accepts visible text",
			det:  contract.TextDetection{Words: []string{"anything"}, AreaRatio: 0.02},
			want: true,
		},
		{
			name: "fallback rejects trace text",
			det:  contract.TextDetection{Words: []string{"speck"}, AreaRatio: 0.005},
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newLogoDetector(nil, sceneCfgForOCR(tc.keywords, 5))
			assert.Equal(t, tc.want, d.matches(tc.det))
		})
	}
}

func TestLogoDetectorCounters(t *testing.T) {
	engine := &fakeTextEngine{script: []contract.TextDetection{
		{Words: []string{"acme"}, AreaRatio: 0.04},
		{Words: []string{"noise"}, AreaRatio: 0.001},
		{Words: []string{"acme"}, AreaRatio: 0.02},
	}}
	det := newLogoDetector(engine, sceneCfgForOCR([]string{"acme"}, 1))

	det.observe(contract.Frame{}, 0, 500)
	det.observe(contract.Frame{}, 1, 500)
	det.observe(contract.Frame{}, 2, 500)

	assert.Equal(t, 3, det.attempts)
	assert.Equal(t, 2, det.hits)
	assert.InDelta(t, 0.06, det.hitAreaSum, 1e-9)
	assert.NotNil(t, det.avgTimeMS())
}

func TestLogoDetectorAvgTimeNilWithoutAttempts(t *testing.T) {
	det := newLogoDetector(nil, sceneCfgForOCR(nil, 5))
	assert.Nil(t, det.avgTimeMS())
}
