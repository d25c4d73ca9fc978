package core

import (
	"math"
	"strings"
	"time"

	"github.com/vidgrade/vidgrade/internal/contract"
)

// Minimum seconds between OCR attempts regardless of configuration.
const minOCRIntervalS = 1.0

// Fallback area ratio that counts as a visible logo when no brand
// keywords are configured.
const fallbackLogoArea = 0.01

// logoDetector throttles OCR to at most one attempt per interval and
// carries the last observation forward between attempts, so every
// timeline sample has a logo state without paying OCR cost per frame.
type logoDetector struct {
	engine      contract.TextEngine
	keywords    []string
	intervalS   float64
	onlyIfSharp bool
	minVarlap   float64

	nextOCRAt float64

	// Carried forward between attempts.
	logo     bool
	textArea float64

	attempts   int
	hits       int
	errors     int
	hitAreaSum float64
	totalTime  time.Duration
}

func newLogoDetector(engine contract.TextEngine, cfg *contract.SceneConfig) *logoDetector {
	return &logoDetector{
		engine:      engine,
		keywords:    cfg.BrandKeywords,
		intervalS:   math.Max(cfg.OCREveryS, minOCRIntervalS),
		onlyIfSharp: cfg.OCROnlyIfSharp,
		minVarlap:   cfg.OCRMinVarlap,
	}
}

// observe considers running OCR on the frame at time t. Blurry frames
// are skipped without consuming the throttle window, so OCR happens on
// the next sharp frame instead. Failed attempts keep the carried state
// and are counted rather than surfaced, a bad frame must not kill the
// run.
func (d *logoDetector) observe(frame contract.Frame, t, varlap float64) (bool, float64) {
	if t < d.nextOCRAt {
		return d.logo, d.textArea
	}
	if d.onlyIfSharp && varlap < d.minVarlap {
		return d.logo, d.textArea
	}

	d.attempts++
	d.nextOCRAt = t + d.intervalS

	start := time.Now()
	det, err := d.engine.Detect(frame)
	d.totalTime += time.Since(start)
	if err != nil {
		d.errors++
		return d.logo, d.textArea
	}

	d.textArea = det.AreaRatio
	d.logo = d.matches(det)
	if d.logo {
		d.hits++
		d.hitAreaSum += det.AreaRatio
	}
	return d.logo, d.textArea
}

// matches decides logo visibility. With keywords configured, any
// case-insensitive substring match counts. Without keywords, any
// non-trivial amount of detected text does.
func (d *logoDetector) matches(det contract.TextDetection) bool {
	if len(d.keywords) == 0 {
		return det.AreaRatio > fallbackLogoArea
	}
	for _, word := range det.Words {
		lower := strings.ToLower(word)
		for _, kw := range d.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// avgTimeMS returns the average wall time per OCR attempt, or nil when
// OCR never ran.
func (d *logoDetector) avgTimeMS() *float64 {
	if d.attempts == 0 {
		return nil
	}
	avg := float64(d.totalTime.Milliseconds()) / float64(d.attempts)
	return &avg
}
